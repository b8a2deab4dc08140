package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh command. Commands hold their parsed flag values,
// so every dispatch gets its own instance.
type Factory func() Command

// Registry maps command names and aliases to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	primary   map[string]Factory // primary names only
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		primary:   make(map[string]Factory),
	}
}

// Register adds a command factory. The factory is called once to read
// the name and aliases.
// Returns an error if the name or any alias is already registered.
func (r *Registry) Register(f Factory) error {
	proto := f()

	r.mu.Lock()
	defer r.mu.Unlock()

	name := proto.Name()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}
	for _, alias := range proto.Aliases() {
		if _, exists := r.factories[alias]; exists {
			return fmt.Errorf("command alias already registered: %s", alias)
		}
	}

	r.factories[name] = f
	r.primary[name] = f
	for _, alias := range proto.Aliases() {
		r.factories[alias] = f
	}
	return nil
}

// Find returns a new instance of the command registered under name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return f(), true
}

// All returns one new instance of every command, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	names := make([]string, 0, len(r.primary))
	for name := range r.primary {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)

	result := make([]Command, 0, len(names))
	for _, name := range names {
		if cmd, ok := r.Find(name); ok {
			result = append(result, cmd)
		}
	}
	return result
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command factory to the default registry.
func Register(f Factory) {
	if err := DefaultRegistry.Register(f); err != nil {
		panic(err)
	}
}
