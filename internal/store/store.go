package store

import (
	"log/slog"
	"sync"

	"taskctl/internal/service"
)

// Observer is called after every dispatch with the applied transition
// and the resulting snapshot. Observers see dispatches in the order they
// were applied. An observer must not call Dispatch.
type Observer func(t Transition, s State)

// Store is the single writer of task state. Each Dispatch is applied
// atomically; callers only ever see copies.
type Store struct {
	// notifyMu is held from apply through notification so observers run
	// in apply order. mu alone guards state and observers.
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     State
	observers map[int]Observer
	nextID    int
}

// New creates a store with an empty task list, not loading, no error.
func New() *Store {
	return &Store{
		state:     State{Tasks: []service.Task{}},
		observers: make(map[int]Observer),
	}
}

// Dispatch applies t and returns a snapshot of the new state.
func (s *Store) Dispatch(t Transition) State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, t)
	snap := s.state.Clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(t, snap.Clone())
	}
	return snap
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers o and returns a function that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// LogTransitions returns an observer that writes each transition to
// logger at debug level.
func LogTransitions(logger *slog.Logger) Observer {
	return func(t Transition, st State) {
		logger.Debug("transition",
			"op", describe(t),
			"tasks", len(st.Tasks),
			"loading", st.Loading,
			"error", st.Error)
	}
}
