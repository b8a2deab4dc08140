// Package operations runs user-level task actions against a backend and
// records their progress and outcome in a store.
//
// Every action follows the same sequence: mark loading and clear the
// previous error, call the backend, commit the result (or the failure
// message) as a single transition, then clear loading. Concurrent
// actions are not coordinated; whichever finishes last decides the
// final loading, error and collection state.
package operations

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"taskctl/internal/service"
	"taskctl/internal/store"
)

// Operations sequences backend calls and store transitions.
type Operations struct {
	svc    service.Service
	store  *store.Store
	logger *slog.Logger

	mu      sync.Mutex
	lastErr error // error behind the store's current Error
}

// New creates Operations over svc and st. svc is normally a
// policy.Policy wrapping the remote backend. A nil logger discards output.
func New(svc service.Service, st *store.Store, logger *slog.Logger) *Operations {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Operations{svc: svc, store: st, logger: logger}
}

// Store returns the store the operations write to.
func (o *Operations) Store() *store.Store {
	return o.store
}

// LoadTasks replaces the task collection with the server's list.
// Failures are recorded in the store only; nothing is returned.
func (o *Operations) LoadTasks(ctx context.Context) {
	_, _ = run(ctx, o, "load", "Failed to load tasks",
		func(ctx context.Context) ([]service.Task, error) { return o.svc.ListTasks(ctx) },
		func(tasks []service.Task) store.Transition { return store.SetTasks{Tasks: tasks} })
}

// GetTask fetches a task and makes it the selected task.
func (o *Operations) GetTask(ctx context.Context, id int64) (service.Task, error) {
	return run(ctx, o, "get", "Failed to get task",
		func(ctx context.Context) (service.Task, error) { return o.svc.GetTask(ctx, id) },
		func(t service.Task) store.Transition { return store.SetSelectedTask{Task: &t} })
}

// CreateTask creates a task and appends it to the collection.
func (o *Operations) CreateTask(ctx context.Context, title string) (service.Task, error) {
	return run(ctx, o, "create", "Failed to create task",
		func(ctx context.Context) (service.Task, error) { return o.svc.CreateTask(ctx, title) },
		func(t service.Task) store.Transition { return store.AddTask{Task: t} })
}

// UpdateTask replaces a task's title and completed flag.
func (o *Operations) UpdateTask(ctx context.Context, id int64, req service.UpdateTaskRequest) (service.Task, error) {
	return run(ctx, o, "update", "Failed to update task",
		func(ctx context.Context) (service.Task, error) { return o.svc.UpdateTask(ctx, id, req) },
		func(t service.Task) store.Transition { return store.UpdateTask{Task: t} })
}

// MarkComplete marks a task completed.
func (o *Operations) MarkComplete(ctx context.Context, id int64) (service.Task, error) {
	return run(ctx, o, "complete", "Failed to mark task as complete",
		func(ctx context.Context) (service.Task, error) { return o.svc.MarkComplete(ctx, id) },
		func(t service.Task) store.Transition { return store.UpdateTask{Task: t} })
}

// DeleteTask deletes a task and removes it from the collection.
func (o *Operations) DeleteTask(ctx context.Context, id int64) error {
	_, err := run(ctx, o, "delete", "Failed to delete task",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, o.svc.DeleteTask(ctx, id) },
		func(struct{}) store.Transition { return store.DeleteTask{ID: id} })
	return err
}

// ClearError clears the recorded error.
func (o *Operations) ClearError() {
	o.recordError(nil, store.ClearError{})
}

// LastError returns the failure whose message the store currently holds,
// or nil when the last action succeeded. It lets callers of LoadTasks
// classify a failure that the store only keeps as text.
func (o *Operations) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// recordError sets lastErr and dispatches t under one lock, so LastError
// and the store's Error change together.
func (o *Operations) recordError(err error, t store.Transition) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastErr = err
	o.store.Dispatch(t)
}

// run executes one action under the loading/error protocol.
func run[T any](ctx context.Context, o *Operations, name, fallback string,
	call func(context.Context) (T, error), commit func(T) store.Transition) (T, error) {

	o.store.Dispatch(store.SetLoading{Loading: true})
	o.recordError(nil, store.SetError{})
	defer o.store.Dispatch(store.SetLoading{Loading: false})

	v, err := call(ctx)
	if err != nil {
		msg := service.Message(err, fallback)
		o.logger.Debug("operation failed", "op", name, "error", msg)
		o.recordError(err, store.SetError{Message: msg})
		return v, err
	}

	o.store.Dispatch(commit(v))
	o.logger.Debug("operation done", "op", name)
	return v, nil
}
