// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Commands never talk HTTP directly.
type Service interface {
	// ListTasks returns all tasks in server order (no client-side sorting).
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id int64) (Task, error)

	// CreateTask creates a new task and returns it with its assigned ID.
	CreateTask(ctx context.Context, title string) (Task, error)

	// UpdateTask replaces the title and completed flag of a task.
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (Task, error)

	// DeleteTask removes a task server-side.
	DeleteTask(ctx context.Context, id int64) error

	// MarkComplete marks a task as completed and returns the updated task.
	MarkComplete(ctx context.Context, id int64) (Task, error)
}
