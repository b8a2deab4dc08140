// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task item. IDs are assigned by the server.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest is the body sent to create a task.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest replaces the mutable fields of a task.
// Both fields are always sent; there is no partial update.
type UpdateTaskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
