// Package policy applies client-side task rules in front of a backend.
package policy

import (
	"context"
	"strings"

	"taskctl/internal/service"
)

// Policy wraps a service.Service and rejects empty titles before
// anything reaches the network. All other calls pass through.
type Policy struct {
	next service.Service
}

var _ service.Service = (*Policy)(nil)

// New wraps next.
func New(next service.Service) *Policy {
	return &Policy{next: next}
}

func (p *Policy) ListTasks(ctx context.Context) ([]service.Task, error) {
	return p.next.ListTasks(ctx)
}

func (p *Policy) GetTask(ctx context.Context, id int64) (service.Task, error) {
	return p.next.GetTask(ctx, id)
}

// CreateTask rejects a blank title. The title is forwarded as given.
func (p *Policy) CreateTask(ctx context.Context, title string) (service.Task, error) {
	if err := checkTitle(title); err != nil {
		return service.Task{}, err
	}
	return p.next.CreateTask(ctx, title)
}

// UpdateTask rejects a blank title.
func (p *Policy) UpdateTask(ctx context.Context, id int64, req service.UpdateTaskRequest) (service.Task, error) {
	if err := checkTitle(req.Title); err != nil {
		return service.Task{}, err
	}
	return p.next.UpdateTask(ctx, id, req)
}

func (p *Policy) DeleteTask(ctx context.Context, id int64) error {
	return p.next.DeleteTask(ctx, id)
}

func (p *Policy) MarkComplete(ctx context.Context, id int64) (service.Task, error) {
	return p.next.MarkComplete(ctx, id)
}

func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &service.ValidationError{Message: service.ErrTitleRequired}
	}
	return nil
}
