package store

import (
	"fmt"

	"taskctl/internal/service"
)

// Transition is a named state change. The set is closed: only the
// types in this file implement it.
type Transition interface {
	// Name returns the transition tag, used in logs.
	Name() string

	transition()
}

// SetLoading replaces the loading flag.
type SetLoading struct{ Loading bool }

// SetError replaces the error message. An empty Message clears it.
type SetError struct{ Message string }

// SetTasks replaces the whole task collection.
type SetTasks struct{ Tasks []service.Task }

// AddTask appends a task.
type AddTask struct{ Task service.Task }

// UpdateTask replaces the task with the same ID, and the selected task
// if it has that ID.
type UpdateTask struct{ Task service.Task }

// DeleteTask removes the task with ID, and clears the selection if it
// was that task.
type DeleteTask struct{ ID int64 }

// SetSelectedTask replaces the selected task. nil clears it.
type SetSelectedTask struct{ Task *service.Task }

// ClearError clears the error message.
type ClearError struct{}

func (SetLoading) Name() string      { return "SetLoading" }
func (SetError) Name() string        { return "SetError" }
func (SetTasks) Name() string        { return "SetTasks" }
func (AddTask) Name() string         { return "AddTask" }
func (UpdateTask) Name() string      { return "UpdateTask" }
func (DeleteTask) Name() string      { return "DeleteTask" }
func (SetSelectedTask) Name() string { return "SetSelectedTask" }
func (ClearError) Name() string      { return "ClearError" }

func (SetLoading) transition()      {}
func (SetError) transition()        {}
func (SetTasks) transition()        {}
func (AddTask) transition()         {}
func (UpdateTask) transition()      {}
func (DeleteTask) transition()      {}
func (SetSelectedTask) transition() {}
func (ClearError) transition()      {}

// Reduce applies t to s and returns the new state. It never modifies s.
// A nil or unrecognised transition returns s unchanged.
func Reduce(s State, t Transition) State {
	switch t := t.(type) {
	case SetLoading:
		s.Loading = t.Loading
	case SetError:
		s.Error = t.Message
	case ClearError:
		s.Error = ""
	case SetTasks:
		s.Tasks = cloneTasks(t.Tasks)
		if s.Selected != nil {
			if fresh, ok := s.Find(s.Selected.ID); ok {
				s.Selected = &fresh
			} else {
				s.Selected = nil
			}
		}
	case AddTask:
		tasks := make([]service.Task, 0, len(s.Tasks)+1)
		replaced := false
		for _, existing := range s.Tasks {
			if existing.ID == t.Task.ID {
				existing = t.Task
				replaced = true
			}
			tasks = append(tasks, existing)
		}
		if !replaced {
			tasks = append(tasks, t.Task)
		}
		s.Tasks = tasks
	case UpdateTask:
		tasks := make([]service.Task, len(s.Tasks))
		for i, existing := range s.Tasks {
			if existing.ID == t.Task.ID {
				existing = t.Task
			}
			tasks[i] = existing
		}
		s.Tasks = tasks
		if s.Selected != nil && s.Selected.ID == t.Task.ID {
			updated := t.Task
			s.Selected = &updated
		}
	case DeleteTask:
		tasks := make([]service.Task, 0, len(s.Tasks))
		for _, existing := range s.Tasks {
			if existing.ID != t.ID {
				tasks = append(tasks, existing)
			}
		}
		s.Tasks = tasks
		if s.Selected != nil && s.Selected.ID == t.ID {
			s.Selected = nil
		}
	case SetSelectedTask:
		if t.Task == nil {
			s.Selected = nil
		} else {
			sel := *t.Task
			s.Selected = &sel
		}
	}
	return s
}

// describe renders a transition for debug logs without dumping task lists.
func describe(t Transition) string {
	switch t := t.(type) {
	case SetLoading:
		return fmt.Sprintf("%s(%t)", t.Name(), t.Loading)
	case SetError:
		return fmt.Sprintf("%s(%q)", t.Name(), t.Message)
	case SetTasks:
		return fmt.Sprintf("%s(%d tasks)", t.Name(), len(t.Tasks))
	case AddTask:
		return fmt.Sprintf("%s(%d)", t.Name(), t.Task.ID)
	case UpdateTask:
		return fmt.Sprintf("%s(%d)", t.Name(), t.Task.ID)
	case DeleteTask:
		return fmt.Sprintf("%s(%d)", t.Name(), t.ID)
	case SetSelectedTask:
		if t.Task == nil {
			return t.Name() + "(none)"
		}
		return fmt.Sprintf("%s(%d)", t.Name(), t.Task.ID)
	case nil:
		return "<nil>"
	default:
		return t.Name()
	}
}

func cloneTasks(tasks []service.Task) []service.Task {
	if tasks == nil {
		return []service.Task{}
	}
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out
}
