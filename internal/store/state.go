// Package store holds the client-side task state and the transitions
// that are the only way to change it.
package store

import "taskctl/internal/service"

// State is a snapshot of the task container.
type State struct {
	// Tasks is in server order.
	Tasks []service.Task

	// Selected is the task open for detail/edit, or nil.
	Selected *service.Task

	Loading bool

	// Error is the last failure message; "" means none.
	Error string
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	out := s
	if s.Tasks != nil {
		out.Tasks = make([]service.Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	return out
}

// Find returns the task with id and whether it is present.
func (s State) Find(id int64) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
