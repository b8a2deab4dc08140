package restapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"taskctl/internal/service"
)

const stateError = "error"

// envelope is the wrapper around every response body.
// Servers send the state as "estado"; "status" is accepted when it is absent.
type envelope struct {
	Estado  *string         `json:"estado"`
	Status  *string         `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// wireTask keeps every field optional so missing ones can be reported.
type wireTask struct {
	ID        *json.RawMessage `json:"id"`
	Title     *string          `json:"title"`
	Completed *bool            `json:"completed"`
}

func decodeEnvelope(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &service.ProtocolError{Expected: "response envelope", Err: err}
	}

	var state string
	switch {
	case env.Estado != nil:
		state = *env.Estado
	case env.Status != nil:
		state = *env.Status
	}

	// Only "error" rejects; any other state, or none, is judged by the
	// shape of data.
	if state == stateError {
		return nil, &service.ApplicationError{Message: env.Message}
	}
	return env.Data, nil
}

func decodeTask(data json.RawMessage) (service.Task, error) {
	task, err := parseTask(data)
	if err != nil {
		return service.Task{}, &service.ProtocolError{Expected: "Task", Err: err}
	}
	return task, nil
}

func decodeTasks(data json.RawMessage) ([]service.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &service.ProtocolError{Expected: "Task array", Err: errors.New("not an array")}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &service.ProtocolError{Expected: "Task array", Err: err}
	}

	tasks := make([]service.Task, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for i, item := range items {
		task, err := parseTask(item)
		if err != nil {
			return nil, &service.ProtocolError{Expected: "Task array", Err: fmt.Errorf("item %d: %w", i, err)}
		}
		if seen[task.ID] {
			return nil, &service.ProtocolError{Expected: "Task array", Err: fmt.Errorf("duplicate id %d", task.ID)}
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func parseTask(data json.RawMessage) (service.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return service.Task{}, errors.New("not an object")
	}

	var w wireTask
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return service.Task{}, err
	}

	switch {
	case w.ID == nil:
		return service.Task{}, errors.New(`missing field "id"`)
	case w.Title == nil:
		return service.Task{}, errors.New(`missing field "title"`)
	case w.Completed == nil:
		return service.Task{}, errors.New(`missing field "completed"`)
	}

	id, err := strconv.ParseInt(string(*w.ID), 10, 64)
	if err != nil {
		return service.Task{}, fmt.Errorf(`field "id" is not an integer: %s`, *w.ID)
	}

	return service.Task{ID: id, Title: *w.Title, Completed: *w.Completed}, nil
}
