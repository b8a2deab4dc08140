// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskctl/internal/service"
)

// FormatTask formats a task line for the list.
// Format: "{ID:>4}  [x] {TITLE}\n" ("[ ]" for open tasks)
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  [%s] %s\n", task.ID, mark(task.Completed), normalizeTitle(task.Title))
}

// FormatTaskDetail formats a single task for the show command.
func FormatTaskDetail(w io.Writer, task service.Task) {
	completed := "no"
	if task.Completed {
		completed = "yes"
	}
	fmt.Fprintf(w, "id:         %d\n", task.ID)
	fmt.Fprintf(w, "title:      %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "completed:  %s\n", completed)
}

// ConfirmPrompt returns the question asked before a gated action.
func ConfirmPrompt(action string, task service.Task) string {
	return fmt.Sprintf("%s task %d (%s)? [y/N] ", action, task.ID, normalizeTitle(task.Title))
}

func mark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
