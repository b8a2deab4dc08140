// Package exitcode defines exit codes for the CLI.
package exitcode

import "taskctl/internal/service"

// Exit codes returned by every command.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid input).
	UserError = 1

	// AuthError indicates rejected or unreadable credentials.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// ForError maps an error from the task operations to an exit code.
func ForError(err error) int {
	switch {
	case err == nil:
		return Success
	case service.IsValidation(err):
		return UserError
	case service.IsAuth(err):
		return AuthError
	default:
		return BackendError
	}
}
