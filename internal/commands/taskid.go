package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskctl/internal/exitcode"
)

// ErrTaskIDRequired indicates no task ID was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task ID from args.
// The ID must be the only argument and a positive integer.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task id: %s", ref)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", ref)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseTaskIDOrReport parses the ID and prints the error on failure.
// ok is false when the command should exit with exitcode.UserError.
func parseTaskIDOrReport(args []string, errOut io.Writer) (id int64, ok bool) {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, false
	}
	return id, true
}

// reportError prints err from a task operation and returns the exit code.
func reportError(errOut io.Writer, err error) int {
	return reportFailure(errOut, err, err.Error())
}

// reportFailure prints msg with the prefix for err's kind and returns the
// matching exit code. A nil err counts as a backend failure.
func reportFailure(errOut io.Writer, err error, msg string) int {
	code := exitcode.ForError(err)
	switch code {
	case exitcode.UserError:
		fmt.Fprintf(errOut, "error: %s\n", msg)
	case exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %s\n", msg)
	default:
		code = exitcode.BackendError
		fmt.Fprintf(errOut, "error: backend error: %s\n", msg)
	}
	return code
}

// confirm asks prompt on errOut and reads one answer line from in.
// Only "y" or "yes" (any case) confirms; EOF declines.
func confirm(in io.Reader, errOut io.Writer, prompt string) bool {
	fmt.Fprint(errOut, prompt)
	if in == nil {
		fmt.Fprintln(errOut)
		return false
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(errOut)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
