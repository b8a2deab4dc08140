package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/operations"
	"taskctl/internal/output"
)

func init() {
	Register(func() Command { return &ListCmd{} })
}

// ListCmd implements the list command.
// Handles both `taskctl` (no args) and `taskctl list`.
type ListCmd struct {
	open bool
}

// SetOpen hides completed tasks (for testing).
func (c *ListCmd) SetOpen(v bool) {
	c.open = v
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return nil }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskctl list [--open]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// LoadTasks records failures in the store instead of returning them.
	ops.LoadTasks(ctx)
	state := ops.Store().Snapshot()
	if state.Error != "" {
		return reportFailure(errOut, ops.LastError(), state.Error)
	}

	printed := 0
	for _, task := range state.Tasks {
		if c.open && task.Completed {
			continue
		}
		output.FormatTask(out, task)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
