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
	Register(func() Command { return &DoneCmd{} })
}

// DoneCmd implements the done command.
type DoneCmd struct {
	yes bool
}

// SetYes skips the confirmation prompt (for testing).
func (c *DoneCmd) SetYes(v bool) {
	c.yes = v
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskctl done [--yes] <id>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if !c.yes {
		task, err := ops.GetTask(ctx, id)
		if err != nil {
			return reportError(errOut, err)
		}
		if !confirm(cfg.Stdin, errOut, output.ConfirmPrompt("Complete", task)) {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	if _, err := ops.MarkComplete(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
