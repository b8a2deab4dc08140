package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/operations"
)

func init() {
	Register(func() Command { return &AddCmd{} })
	Register(func() Command { return &CreateCmd{} })
}

// AddCmd implements the add command.
type AddCmd struct {
	printID bool
}

// SetPrintID sets the --print-id flag (for testing).
func (c *AddCmd) SetPrintID(v bool) {
	c.printID = v
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return nil }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskctl add [--print-id] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.printID, "print-id", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, ops, c.printID, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	printID bool
}

func (c *CreateCmd) Name() string       { return "create" }
func (c *CreateCmd) Aliases() []string  { return nil }
func (c *CreateCmd) Synopsis() string   { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string      { return "taskctl create [--print-id] <title...>" }
func (c *CreateCmd) NeedsBackend() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.printID, "print-id", false, "")
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, ops, c.printID, args, out, errOut)
}

// runAdd is the shared implementation for add and create commands.
// A whitespace-only title is passed through so the policy rejects it.
func runAdd(ctx context.Context, cfg *config.Config, ops *operations.Operations, printID bool, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	task, err := ops.CreateTask(ctx, strings.Join(args, " "))
	if err != nil {
		return reportError(errOut, err)
	}

	if printID {
		fmt.Fprintln(out, task.ID)
		return exitcode.Success
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
