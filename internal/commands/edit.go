package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/operations"
	"taskctl/internal/service"
)

func init() {
	Register(func() Command { return &EditCmd{} })
}

// optionalString is a flag.Value that records whether it was set,
// so an explicit empty value can be told apart from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func (s *optionalString) String() string { return s.value }

func (s *optionalString) Set(v string) error {
	s.value = v
	s.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title optionalString
	done  bool
	open  bool
}

// SetTitle sets the --title flag (for testing).
func (c *EditCmd) SetTitle(title string) {
	_ = c.title.Set(title)
}

// SetDone sets the --done flag (for testing).
func (c *EditCmd) SetDone(v bool) {
	c.done = v
}

// SetOpen sets the --open flag (for testing).
func (c *EditCmd) SetOpen(v bool) {
	c.open = v
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Change a task's title or status" }
func (c *EditCmd) Usage() string      { return "taskctl edit [--title <title>] [--done | --open] <id>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if c.done && c.open {
		fmt.Fprintln(errOut, "error: cannot use both --done and --open")
		return exitcode.UserError
	}
	if !c.title.set && !c.done && !c.open {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	// The API replaces both fields, so start from the current task.
	task, err := ops.GetTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	req := service.UpdateTaskRequest{Title: task.Title, Completed: task.Completed}
	if c.title.set {
		req.Title = c.title.value
	}
	if c.done {
		req.Completed = true
	}
	if c.open {
		req.Completed = false
	}

	if _, err := ops.UpdateTask(ctx, id, req); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
