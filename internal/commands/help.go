package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/operations"
)

func init() {
	Register(func() Command { return &HelpCmd{} })
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskctl help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskctl                                            List all tasks
  taskctl list [common flags] [--open]               List tasks, optionally only open ones
  taskctl show [common flags] <id>
  taskctl add [common flags] [--print-id] <title...>
  taskctl create [common flags] [--print-id] <title...>
  taskctl edit [common flags] [--title <title>] [--done | --open] <id>
  taskctl done [common flags] [--yes] <id>
  taskctl rm [common flags] [--yes] <id>
  taskctl login [common flags] [<token>]
  taskctl logout [common flags]
  taskctl help
  taskctl version

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the API base URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
