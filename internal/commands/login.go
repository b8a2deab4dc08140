package commands

import (
	"bufio"
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
	Register(func() Command { return &LoginCmd{} })
}

// LoginCmd implements the login command.
type LoginCmd struct {
	force bool
}

// SetForce replaces an existing token (for testing).
func (c *LoginCmd) SetForce(v bool) {
	c.force = v
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store an API token" }
func (c *LoginCmd) Usage() string      { return "taskctl login [common flags] [--force] [<token>]" }
func (c *LoginCmd) NeedsBackend() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, ops *operations.Operations, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	// Only the stored file counts; a token from the environment is not a login.
	stored := &config.Credentials{}
	if cfg.HasCredentials() {
		creds, err := config.LoadCredentials(cfg.CredentialsPath())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
		stored = creds
	}

	if stored.HasToken() && len(args) == 0 && !c.force {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	var token string
	if len(args) == 1 {
		token = strings.TrimSpace(args[0])
	} else {
		token = readToken(cfg.Stdin, errOut)
	}
	if token == "" {
		fmt.Fprintln(errOut, "error: token required")
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	// The [oauth] section, if any, is kept.
	stored.API.Token = token
	if err := config.SaveCredentials(cfg.CredentialsPath(), stored); err != nil {
		fmt.Fprintf(errOut, "error: failed to save credentials: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// readToken prompts on errOut and reads one line from in.
func readToken(in io.Reader, errOut io.Writer) string {
	if in == nil {
		return ""
	}
	fmt.Fprint(errOut, "API token: ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}
