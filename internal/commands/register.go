package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/syncer"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd creates an account on the task server. Registration never
// creates a local session; a follow-up login does that.
type RegisterCmd struct {
	username string
	password string
}

// SetCredentials sets username and password (for testing).
func (c *RegisterCmd) SetCredentials(username, password string) {
	c.username = username
	c.password = password
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account on the task server" }
func (c *RegisterCmd) Usage() string     { return "taskwire register [--username <name>]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	username, password, code := readCredentials(c.username, c.password, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := syn.Backend().Register(ctx, username, password); err != nil {
		fmt.Fprintf(errOut, "error: registration failed: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
