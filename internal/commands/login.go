package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/session"
	"taskwire/internal/syncer"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: the register/login boundary of
// the client. A failed login never creates a session.
type LoginCmd struct {
	username string
	password string
}

// SetCredentials sets username and password (for testing).
func (c *LoginCmd) SetCredentials(username, password string) {
	c.username = username
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with the task server" }
func (c *LoginCmd) Usage() string     { return "taskwire login [--username <name>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	store := syn.Store()

	// Already logged in with a live token: nothing to do.
	if creds, err := store.Load(); err == nil && creds.Valid() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	username, password, code := readCredentials(c.username, c.password, errOut)
	if code != exitcode.Success {
		return code
	}

	result, err := syn.Backend().Login(ctx, username, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: login failed: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := store.Save(session.New(result.Token, result.UserID, username)); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// readCredentials fills in missing credentials interactively.
func readCredentials(username, password string, errOut io.Writer) (string, string, int) {
	var err error
	if username == "" {
		username, err = promptLine(errOut, "username")
		if err != nil || username == "" {
			fmt.Fprintln(errOut, "error: username required")
			return "", "", exitcode.UserError
		}
	}
	if password == "" {
		password, err = promptPassword(errOut)
		if err != nil || password == "" {
			fmt.Fprintln(errOut, "error: password required")
			return "", "", exitcode.UserError
		}
	}
	return username, password, exitcode.Success
}
