package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/session"
	"taskwire/internal/syncer"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd removes the stored session. No network call is made; the
// server-side token simply ages out.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove the stored session" }
func (c *LogoutCmd) Usage() string     { return "taskwire logout" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	if _, err := syn.Store().Load(); errors.Is(err, session.ErrNotLoggedIn) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := syn.Logout(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
