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
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the stored session identity without touching the backend.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskwire whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	creds, err := syn.Store().Load()
	if err != nil || !creds.Valid() {
		fmt.Fprintln(errOut, "error: not logged in (run: taskwire login)")
		return exitcode.AuthError
	}

	fmt.Fprintf(out, "%s (%s)\n", creds.Username, creds.UserID)
	return exitcode.Success
}
