package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/syncer"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command. Creation failures are loud: the
// user risks silent data loss otherwise.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "taskwire add <text...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")

	if err := syn.Add(ctx, text); err != nil {
		switch {
		case errors.Is(err, syncer.ErrEmptyInput):
			fmt.Fprintln(errOut, "error: task text required")
			return exitcode.UserError
		case errors.Is(err, syncer.ErrMissingSession):
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		default:
			fmt.Fprintf(errOut, "error: task creation failed: %v\n", err)
			return exitcode.BackendError
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
