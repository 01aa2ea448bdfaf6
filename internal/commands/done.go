package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/syncer"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd marks a task completed. Completion toggles are the quiet
// failure channel: a failed update is logged, the cache stays unchanged,
// and the next listing shows the real state.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"check"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskwire done <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	return runSetCompletion(ctx, cfg, syn, args, true, out, errOut)
}

// UndoCmd reopens a completed task.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"uncheck"} }
func (c *UndoCmd) Synopsis() string  { return "Reopen a completed task" }
func (c *UndoCmd) Usage() string     { return "taskwire undo <n>" }
func (c *UndoCmd) NeedsAuth() bool   { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	return runSetCompletion(ctx, cfg, syn, args, false, out, errOut)
}

// runSetCompletion is the shared implementation for done and undo.
// Only the task reference itself can fail the command; the backend
// update is fire-and-confirm with quiet failure.
func runSetCompletion(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, completed bool, out, errOut io.Writer) int {
	num, err := parseTaskNum(args)
	if err != nil {
		if errors.Is(err, ErrTaskNumRequired) {
			fmt.Fprintln(errOut, "error: task number required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	task, err := resolveTask(syn, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	syn.SetCompletion(ctx, task.ID, completed)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
