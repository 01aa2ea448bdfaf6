package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/output"
	"taskwire/internal/syncer"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskwire` (no args) and `taskwire list`.
type ListCmd struct {
	filter string
	search string
}

// SetFilter sets the status filter (for testing).
func (c *ListCmd) SetFilter(f string) { c.filter = f }

// SetSearch sets the search term (for testing).
func (c *ListCmd) SetSearch(s string) { c.search = s }

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskwire list [--filter all|done|todo] [--search <term>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	status, err := syncer.ParseStatusFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	syn.SetStatusFilter(status)
	syn.SetSearchTerm(c.search)

	// Numbers index the full cache, not the filtered view, so that
	// `rm` and `done` references keep working while a filter is active.
	position := make(map[string]int)
	for i, t := range syn.Tasks() {
		position[t.ID] = i + 1
	}

	visible := syn.Visible()
	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, t := range visible {
		output.FormatTask(out, position[t.ID], t)
	}
	return exitcode.Success
}
