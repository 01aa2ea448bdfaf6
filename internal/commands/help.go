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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskwire help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, syn *syncer.Syncer, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskwire                                           List all tasks
  taskwire list [common flags] [--filter all|done|todo] [--search <term>]
  taskwire add [common flags] <text...>
  taskwire rm [common flags] <n>
  taskwire done [common flags] <n>
  taskwire undo [common flags] <n>
  taskwire register [common flags] [--username <name>]
  taskwire login [common flags] [--username <name>]
  taskwire logout [common flags]
  taskwire whoami [common flags]
  taskwire help
  taskwire version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override task server base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
