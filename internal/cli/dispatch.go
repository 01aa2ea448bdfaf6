// Package cli handles command-line parsing and dispatch.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskwire/internal/commands"
	"taskwire/internal/config"
	"taskwire/internal/exitcode"
	"taskwire/internal/logging"
	"taskwire/internal/service"
	"taskwire/internal/session"
	"taskwire/internal/syncer"
)

// BackendFactory creates a Backend from config.
// Used to inject the REST client, or a fake in tests.
type BackendFactory func(cfg *config.Config) (service.Backend, error)

// StoreFactory creates the credential store.
// nil means the file store under the config directory.
type StoreFactory func(cfg *config.Config) session.Store

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	backends BackendFactory
	stores   StoreFactory
}

// NewDispatcher creates a dispatcher with the given registry and factories.
func NewDispatcher(registry *commands.Registry, backends BackendFactory, stores StoreFactory) *Dispatcher {
	if stores == nil {
		stores = func(cfg *config.Config) session.Store {
			return session.NewFileStore(cfg.SessionPath())
		}
	}
	return &Dispatcher{
		registry: registry,
		backends: backends,
		stores:   stores,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" with no args
	cmdName := "list"
	if len(args) > 0 {
		cmdName = args[0]
		args = args[1:]
	}

	// Flags require a command first
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are reported below

	// Common flags
	var configDir string
	var serverURL string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&serverURL, "server", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(err, errOut)
	}

	// A leftover -flag means the flag package stopped at a positional
	// argument; treat it as unknown rather than passing it through.
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", strings.TrimLeft(positional[0], "-"))
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: errOut,
	}
	if debug {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	var syn *syncer.Syncer
	if d.backends != nil {
		backend, err := d.backends(cfg)
		if err != nil {
			// help and version must work even with a broken server URL
			if cmd.Name() != "help" && cmd.Name() != "version" {
				fmt.Fprintf(errOut, "error: %s\n", err)
				return exitcode.UserError
			}
		} else {
			syn = syncer.New(backend, d.stores(cfg), logging.WithComponent("syncer"))
		}
	}

	if cmd.NeedsAuth() {
		if syn == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.UserError
		}
		creds, err := syn.Store().Load()
		if err != nil || !creds.Valid() {
			fmt.Fprintln(errOut, "error: not logged in (run: taskwire login)")
			return exitcode.AuthError
		}
		// Populate the cache. A failed load is logged, not surfaced:
		// the command simply sees an empty cache.
		syn.Initialize(ctx)
	}

	return cmd.Run(ctx, cfg, syn, positional, out, errOut)
}

// reportFlagError maps flag package errors onto the CLI's error wording.
func reportFlagError(err error, errOut io.Writer) int {
	errStr := err.Error()

	if rest, ok := strings.CutPrefix(errStr, "flag needs an argument: "); ok {
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", strings.TrimLeft(rest, "-"))
		return exitcode.UserError
	}

	if flagName, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", strings.TrimLeft(flagName, "-"))
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
