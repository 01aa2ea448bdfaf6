// Package main is the entry point for the taskwire CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskwire/internal/backend/rest"
	"taskwire/internal/cli"
	"taskwire/internal/commands"
	"taskwire/internal/config"
	"taskwire/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	backends := func(cfg *config.Config) (service.Backend, error) {
		return rest.New(cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backends, nil)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
