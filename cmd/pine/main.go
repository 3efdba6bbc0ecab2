// Package main provides the pine CLI tool.
//
// Usage:
//
//	pine <command> [args]
//
// Commands:
//
//	auth      - Authentication (login, status, logout)
//	voice     - Outbound AI voice calls
//	chat      - Interactive assistant chat (REPL)
//	send      - One-shot assistant message
//	sessions  - Session management
//	task      - Task lifecycle control
//	version   - Version information
//
// Credentials are stored in ~/.pine/config.json; run `pine auth login`
// before any authenticated command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pine-ai/pine-cli/cmd/pine/commands"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First interrupt cancels in-flight work; a second one forces exit.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nForce exiting...")
		os.Exit(130)
	}()

	if err := commands.Execute(ctx); err != nil {
		commands.ReportError(err)
		os.Exit(1)
	}
}
