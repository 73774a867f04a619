// Package main is the entry point for the drift CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/drift/cmd/drift/commands"
	"go.trai.ch/drift/internal/app"
	_ "go.trai.ch/drift/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New(func(ctx context.Context) (*app.Components, error) {
		components, _, err := graft.ExecuteFor[*app.Components](ctx)
		return components, err
	})

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a report with stack trace and metadata under %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
