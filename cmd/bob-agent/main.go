// Package main is the entry point for the bob agent.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/bob-agent/cmd/bob-agent/commands"
	"go.trai.ch/bob-agent/internal/app"
	"go.trai.ch/bob-agent/internal/core/domain"
	_ "go.trai.ch/bob-agent/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	// Interrupts are routed to the job by the app, so the context is never cancelled here.
	ctx := context.Background()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		return 1
	}

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrJobFailed) || errors.Is(err, domain.ErrJobNotRun) {
			// The outcome was already reported on the console.
			return 1
		}
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
