package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

type runnable interface {
	Start(context.Context) error
	Stop(context.Context) error
	Done() <-chan os.Signal
}

// run starts the service, blocks until ctx is cancelled or the app asks to
// shut down, and returns the process exit code.
func run(ctx context.Context, app runnable, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "courierdesk: start: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	// ctx may be cancelled by now; OnStop hooks apply SHUTDOWN_TIMEOUT.
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "courierdesk: stop: %v\n", err)
		return 1
	}
	return 0
}
