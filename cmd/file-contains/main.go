package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx := context.Background()

	if err := newApp().Run(ctx, os.Args); err != nil {
		// A mismatch has already been reported on stdout: the count is the exit status.
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
