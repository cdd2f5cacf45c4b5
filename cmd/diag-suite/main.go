package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/diagcheck/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Verify, digest and measure PARCOACH test-suite fixtures",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			runCommand(),
			digestCommand(),
			coverageCommand(),
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
