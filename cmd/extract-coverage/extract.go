//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/diagcheck/internal/coverage"
	"github.com/farcloser/diagcheck/internal/output"
	"github.com/farcloser/diagcheck/version"
)

var errInvalidArgCount = errors.New("expected exactly one argument: path to the llvm-cov json export")

func newApp() *cli.Command {
	return &cli.Command{
		Name:      version.Name(),
		Usage:     "Extract the coverage percentage from a json file emitted by llvm-cov",
		ArgsUsage: "<filename>",
		Version:   version.Version() + " " + version.Commit(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Structured output format instead of the coverage line: console, json, markdown",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			filename := cmd.Args().First()

			percent, err := coverage.Load(filename)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}

			writer := cmd.Root().Writer

			if formatName := cmd.String("format"); formatName != "" {
				return output.Print(writer, formatName, filename, output.CoverageToMap(percent))
			}

			_, err = fmt.Fprintln(writer, coverage.Format(percent))

			return err
		},
	}
}
