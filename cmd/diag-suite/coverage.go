package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/diagcheck/internal/coverage"
	"github.com/farcloser/diagcheck/internal/integration/llvmcov"
)

var errCoverageArgs = errors.New("expected exactly one argument: instrumented binary")

func coverageCommand() *cli.Command {
	return &cli.Command{
		Name:      "coverage",
		Usage:     "Export coverage of an instrumented binary with llvm-cov and print its line coverage",
		ArgsUsage: "<binary>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "instr-profile",
				Usage:    "Merged profile data (.profdata) produced by llvm-profdata merge",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "llvm-cov",
				Usage: "llvm-cov executable to use (e.g., llvm-cov-15)",
				Value: "llvm-cov",
			},
			&cli.StringSliceFlag{
				Name:  "object",
				Usage: "Additional instrumented object covered by the same profile (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errCoverageArgs, cmd.NArg())
			}

			report, err := llvmcov.Export(ctx, llvmcov.Options{
				Tool:    cmd.String("llvm-cov"),
				Profile: cmd.String("instr-profile"),
				Binary:  cmd.Args().First(),
				Objects: cmd.StringSlice("object"),
			})
			if err != nil {
				return fmt.Errorf("exporting coverage: %w", err)
			}

			percent, err := coverage.Parse(bytes.NewReader(report))
			if err != nil {
				return fmt.Errorf("reading llvm-cov export: %w", err)
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, coverage.Format(percent))

			return err //nolint:wrapcheck
		},
	}
}
