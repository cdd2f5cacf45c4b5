package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/diagcheck"
	"github.com/farcloser/diagcheck/internal/output"
	"github.com/farcloser/diagcheck/version"
)

var errInvalidArgCount = errors.New("expected exactly two arguments: input file and expectation file")

func newApp() *cli.Command {
	return &cli.Command{
		Name:      version.Name(),
		Usage:     "Check that the input file contains exactly the diagnostics listed in the expectation file",
		UsageText: version.Name() + " [options] <input> <expectation>",
		ArgsUsage: "<input> <expectation>",
		Version:   version.Version() + " " + version.Commit(),
		Description: "Only lines of <input> starting with " + diagcheck.DiagnosticPrefix + " are diagnostics. " +
			"<expectation> lists one expected diagnostic per line; each expectation must be unique. " +
			"The exit status is the number of missed plus unexpected diagnostics.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject expectation files listing the same diagnostic twice",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Structured output format instead of the plain report: console, json, markdown",
			},
		},
		// main owns the exit status.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			inputPath := cmd.Args().Get(0)
			expectationPath := cmd.Args().Get(1)

			opts := diagcheck.DefaultOptions()
			opts.Strict = cmd.Bool("strict")

			result, err := diagcheck.Verify(inputPath, expectationPath, opts)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err = writeResult(cmd, inputPath, result); err != nil {
				return err
			}

			if !result.Passed() {
				return &diagcheck.MismatchError{Result: result}
			}

			return nil
		},
	}
}

//nolint:wrapcheck
func writeResult(cmd *cli.Command, inputPath string, result diagcheck.Result) error {
	writer := cmd.Root().Writer

	if formatName := cmd.String("format"); formatName != "" {
		return output.Print(writer, formatName, inputPath, output.ResultToMap(result))
	}

	return diagcheck.WriteReport(writer, result)
}
