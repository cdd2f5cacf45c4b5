//nolint:wrapcheck
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/diagcheck"
)

const (
	defaultPattern   = "**/*.expected"
	defaultOutputExt = ".out"
)

var (
	errRunArgs      = errors.New("expected exactly one argument: fixture folder")
	errNotDirectory = errors.New("not a directory")
	errNoFixtures   = errors.New("no expectation files found")
)

type suiteOptions struct {
	Pattern   string
	OutputExt string
	Report    string
	Workers   int
	Verify    diagcheck.Options
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Verify every expectation file of a folder against the captured output next to it",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Glob selecting expectation files, relative to the folder (supports **)",
				Value:   defaultPattern,
			},
			&cli.StringFlag{
				Name:  "output-ext",
				Usage: "Extension of the captured output replacing the expectation file extension",
				Value: defaultOutputExt,
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "Write a JSONL report of every fixture to this path",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Reject expectation files listing the same diagnostic twice",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers",
				Value:   runtime.NumCPU(),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errRunArgs, cmd.NArg())
			}

			verifyOpts := diagcheck.DefaultOptions()
			verifyOpts.Strict = cmd.Bool("strict")

			opts := suiteOptions{
				Pattern:   cmd.String("pattern"),
				OutputExt: cmd.String("output-ext"),
				Report:    cmd.String("report"),
				Workers:   max(cmd.Int("workers"), 1),
				Verify:    verifyOpts,
			}

			return runSuite(ctx, cmd.Root().Writer, cmd.Root().ErrWriter, cmd.Args().First(), opts)
		},
	}
}

func runSuite(ctx context.Context, stdout, stderr io.Writer, folder string, opts suiteOptions) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", folder, errNotDirectory)
	}

	fixtures, err := collectFixtures(folder, opts.Pattern, opts.OutputExt)
	if err != nil {
		return fmt.Errorf("scanning folder: %w", err)
	}

	if len(fixtures) == 0 {
		return fmt.Errorf("%q (%s): %w", folder, opts.Pattern, errNoFixtures)
	}

	fmt.Fprintf(stderr, "Found %d fixtures to verify (%d workers)\n", len(fixtures), opts.Workers)

	records := make([]Record, len(fixtures))

	var progress atomic.Int64

	sem := make(chan struct{}, opts.Workers)

	var waitGroup sync.WaitGroup

	for idx, fix := range fixtures {
		waitGroup.Add(1)

		go func(idx int, fix fixture) {
			defer waitGroup.Done()

			sem <- struct{}{}

			defer func() { <-sem }()

			if ctx.Err() != nil {
				records[idx] = Record{Fixture: fix.Name, Input: fix.Input, Expectation: fix.Expectation, Error: ctx.Err().Error()}

				return
			}

			records[idx] = verifyFixture(fix, opts.Verify)

			done := progress.Add(1)
			fmt.Fprintf(stderr, "[%d/%d] %s\n", done, len(fixtures), fix.Name)
		}(idx, fix)
	}

	waitGroup.Wait()

	if err = printRecords(stdout, records); err != nil {
		return err
	}

	if opts.Report != "" {
		if err = writeRecords(opts.Report, records); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		fmt.Fprintf(stderr, "Report written to %s\n", opts.Report)
	}

	notPassed := 0

	for idx := range records {
		if records[idx].status() != statusPass {
			notPassed++
		}
	}

	if notPassed > 0 {
		return &suiteError{failed: notPassed}
	}

	return nil
}

func verifyFixture(fix fixture, opts diagcheck.Options) Record {
	start := time.Now()

	record := Record{
		Fixture:     fix.Name,
		Input:       fix.Input,
		Expectation: fix.Expectation,
	}

	result, err := diagcheck.Verify(fix.Input, fix.Expectation, opts)

	record.Timing = &RecordTiming{VerifyMs: durationMs(time.Since(start))}

	if err != nil {
		record.Error = err.Error()

		return record
	}

	record.Missed = result.Missed
	record.Extra = result.Extra

	return record
}

// collectFixtures resolves pattern below root and pairs every match with its captured output:
// "mpi/barrier.expected" is graded against "mpi/barrier<outputExt>".
func collectFixtures(root, pattern, outputExt string) ([]fixture, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", pattern, err)
	}

	fixtures := make([]fixture, 0, len(matches))

	for _, match := range matches {
		expectation := filepath.Join(root, filepath.FromSlash(match))

		info, err := os.Stat(expectation)
		if err != nil || info.IsDir() {
			continue
		}

		name := strings.TrimSuffix(match, path.Ext(match))

		fixtures = append(fixtures, fixture{
			Name:        name,
			Expectation: expectation,
			Input:       filepath.Join(root, filepath.FromSlash(name)+outputExt),
		})
	}

	slices.SortFunc(fixtures, func(a, b fixture) int {
		return strings.Compare(a.Name, b.Name)
	})

	return fixtures, nil
}

func printRecords(writer io.Writer, records []Record) error {
	passed, failed, errored := 0, 0, 0

	for idx := range records {
		record := &records[idx]

		switch record.status() {
		case statusPass:
			passed++

			fmt.Fprintf(writer, "%s %s\n", statusPass, record.Fixture)
		case statusError:
			errored++

			fmt.Fprintf(writer, "%s %s: %s\n", statusError, record.Fixture, record.Error)
		default:
			failed++

			fmt.Fprintf(writer, "%s %s (missed: %d, extra: %d)\n",
				statusFail, record.Fixture, len(record.Missed), len(record.Extra))

			if err := diagcheck.WriteReport(writer, record.result()); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(writer, "\n%d fixtures: %d passed, %d failed, %d errored\n",
		len(records), passed, failed, errored)

	return err
}

func writeRecords(reportPath string, records []Record) error {
	out, err := os.Create(reportPath) //nolint:gosec // report path is user-specified
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)

	for idx := range records {
		if err := enc.Encode(&records[idx]); err != nil {
			return fmt.Errorf("fixture %s: %w", records[idx].Fixture, err)
		}
	}

	return out.Close()
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
