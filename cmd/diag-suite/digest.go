package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/farcloser/primordium/fault"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/diagcheck"
)

var (
	errDigestArgs      = errors.New("expected exactly one argument: path to report.jsonl")
	errUnknownFixture  = errors.New("fixture not found in report")
	errMalformedRecord = errors.New("malformed report record")
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from a diag-suite JSONL report",
		ArgsUsage: "<report.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "fixture",
				Usage: "Show the full mismatch report of a single fixture",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of most frequent missed and unexpected diagnostics to list",
				Value: 10,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errDigestArgs
			}

			return runDigest(cmd.Root().Writer, cmd.Args().First(), cmd.String("fixture"), cmd.Int("top"))
		},
	}
}

func runDigest(writer io.Writer, reportPath, fixtureName string, top int) error {
	records, err := readRecords(reportPath)
	if err != nil {
		return err
	}

	if fixtureName != "" {
		return printFixtureDetail(writer, records, fixtureName)
	}

	printDigest(writer, records, top)

	return nil
}

func readRecords(reportPath string) ([]Record, error) {
	file, err := os.Open(reportPath) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return nil, fmt.Errorf("%w: opening report: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	var records []Record

	scanner := bufio.NewScanner(file)

	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		if len(strings.TrimSpace(scanner.Text())) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			records = append(records, Record{
				Fixture: fmt.Sprintf("line %d", lineNumber),
				Error:   fmt.Sprintf("%v: %v", errMalformedRecord, err),
			})

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading report: %w", fault.ErrReadFailure, err)
	}

	return records, nil
}

func printDigest(writer io.Writer, records []Record, top int) {
	passed, failed, errored := 0, 0, 0
	missed := map[string]int{}
	extra := map[string]int{}

	for idx := range records {
		record := &records[idx]

		switch record.status() {
		case statusPass:
			passed++
		case statusError:
			errored++
		default:
			failed++
		}

		for _, line := range record.Missed {
			missed[line]++
		}

		for _, line := range record.Extra {
			extra[line]++
		}
	}

	fmt.Fprintln(writer, "=== diagcheck Suite Digest ===")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "Total fixtures:  %d\n", len(records))
	fmt.Fprintf(writer, "Passed:          %d\n", passed)
	fmt.Fprintf(writer, "Failed:          %d\n", failed)
	fmt.Fprintf(writer, "Errored:         %d\n", errored)

	printRanking(writer, "Most Missed", missed, top)
	printRanking(writer, "Most Unexpected", extra, top)
}

func printRanking(writer io.Writer, title string, counts map[string]int, top int) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "--- %s ---\n", title)

	for _, entry := range rank(counts, top) {
		fmt.Fprintf(writer, "  %3d  %s\n", entry.Count, strings.TrimSuffix(entry.Line, "\n"))
	}
}

// rank orders lines by decreasing count, then lexicographically, keeping at most top entries.
func rank(counts map[string]int, top int) []lineCount {
	entries := make([]lineCount, 0, len(counts))
	for line, count := range counts {
		entries = append(entries, lineCount{Line: line, Count: count})
	}

	slices.SortFunc(entries, func(a, b lineCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		return strings.Compare(a.Line, b.Line)
	})

	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}

	return entries
}

func printFixtureDetail(writer io.Writer, records []Record, fixtureName string) error {
	for idx := range records {
		record := &records[idx]
		if record.Fixture != fixtureName {
			continue
		}

		fmt.Fprintf(writer, "=== %s: %s ===\n", record.Fixture, record.status())

		if record.Input != "" {
			fmt.Fprintf(writer, "  input:        %s\n", record.Input)
		}

		if record.Expectation != "" {
			fmt.Fprintf(writer, "  expectation:  %s\n", record.Expectation)
		}

		if record.Error != "" {
			fmt.Fprintf(writer, "  error:        %s\n", record.Error)
		}

		fmt.Fprintln(writer)

		return diagcheck.WriteReport(writer, record.result()) //nolint:wrapcheck
	}

	return fmt.Errorf("%q: %w", fixtureName, errUnknownFixture)
}
