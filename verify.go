//nolint:wrapcheck
package diagcheck

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/farcloser/primordium/fault"
)

/*
Usage:

result, err := diagcheck.Verify("run.log", "run.expected", diagcheck.DefaultOptions())
if err != nil {
    // unreadable fixture, or a duplicated expectation in strict mode
}

if !result.Passed() {
    _ = diagcheck.WriteReport(os.Stdout, result)
    os.Exit(diagcheck.ExitCode(result.Mismatches()))
}

// In-memory, without touching the filesystem
result := diagcheck.Compare(
    diagcheck.NewLineSet("PARCOACH:W1\n", "PARCOACH:W2\n"),
    diagcheck.NewLineSet("PARCOACH:W1\n", "PARCOACH:W3\n"),
)
// result.Missed == ["PARCOACH:W2\n"], result.Extra == ["PARCOACH:W3\n"]

*/

// ReadExpectations reads one expected diagnostic per line.
func ReadExpectations(reader io.Reader) (*Expectations, error) {
	exp := &Expectations{Lines: LineSet{}}

	err := readLines(reader, func(line string) {
		if !exp.Lines.Add(line) {
			exp.Duplicates = append(exp.Duplicates, line)
		}
	})
	if err != nil {
		return nil, err
	}

	return exp, nil
}

// ReadDetected reads captured tool output and keeps the lines starting with prefix.
// Anything else (compiler chatter, progress logs) is ignored.
func ReadDetected(reader io.Reader, prefix string) (LineSet, error) {
	detected := LineSet{}

	err := readLines(reader, func(line string) {
		if strings.HasPrefix(line, prefix) {
			detected.Add(line)
		}
	})
	if err != nil {
		return nil, err
	}

	return detected, nil
}

// LoadExpectations reads an expectation file.
func LoadExpectations(path string) (*Expectations, error) {
	file, err := os.Open(path) //nolint:gosec // expectation fixtures are user-specified
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	return ReadExpectations(file)
}

// LoadDetected reads the diagnostics of a captured output file.
func LoadDetected(path, prefix string) (LineSet, error) {
	file, err := os.Open(path) //nolint:gosec // captured outputs are user-specified
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	return ReadDetected(file, prefix)
}

// Compare computes what was expected but not detected, and what was detected but not expected.
func Compare(expectations, detected LineSet) Result {
	return Result{
		Missed: expectations.Difference(detected),
		Extra:  detected.Difference(expectations),
	}
}

// Verify loads both files and compares them.
func Verify(inputPath, expectationPath string, opts Options) (Result, error) {
	slog.Debug("diagcheck.Verify", "input", inputPath, "expectation", expectationPath)

	if opts.Prefix == "" {
		opts.Prefix = DiagnosticPrefix
	}

	exp, err := LoadExpectations(expectationPath)
	if err != nil {
		return Result{}, err
	}

	if opts.Strict && len(exp.Duplicates) > 0 {
		return Result{}, fmt.Errorf("%w in %s: %q", ErrDuplicateExpectation, expectationPath, exp.Duplicates)
	}

	detected, err := LoadDetected(inputPath, opts.Prefix)
	if err != nil {
		return Result{}, err
	}

	return Compare(exp.Lines, detected), nil
}
