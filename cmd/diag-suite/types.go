//nolint:tagliatelle
package main

import (
	"fmt"

	"github.com/farcloser/diagcheck"
)

// Record is a single line in the JSONL report file.
type Record struct {
	Fixture     string        `json:"fixture"`
	Input       string        `json:"input,omitempty"`
	Expectation string        `json:"expectation,omitempty"`
	Missed      []string      `json:"missed,omitempty"`
	Extra       []string      `json:"extra,omitempty"`
	Error       string        `json:"error,omitempty"`
	Timing      *RecordTiming `json:"timing,omitempty"`
}

// RecordTiming captures per-fixture durations in milliseconds.
type RecordTiming struct {
	VerifyMs float64 `json:"verify_ms"`
}

func (r *Record) result() diagcheck.Result {
	return diagcheck.Result{Missed: r.Missed, Extra: r.Extra}
}

func (r *Record) status() string {
	switch {
	case r.Error != "":
		return statusError
	case r.result().Passed():
		return statusPass
	default:
		return statusFail
	}
}

const (
	statusPass  = "PASS"
	statusFail  = "FAIL"
	statusError = "ERROR"
)

// fixture pairs an expectation file with the captured output it grades.
type fixture struct {
	Name        string
	Input       string
	Expectation string
}

// suiteError reports the number of fixtures that did not pass. It satisfies urfave/cli's ExitCoder.
type suiteError struct {
	failed int
}

func (e *suiteError) Error() string {
	return fmt.Sprintf("%d fixtures did not pass", e.failed)
}

func (e *suiteError) ExitCode() int {
	return diagcheck.ExitCode(e.failed)
}

// lineCount tracks how many fixtures share a given diagnostic, for the digest.
type lineCount struct {
	Line  string
	Count int
}
