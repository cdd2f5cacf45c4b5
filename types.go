package diagcheck

import (
	"errors"
	"fmt"
	"slices"
)

// DiagnosticPrefix marks the lines of a captured run that are analyzer diagnostics.
const DiagnosticPrefix = "PARCOACH"

// MaxExitCode is the largest mismatch count reported through a process exit status.
// Counts are clamped so that a multiple of 256 never reads as success.
const MaxExitCode = 255

// ErrDuplicateExpectation is returned in strict mode when an expectation file lists the same line twice.
var ErrDuplicateExpectation = errors.New("duplicate expectation")

// ErrInvalidEncoding is returned when an expectation file or a captured output is not valid UTF-8.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// LineSet is a set of diagnostic lines. A line's identity is its full content, trailing newline included.
type LineSet map[string]struct{}

// NewLineSet returns a set holding the given lines.
func NewLineSet(lines ...string) LineSet {
	set := make(LineSet, len(lines))
	for _, line := range lines {
		set.Add(line)
	}

	return set
}

// Add inserts line and reports whether it was not already present.
func (s LineSet) Add(line string) bool {
	if _, ok := s[line]; ok {
		return false
	}

	s[line] = struct{}{}

	return true
}

// Has reports whether line is in the set.
func (s LineSet) Has(line string) bool {
	_, ok := s[line]

	return ok
}

// Difference returns the lines of s absent from other, sorted.
func (s LineSet) Difference(other LineSet) []string {
	var out []string

	for line := range s {
		if !other.Has(line) {
			out = append(out, line)
		}
	}

	slices.Sort(out)

	return out
}

// Sorted returns the content of the set in lexicographic order.
func (s LineSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for line := range s {
		out = append(out, line)
	}

	slices.Sort(out)

	return out
}

// Expectations is the content of an expectation file.
type Expectations struct {
	Lines LineSet
	// Duplicates lists every line seen more than once, in order of its second occurrence.
	Duplicates []string
}

// Options configures a verification.
type Options struct {
	// Prefix selects the diagnostic lines of the captured output (default: DiagnosticPrefix).
	Prefix string
	// Strict turns duplicated expectations into ErrDuplicateExpectation instead of collapsing them.
	Strict bool
}

// DefaultOptions matches PARCOACH diagnostics and tolerates duplicated expectations.
func DefaultOptions() Options {
	return Options{
		Prefix: DiagnosticPrefix,
	}
}

// Result is the symmetric difference between expected and detected diagnostics.
type Result struct {
	// Missed are expected diagnostics that were not produced.
	Missed []string
	// Extra are produced diagnostics that were not expected.
	Extra []string
}

// Mismatches is the number of offending lines.
func (r Result) Mismatches() int {
	return len(r.Missed) + len(r.Extra)
}

// Passed reports an exact match between both sets.
func (r Result) Passed() bool {
	return r.Mismatches() == 0
}

// ExitCode converts a mismatch count into a process exit status.
func ExitCode(mismatches int) int {
	return min(max(mismatches, 0), MaxExitCode)
}

// MismatchError carries a failed verification up to the caller deciding the exit status.
// It satisfies urfave/cli's ExitCoder.
type MismatchError struct {
	Result Result
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d expectations missed, %d diagnostics unexpected", len(e.Result.Missed), len(e.Result.Extra))
}

// ExitCode is the clamped mismatch count.
func (e *MismatchError) ExitCode() int {
	return ExitCode(e.Result.Mismatches())
}
