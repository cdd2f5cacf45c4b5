// Package output provides shared structured serialization for diagcheck results.
package output

import (
	"io"
	"strings"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/diagcheck"
	"github.com/farcloser/diagcheck/internal/coverage"
)

// ResultToMap converts a verification result into the canonical map structure
// used for structured output and JSONL records.
func ResultToMap(result diagcheck.Result) map[string]any {
	return map[string]any{
		"summary": map[string]any{
			"passed":     result.Passed(),
			"mismatches": result.Mismatches(),
			"missed":     len(result.Missed),
			"extra":      len(result.Extra),
		},
		"missed": displayLines(result.Missed),
		"extra":  displayLines(result.Extra),
	}
}

// CoverageToMap converts an extracted percentage into the structured output map.
func CoverageToMap(percent float64) map[string]any {
	return map[string]any{
		"lines_percent": percent,
		"summary":       coverage.Format(percent),
	}
}

// Print renders meta about object with the named primordium formatter (console, json, markdown).
//
//nolint:wrapcheck
func Print(writer io.Writer, formatName, object string, meta map[string]any) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: object,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, writer)
}

// displayLines drops the line terminator, which carries no information once lines are listed one per entry.
func displayLines(lines []string) []any {
	out := make([]any, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSuffix(line, "\n"))
	}

	return out
}
