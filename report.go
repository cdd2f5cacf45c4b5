package diagcheck

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport prints a block per non-empty side of result: a header with the count, then every offending line.
// Lines are written verbatim and followed by a newline, so one already ending in "\n" leaves a blank line
// behind it. Nothing is written for a passing result.
func WriteReport(writer io.Writer, result Result) error {
	var out strings.Builder

	if len(result.Missed) > 0 {
		fmt.Fprintf(&out, "Some expectations (%d) were missed:\n", len(result.Missed))

		for _, line := range result.Missed {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	if len(result.Extra) > 0 {
		fmt.Fprintf(&out, "Some diagnostics (%d) were detected and unexpected:\n", len(result.Extra))

		for _, line := range result.Extra {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	if out.Len() == 0 {
		return nil
	}

	_, err := io.WriteString(writer, out.String())

	return err //nolint:wrapcheck
}
