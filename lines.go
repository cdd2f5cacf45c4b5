package diagcheck

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/farcloser/primordium/fault"
)

// readLines splits the content of reader the way a text-mode file is iterated: "\n", "\r\n" and a lone "\r"
// all end a line and are presented as "\n". A final fragment without terminator is kept verbatim.
// Every line is handed to visit in order. Content that is not valid UTF-8 is rejected as a whole.
func readLines(reader io.Reader, visit func(line string)) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	if !utf8.Valid(data) {
		return fmt.Errorf("%w: %w", fault.ErrReadFailure, ErrInvalidEncoding)
	}

	start := 0

	for idx := 0; idx < len(data); idx++ {
		switch data[idx] {
		case '\n':
			visit(string(data[start:idx]) + "\n")
			start = idx + 1
		case '\r':
			visit(string(data[start:idx]) + "\n")

			if idx+1 < len(data) && data[idx+1] == '\n' {
				idx++
			}

			start = idx + 1
		}
	}

	if start < len(data) {
		visit(string(data[start:]))
	}

	return nil
}
