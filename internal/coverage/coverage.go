package coverage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/farcloser/primordium/fault"
)

// ErrMissingField is returned when the report lacks the data[0].totals.lines.percent path.
var ErrMissingField = errors.New("coverage report is missing a field")

// object is one level of the report. Keys are looked up verbatim: encoding/json would otherwise match
// struct tags case-insensitively and accept a report spelling the path differently.
type object map[string]json.RawMessage

func decodeObject(raw json.RawMessage, path string) (object, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fault.ErrInvalidJSON, path, err)
	}

	return obj, nil
}

func (o object) field(key, path string) (json.RawMessage, error) {
	raw, ok := o[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, path)
	}

	return raw, nil
}

// Percent returns data[0].totals.lines.percent of a raw llvm-cov export.
// Only the first entry of data is ever looked at, even when the export carries several.
func Percent(report []byte) (float64, error) {
	root, err := decodeObject(report, "report")
	if err != nil {
		return 0, err
	}

	rawData, err := root.field("data", "data")
	if err != nil {
		return 0, err
	}

	var exports []json.RawMessage
	if err = json.Unmarshal(rawData, &exports); err != nil {
		return 0, fmt.Errorf("%w: data: %w", fault.ErrInvalidJSON, err)
	}

	if len(exports) == 0 {
		return 0, fmt.Errorf("%w: data[0]", ErrMissingField)
	}

	export, err := decodeObject(exports[0], "data[0]")
	if err != nil {
		return 0, err
	}

	rawTotals, err := export.field("totals", "data[0].totals")
	if err != nil {
		return 0, err
	}

	totals, err := decodeObject(rawTotals, "data[0].totals")
	if err != nil {
		return 0, err
	}

	rawLines, err := totals.field("lines", "data[0].totals.lines")
	if err != nil {
		return 0, err
	}

	lines, err := decodeObject(rawLines, "data[0].totals.lines")
	if err != nil {
		return 0, err
	}

	rawPercent, err := lines.field("percent", "data[0].totals.lines.percent")
	if err != nil {
		return 0, err
	}

	var percent *float64
	if err = json.Unmarshal(rawPercent, &percent); err != nil {
		return 0, fmt.Errorf("%w: data[0].totals.lines.percent: %w", fault.ErrInvalidJSON, err)
	}

	if percent == nil {
		return 0, fmt.Errorf("%w: data[0].totals.lines.percent", ErrMissingField)
	}

	return *percent, nil
}

// Parse decodes a report and returns its line coverage percentage.
func Parse(reader io.Reader) (float64, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return Percent(data)
}

// Load reads the report at path and returns its line coverage percentage.
func Load(path string) (float64, error) {
	file, err := os.Open(path) //nolint:gosec // coverage reports are user-specified
	if err != nil {
		return 0, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	return Parse(file)
}

// Format renders the percentage the way the test suite logs it.
func Format(percent float64) string {
	return fmt.Sprintf("Coverage: %.2f%%", percent)
}
