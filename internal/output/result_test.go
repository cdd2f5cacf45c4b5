package output_test

import (
	"testing"

	"github.com/farcloser/diagcheck"
	"github.com/farcloser/diagcheck/internal/output"
)

func TestResultToMap(t *testing.T) {
	t.Parallel()

	meta := output.ResultToMap(diagcheck.Result{
		Missed: []string{"PARCOACH:W2\n"},
		Extra:  []string{"PARCOACH:W3\n", "PARCOACH:W4"},
	})

	summary, ok := meta["summary"].(map[string]any)
	if !ok {
		t.Fatalf("summary has unexpected type %T", meta["summary"])
	}

	if summary["passed"] != false || summary["mismatches"] != 3 || summary["missed"] != 1 || summary["extra"] != 2 {
		t.Fatalf("unexpected summary: %v", summary)
	}

	extra, ok := meta["extra"].([]any)
	if !ok || len(extra) != 2 || extra[0] != "PARCOACH:W3" || extra[1] != "PARCOACH:W4" {
		t.Fatalf("unexpected extra lines: %v", meta["extra"])
	}
}

func TestCoverageToMap(t *testing.T) {
	t.Parallel()

	meta := output.CoverageToMap(87.5)

	if meta["summary"] != "Coverage: 87.50%" {
		t.Fatalf("unexpected summary: %v", meta["summary"])
	}

	if meta["lines_percent"] != 87.5 {
		t.Fatalf("unexpected percent: %v", meta["lines_percent"])
	}
}
