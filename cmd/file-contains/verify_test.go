package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/diagcheck"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	app := newApp()
	app.Writer = &buf

	err := app.Run(context.Background(), append([]string{"file-contains"}, args...))

	return buf.String(), err
}

func TestMismatchIsReportedWithCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	expectation := writeFixture(t, dir, "case.expected", "PARCOACH:W1\nPARCOACH:W2\n")
	input := writeFixture(t, dir, "case.out", "compiling...\nPARCOACH:W1\nPARCOACH:W3\n")

	stdout, err := run(t, input, expectation)

	var mismatch *diagcheck.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a mismatch error, got %v", err)
	}

	if mismatch.ExitCode() != 2 {
		t.Fatalf("expected exit code 2, got %d", mismatch.ExitCode())
	}

	expected := "Some expectations (1) were missed:\nPARCOACH:W2\n\n" +
		"Some diagnostics (1) were detected and unexpected:\nPARCOACH:W3\n\n"
	if stdout != expected {
		t.Fatalf("unexpected output:\nwant:\n%q\ngot:\n%q", expected, stdout)
	}
}

func TestExactMatchIsSilent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "PARCOACH:W1\nPARCOACH:W2\n"
	expectation := writeFixture(t, dir, "case.expected", content)
	input := writeFixture(t, dir, "case.out", content)

	stdout, err := run(t, input, expectation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout != "" {
		t.Fatalf("expected no output, got %q", stdout)
	}
}

func TestArgumentAndFixtureErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	expectation := writeFixture(t, dir, "case.expected", "PARCOACH:W1\n")

	if _, err := run(t, expectation); !errors.Is(err, errInvalidArgCount) {
		t.Fatalf("expected errInvalidArgCount, got %v", err)
	}

	if _, err := run(t, filepath.Join(dir, "missing.out"), expectation); !errors.Is(err, fault.ErrReadFailure) {
		t.Fatalf("expected a read failure, got %v", err)
	}
}

func TestStrictFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	expectation := writeFixture(t, dir, "case.expected", "PARCOACH:W1\nPARCOACH:W1\n")
	input := writeFixture(t, dir, "case.out", "PARCOACH:W1\n")

	if _, err := run(t, input, expectation); err != nil {
		t.Fatalf("expected duplicates to be tolerated, got %v", err)
	}

	if _, err := run(t, "--strict", input, expectation); !errors.Is(err, diagcheck.ErrDuplicateExpectation) {
		t.Fatalf("expected ErrDuplicateExpectation, got %v", err)
	}
}
