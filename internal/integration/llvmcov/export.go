package llvmcov

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/farcloser/primordium/fault"
)

// Options selects what to export.
type Options struct {
	// Tool is the llvm-cov executable, looked up in PATH (default: llvm-cov).
	// Versioned toolchains install it as llvm-cov-15 and the like.
	Tool string
	// Profile is the merged .profdata file.
	Profile string
	// Binary is the instrumented executable or library.
	Binary string
	// Objects are additional instrumented objects covered by the same profile.
	Objects []string
}

// Export runs `llvm-cov export -summary-only` and returns the JSON report it prints.
func Export(ctx context.Context, opts Options) ([]byte, error) {
	slog.Debug("llvmcov.Export", "binary", opts.Binary, "profile", opts.Profile)

	tool := opts.Tool
	if tool == "" {
		tool = name
	}

	toolPath, err := exec.LookPath(tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, tool)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{
		"export",
		"-summary-only",
		"-format=text",
		"-instr-profile=" + opts.Profile,
		opts.Binary,
	}

	for _, object := range opts.Objects {
		args = append(args, "-object", object)
	}

	cmd := exec.CommandContext(ctx, toolPath, args...) //nolint:gosec // paths are intentionally user-provided

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	return output, nil
}
