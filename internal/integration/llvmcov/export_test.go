package llvmcov_test

import (
	"context"
	"errors"
	"testing"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/diagcheck/internal/integration/llvmcov"
)

func TestExportMissingTool(t *testing.T) {
	t.Parallel()

	_, err := llvmcov.Export(context.Background(), llvmcov.Options{
		Tool:    "llvm-cov-does-not-exist",
		Profile: "default.profdata",
		Binary:  "a.out",
	})
	if !errors.Is(err, fault.ErrMissingRequirements) {
		t.Fatalf("expected ErrMissingRequirements, got %v", err)
	}
}
