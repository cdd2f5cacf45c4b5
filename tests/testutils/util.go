// Package testutils provides test infrastructure for diagcheck integration tests.
package testutils

import (
	"path/filepath"
	"runtime"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"
)

// Binaries shipped by the module, built into bin/ before the suite runs.
const (
	FileContains    = "file-contains"
	ExtractCoverage = "extract-coverage"
	DiagSuite       = "diag-suite"
)

func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed

	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// Setup creates a test case configured to run the named diagcheck binary.
func Setup(binary string) *test.Case {
	return agar.Setup(filepath.Join(projectRoot(), "bin", binary))
}

// Fixture returns the absolute path of a file under tests/testdata.
func Fixture(parts ...string) string {
	return filepath.Join(append([]string{projectRoot(), "tests", "testdata"}, parts...)...)
}
