package llvmcov

import "time"

const (
	name = "llvm-cov"
	// Exporting a large instrumented binary against a merged profile is not instant.
	timeout = 60 * time.Second
)
