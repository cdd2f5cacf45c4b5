// Package coverage extracts the aggregate line coverage from the JSON summary emitted by `llvm-cov export`.
package coverage
