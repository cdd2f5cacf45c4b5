// Package diagcheck grades the textual output of the PARCOACH analyzer against expectation fixtures.
//
// Diagnostics are compared as sets: the order in which the analyzer emits them, and how often it repeats
// one, do not matter. A verification yields the expected diagnostics that were missed and the produced ones
// that were not expected.
package diagcheck
