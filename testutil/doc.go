// Package testutil provides deterministic randomness and distribution-test
// helpers shared by the vose test suites and benchmarks.
package testutil
