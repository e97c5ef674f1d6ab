// Package vose provides O(1) weighted random sampling over a fixed set of
// elements using the Vose variant of Walker's alias method.
//
// Given n elements and a matching discrete probability distribution, New
// precomputes two parallel tables in O(n) time. Every subsequent draw costs
// one uniform index, one uniform real and one comparison.
//
// # Quick Start
//
//	va, err := vose.New(
//	    []string{"common", "rare", "epic"},
//	    []float64{0.80, 0.15, 0.05},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	drop := va.Sample()
//
// # Validation
//
// Weights must be non-negative, finite and sum to 1 within
// NormalizationTolerance. Violations are reported as errors from New; nothing
// is silently normalized.
//
// # Concurrency
//
// A VoseAlias is immutable after construction and may be shared across any
// number of concurrent readers. Sample uses a mutex-guarded default source;
// high-throughput concurrent callers should prefer SampleWithSource with one
// Source per goroutine.
//
// # Snapshots
//
// SaveToWriter and LoadFromReader persist a built structure through a
// self-describing header (codec name, compression type), so tables built
// offline can be shipped and loaded without re-running construction.
package vose
