package vose

import (
	"fmt"
	"slices"
	"time"

	"github.com/vosealias/vose/codec"
)

// VoseAlias is an immutable alias structure over a fixed element set.
//
// It is created by New (or LoadFromReader) and never mutated afterwards, so
// a single instance may be shared by any number of concurrent readers.
type VoseAlias[T any] struct {
	elements []T
	bias     []float64
	alias    []int

	source  Source
	logger  *Logger
	metrics MetricsCollector
	codec   codec.Codec
}

// New builds the alias structure for the given elements and weights.
//
// elements and weights must have the same non-zero length; index i of one
// corresponds to index i of the other. Every weight must be non-negative and
// finite, and the weights must sum to 1 within NormalizationTolerance.
// Violations are reported as ErrLengthMismatch, ErrEmptyInput,
// ErrInvalidWeight or ErrNotNormalized; no partial structure is returned and
// no input is silently corrected.
//
// Construction is O(n); both input slices are copied, so the caller is free
// to reuse them.
func New[T any](elements []T, weights []float64, optFns ...Option) (*VoseAlias[T], error) {
	o := applyOptions(optFns)

	start := time.Now()

	if err := validate(elements, weights); err != nil {
		o.metrics.RecordBuild(len(elements), time.Since(start), err)
		o.logger.LogBuild(len(elements), err)
		return nil, err
	}

	bias, alias := buildTables(weights)

	va := &VoseAlias[T]{
		elements: slices.Clone(elements),
		bias:     bias,
		alias:    alias,
		source:   o.source,
		logger:   o.logger,
		metrics:  o.metrics,
		codec:    o.codec,
	}

	o.metrics.RecordBuild(len(elements), time.Since(start), nil)
	o.logger.LogBuild(len(elements), nil)

	return va, nil
}

// MustNew is like New but panics on a construction error. Intended for
// static tables whose weights are known at compile time.
func MustNew[T any](elements []T, weights []float64, optFns ...Option) *VoseAlias[T] {
	va, err := New(elements, weights, optFns...)
	if err != nil {
		panic(fmt.Errorf("vose: %w", err))
	}
	return va
}

// Sample draws one element using the structure's default source.
//
// The draw is O(1): one uniform index, one uniform real, one comparison. The
// result is always a member of the original element set.
func (va *VoseAlias[T]) Sample() T {
	return va.SampleWithSource(va.source)
}

// SampleWithSource draws one element using the supplied source. The
// structure is not mutated, so concurrent callers each holding their own
// Source need no synchronization.
func (va *VoseAlias[T]) SampleWithSource(src Source) T {
	i := src.Intn(len(va.elements))
	if src.Float64() < va.bias[i] {
		return va.elements[i]
	}
	return va.elements[va.alias[i]]
}

// SampleN draws n elements using the structure's default source.
func (va *VoseAlias[T]) SampleN(n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = va.Sample()
	}
	return out
}

// Len returns the number of elements in the structure.
func (va *VoseAlias[T]) Len() int {
	return len(va.elements)
}

// Elements returns a copy of the element set, in construction order.
func (va *VoseAlias[T]) Elements() []T {
	return slices.Clone(va.elements)
}

// Bias returns a copy of the bias table. bias[i] is the probability that a
// draw landing on slot i resolves to element i rather than its alias.
func (va *VoseAlias[T]) Bias() []float64 {
	return slices.Clone(va.bias)
}

// AliasTable returns a copy of the alias table. alias[i] is the fallback
// index consulted when the coin flip at slot i fails; slots with bias 1
// carry a self-referential entry that is never consulted.
func (va *VoseAlias[T]) AliasTable() []int {
	return slices.Clone(va.alias)
}
