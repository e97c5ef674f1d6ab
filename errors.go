package vose

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when the element count and the weight
	// count differ.
	ErrLengthMismatch = errors.New("element count does not match weight count")

	// ErrEmptyInput is returned when the element set is empty.
	ErrEmptyInput = errors.New("element set is empty")
)

// ErrInvalidWeight indicates a weight that is negative, NaN or infinite.
type ErrInvalidWeight struct {
	Index  int
	Weight float64
}

func (e *ErrInvalidWeight) Error() string {
	return fmt.Sprintf("invalid weight at index %d: %g", e.Index, e.Weight)
}

// ErrNotNormalized indicates a weight sequence whose sum deviates from 1 by
// more than NormalizationTolerance.
type ErrNotNormalized struct {
	Sum float64
}

func (e *ErrNotNormalized) Error() string {
	return fmt.Sprintf("weights sum to %g, want 1 within %g", e.Sum, NormalizationTolerance)
}
