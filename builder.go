package vose

import "math"

// NormalizationTolerance is the maximum allowed deviation of the weight sum
// from 1. It is part of the construction contract: inputs outside this band
// are rejected with ErrNotNormalized rather than silently rescaled.
const NormalizationTolerance = 1e-6

// validate applies the construction contract to the raw inputs.
func validate[T any](elements []T, weights []float64) error {
	if len(elements) != len(weights) {
		return ErrLengthMismatch
	}
	if len(elements) == 0 {
		return ErrEmptyInput
	}

	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return &ErrInvalidWeight{Index: i, Weight: w}
		}
		sum += w
	}
	if math.Abs(sum-1) > NormalizationTolerance {
		return &ErrNotNormalized{Sum: sum}
	}

	return nil
}

// buildTables runs the Vose redistribution scheme over an already validated
// weight sequence and returns the bias and alias tables.
//
// Each weight is scaled by n so the average scaled weight is exactly 1, then
// indices are partitioned into a light (< 1) and a heavy (>= 1) worklist.
// Both worklists are plain LIFO stacks; the algorithm is correct for any pop
// order. One light and one heavy index are paired per iteration: the light
// slot keeps its own scaled mass as bias and routes its overflow to the heavy
// index, whose residue is reclassified. Throughout, the total scaled mass of
// unfinalized slots plus the mass spent on finalized ones stays n, which is
// what makes the drain step safe: once either list empties, every remaining
// residue is numerically ~1 and its slot resolves to itself.
func buildTables(weights []float64) (bias []float64, alias []int) {
	n := len(weights)

	bias = make([]float64, n)
	alias = make([]int, n)
	scaled := make([]float64, n)

	light := make([]int, 0, n)
	heavy := make([]int, 0, n)

	for i, w := range weights {
		// Self-referential defaults; slots that never borrow mass keep them.
		bias[i] = 1
		alias[i] = i

		scaled[i] = w * float64(n)
		if scaled[i] < 1 {
			light = append(light, i)
		} else {
			heavy = append(heavy, i)
		}
	}

	for len(light) > 0 && len(heavy) > 0 {
		s := light[len(light)-1]
		light = light[:len(light)-1]
		l := heavy[len(heavy)-1]
		heavy = heavy[:len(heavy)-1]

		bias[s] = scaled[s]
		alias[s] = l

		// The light slot borrowed 1-scaled[s] from the heavy one.
		scaled[l] -= 1 - scaled[s]
		if scaled[l] < 1 {
			light = append(light, l)
		} else {
			heavy = append(heavy, l)
		}
	}

	// Floating-point residue can leave stragglers in either list; mass
	// conservation guarantees their scaled value is ~1.
	for _, r := range heavy {
		bias[r] = 1
	}
	for _, r := range light {
		bias[r] = 1
	}

	return bias, alias
}
