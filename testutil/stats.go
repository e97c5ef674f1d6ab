package testutil

// Frequencies converts draw counts into empirical frequencies.
func Frequencies(counts []int, draws int) []float64 {
	freqs := make([]float64, len(counts))
	for i, c := range counts {
		freqs[i] = float64(c) / float64(draws)
	}
	return freqs
}

// ChiSquared computes the chi-squared statistic of observed counts against
// expected probabilities over the given number of draws.
//
// Compare the result against the critical value for len(observed)-1 degrees
// of freedom at the chosen significance level.
func ChiSquared(observed []int, expected []float64, draws int) float64 {
	stat := 0.0
	for i, o := range observed {
		e := expected[i] * float64(draws)
		if e == 0 {
			continue
		}
		d := float64(o) - e
		stat += d * d / e
	}
	return stat
}
