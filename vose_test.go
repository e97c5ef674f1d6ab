package vose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vosealias/vose/testutil"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		va, err := New([]string{"a", "b", "c", "d"}, []float64{0.1, 0.4, 0.2, 0.3})
		require.NoError(t, err)
		assert.Equal(t, 4, va.Len())
	})

	t.Run("CopiesInputs", func(t *testing.T) {
		elements := []string{"a", "b"}
		weights := []float64{0.5, 0.5}

		va, err := New(elements, weights)
		require.NoError(t, err)

		elements[0] = "mutated"
		weights[0] = 99

		assert.Equal(t, []string{"a", "b"}, va.Elements())
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := New([]string{"a", "b"}, []float64{0.5})
		require.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, err := New([]string{}, []float64{})
		require.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("NotNormalized", func(t *testing.T) {
		_, err := New([]string{"a", "b"}, []float64{0.5, 0.6})

		var nn *ErrNotNormalized
		require.ErrorAs(t, err, &nn)
	})

	t.Run("InvalidWeight", func(t *testing.T) {
		_, err := New([]string{"a", "b"}, []float64{1.5, -0.5})

		var iw *ErrInvalidWeight
		require.ErrorAs(t, err, &iw)
		assert.Equal(t, 1, iw.Index)
	})

	t.Run("Metrics", func(t *testing.T) {
		mc := &BasicMetricsCollector{}

		_, err := New([]string{"a"}, []float64{1.0}, WithMetricsCollector(mc))
		require.NoError(t, err)

		_, err = New([]string{"a"}, []float64{0.5}, WithMetricsCollector(mc))
		require.Error(t, err)

		stats := mc.GetStats()
		assert.Equal(t, int64(2), stats.BuildCount)
		assert.Equal(t, int64(1), stats.BuildErrors)
	})
}

func TestMustNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		va := MustNew([]string{"a", "b"}, []float64{0.5, 0.5})
		assert.Equal(t, 2, va.Len())
	})

	t.Run("PanicsOnInvalid", func(t *testing.T) {
		require.Panics(t, func() {
			MustNew([]string{"a", "b"}, []float64{0.5, 0.6})
		})
	})
}

func TestSample(t *testing.T) {
	t.Run("SingleElement", func(t *testing.T) {
		va, err := New([]string{"x"}, []float64{1.0})
		require.NoError(t, err)

		for n := 0; n < 100; n++ {
			assert.Equal(t, "x", va.Sample())
		}
	})

	t.Run("Membership", func(t *testing.T) {
		elements := []string{"a", "b", "c", "d"}
		va, err := New(elements, []float64{0.1, 0.4, 0.2, 0.3},
			WithSource(testutil.NewRNG(1)))
		require.NoError(t, err)

		for n := 0; n < 1000; n++ {
			assert.Contains(t, elements, va.Sample())
		}
	})

	t.Run("BranchSelection", func(t *testing.T) {
		// With weights {0.75, 0.25} only one light/heavy pairing exists, so
		// the tables are forced: bias = [1, 0.5], alias[1] = 0.
		va, err := New([]string{"a", "b"}, []float64{0.75, 0.25})
		require.NoError(t, err)

		assert.Equal(t, []float64{1, 0.5}, va.Bias())
		assert.Equal(t, []int{0, 0}, va.AliasTable())

		// Coin flip succeeds: u < bias[1].
		src := &testutil.PairSource{Pairs: []testutil.Pair{{I: 1, U: 0.4}}}
		assert.Equal(t, "b", va.SampleWithSource(src))

		// Coin flip fails: the draw resolves to the alias.
		src = &testutil.PairSource{Pairs: []testutil.Pair{{I: 1, U: 0.6}}}
		assert.Equal(t, "a", va.SampleWithSource(src))

		// A fully resolved slot never consults its alias.
		src = &testutil.PairSource{Pairs: []testutil.Pair{{I: 0, U: 0.999999}}}
		assert.Equal(t, "a", va.SampleWithSource(src))
	})

	t.Run("EmpiricalFrequencies", func(t *testing.T) {
		const draws = 400_000

		weights := []float64{0.1, 0.4, 0.2, 0.3}
		va, err := New([]int{0, 1, 2, 3}, weights,
			WithSource(testutil.NewRNG(4711)))
		require.NoError(t, err)

		counts := make([]int, 4)
		for n := 0; n < draws; n++ {
			counts[va.Sample()]++
		}

		freqs := testutil.Frequencies(counts, draws)
		for i, w := range weights {
			assert.InDelta(t, w, freqs[i], 0.005, "element %d", i)
		}
	})

	t.Run("UniformFrequencies", func(t *testing.T) {
		const draws = 200_000

		va, err := New([]int{0, 1, 2, 3}, []float64{0.25, 0.25, 0.25, 0.25},
			WithSource(testutil.NewRNG(42)))
		require.NoError(t, err)

		counts := make([]int, 4)
		for n := 0; n < draws; n++ {
			counts[va.Sample()]++
		}

		freqs := testutil.Frequencies(counts, draws)
		for i := range freqs {
			assert.InDelta(t, 0.25, freqs[i], 0.005, "element %d", i)
		}
	})

	t.Run("ChiSquared", func(t *testing.T) {
		const draws = 1_000_000

		weights := []float64{0.1, 0.4, 0.2, 0.3}
		va, err := New([]int{0, 1, 2, 3}, weights,
			WithSource(testutil.NewRNG(7)))
		require.NoError(t, err)

		counts := make([]int, 4)
		for n := 0; n < draws; n++ {
			counts[va.Sample()]++
		}

		// Critical value for 3 degrees of freedom at alpha = 0.001.
		stat := testutil.ChiSquared(counts, weights, draws)
		assert.Less(t, stat, 16.27)
	})
}

func TestSampleN(t *testing.T) {
	elements := []string{"a", "b", "c"}
	va, err := New(elements, []float64{0.2, 0.3, 0.5},
		WithSource(testutil.NewRNG(99)))
	require.NoError(t, err)

	out := va.SampleN(500)
	require.Len(t, out, 500)
	for _, e := range out {
		assert.Contains(t, elements, e)
	}
}

func TestConcurrentSampling(t *testing.T) {
	const (
		goroutines = 8
		draws      = 10_000
	)

	weights := []float64{0.1, 0.4, 0.2, 0.3}
	va, err := New([]int{0, 1, 2, 3}, weights)
	require.NoError(t, err)

	var g errgroup.Group
	results := make([][]int, goroutines)

	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			src := testutil.NewRNG(int64(1000 + w))
			counts := make([]int, 4)
			for n := 0; n < draws; n++ {
				counts[va.SampleWithSource(src)]++
			}
			results[w] = counts
			return nil
		})
	}
	require.NoError(t, g.Wait())

	total := make([]int, 4)
	for _, counts := range results {
		for i, c := range counts {
			total[i] += c
		}
	}

	freqs := testutil.Frequencies(total, goroutines*draws)
	for i, w := range weights {
		assert.InDelta(t, w, freqs[i], 0.01, "element %d", i)
	}
}

func BenchmarkNew(b *testing.B) {
	rng := testutil.NewRNG(4711)
	weights := rng.Weights(1000)
	elements := make([]int, 1000)
	for i := range elements {
		elements[i] = i
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := New(elements, weights); err != nil {
			b.Fatalf("New failed: %v", err)
		}
	}
}

func BenchmarkSample(b *testing.B) {
	rng := testutil.NewRNG(4711)
	weights := rng.Weights(1000)
	elements := make([]int, 1000)
	for i := range elements {
		elements[i] = i
	}

	va, err := New(elements, weights, WithSource(testutil.NewRNG(1)))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = va.Sample()
	}
}
