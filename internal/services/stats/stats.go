package stats

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean, or 0 for an empty series.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// TailMean computes the mean of the most recent w observations. If fewer than
// w exist, all available observations are used.
func TailMean(xs []float64, w int) float64 {
	if w <= 0 || len(xs) == 0 {
		return Mean(xs)
	}
	if w > len(xs) {
		w = len(xs)
	}
	return Mean(xs[len(xs)-w:])
}

// SampleStdDev computes the sample standard deviation (n-1 denominator).
// Returns 0 when fewer than two observations exist; that convention is the
// single source of truth for every volatility figure in the pipeline.
func SampleStdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	sum := 0.0
	sum2 := 0.0
	for _, x := range xs {
		sum += x
		sum2 += x * x
	}
	fn := float64(n)
	mean := sum / fn
	variance := (sum2 - fn*mean*mean) / (fn - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Quantile computes the q-quantile of xs using linear interpolation between
// order statistics: pos = q*(n-1), interpolating between the two surrounding
// sorted values. q is clamped to [0, 1]. Returns 0 for an empty series.
// The input slice is not modified.
func Quantile(xs []float64, q float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return xs[0]
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
