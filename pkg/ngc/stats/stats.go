// Package stats derives normalized frequency statistics over n-gram populations.
package stats

import (
	"math"
	"sort"

	"github.com/cognicore/ngc/pkg/ngc/ngram"
)

// PPM normalizes a count to occurrences per million window positions.
// The denominator floors at 1 so an empty population cannot divide by zero.
func PPM(count, totalPositions int) float64 {
	if totalPositions < 1 {
		totalPositions = 1
	}
	return float64(count) / float64(totalPositions) * 1e6
}

// Apply fills PPM and Z for every entry of one size's population.
// Z is the population standard score of the count (divide by N, not N-1);
// it is exactly 0 when the standard deviation is 0.
func Apply(entries []*ngram.Entry, totalPositions int) {
	for _, e := range entries {
		e.PPM = PPM(e.Count, totalPositions)
	}

	mean, stddev := countMoments(entries)
	for _, e := range entries {
		if stddev == 0 {
			e.Z = 0
		} else {
			e.Z = (float64(e.Count) - mean) / stddev
		}
	}
}

// countMoments returns the population mean and standard deviation of counts.
func countMoments(entries []*ngram.Entry) (mean, stddev float64) {
	if len(entries) == 0 {
		return 0, 0
	}
	var sum float64
	for _, e := range entries {
		sum += float64(e.Count)
	}
	mean = sum / float64(len(entries))

	var sq float64
	for _, e := range entries {
		d := float64(e.Count) - mean
		sq += d * d
	}
	stddev = math.Sqrt(sq / float64(len(entries)))
	return mean, stddev
}

// Summary describes the distribution of a value list for the stats banner.
type Summary struct {
	Min    float64
	Max    float64
	Median float64
	Avg    float64
	P90    float64
}

// Summarize computes the distribution summary of values.
// Median averages the two middle elements for even lengths; P90 is the
// nearest-rank element at floor(len*0.9), clamped to the last index.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	n := len(sorted)
	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	p90 := int(math.Floor(float64(n) * 0.9))
	if p90 > n-1 {
		p90 = n - 1
	}

	return Summary{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median,
		Avg:    sum / float64(n),
		P90:    sorted[p90],
	}
}
