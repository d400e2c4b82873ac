// Package percentile assigns tie-grouped percentile ranks and evaluates
// percentile filters with nearest-boundary snapping.
//
// Boundary state is owned by the caller for one evaluation: Assign returns
// the boundary set and Match receives it explicitly. Nothing is cached
// across invocations.
package percentile

import (
	"math"
	"sort"
	"strings"

	"github.com/cognicore/ngc/pkg/ngc/filter"
	"github.com/cognicore/ngc/pkg/ngc/ngram"
)

// SnapThreshold is the maximum distance at which a filter bound snaps to
// the nearest group boundary. The value is a legacy heuristic: it keeps
// whole tie-groups together instead of splitting them at an arbitrary cut.
const SnapThreshold = 5.0

// Assign computes each entry's percentile rank within the population and
// returns the ascending set of distinct group boundary values.
//
// Entries are ranked by count; consecutive equal counts form one tie-group
// whose shared percentile is the group's middle position over totalItems-1.
// A single-item population ranks at 50.
func Assign(entries []*ngram.Entry) []float64 {
	n := len(entries)
	if n == 0 {
		return nil
	}

	sorted := make([]*ngram.Entry, n)
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count == sorted[j].Count {
			return strings.ToLower(sorted[i].Text) < strings.ToLower(sorted[j].Text)
		}
		return sorted[i].Count < sorted[j].Count
	})

	if n == 1 {
		sorted[0].Percentile = 50
		return []float64{50}
	}

	var boundaries []float64
	processed := 0
	for i := 0; i < n; {
		j := i
		for j < n && sorted[j].Count == sorted[i].Count {
			j++
		}
		groupSize := j - i
		middle := processed + groupSize/2
		pct := float64(middle) / float64(n-1) * 100

		for k := i; k < j; k++ {
			sorted[k].Percentile = pct
		}
		boundaries = append(boundaries, pct)

		processed += groupSize
		i = j
	}

	return boundaries
}

// Match reports whether percentile p passes the filter, snapping the
// filter's bounds to the nearest group boundary before comparing. With no
// boundary set (empty population) the bounds are compared directly.
func Match(p float64, f filter.Range, boundaries []float64) bool {
	in := true
	if len(boundaries) > 0 {
		if f.Min != nil && minSideFails(p, *f.Min, boundaries) {
			in = false
		}
		if f.Max != nil && maxSideFails(p, *f.Max, boundaries) {
			in = false
		}
	} else {
		if f.Min != nil && p < *f.Min {
			in = false
		}
		if f.Max != nil && p > *f.Max {
			in = false
		}
	}

	if f.Outside {
		return !in
	}
	return in
}

// MatchAll reports whether p passes every percentile filter in the list.
func MatchAll(filters []filter.Range, p float64, boundaries []float64) bool {
	for _, f := range filters {
		if !Match(p, f, boundaries) {
			return false
		}
	}
	return true
}

func minSideFails(p, min float64, boundaries []float64) bool {
	b, dist := nearest(boundaries, min)
	return (p < b && min > b) || (p < min && (b >= min || dist > SnapThreshold))
}

func maxSideFails(p, max float64, boundaries []float64) bool {
	b, dist := nearest(boundaries, max)
	return (p > b && max < b) || (p > max && (b <= max || dist > SnapThreshold))
}

// nearest returns the boundary closest to v by absolute distance.
func nearest(boundaries []float64, v float64) (boundary, dist float64) {
	boundary = boundaries[0]
	dist = math.Abs(v - boundary)
	for _, b := range boundaries[1:] {
		if d := math.Abs(v - b); d < dist {
			boundary, dist = b, d
		}
	}
	return boundary, dist
}
