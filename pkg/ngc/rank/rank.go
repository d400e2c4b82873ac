// Package rank applies top/bottom limiting and the final ordering of results.
//
// Limiting is boundary-inclusive: every entry tied with the cutoff value is
// kept, so the result may exceed the nominal N.
package rank

import (
	"math"
	"sort"
	"strings"

	"github.com/cognicore/ngc/pkg/ngc/ngram"
)

// Key selects the ranking value of an entry.
type Key int

const (
	ByCount Key = iota
	ByPPM
)

// Direction orders the final output.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// Limit requests the top or bottom slice of a population, either as an
// absolute entry count or as a percentage of the population.
type Limit struct {
	Value   float64
	Percent bool
}

// items resolves the nominal number of entries to take from a population
// of the given size.
func (l Limit) items(total int) int {
	var take int
	if l.Percent {
		take = int(math.Ceil(float64(total) * l.Value / 100))
		if take < 1 {
			take = 1
		}
	} else {
		take = int(l.Value)
	}
	if take > total {
		take = total
	}
	return take
}

func keyOf(e *ngram.Entry, k Key) float64 {
	if k == ByPPM {
		return e.PPM
	}
	return float64(e.Count)
}

// Apply limits entries to the requested top and/or bottom slices. When both
// are requested the two slices are unioned without deduplication; when
// neither is requested the input is returned unchanged.
func Apply(entries []*ngram.Entry, top, bottom *Limit, key Key) []*ngram.Entry {
	if top == nil && bottom == nil {
		return entries
	}

	var out []*ngram.Entry
	if top != nil {
		out = append(out, take(entries, *top, key, true)...)
	}
	if bottom != nil {
		out = append(out, take(entries, *bottom, key, false)...)
	}
	return out
}

// take selects the boundary-inclusive top (desc=true) or bottom slice.
func take(entries []*ngram.Entry, l Limit, key Key, desc bool) []*ngram.Entry {
	total := len(entries)
	if total == 0 {
		return nil
	}
	n := l.items(total)
	if n <= 0 {
		return nil
	}

	sorted := make([]*ngram.Entry, total)
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		ki, kj := keyOf(sorted[i], key), keyOf(sorted[j], key)
		if ki == kj {
			return lowerText(sorted[i]) < lowerText(sorted[j])
		}
		if desc {
			return ki > kj
		}
		return ki < kj
	})

	boundary := keyOf(sorted[n-1], key)
	out := make([]*ngram.Entry, 0, n)
	for _, e := range sorted {
		v := keyOf(e, key)
		if desc && v < boundary {
			break
		}
		if !desc && v > boundary {
			break
		}
		out = append(out, e)
	}
	return out
}

// Sort orders entries by key and direction, with ascending text as the
// secondary tie-break.
func Sort(entries []*ngram.Entry, key Key, dir Direction) {
	sort.Slice(entries, func(i, j int) bool {
		ki, kj := keyOf(entries[i], key), keyOf(entries[j], key)
		if ki == kj {
			return lowerText(entries[i]) < lowerText(entries[j])
		}
		if dir == Ascending {
			return ki < kj
		}
		return ki > kj
	})
}

func lowerText(e *ngram.Entry) string {
	return strings.ToLower(e.Text)
}
