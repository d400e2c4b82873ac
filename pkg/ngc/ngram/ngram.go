// Package ngram aggregates case-insensitive word n-gram counts per size.
package ngram

import (
	"sort"
	"strings"
)

// Entry is one counted n-gram within a single size's population.
// PPM, Z, and Percentile are derived later by the stats and percentile
// packages; the aggregator only fills Size, Text, and Count.
type Entry struct {
	Size       int
	Text       string // first-seen casing, tokens joined by single spaces
	Count      int
	PPM        float64
	Z          float64
	Percentile float64
}

// Counter maintains per-size n-gram counts over tokenized lines.
// Counting is case-insensitive; the first-seen casing is kept for display.
type Counter struct {
	sizes  []int
	counts map[int]map[string]*Entry
	totals map[int]int // n-gram window positions per size
}

// NewCounter creates a counter for the given n-gram sizes.
// Sizes are normalized: deduplicated, sorted ascending, non-positive dropped.
func NewCounter(sizes []int) *Counter {
	c := &Counter{
		sizes:  NormalizeSizes(sizes),
		counts: make(map[int]map[string]*Entry),
		totals: make(map[int]int),
	}
	for _, n := range c.sizes {
		c.counts[n] = make(map[string]*Entry)
	}
	return c
}

// NormalizeSizes returns the distinct positive sizes in ascending order.
func NormalizeSizes(sizes []int) []int {
	seen := make(map[int]struct{}, len(sizes))
	var out []int
	for _, n := range sizes {
		if n <= 0 {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// AddLine counts every n-gram window of one line's token sequence.
// Windows never cross line boundaries.
func (c *Counter) AddLine(tokens []string) {
	for _, n := range c.sizes {
		if len(tokens) < n {
			continue
		}
		windows := len(tokens) - n + 1
		c.totals[n] += windows
		for i := 0; i < windows; i++ {
			text := strings.Join(tokens[i:i+n], " ")
			key := strings.ToLower(text)
			if e, ok := c.counts[n][key]; ok {
				e.Count++
			} else {
				c.counts[n][key] = &Entry{Size: n, Text: text, Count: 1}
			}
		}
	}
}

// Sizes returns the normalized requested sizes.
func (c *Counter) Sizes() []int {
	return c.sizes
}

// Entries returns size n's population, ordered by text for determinism.
func (c *Counter) Entries(n int) []*Entry {
	m := c.counts[n]
	out := make([]*Entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Text) < strings.ToLower(out[j].Text)
	})
	return out
}

// Unique returns the number of distinct n-grams for size n.
func (c *Counter) Unique(n int) int {
	return len(c.counts[n])
}

// Total returns the number of n-gram window positions counted for size n.
// This is the PPM denominator, not the raw word count.
func (c *Counter) Total(n int) int {
	return c.totals[n]
}

// GrandTotal returns the sum of window positions across all sizes,
// the PPM denominator for merged populations.
func (c *Counter) GrandTotal() int {
	var sum int
	for _, n := range c.sizes {
		sum += c.totals[n]
	}
	return sum
}
