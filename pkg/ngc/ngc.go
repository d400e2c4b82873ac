// Package ngc computes frequency statistics over word n-grams: aggregation,
// PPM and z-score derivation, multi-predicate filtering, percentile-bucketed
// ranking, and optional cross-size merging.
package ngc

import (
	"sort"
	"strings"

	"github.com/cognicore/ngc/pkg/ngc/filter"
	"github.com/cognicore/ngc/pkg/ngc/ngram"
	"github.com/cognicore/ngc/pkg/ngc/percentile"
	"github.com/cognicore/ngc/pkg/ngc/query"
	"github.com/cognicore/ngc/pkg/ngc/rank"
	"github.com/cognicore/ngc/pkg/ngc/stats"
	"github.com/cognicore/ngc/pkg/ngc/tokenize"
)

// Result is one ordered result set: a single size's rows, or the merged
// cross-size rows when Size is 0.
type Result struct {
	Size    int
	Entries []*ngram.Entry
}

// SizeStats carries a population's pre-filter distribution data for the
// statistics banner.
type SizeStats struct {
	Size   int
	Unique int       // distinct n-grams before filtering
	Total  int       // n-gram window positions (the ppm denominator)
	Counts []float64 // raw counts, ascending
	PPMs   []float64 // raw ppm values, ascending
}

// Report is the complete outcome of one analysis.
type Report struct {
	Text      tokenize.TextStats
	Sizes     []Result    // per-size rows, present unless merge-only output
	Raw       []SizeStats // pre-filter populations, one per requested size
	Merged    *Result     // cross-size union when requested
	MergedRaw *SizeStats
}

// Analyze runs the whole pipeline over one input. It never fails: degenerate
// inputs produce empty-but-valid result sets.
func Analyze(text string, spec query.Spec) Report {
	tok := tokenize.Tokenize(text)

	counter := ngram.NewCounter(spec.Sizes)
	for _, line := range tok.Lines {
		counter.AddLine(line)
	}

	report := Report{Text: tok.Stats}
	var perSize []Result

	for _, n := range counter.Sizes() {
		entries := counter.Entries(n)
		stats.Apply(entries, counter.Total(n))
		report.Raw = append(report.Raw, rawStats(n, counter, entries))

		passed := applyFilters(entries, spec.Filters)

		// Percentiles are ranked within the filtered population; the
		// boundary set lives only for this evaluation.
		boundaries := percentile.Assign(passed)
		if len(spec.Filters.Percentile) > 0 {
			passed = applyPercentile(passed, spec.Filters.Percentile, boundaries)
		}

		key := rankKey(spec, passed)
		passed = rank.Apply(passed, spec.Top, spec.Bottom, key)
		rank.Sort(passed, key, spec.Dir)

		perSize = append(perSize, Result{Size: n, Entries: passed})
	}

	if spec.Merge == query.PerSize || spec.Merge == query.Both {
		report.Sizes = perSize
	}
	if spec.Merge == query.Merged || spec.Merge == query.Both {
		merged, raw := merge(perSize, counter.GrandTotal(), spec)
		report.Merged = &merged
		report.MergedRaw = &raw
	}

	return report
}

// applyFilters runs the text, frequency, ppm, and z lists. Each active list
// element is one more conjunct: an entry passes only if it satisfies all.
func applyFilters(entries []*ngram.Entry, set filter.Set) []*ngram.Entry {
	out := make([]*ngram.Entry, 0, len(entries))
	for _, e := range entries {
		if !filter.MatchAllText(set.Text, e.Text) {
			continue
		}
		if !filter.MatchAll(set.Frequency, float64(e.Count)) {
			continue
		}
		if !filter.MatchAll(set.PPM, e.PPM) {
			continue
		}
		if !filter.MatchAll(set.Z, e.Z) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func applyPercentile(entries []*ngram.Entry, filters []filter.Range, boundaries []float64) []*ngram.Entry {
	out := make([]*ngram.Entry, 0, len(entries))
	for _, e := range entries {
		if percentile.MatchAll(filters, e.Percentile, boundaries) {
			out = append(out, e)
		}
	}
	return out
}

// rankKey resolves the ranking key. PPM wins when explicitly requested, or
// when a rich display mode is active, no count sort was asked for, and the
// population has at least one positive ppm.
func rankKey(spec query.Spec, entries []*ngram.Entry) rank.Key {
	if spec.SortSet {
		return spec.SortKey
	}
	if spec.View.Rich() {
		for _, e := range entries {
			if e.PPM > 0 {
				return rank.ByPPM
			}
		}
	}
	return rank.ByCount
}

// merge unions the per-size result sets into one case-insensitive
// collection. Counts sum across sizes; ppm and z keep the first-seen size's
// values unchanged. The merged population's own ppm distribution is
// recomputed against the grand total of all per-size window positions.
func merge(perSize []Result, grandTotal int, spec query.Spec) (Result, SizeStats) {
	index := make(map[string]*ngram.Entry)
	var entries []*ngram.Entry

	for _, res := range perSize {
		for _, e := range res.Entries {
			key := strings.ToLower(e.Text)
			if m, ok := index[key]; ok {
				m.Count += e.Count
				continue
			}
			clone := &ngram.Entry{Text: e.Text, Count: e.Count, PPM: e.PPM, Z: e.Z}
			index[key] = clone
			entries = append(entries, clone)
		}
	}

	key := rankKey(spec, entries)
	rank.Sort(entries, key, spec.Dir)

	raw := SizeStats{
		Unique: len(entries),
		Total:  grandTotal,
		Counts: make([]float64, 0, len(entries)),
		PPMs:   make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		raw.Counts = append(raw.Counts, float64(e.Count))
		raw.PPMs = append(raw.PPMs, stats.PPM(e.Count, grandTotal))
	}
	sort.Float64s(raw.Counts)
	sort.Float64s(raw.PPMs)

	return Result{Size: 0, Entries: entries}, raw
}

func rawStats(n int, counter *ngram.Counter, entries []*ngram.Entry) SizeStats {
	s := SizeStats{
		Size:   n,
		Unique: counter.Unique(n),
		Total:  counter.Total(n),
		Counts: make([]float64, 0, len(entries)),
		PPMs:   make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		s.Counts = append(s.Counts, float64(e.Count))
		s.PPMs = append(s.PPMs, e.PPM)
	}
	sort.Float64s(s.Counts)
	sort.Float64s(s.PPMs)
	return s
}
