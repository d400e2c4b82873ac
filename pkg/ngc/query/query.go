// Package query defines the query specification consumed by the engine and
// the argument mini-grammar that builds one from CLI tokens.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/ngc/pkg/ngc/filter"
	"github.com/cognicore/ngc/pkg/ngc/internalerr"
	"github.com/cognicore/ngc/pkg/ngc/rank"
)

// Display selects the output shape of result rows.
type Display int

const (
	ViewCompact Display = iota // text and count
	ViewMinimal                // text only
	ViewFull                   // text, count, ppm, z, plus banner
	ViewStats                  // banner only
)

// Rich reports whether the display mode shows derived statistics. The two
// rich modes participate in the ranker's implicit ppm-key rule.
func (d Display) Rich() bool {
	return d == ViewFull || d == ViewStats
}

// MergeMode controls cross-size reporting.
type MergeMode int

const (
	PerSize MergeMode = iota
	Merged
	Both
)

// Spec is the parsed query specification.
type Spec struct {
	Sizes   []int
	Filters filter.Set
	SortKey rank.Key
	SortSet bool // sort key was requested explicitly
	Dir     rank.Direction
	Top     *rank.Limit
	Bottom  *rank.Limit
	Merge   MergeMode
	View    Display
}

// Default returns the specification used when no grammar tokens are given:
// unigrams, descending by count, compact rows, per-size output.
func Default() Spec {
	return Spec{Sizes: []int{1}}
}

// Parse builds a Spec from mini-grammar tokens.
//
//	2 3                 n-gram sizes
//	top:10 top:5% bottom:3 bottom:10%
//	freq:2..5 ppm:100.. z:..1.5 pct:!40..60
//	has:P not:P starts:P notstarts:P ends:P notends:P
//	sort:count sort:ppm asc desc
//	merge split both
//	view:min view:compact view:full view:stats
//
// Malformed numeric bounds and unknown tokens are rejected with an error.
func Parse(args []string) (Spec, error) {
	spec := Spec{}

	for _, arg := range args {
		if arg == "" {
			continue
		}
		if n, err := strconv.Atoi(arg); err == nil {
			if n <= 0 {
				return Spec{}, fmt.Errorf("%w: n-gram size must be positive, got %d", internalerr.ErrInvalidQuery, n)
			}
			spec.Sizes = append(spec.Sizes, n)
			continue
		}

		switch arg {
		case "asc":
			spec.Dir = rank.Ascending
			continue
		case "desc":
			spec.Dir = rank.Descending
			continue
		case "merge":
			spec.Merge = Merged
			continue
		case "split":
			spec.Merge = PerSize
			continue
		case "both":
			spec.Merge = Both
			continue
		}

		key, value, ok := strings.Cut(arg, ":")
		if !ok {
			return Spec{}, fmt.Errorf("%w: unknown token %q", internalerr.ErrInvalidQuery, arg)
		}
		if err := spec.apply(key, value); err != nil {
			return Spec{}, err
		}
	}

	if len(spec.Sizes) == 0 {
		spec.Sizes = []int{1}
	}
	return spec, nil
}

func (s *Spec) apply(key, value string) error {
	switch key {
	case "top":
		limit, err := parseLimit(value)
		if err != nil {
			return err
		}
		s.Top = limit
	case "bottom":
		limit, err := parseLimit(value)
		if err != nil {
			return err
		}
		s.Bottom = limit
	case "freq":
		return appendRange(&s.Filters.Frequency, value)
	case "ppm":
		return appendRange(&s.Filters.PPM, value)
	case "z":
		return appendRange(&s.Filters.Z, value)
	case "pct":
		return appendRange(&s.Filters.Percentile, value)
	case "has":
		s.Filters.Text = append(s.Filters.Text, filter.NewText(filter.Contains, value))
	case "not":
		s.Filters.Text = append(s.Filters.Text, filter.NewText(filter.NotContains, value))
	case "starts":
		s.Filters.Text = append(s.Filters.Text, filter.NewText(filter.StartsWith, value))
	case "notstarts":
		s.Filters.Text = append(s.Filters.Text, filter.NewText(filter.NotStartsWith, value))
	case "ends":
		s.Filters.Text = append(s.Filters.Text, filter.NewText(filter.EndsWith, value))
	case "notends":
		s.Filters.Text = append(s.Filters.Text, filter.NewText(filter.NotEndsWith, value))
	case "sort":
		switch value {
		case "count":
			s.SortKey = rank.ByCount
		case "ppm":
			s.SortKey = rank.ByPPM
		default:
			return fmt.Errorf("%w: sort key %q", internalerr.ErrInvalidQuery, value)
		}
		s.SortSet = true
	case "view":
		switch value {
		case "min":
			s.View = ViewMinimal
		case "compact":
			s.View = ViewCompact
		case "full":
			s.View = ViewFull
		case "stats":
			s.View = ViewStats
		default:
			return fmt.Errorf("%w: view %q", internalerr.ErrInvalidQuery, value)
		}
	default:
		return fmt.Errorf("%w: unknown token %q", internalerr.ErrInvalidQuery, key+":"+value)
	}
	return nil
}

// parseLimit parses "N" or "N%" into a rank limit.
func parseLimit(value string) (*rank.Limit, error) {
	percent := strings.HasSuffix(value, "%")
	value = strings.TrimSuffix(value, "%")

	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: limit %q", internalerr.ErrInvalidQuery, value)
	}
	return &rank.Limit{Value: n, Percent: percent}, nil
}

// appendRange parses "LO..HI" (either bound optional, "!" prefix for
// outside, a single number for an exact match) into the filter list.
func appendRange(list *[]filter.Range, value string) error {
	var r filter.Range
	if strings.HasPrefix(value, "!") {
		r.Outside = true
		value = value[1:]
	}

	lo, hi, ranged := strings.Cut(value, "..")
	if !ranged {
		hi = lo
	}

	if lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return fmt.Errorf("%w: bound %q", internalerr.ErrInvalidQuery, lo)
		}
		r.Min = &v
	}
	if hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return fmt.Errorf("%w: bound %q", internalerr.ErrInvalidQuery, hi)
		}
		r.Max = &v
	}
	if r.Min == nil && r.Max == nil {
		return fmt.Errorf("%w: empty range", internalerr.ErrInvalidQuery)
	}

	*list = append(*list, r)
	return nil
}
