// Package filter evaluates the predicate sets applied to n-gram entries.
//
// Every filter in every active list must pass for an entry to survive:
// lists compose by logical AND, and so do the elements within one list.
package filter

import (
	"regexp"
	"strings"
)

// Range constrains a numeric value to [Min, Max]. A nil bound is unbounded
// on that side. Outside inverts the check: pass iff NOT within the range.
type Range struct {
	Min     *float64
	Max     *float64
	Outside bool
}

// Match reports whether v passes the range filter.
func (r Range) Match(v float64) bool {
	in := (r.Min == nil || v >= *r.Min) && (r.Max == nil || v <= *r.Max)
	if r.Outside {
		return !in
	}
	return in
}

// MatchAll reports whether v passes every filter in the list.
func MatchAll(filters []Range, v float64) bool {
	for _, f := range filters {
		if !f.Match(v) {
			return false
		}
	}
	return true
}

// TextKind selects the string operation of a text filter.
type TextKind int

const (
	Contains TextKind = iota
	NotContains
	StartsWith
	NotStartsWith
	EndsWith
	NotEndsWith
)

// MatchMode selects how the pattern is interpreted.
type MatchMode int

const (
	// MatchLiteral compares case-insensitively with plain string operations.
	MatchLiteral MatchMode = iota
	// MatchRegex matches with a compiled case-insensitive regular expression.
	// Only the Contains and NotContains kinds honor it; the starts/ends kinds
	// always fall back to literal comparison even when a regex compiled.
	MatchRegex
)

// metaChars marks a pattern as a regular expression candidate.
const metaChars = `|*+?[](){}\`

// Text is a single text predicate over the n-gram text.
type Text struct {
	Kind    TextKind
	Pattern string
	Mode    MatchMode
	re      *regexp.Regexp
}

// NewText builds a text filter. A pattern containing regex metacharacters is
// compiled case-insensitively; if compilation fails the filter silently
// downgrades to literal matching.
func NewText(kind TextKind, pattern string) Text {
	t := Text{Kind: kind, Pattern: pattern, Mode: MatchLiteral}
	if strings.ContainsAny(pattern, metaChars) {
		if re, err := regexp.Compile("(?i)" + pattern); err == nil {
			t.Mode = MatchRegex
			t.re = re
		}
	}
	return t
}

// Match reports whether s passes the text filter.
func (t Text) Match(s string) bool {
	var hit bool
	switch t.Kind {
	case Contains, NotContains:
		if t.Mode == MatchRegex {
			hit = t.re.MatchString(s)
		} else {
			hit = strings.Contains(strings.ToLower(s), strings.ToLower(t.Pattern))
		}
	case StartsWith, NotStartsWith:
		hit = strings.HasPrefix(strings.ToLower(s), strings.ToLower(t.Pattern))
	case EndsWith, NotEndsWith:
		hit = strings.HasSuffix(strings.ToLower(s), strings.ToLower(t.Pattern))
	}

	switch t.Kind {
	case NotContains, NotStartsWith, NotEndsWith:
		return !hit
	}
	return hit
}

// MatchAllText reports whether s passes every text filter in the list.
func MatchAllText(filters []Text, s string) bool {
	for _, f := range filters {
		if !f.Match(s) {
			return false
		}
	}
	return true
}

// Set groups the five independent filter lists of a query.
// Percentile ranges are carried here but evaluated by the percentile
// package, which adds boundary snapping on top of the plain range check.
type Set struct {
	Text       []Text
	Frequency  []Range
	PPM        []Range
	Z          []Range
	Percentile []Range
}

// Empty reports whether no filter list has entries.
func (s Set) Empty() bool {
	return len(s.Text) == 0 && len(s.Frequency) == 0 && len(s.PPM) == 0 &&
		len(s.Z) == 0 && len(s.Percentile) == 0
}
