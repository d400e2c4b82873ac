// Package exclude manages literal exclude terms and turns them into text
// filters for the engine.
package exclude

import (
	"strings"

	"github.com/cognicore/ngc/pkg/ngc/filter"
)

// Manager holds exclude terms. Terms are matched case-insensitively and
// keep insertion order so filter evaluation stays deterministic.
type Manager struct {
	terms map[string]struct{}
	order []string
}

// NewManager creates a manager seeded with the given terms.
func NewManager(initial []string) *Manager {
	m := &Manager{terms: make(map[string]struct{}, len(initial))}
	for _, t := range initial {
		m.Add(t)
	}
	return m
}

// Add registers a term. Blank and duplicate terms are ignored.
func (m *Manager) Add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	key := strings.ToLower(term)
	if _, ok := m.terms[key]; ok {
		return
	}
	m.terms[key] = struct{}{}
	m.order = append(m.order, term)
}

// Remove drops a term.
func (m *Manager) Remove(term string) {
	key := strings.ToLower(strings.TrimSpace(term))
	if _, ok := m.terms[key]; !ok {
		return
	}
	delete(m.terms, key)
	for i, t := range m.order {
		if strings.ToLower(t) == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Has checks whether a term is registered.
func (m *Manager) Has(term string) bool {
	_, ok := m.terms[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

// Terms returns all terms in insertion order.
func (m *Manager) Terms() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Filters converts the terms into not-contains text filters. Terms are
// literal: regex metacharacters in an exclude term never activate regex
// matching.
func (m *Manager) Filters() []filter.Text {
	out := make([]filter.Text, 0, len(m.order))
	for _, t := range m.order {
		f := filter.Text{Kind: filter.NotContains, Pattern: t, Mode: filter.MatchLiteral}
		out = append(out, f)
	}
	return out
}
