// Package store defines the optional run archive: saved analyses that can
// be listed and re-read later. The engine itself never touches a store;
// archiving is a CLI opt-in.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store persists and lists analysis runs.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	// ListRuns returns run metadata, newest first, without rows.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one archived analysis.
type Run struct {
	ID        string
	CreatedAt time.Time
	Input     string // input name, e.g. file path or "stdin"
	Query     string // raw mini-grammar tokens as typed
	Chars     int
	Lines     int
	Words     int
	Rows      []Row
}

// Row is one archived result row.
type Row struct {
	Size  int // 0 for merged rows
	Text  string
	Count int
	PPM   float64
	Z     float64
}

var entropy = ulid.Monotonic(rand.Reader, 0)

// NewRunID returns a fresh ULID for a run.
func NewRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
