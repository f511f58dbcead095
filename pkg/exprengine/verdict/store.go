// Package verdict journals equivalence verdicts so comparisons can be
// audited after the fact.
//
// The journal sits outside the pure engine: the equivalence oracle never
// reads it, and a failing store never changes a verdict.
package verdict

import (
	"errors"
	"time"
)

// Store persists verdicts.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a verdict, replacing any verdict with the same ID.
	Save(v *Verdict) error

	// Load retrieves a verdict by ID.
	// Returns ErrNotFound if it doesn't exist.
	Load(id string) (*Verdict, error)

	// List returns verdict summaries, most recently saved first.
	// A limit <= 0 returns every verdict.
	List(limit int) ([]Info, error)

	// Delete removes a verdict.
	// Returns nil if it doesn't exist.
	Delete(id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info summarizes a verdict without decoding the full record.
type Info struct {
	ID         string
	Left       string
	Right      string
	Equivalent bool
	Timestamp  time.Time
}

// Sentinel errors for verdict operations.
var (
	// ErrNotFound indicates a verdict doesn't exist.
	ErrNotFound = errors.New("verdict not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("verdict store closed")

	// ErrInvalidVerdict indicates a verdict without an ID.
	ErrInvalidVerdict = errors.New("verdict has no id")
)
