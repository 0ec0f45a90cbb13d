package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Record is one stored answer.
type Record struct {
	// ID uniquely identifies the record (UUID).
	ID string `json:"id"`

	// RunID groups the answers produced by one solve run.
	RunID string `json:"run_id"`

	// Puzzle is the solver name, e.g. "toboggan".
	Puzzle string `json:"puzzle"`

	// Part is the answer's part number within the puzzle, starting at 1.
	Part int `json:"part"`

	// Label describes the answer, e.g. "Trees encountered".
	Label string `json:"label"`

	// Value is the computed answer.
	Value int64 `json:"value"`

	// InputPath is the file the input was read from, if any.
	InputPath string `json:"input_path,omitempty"`

	// InputHash is the hex SHA-256 of the raw input.
	InputHash string `json:"input_hash"`

	// SolvedAt is when the answer was computed.
	SolvedAt time.Time `json:"solved_at"`
}

// Query filters records. Zero-valued fields do not filter.
type Query struct {
	// Puzzle restricts results to one solver.
	Puzzle string `json:"puzzle,omitempty"`

	// RunID restricts results to one run.
	RunID string `json:"run_id,omitempty"`

	// InputHash restricts results to answers computed from one input.
	InputHash string `json:"input_hash,omitempty"`

	// IDs restricts results to the listed records.
	IDs []string `json:"ids,omitempty"`

	// Since and Until bound SolvedAt, both inclusive.
	Since *time.Time `json:"since,omitempty"`
	Until *time.Time `json:"until,omitempty"`

	// Oldest sorts ascending by SolvedAt. The default is newest first.
	Oldest bool `json:"oldest,omitempty"`

	// Limit caps the number of results; 0 means no limit.
	Limit int `json:"limit,omitempty"`

	// Offset skips results after sorting.
	Offset int `json:"offset,omitempty"`
}

// Storage persists answer records.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists records atomically: either all are stored or none.
	Store(ctx context.Context, records ...*Record) error

	// Query retrieves records matching the query, sorted by SolvedAt.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query, ignoring
	// Limit and Offset.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query, ignoring Limit and Offset.
	// Returns the number of records deleted.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}

// HashInput returns the hex-encoded SHA-256 of raw puzzle input.
func HashInput(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// Matches reports whether r satisfies the filters of q.
// Backends without a query language use it to filter in process.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Puzzle != "" && r.Puzzle != q.Puzzle {
		return false
	}
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.InputHash != "" && r.InputHash != q.InputHash {
		return false
	}
	if q.Since != nil && r.SolvedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && r.SolvedAt.After(*q.Until) {
		return false
	}
	if q.IDs != nil {
		found := false
		for _, id := range q.IDs {
			if id == r.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
