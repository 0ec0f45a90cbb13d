package health

import (
	"context"
	"fmt"
	"os"
	"sync"

	"mercator-hq/advent/pkg/history"
)

// HistoryCheck verifies that the answer history store answers queries.
func HistoryCheck(store history.Storage) CheckFunc {
	return func(ctx context.Context) error {
		if _, err := store.Count(ctx, nil); err != nil {
			return fmt.Errorf("history unavailable: %w", err)
		}
		return nil
	}
}

// InputCheck verifies that path is a readable regular file.
func InputCheck(path string) CheckFunc {
	return func(ctx context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		return nil
	}
}

// SolveTracker remembers the outcome of the latest solve of each puzzle.
type SolveTracker struct {
	mu      sync.RWMutex
	results map[string]error
}

// NewSolveTracker creates an empty tracker.
func NewSolveTracker() *SolveTracker {
	return &SolveTracker{results: make(map[string]error)}
}

// Record stores the outcome of a solve; err is nil on success.
func (t *SolveTracker) Record(puzzle string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results[puzzle] = err
}

// Check fails until puzzle has been solved and whenever its latest solve
// failed.
func (t *SolveTracker) Check(puzzle string) CheckFunc {
	return func(ctx context.Context) error {
		t.mu.RLock()
		err, ok := t.results[puzzle]
		t.mu.RUnlock()

		if !ok {
			return fmt.Errorf("%s not solved yet", puzzle)
		}
		if err != nil {
			return fmt.Errorf("last solve failed: %w", err)
		}
		return nil
	}
}
