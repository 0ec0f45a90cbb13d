package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for solve run IDs.
	RunIDKey contextKey = "run_id"

	// PuzzleKey is the context key for puzzle names.
	PuzzleKey contextKey = "puzzle"

	// InputKey is the context key for the input file path.
	InputKey contextKey = "input"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithPuzzle adds a puzzle name to the context.
func WithPuzzle(ctx context.Context, puzzle string) context.Context {
	return context.WithValue(ctx, PuzzleKey, puzzle)
}

// GetPuzzle retrieves the puzzle name from the context.
func GetPuzzle(ctx context.Context) string {
	if puzzle, ok := ctx.Value(PuzzleKey).(string); ok {
		return puzzle
	}
	return ""
}

// WithInput adds an input file path to the context.
func WithInput(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, InputKey, path)
}

// GetInput retrieves the input file path from the context.
func GetInput(ctx context.Context) string {
	if path, ok := ctx.Value(InputKey).(string); ok {
		return path
	}
	return ""
}

// extractContextFields returns the run fields stored in ctx as key-value
// pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if puzzle := GetPuzzle(ctx); puzzle != "" {
		fields = append(fields, "puzzle", puzzle)
	}
	if path := GetInput(ctx); path != "" {
		fields = append(fields, "input", path)
	}

	return fields
}
