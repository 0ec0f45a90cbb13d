// Package storage provides history.Storage backends.
//
// Three backends are available:
//
//   - "sqlite": pure Go SQLite via modernc.org/sqlite (default)
//   - "sqlite3": cgo SQLite via github.com/mattn/go-sqlite3
//   - "memory": a process-local map, used in tests and for throwaway runs
//
// Both SQLite drivers share one schema. Timestamps are stored as Unix
// nanoseconds, so records round-trip identically regardless of driver.
//
// Use Open to construct the backend named by a config.HistoryConfig.
package storage
