// Package history keeps a durable record of computed puzzle answers.
//
// Every solve run produces one Record per answer, tagged with a run ID and
// the SHA-256 of the input it was computed from, so that re-running a puzzle
// on the same input can be checked against earlier answers.
//
// # Storage Backends
//
//   - storage.MemoryStorage: in-process, for tests and one-shot runs
//   - storage.SQLiteStorage: durable, using either the cgo driver
//     (github.com/mattn/go-sqlite3, driver "sqlite3") or the pure Go
//     driver (modernc.org/sqlite, driver "sqlite")
//
// # Retention
//
// The retention package removes records older than a number of days and
// caps the total record count. Pruning runs on demand or on a cron schedule.
package history
