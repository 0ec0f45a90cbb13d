// Package watch re-runs work when puzzle input files change.
//
// FileWatcher watches the directories containing the configured files
// rather than the files themselves: editors commonly save by writing a
// temporary file and renaming it over the original, which would otherwise
// drop the watch. Events for other files in those directories are ignored.
//
// Bursts of events are coalesced by a Debouncer. The callback receives every
// watched path that changed during the quiet period, sorted.
package watch
