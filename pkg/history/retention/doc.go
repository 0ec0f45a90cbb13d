// Package retention prunes the answer history.
//
// A Pruner deletes answers older than the configured number of days, then
// trims the oldest answers until at most MaxRecords remain. A Scheduler runs
// the pruner on a cron schedule while the watch command is active.
package retention
