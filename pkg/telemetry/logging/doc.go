// Package logging provides structured logging on top of log/slog.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text and console formats
//   - Masking of password subjects in log fields
//   - Context-aware logging with run IDs and puzzle names
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:          "info",
//	    Format:         "json",
//	    RedactSubjects: true,
//	})
//
//	logger.Info("entry rejected",
//	    "line", 12,
//	    "subject", "cdefg", // logged as ***(5)
//	)
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "solved") // includes run_id
//
// # Redaction
//
// Values under sensitive keys such as "subject" or "password" are
// replaced by their length. Other strings are scanned for embedded policy
// entries such as "1-3 a: abcde", which become "1-3 a: ***".
package logging
