// Package errors provides typed errors for puzzle input parsing and evaluation.
//
// Every failure carries a Kind so callers can decide whether to skip a bad
// line, abort the run, or report diagnostics. Errors optionally carry the
// source location (file and 1-based line) and the field that failed.
//
// # Kinds
//
// KindMalformedEntry: a policy line lacks the ": " separator
//
// KindMalformedRule: a rule does not match "<a>-<b> <c>" or a number overflows
//
// KindIndexOutOfRange: a 1-based position exceeds the subject length
//
// KindInconsistentWidth: a grid row differs in width from the first row
//
// KindEmptyInput: no usable lines were supplied
//
// # Matching
//
// Errors compare by kind, so the exported sentinels work with errors.Is:
//
//	if errors.Is(err, puzzleerrors.ErrMalformedRule) {
//	    // skip the line
//	}
//
// # Accumulating
//
// ErrorList collects per-line failures when a caller wants to report every
// bad line of a file instead of stopping at the first:
//
//	list := puzzleerrors.NewErrorList()
//	list.Add(err.(*puzzleerrors.Error))
//	return list.ToError()
package errors
