package passwords

import (
	"strings"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// Options controls how a whole input is evaluated.
type Options struct {
	// File is attached to error locations; it may be empty.
	File string

	// KeepGoing skips lines that fail to parse or validate and reports them
	// in Result.Errors instead of stopping at the first failure.
	KeepGoing bool
}

// Result summarizes the evaluation of every entry in an input.
type Result struct {
	Kind    Kind
	Entries int // Lines parsed and evaluated successfully
	Valid   int // Entries whose subject satisfies the rule
	Errors  *puzzleerrors.ErrorList
}

// Evaluate parses every non-blank line of text as an entry of the given kind
// and counts the valid ones. Without KeepGoing the first failure is returned,
// located at its 1-based line.
func Evaluate(text string, kind Kind, opts Options) (Result, error) {
	result := Result{
		Kind:   kind,
		Errors: puzzleerrors.NewErrorList(),
	}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ok, err := evaluateLine(line, kind)
		if err != nil {
			located := locate(err, opts.File, i+1)
			if !opts.KeepGoing {
				return result, located
			}
			result.Errors.Add(located)
			continue
		}

		result.Entries++
		if ok {
			result.Valid++
		}
	}

	return result, nil
}

// CountValid returns the number of valid entries in text, failing on the
// first malformed line.
func CountValid(text string, kind Kind) (int, error) {
	result, err := Evaluate(text, kind, Options{})
	if err != nil {
		return 0, err
	}
	return result.Valid, nil
}

func evaluateLine(line string, kind Kind) (bool, error) {
	entry, err := ParseEntry(line, kind)
	if err != nil {
		return false, err
	}
	return entry.Valid()
}

func locate(err error, file string, line int) *puzzleerrors.Error {
	if pe, ok := err.(*puzzleerrors.Error); ok {
		return pe.At(file, line)
	}
	return puzzleerrors.New(puzzleerrors.KindMalformedEntry, "unexpected failure").
		WithCause(err).
		At(file, line)
}
