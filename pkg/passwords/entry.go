package passwords

import (
	"strings"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// Separator splits the rule from the subject in an entry line.
const Separator = ": "

// Entry pairs a rule with the subject it is checked against.
type Entry struct {
	Rule    Rule
	Subject string
}

// ParseEntry parses a line such as "1-3 a: abcde". The line is split on the
// first Separator; the left part is parsed as a rule of the given kind and the
// right part, trimmed, becomes the subject.
func ParseEntry(line string, kind Kind) (Entry, error) {
	ruleText, subject, ok := strings.Cut(line, Separator)
	if !ok {
		return Entry{}, puzzleerrors.New(puzzleerrors.KindMalformedEntry,
			"no %q separator in %q", Separator, line)
	}

	rule, err := ParseRule(ruleText, kind)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Rule:    rule,
		Subject: strings.TrimSpace(subject),
	}, nil
}

// Valid reports whether the subject satisfies the rule.
func (e Entry) Valid() (bool, error) {
	return e.Rule.Validate(e.Subject)
}
