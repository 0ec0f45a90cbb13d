package passwords

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// Kind selects how the two numbers of a rule are interpreted.
type Kind string

const (
	// KindCount treats the numbers as an inclusive occurrence range.
	KindCount Kind = "count"
	// KindPosition treats the numbers as 1-based rune positions.
	KindPosition Kind = "position"
)

// Kinds lists every rule kind in reporting order.
var Kinds = []Kind{KindCount, KindPosition}

// ParseKind converts a kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCount:
		return KindCount, nil
	case KindPosition:
		return KindPosition, nil
	default:
		return "", fmt.Errorf("unknown rule kind %q (valid: count, position)", s)
	}
}

// rulePattern matches "<a>-<b> <c>", where c is a single Unicode word
// character. RE2's \w is ASCII only, so the class is spelled out.
var rulePattern = regexp.MustCompile(`^(\d+)-(\d+)\s+([\p{L}\p{M}\p{Nd}\p{Pc}])$`)

// Rule is a parsed policy rule. Lo and Hi hold the two numbers from the rule
// text; their meaning depends on Kind.
type Rule struct {
	Kind Kind
	Char rune
	Lo   int
	Hi   int
}

// Min returns the lower occurrence bound of a count rule.
func (r Rule) Min() int { return r.Lo }

// Max returns the upper occurrence bound of a count rule.
func (r Rule) Max() int { return r.Hi }

// First returns the first 1-based position of a position rule.
func (r Rule) First() int { return r.Lo }

// Second returns the second 1-based position of a position rule.
func (r Rule) Second() int { return r.Hi }

// String returns the rule in its textual form, e.g. "1-3 a".
func (r Rule) String() string {
	return fmt.Sprintf("%d-%d %c", r.Lo, r.Hi, r.Char)
}

// ParseRule parses rule text such as "2-9 c" as a rule of the given kind.
func ParseRule(text string, kind Kind) (Rule, error) {
	if kind != KindCount && kind != KindPosition {
		return Rule{}, puzzleerrors.New(puzzleerrors.KindMalformedRule, "unknown rule kind %q", kind)
	}

	m := rulePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Rule{}, puzzleerrors.New(puzzleerrors.KindMalformedRule,
			"%q does not match <a>-<b> <char>", text)
	}

	lo, err := parseBound(m[1], loField(kind))
	if err != nil {
		return Rule{}, err
	}
	hi, err := parseBound(m[2], hiField(kind))
	if err != nil {
		return Rule{}, err
	}

	return Rule{
		Kind: kind,
		Char: []rune(m[3])[0],
		Lo:   lo,
		Hi:   hi,
	}, nil
}

func parseBound(digits, field string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, puzzleerrors.New(puzzleerrors.KindMalformedRule,
			"%s does not fit a non-negative integer", digits).
			WithField(field).
			WithCause(err)
	}
	return n, nil
}

func loField(kind Kind) string {
	if kind == KindPosition {
		return "first"
	}
	return "min"
}

func hiField(kind Kind) string {
	if kind == KindPosition {
		return "second"
	}
	return "max"
}

// Validate checks subject against the rule. Only position rules can fail,
// with an index_out_of_range error when a position lies outside subject.
func (r Rule) Validate(subject string) (bool, error) {
	switch r.Kind {
	case KindCount:
		return r.validateCount(subject), nil
	case KindPosition:
		return r.validatePosition(subject)
	default:
		return false, puzzleerrors.New(puzzleerrors.KindMalformedRule, "unknown rule kind %q", r.Kind)
	}
}

func (r Rule) validateCount(subject string) bool {
	count := 0
	for _, c := range subject {
		if c == r.Char {
			count++
		}
	}
	return count >= r.Lo && count <= r.Hi
}

func (r Rule) validatePosition(subject string) (bool, error) {
	runes := []rune(subject)
	if err := checkPosition(r.Lo, len(runes), "first"); err != nil {
		return false, err
	}
	if err := checkPosition(r.Hi, len(runes), "second"); err != nil {
		return false, err
	}

	// Equal positions compare the same rune twice, so the result is false.
	return (runes[r.Lo-1] == r.Char) != (runes[r.Hi-1] == r.Char), nil
}

func checkPosition(pos, length int, field string) error {
	if pos < 1 || pos > length {
		return puzzleerrors.New(puzzleerrors.KindIndexOutOfRange,
			"position %d outside subject of length %d", pos, length).
			WithField(field)
	}
	return nil
}
