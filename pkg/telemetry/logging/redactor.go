package logging

import (
	"fmt"
	"regexp"
	"strings"
)

// Redactor masks password subjects in log fields. Subjects are the actual
// passwords of a policy database, so they never reach the log verbatim.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternEntry    = "entry"
	PatternPassword = "password"
)

var defaultPatterns = []*redactPattern{
	{
		// "1-3 a: abcde" anywhere in a string, e.g. inside an error message.
		name:        PatternEntry,
		regex:       regexp.MustCompile(`(\d+-\d+\s+\S):\s*[^\s"']+`),
		replacement: "$1: ***",
	},
	{
		name:        PatternPassword,
		regex:       regexp.MustCompile(`(?i)(password|passwd|pwd)[:=]\s*\S+`),
		replacement: "$1: ***",
	},
}

var sensitiveKeys = []string{
	"subject",
	"password", "passwd", "pwd",
	"secret", "token",
}

// NewRedactor creates a Redactor with the built-in patterns.
func NewRedactor() *Redactor {
	return &Redactor{patterns: defaultPatterns}
}

// RedactString masks subjects embedded in a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}
	return redacted
}

// RedactArgs redacts variadic log arguments in the form key1, value1, key2, value2.
// Values under a sensitive key are masked entirely; other string and error
// values are scanned for embedded entries.
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i += 2 {
		if key, ok := redacted[i-1].(string); ok && isSensitiveKey(key) {
			redacted[i] = redactValue(redacted[i])
			continue
		}

		switch v := redacted[i].(type) {
		case string:
			redacted[i] = r.RedactString(v)
		case error:
			redacted[i] = r.RedactString(v.Error())
		}
	}

	return redacted
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

func redactValue(value any) any {
	switch v := value.(type) {
	case string:
		return RedactSubject(v)
	case fmt.Stringer:
		return "***"
	default:
		return "***"
	}
}

// RedactSubject masks a password subject, keeping only its length.
func RedactSubject(subject string) string {
	if subject == "" {
		return ""
	}
	return fmt.Sprintf("***(%d)", len([]rune(subject)))
}
