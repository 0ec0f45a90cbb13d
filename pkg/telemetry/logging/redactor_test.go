package logging

import (
	"errors"
	"testing"
)

func TestRedactor_RedactString(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare entry",
			input: "1-3 a: abcde",
			want:  "1-3 a: ***",
		},
		{
			name:  "entry inside message",
			input: `line 3: rule "2-9 c: ccccccccc" rejected`,
			want:  `line 3: rule "2-9 c: ***" rejected`,
		},
		{
			name:  "password assignment",
			input: "password=hunter2",
			want:  "password: ***",
		},
		{
			name:  "nothing sensitive",
			input: "route 3,1 hit 7 trees",
			want:  "route 3,1 hit 7 trees",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_RedactArgs(t *testing.T) {
	r := NewRedactor()

	args := []any{
		"subject", "abcde",
		"Password", "xyz",
		"line", 4,
		"error", errors.New("malformed entry 1-3 a: abcde"),
		"route", "3,1",
	}

	got := r.RedactArgs(args...)

	want := []any{
		"subject", "***(5)",
		"Password", "***(3)",
		"line", 4,
		"error", "malformed entry 1-3 a: ***",
		"route", "3,1",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if args[1] != "abcde" {
		t.Error("RedactArgs() must not modify its input")
	}
}

func TestRedactor_RedactArgs_Empty(t *testing.T) {
	if got := NewRedactor().RedactArgs(); len(got) != 0 {
		t.Errorf("RedactArgs() = %v", got)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"subject", true},
		{"entry_subject", true},
		{"PASSWORD", true},
		{"api_token", true},
		{"route", false},
		{"line", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isSensitiveKey(tt.key); got != tt.want {
				t.Errorf("isSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestRedactSubject(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "***(1)"},
		{"héllo", "***(5)"},
	}

	for _, tt := range tests {
		if got := RedactSubject(tt.input); got != tt.want {
			t.Errorf("RedactSubject(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
