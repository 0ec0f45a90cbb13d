package passwords

import (
	"errors"
	"testing"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

func TestParseEntry(t *testing.T) {
	entry, err := ParseEntry("1-3 a: abcde", KindCount)
	if err != nil {
		t.Fatalf("ParseEntry() error = %v", err)
	}

	want := Rule{Kind: KindCount, Char: 'a', Lo: 1, Hi: 3}
	if entry.Rule != want {
		t.Errorf("Rule = %+v, want %+v", entry.Rule, want)
	}
	if entry.Subject != "abcde" {
		t.Errorf("Subject = %q, want %q", entry.Subject, "abcde")
	}

	ok, err := entry.Valid()
	if err != nil || !ok {
		t.Errorf("Valid() = %v, %v, want true, nil", ok, err)
	}
}

func TestParseEntry_PositionScenario(t *testing.T) {
	entry, err := ParseEntry("1-3 b: cdefg", KindPosition)
	if err != nil {
		t.Fatalf("ParseEntry() error = %v", err)
	}

	ok, err := entry.Valid()
	if err != nil {
		t.Fatalf("Valid() error = %v", err)
	}
	if ok {
		t.Error("Valid() = true, want false: neither 'c' nor 'e' is 'b'")
	}
}

func TestParseEntry_NonASCIIChar(t *testing.T) {
	tests := []struct {
		line string
		kind Kind
		want bool
	}{
		{"1-2 é: éa", KindPosition, true},
		{"1-2 é: éé", KindPosition, false},
		{"1-2 é: éa", KindCount, true},
		{"2-3 é: éa", KindCount, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+" "+tt.line, func(t *testing.T) {
			entry, err := ParseEntry(tt.line, tt.kind)
			if err != nil {
				t.Fatalf("ParseEntry() error = %v", err)
			}
			if entry.Rule.Char != 'é' {
				t.Errorf("Char = %q, want 'é'", entry.Rule.Char)
			}
			ok, err := entry.Valid()
			if err != nil {
				t.Fatalf("Valid() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Valid() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestParseEntry_SubjectHandling(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"simple", "1-2 a: foo", "foo"},
		{"trimmed", "1-2 a:   foo  ", "foo"},
		{"first separator wins", "1-2 a: foo: bar", "foo: bar"},
		{"empty subject", "1-2 a: ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ParseEntry(tt.line, KindCount)
			if err != nil {
				t.Fatalf("ParseEntry() error = %v", err)
			}
			if entry.Subject != tt.want {
				t.Errorf("Subject = %q, want %q", entry.Subject, tt.want)
			}
		})
	}
}

func TestParseEntry_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"no separator", "1-3 a abcde", puzzleerrors.ErrMalformedEntry},
		{"colon without space", "1-3 a:abcde", puzzleerrors.ErrMalformedEntry},
		{"empty line", "", puzzleerrors.ErrMalformedEntry},
		{"bad rule", "1+3 a: abcde", puzzleerrors.ErrMalformedRule},
		{"rule missing char", "1-3: abcde", puzzleerrors.ErrMalformedRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntry(tt.line, KindCount)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseEntry(%q) error = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
}
