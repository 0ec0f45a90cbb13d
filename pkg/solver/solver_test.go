package solver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/passwords"
	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
	"mercator-hq/advent/pkg/toboggan"
)

const (
	expenseSample = "1721\n979\n366\n299\n675\n1456\n"

	passwordsSample = "1-3 a: abcde\n1-3 b: cdefg\n2-9 c: ccccccccc\n"

	tobogganSample = `..##.......
#...#...#..
.#....#..#.
..#.#...#.#
.#...##..#.
..#.##.....
.#.#.#....#
.#........#
#.##...#...
#...##....#
.#..#...#.#
`
)

type stubSolver struct {
	name    string
	answers []Answer
	err     error
}

func (s *stubSolver) Name() string { return s.name }

func (s *stubSolver) Solve(context.Context, []byte) ([]Answer, error) {
	return s.answers, s.err
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"toboggan", "expense", "passwords"} {
		if err := reg.Register(&stubSolver{name: name}); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	if got := fmt.Sprint(reg.Names()); got != "[toboggan expense passwords]" {
		t.Errorf("Names() = %s, want registration order", got)
	}

	if err := reg.Register(&stubSolver{name: "expense"}); err == nil {
		t.Error("Register() duplicate succeeded, want error")
	}
	if err := reg.Register(&stubSolver{}); err == nil {
		t.Error("Register() empty name succeeded, want error")
	}

	if _, ok := reg.Get("expense"); !ok {
		t.Error("Get(expense) not found")
	}
	if _, ok := reg.Get("unknown"); ok {
		t.Error("Get(unknown) found")
	}

	names := reg.Names()
	names[0] = "mutated"
	if reg.Names()[0] != "toboggan" {
		t.Error("Names() returned internal slice")
	}
}

func TestExpenseSolver(t *testing.T) {
	tests := []struct {
		name     string
		solver   *ExpenseSolver
		input    string
		want     []int64
		wantKind puzzleerrors.Kind
	}{
		{"sample", &ExpenseSolver{}, expenseSample, []int64{514579, 241861950}, ""},
		{"explicit target", &ExpenseSolver{Target: 2020}, expenseSample, []int64{514579, 241861950}, ""},
		{"no pair", &ExpenseSolver{Target: 5}, "1\n2\n", nil, puzzleerrors.KindNoSolution},
		{"malformed", &ExpenseSolver{}, "12\nabc\n", nil, puzzleerrors.KindMalformedNumber},
		{"empty", &ExpenseSolver{}, "\n\n", nil, puzzleerrors.KindEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers, err := tt.solver.Solve(context.Background(), []byte(tt.input))
			checkAnswers(t, answers, err, tt.want, tt.wantKind)
		})
	}
}

func TestPasswordsSolver(t *testing.T) {
	tests := []struct {
		name      string
		solver    *PasswordsSolver
		input     string
		want      []int64
		wantLabel string
		wantKind  puzzleerrors.Kind
	}{
		{
			name:      "both kinds by default",
			solver:    &PasswordsSolver{},
			input:     passwordsSample,
			want:      []int64{2, 1},
			wantLabel: "Matching entries (count)",
		},
		{
			name:      "position only",
			solver:    &PasswordsSolver{Kinds: []passwords.Kind{passwords.KindPosition}},
			input:     passwordsSample,
			want:      []int64{1},
			wantLabel: "Matching entries (position)",
		},
		{
			name:     "malformed entry fails",
			solver:   &PasswordsSolver{},
			input:    "1-3 a abcde\n",
			wantKind: puzzleerrors.KindMalformedEntry,
		},
		{
			name:      "keep going skips malformed lines",
			solver:    &PasswordsSolver{KeepGoing: true},
			input:     passwordsSample + "1-3 a abcde\n",
			want:      []int64{2, 1},
			wantLabel: "Matching entries (count)",
		},
		{
			name:     "position beyond subject",
			solver:   &PasswordsSolver{Kinds: []passwords.Kind{passwords.KindPosition}},
			input:    "1-9 a: abc\n",
			wantKind: puzzleerrors.KindIndexOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers, err := tt.solver.Solve(context.Background(), []byte(tt.input))
			checkAnswers(t, answers, err, tt.want, tt.wantKind)
			if tt.wantLabel != "" && answers[0].Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", answers[0].Label, tt.wantLabel)
			}
		})
	}
}

func TestTobogganSolver(t *testing.T) {
	tests := []struct {
		name     string
		solver   *TobogganSolver
		input    string
		want     []int64
		wantKind puzzleerrors.Kind
	}{
		{"defaults", &TobogganSolver{}, tobogganSample, []int64{7, 336}, ""},
		{
			"custom slope and routes",
			&TobogganSolver{
				Slope:  toboggan.Route{Right: 1, Down: 1},
				Routes: []toboggan.Route{{Right: 3, Down: 1}, {Right: 1, Down: 2}},
			},
			tobogganSample,
			[]int64{2, 14},
			"",
		},
		{"custom marker", &TobogganSolver{Marker: 'x'}, "..x\nx..\n.x.\n", []int64{1, 0}, ""},
		{"inconsistent width", &TobogganSolver{}, "...\n..\n", nil, puzzleerrors.KindInconsistentWidth},
		{"empty", &TobogganSolver{}, "", nil, puzzleerrors.KindEmptyInput},
		{
			"invalid route",
			&TobogganSolver{Routes: []toboggan.Route{{Right: 0, Down: 1}}},
			tobogganSample,
			nil,
			puzzleerrors.KindInvalidStride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers, err := tt.solver.Solve(context.Background(), []byte(tt.input))
			checkAnswers(t, answers, err, tt.want, tt.wantKind)
		})
	}
}

func TestNewRegistryFromConfig(t *testing.T) {
	cfg := config.Default()

	reg, err := NewRegistryFromConfig(&cfg.Puzzles, nil)
	if err != nil {
		t.Fatalf("NewRegistryFromConfig() error = %v", err)
	}
	if got := fmt.Sprint(reg.Names()); got != "[expense passwords toboggan]" {
		t.Errorf("Names() = %s", got)
	}

	s, _ := reg.Get("toboggan")
	answers, err := s.Solve(context.Background(), []byte(tobogganSample))
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if answers[0].Value != 7 || answers[1].Value != 336 {
		t.Errorf("answers = %+v, want 7 and 336", answers)
	}

	bad := config.Default()
	bad.Puzzles.Passwords.Kinds = []string{"length"}
	if _, err := NewRegistryFromConfig(&bad.Puzzles, nil); err == nil {
		t.Error("NewRegistryFromConfig() with unknown kind succeeded, want error")
	}

	bad = config.Default()
	bad.Puzzles.Toboggan.Marker = "##"
	if _, err := NewRegistryFromConfig(&bad.Puzzles, nil); err == nil {
		t.Error("NewRegistryFromConfig() with long marker succeeded, want error")
	}
}

func TestInputPath(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"expense", "input/day1.txt", true},
		{"passwords", "input/day2.txt", true},
		{"toboggan", "input/day3.txt", true},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InputPath(&cfg.Puzzles, tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("InputPath(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func checkAnswers(t *testing.T, answers []Answer, err error, want []int64, wantKind puzzleerrors.Kind) {
	t.Helper()

	if wantKind != "" {
		if err == nil {
			t.Fatalf("Solve() succeeded, want %s error", wantKind)
		}
		kind, ok := puzzleerrors.KindOf(err)
		if !ok || kind != wantKind {
			t.Fatalf("Solve() error kind = %q, want %q (err: %v)", kind, wantKind, err)
		}
		var pe *puzzleerrors.Error
		if !errors.As(err, &pe) {
			t.Errorf("Solve() error %T is not *errors.Error", err)
		}
		return
	}

	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(answers) != len(want) {
		t.Fatalf("Solve() returned %d answers, want %d", len(answers), len(want))
	}
	for i, a := range answers {
		if a.Part != i+1 {
			t.Errorf("answer %d Part = %d, want %d", i, a.Part, i+1)
		}
		if a.Value != want[i] {
			t.Errorf("answer %d Value = %d, want %d", i, a.Value, want[i])
		}
	}
}
