package solver

import (
	"fmt"
	"unicode/utf8"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/passwords"
	"mercator-hq/advent/pkg/telemetry/metrics"
	"mercator-hq/advent/pkg/toboggan"
)

// NewRegistryFromConfig registers the expense, passwords and toboggan
// solvers configured by cfg.
func NewRegistryFromConfig(cfg *config.PuzzlesConfig, collector *metrics.Collector) (*Registry, error) {
	kinds := make([]passwords.Kind, 0, len(cfg.Passwords.Kinds))
	for _, k := range cfg.Passwords.Kinds {
		kind, err := passwords.ParseKind(k)
		if err != nil {
			return nil, fmt.Errorf("puzzles.passwords.kinds: %w", err)
		}
		kinds = append(kinds, kind)
	}

	var marker rune
	if cfg.Toboggan.Marker != "" {
		r, size := utf8.DecodeRuneInString(cfg.Toboggan.Marker)
		if size != len(cfg.Toboggan.Marker) {
			return nil, fmt.Errorf("puzzles.toboggan.marker: must be a single character, got %q", cfg.Toboggan.Marker)
		}
		marker = r
	}

	reg := NewRegistry()
	solvers := []Solver{
		&ExpenseSolver{Target: cfg.Expense.Target},
		&PasswordsSolver{
			Kinds:     kinds,
			KeepGoing: cfg.Passwords.KeepGoing,
			Metrics:   collector,
		},
		&TobogganSolver{
			Marker:  marker,
			Slope:   RouteFromConfig(cfg.Toboggan.Slope),
			Routes:  RoutesFromConfig(cfg.Toboggan.Routes),
			Metrics: collector,
		},
	}
	for _, s := range solvers {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// InputPath returns the configured input file of the named puzzle.
func InputPath(cfg *config.PuzzlesConfig, name string) (string, bool) {
	switch name {
	case "expense":
		return cfg.Expense.Input, true
	case "passwords":
		return cfg.Passwords.Input, true
	case "toboggan":
		return cfg.Toboggan.Input, true
	default:
		return "", false
	}
}

// RouteFromConfig converts a configured slope.
func RouteFromConfig(r config.RouteConfig) toboggan.Route {
	return toboggan.Route{Right: r.Right, Down: r.Down}
}

// RoutesFromConfig converts configured slopes.
func RoutesFromConfig(routes []config.RouteConfig) []toboggan.Route {
	out := make([]toboggan.Route, len(routes))
	for i, r := range routes {
		out[i] = RouteFromConfig(r)
	}
	return out
}
