package solver

import (
	"context"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
	"mercator-hq/advent/pkg/telemetry/metrics"
	"mercator-hq/advent/pkg/telemetry/tracing"
	"mercator-hq/advent/pkg/toboggan"
)

// TobogganSolver counts occupied cells along slopes through a repeating grid.
type TobogganSolver struct {
	// Marker denotes an occupied cell. Zero means '#'.
	Marker rune

	// Slope is the route of the first answer.
	Slope toboggan.Route

	// Routes are multiplied for the second answer. Empty means
	// toboggan.DefaultRoutes.
	Routes []toboggan.Route

	Metrics *metrics.Collector
}

// Name implements Solver.
func (s *TobogganSolver) Name() string { return "toboggan" }

// Solve returns the count along Slope (part 1) and the product over Routes
// (part 2).
func (s *TobogganSolver) Solve(ctx context.Context, input []byte) ([]Answer, error) {
	marker := s.Marker
	if marker == 0 {
		marker = toboggan.DefaultMarker
	}
	slope := s.Slope
	if slope == (toboggan.Route{}) {
		slope = toboggan.Route{Right: 3, Down: 1}
	}
	routes := s.Routes
	if len(routes) == 0 {
		routes = toboggan.DefaultRoutes
	}

	grid, err := toboggan.BuildWithMarker(string(input), marker)
	if err != nil {
		return nil, err
	}

	trees, err := s.traverse(ctx, grid, slope)
	if err != nil {
		return nil, err
	}

	product, _, err := grid.Product(routes, func(r toboggan.Route) (int, error) {
		return s.traverse(ctx, grid, r)
	})
	if err != nil {
		return nil, err
	}

	return []Answer{
		{Part: 1, Label: "Trees encountered", Value: int64(trees)},
		{Part: 2, Label: "Route product", Value: int64(product)},
	}, nil
}

func (s *TobogganSolver) traverse(ctx context.Context, grid *toboggan.Grid, r toboggan.Route) (int, error) {
	_, span := tracing.StartSpan(ctx, "toboggan.traverse")
	defer span.End()

	n, err := grid.CountEncountered(r.Right, r.Down)
	if err != nil {
		errKind, _ := puzzleerrors.KindOf(err)
		tracing.SetErrorAttributes(span, err, string(errKind))
		tracing.SetStatus(span, err)
		return 0, err
	}

	s.Metrics.RecordTrees(r.String(), n)
	tracing.NewAttributeBuilder().WithRoute(r.String(), n).Apply(span)
	return n, nil
}
