package solver

import (
	"context"

	"mercator-hq/advent/pkg/expense"
)

// ExpenseSolver finds report entries summing to Target.
type ExpenseSolver struct {
	Target int
}

// Name implements Solver.
func (s *ExpenseSolver) Name() string { return "expense" }

// Solve returns the pair product (part 1) and the triplet product (part 2).
func (s *ExpenseSolver) Solve(ctx context.Context, input []byte) ([]Answer, error) {
	target := s.Target
	if target == 0 {
		target = expense.DefaultTarget
	}

	values, err := expense.ParseValues(string(input))
	if err != nil {
		return nil, err
	}

	pair, err := expense.Pair(values, target)
	if err != nil {
		return nil, err
	}
	triplet, err := expense.Triplet(values, target)
	if err != nil {
		return nil, err
	}

	return []Answer{
		{Part: 1, Label: "Pair product", Value: int64(pair)},
		{Part: 2, Label: "Triplet product", Value: int64(triplet)},
	}, nil
}
