// Package expense finds entries of an expense report that sum to a target
// and returns their product.
package expense

import (
	"strconv"
	"strings"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// DefaultTarget is the sum the report entries must reach.
const DefaultTarget = 2020

// ParseValues reads one non-negative integer per non-blank line.
func ParseValues(text string) ([]int, error) {
	var values []int
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			e := puzzleerrors.New(puzzleerrors.KindMalformedNumber,
				"%q is not a non-negative integer", line).At("", i+1)
			if err != nil {
				e = e.WithCause(err)
			}
			return nil, e
		}
		values = append(values, n)
	}
	if len(values) == 0 {
		return nil, puzzleerrors.New(puzzleerrors.KindEmptyInput, "report has no entries")
	}
	return values, nil
}

// Pair returns the product of the first two distinct entries that sum to
// target.
func Pair(values []int, target int) (int, error) {
	for i, x := range values {
		for _, y := range values[i+1:] {
			if x+y == target {
				return x * y, nil
			}
		}
	}
	return 0, puzzleerrors.New(puzzleerrors.KindNoSolution, "no pair sums to %d", target)
}

// Triplet returns the product of the first three distinct entries that sum
// to target.
func Triplet(values []int, target int) (int, error) {
	for i, x := range values {
		for j := i + 1; j < len(values); j++ {
			y := values[j]
			if x+y > target {
				continue
			}
			for _, z := range values[j+1:] {
				if x+y+z == target {
					return x * y * z, nil
				}
			}
		}
	}
	return 0, puzzleerrors.New(puzzleerrors.KindNoSolution, "no triplet sums to %d", target)
}
