package toboggan

import (
	"strings"
	"unicode/utf8"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// DefaultMarker is the rune that marks an occupied cell.
const DefaultMarker = '#'

// Grid is an immutable boolean occupancy matrix.
type Grid struct {
	width int
	rows  [][]bool
}

// Build parses text into a Grid using DefaultMarker.
func Build(text string) (*Grid, error) {
	return BuildWithMarker(text, DefaultMarker)
}

// BuildWithMarker parses text into a Grid, treating marker as occupied and
// every other rune as clear. Lines are trimmed and blank lines dropped; the
// first remaining line fixes the width.
func BuildWithMarker(text string, marker rune) (*Grid, error) {
	g := &Grid{}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		n := utf8.RuneCountInString(line)
		if len(g.rows) == 0 {
			g.width = n
		} else if n != g.width {
			return nil, puzzleerrors.New(puzzleerrors.KindInconsistentWidth,
				"row has %d cells, expected %d", n, g.width).At("", i+1)
		}

		row := make([]bool, 0, n)
		for _, c := range line {
			row = append(row, c == marker)
		}
		g.rows = append(g.rows, row)
	}

	if len(g.rows) == 0 {
		return nil, puzzleerrors.New(puzzleerrors.KindEmptyInput, "grid has no rows")
	}

	return g, nil
}

// Width returns the number of cells in each row.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Occupied reports whether the cell at row y, column x is occupied. Columns
// wrap around the width; rows outside the grid are clear.
func (g *Grid) Occupied(x, y int) bool {
	if y < 0 || y >= len(g.rows) {
		return false
	}
	x %= g.width
	if x < 0 {
		x += g.width
	}
	return g.rows[y][x]
}
