package toboggan

import (
	"fmt"
	"strconv"
	"strings"

	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
)

// Route is a slope: Right columns per Down rows.
type Route struct {
	Right int `yaml:"right" json:"right"`
	Down  int `yaml:"down" json:"down"`
}

// String returns the route as "right,down".
func (r Route) String() string {
	return fmt.Sprintf("%d,%d", r.Right, r.Down)
}

// DefaultRoutes are the slopes whose counts are multiplied for the second
// answer.
var DefaultRoutes = []Route{
	{Right: 1, Down: 1},
	{Right: 3, Down: 1},
	{Right: 5, Down: 1},
	{Right: 7, Down: 1},
	{Right: 1, Down: 2},
}

// ParseRoute parses "right,down", e.g. "3,1".
func ParseRoute(s string) (Route, error) {
	rs, ds, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Route{}, fmt.Errorf("route %q: expected right,down", s)
	}
	right, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Route{}, fmt.Errorf("route %q: invalid right step: %w", s, err)
	}
	down, err := strconv.Atoi(strings.TrimSpace(ds))
	if err != nil {
		return Route{}, fmt.Errorf("route %q: invalid down step: %w", s, err)
	}
	r := Route{Right: right, Down: down}
	if err := r.validate(); err != nil {
		return Route{}, err
	}
	return r, nil
}

func (r Route) validate() error {
	if r.Right < 1 {
		return puzzleerrors.New(puzzleerrors.KindInvalidStride, "right step %d must be positive", r.Right).WithField("right")
	}
	if r.Down < 1 {
		return puzzleerrors.New(puzzleerrors.KindInvalidStride, "down step %d must be positive", r.Down).WithField("down")
	}
	return nil
}

// CountEncountered walks rows 0, dy, 2*dy, ... and, on the k-th visited row,
// looks at column (k*dx) mod width. It returns how many of the visited cells
// are occupied. The column is advanced modulo width so any positive dx is
// safe.
func (g *Grid) CountEncountered(dx, dy int) (int, error) {
	if err := (Route{Right: dx, Down: dy}).validate(); err != nil {
		return 0, err
	}

	step := dx % g.width
	count := 0
	for x, y := 0, 0; y < len(g.rows); x, y = (x+step)%g.width, y+dy {
		if g.Occupied(x, y) {
			count++
		}
	}
	return count, nil
}

// CountFunc counts the occupied cells along one route.
type CountFunc func(r Route) (int, error)

// Product returns the product of count over routes, along with the
// individual counts in route order. A nil count uses CountEncountered. An
// empty route list yields 1.
func (g *Grid) Product(routes []Route, count CountFunc) (int, []int, error) {
	if count == nil {
		count = func(r Route) (int, error) {
			return g.CountEncountered(r.Right, r.Down)
		}
	}

	product := 1
	counts := make([]int, 0, len(routes))
	for _, r := range routes {
		n, err := count(r)
		if err != nil {
			return 0, nil, fmt.Errorf("route %s: %w", r, err)
		}
		counts = append(counts, n)
		product *= n
	}
	return product, counts, nil
}
