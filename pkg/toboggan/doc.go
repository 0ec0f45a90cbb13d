// Package toboggan models a horizontally repeating occupancy grid and counts
// the occupied cells met when sliding through it along a fixed slope.
//
// The grid text is a rectangular block such as
//
//	..##.......
//	#...#...#..
//	.#....#..#.
//
// where '#' marks an occupied cell. The pattern repeats to the right
// indefinitely, so a traversal wraps column indices modulo the width.
//
//	grid, err := toboggan.Build(text)
//	if err != nil {
//	    return err
//	}
//	trees, err := grid.CountEncountered(3, 1)
//
// A Grid never changes after Build returns and may be traversed from several
// goroutines at once.
package toboggan
