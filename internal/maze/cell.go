// Package maze provides the grid model and spanning-tree maze generation.
package maze

import "strings"

// Cell is the per-position bitmask of wall openings and visitation state.
// A zero Cell is unvisited.
type Cell uint32

const (
	// North is set when the wall on the north side is open.
	North Cell = 1 << iota
	// South is set when the wall on the south side is open.
	South
	// East is set when the wall on the east side is open.
	East
	// West is set when the wall on the west side is open.
	West
	// InMaze marks permanent inclusion in the maze. Never cleared once set.
	InMaze
	// Frontier marks a pending candidate. Never set together with InMaze.
	Frontier
)

// Has returns true if every bit of flag is set.
func (c Cell) Has(flag Cell) bool {
	return c&flag == flag
}

// Open returns true if the wall toward dir is open.
func (c Cell) Open(dir Direction) bool {
	return c.Has(Cell(dir))
}

// Unvisited returns true if no flag is set.
func (c Cell) Unvisited() bool {
	return c == 0
}

// String returns the set flags, e.g. "N|E|in".
func (c Cell) String() string {
	if c == 0 {
		return "unvisited"
	}
	names := []struct {
		flag Cell
		name string
	}{
		{North, "N"}, {South, "S"}, {East, "E"}, {West, "W"},
		{InMaze, "in"}, {Frontier, "frontier"},
	}
	var parts []string
	for _, n := range names {
		if c.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Direction is one of the four wall directions. Its value is the matching
// open-wall bit.
type Direction Cell

// Directions in neighbor scan order.
const (
	DirWest  = Direction(West)
	DirEast  = Direction(East)
	DirNorth = Direction(North)
	DirSouth = Direction(South)
)

// Directions lists the axis directions in the order neighbors are visited.
var Directions = [4]Direction{DirWest, DirEast, DirNorth, DirSouth}

// Opposite returns the direction facing back across the same wall.
func (d Direction) Opposite() Direction {
	switch d {
	case DirNorth:
		return DirSouth
	case DirSouth:
		return DirNorth
	case DirEast:
		return DirWest
	case DirWest:
		return DirEast
	default:
		panic(InvariantViolation("opposite of invalid direction " + d.String()))
	}
}

// Delta returns the column and row offset of the neighbor in direction d.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		panic(InvariantViolation("delta of invalid direction " + d.String()))
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirEast:
		return "east"
	case DirWest:
		return "west"
	default:
		return "unknown"
	}
}

// directionTo returns the direction from one cell to an adjacent one.
func directionTo(from, to Point) Direction {
	switch {
	case from.Col < to.Col:
		return DirEast
	case from.Col > to.Col:
		return DirWest
	case from.Row < to.Row:
		return DirSouth
	default:
		return DirNorth
	}
}
