package maze

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInvalidDimension is returned when a width or height is not positive.
var ErrInvalidDimension = errors.New("invalid dimension")

// InvariantViolation is the panic value raised when the generator breaks one
// of its own invariants, such as touching a cell outside the grid.
type InvariantViolation string

func (v InvariantViolation) Error() string {
	return "maze: internal invariant violated: " + string(v)
}

// GridReader is the read-only view renderers need.
type GridReader interface {
	Get(col, row int) Cell
	Width() int
	Height() int
}

// Grid is a width x height array of cell bitmasks.
//
// Each cell is stored atomically. One goroutine mutates the grid while it is
// growing; readers may load cells at any time and observe a state that is in
// progress but never a half-written cell. Multi-cell updates (such as opening
// a wall pair) are not atomic as a unit.
type Grid struct {
	width  int
	height int
	cells  []atomic.Uint32
}

// NewGrid creates a zeroed grid. Both dimensions must be positive.
func NewGrid(width, height int) (*Grid, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]atomic.Uint32, width*height),
	}, nil
}

func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("maze: %dx%d: %w", width, height, ErrInvalidDimension)
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds returns true if (col, row) lies inside the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// Get returns the cell at (col, row).
func (g *Grid) Get(col, row int) Cell {
	return Cell(g.cells[g.index(col, row)].Load())
}

// SetFlag sets flag on the cell at (col, row).
func (g *Grid) SetFlag(col, row int, flag Cell) {
	g.cells[g.index(col, row)].Or(uint32(flag))
}

// ClearFlag clears flag on the cell at (col, row).
func (g *Grid) ClearFlag(col, row int, flag Cell) {
	g.cells[g.index(col, row)].And(^uint32(flag))
}

// include marks a cell InMaze and clears Frontier in a single store.
func (g *Grid) include(col, row int) {
	c := &g.cells[g.index(col, row)]
	c.Store((c.Load() &^ uint32(Frontier)) | uint32(InMaze))
}

// Snapshot copies the grid into height rows of width cells.
func (g *Grid) Snapshot() [][]Cell {
	rows := make([][]Cell, g.height)
	for row := range rows {
		rows[row] = make([]Cell, g.width)
		for col := range rows[row] {
			rows[row][col] = g.Get(col, row)
		}
	}
	return rows
}

func (g *Grid) index(col, row int) int {
	if !g.InBounds(col, row) {
		panic(InvariantViolation(fmt.Sprintf("cell (%d,%d) outside %dx%d grid", col, row, g.width, g.height)))
	}
	return row*g.width + col
}
