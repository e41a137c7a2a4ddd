package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/palette"
)

// Layout places a maze of square cells centered on a canvas.
type Layout struct {
	CellSize int
	OffsetX  int
	OffsetY  int
}

// ComputeLayout fits width x height cells into a canvas. CellSize is zero
// when the canvas is too small to give every cell a unit.
func ComputeLayout(canvasWidth, canvasHeight, width, height int) Layout {
	if width <= 0 || height <= 0 || canvasWidth <= 0 || canvasHeight <= 0 {
		return Layout{}
	}
	size := min(canvasWidth/width, canvasHeight/height)
	if size == 0 {
		return Layout{}
	}
	return Layout{
		CellSize: size,
		OffsetX:  (canvasWidth - width*size) / 2,
		OffsetY:  (canvasHeight - height*size) / 2,
	}
}

// CellClass groups cells by the colour they are drawn with.
type CellClass int

const (
	ClassUnvisited CellClass = iota
	ClassFrontier
	ClassInMaze
)

// Classify returns the drawing class of a cell.
func Classify(c maze.Cell) CellClass {
	switch {
	case c.Has(maze.InMaze):
		return ClassInMaze
	case c.Has(maze.Frontier):
		return ClassFrontier
	default:
		return ClassUnvisited
	}
}

// Renderer handles drawing mazes to the screen.
type Renderer struct {
	screen  *Screen
	palette palette.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, p palette.Palette) *Renderer {
	return &Renderer{screen: screen, palette: p}
}

// Render draws the grid above a one-line status bar. The grid is only read.
// A nil grid draws just the status bar.
//
// Terminal cells are roughly twice as tall as they are wide, so each maze
// cell spans 2*CellSize columns and CellSize rows.
func (r *Renderer) Render(grid maze.GridReader, status string) {
	r.screen.Clear()

	screenW, screenH := r.screen.Size()
	canvasH := screenH - 1

	if grid != nil {
		layout := ComputeLayout(screenW/2, canvasH, grid.Width(), grid.Height())
		if layout.CellSize == 0 {
			r.RenderMessage("terminal too small", 0)
		} else {
			for row := 0; row < grid.Height(); row++ {
				for col := 0; col < grid.Width(); col++ {
					r.drawCell(layout, col, row, grid.Get(col, row))
				}
			}
		}
	}

	r.RenderMessage(status, screenH-1)
	r.screen.Show()
}

// drawCell paints one cell block and a boundary on every closed side.
func (r *Renderer) drawCell(layout Layout, col, row int, cell maze.Cell) {
	size := layout.CellSize
	blockW, blockH := 2*size, size
	x0 := 2*layout.OffsetX + col*blockW
	y0 := layout.OffsetY + row*blockH

	style := tcell.StyleDefault.
		Background(r.classColor(Classify(cell))).
		Foreground(r.palette.Wall)

	for dy := 0; dy < blockH; dy++ {
		for dx := 0; dx < blockW; dx++ {
			horizontal := (dy == 0 && !cell.Open(maze.DirNorth)) ||
				(dy == blockH-1 && !cell.Open(maze.DirSouth))
			vertical := (dx == 0 && !cell.Open(maze.DirWest)) ||
				(dx == blockW-1 && !cell.Open(maze.DirEast))
			r.screen.SetContent(x0+dx, y0+dy, wallRune(horizontal, vertical), style)
		}
	}
}

func wallRune(horizontal, vertical bool) rune {
	switch {
	case horizontal && vertical:
		return '┼'
	case horizontal:
		return '─'
	case vertical:
		return '│'
	default:
		return ' '
	}
}

func (r *Renderer) classColor(class CellClass) tcell.Color {
	switch class {
	case ClassInMaze:
		return r.palette.InMaze
	case ClassFrontier:
		return r.palette.Frontier
	default:
		return r.palette.Unvisited
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(r.palette.Status)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
