package maze

import "strings"

// Format draws a grid as ASCII art. Closed walls are drawn with "+---+"
// and "|"; frontier cells are marked with "." and unvisited cells with "#".
func Format(g GridReader) string {
	var b strings.Builder
	width, height := g.Width(), g.Height()

	for row := 0; row < height; row++ {
		// North walls
		b.WriteString("+")
		for col := 0; col < width; col++ {
			if g.Get(col, row).Open(DirNorth) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")

		// Cell bodies with west/east walls
		if width > 0 && g.Get(0, row).Open(DirWest) {
			b.WriteString(" ")
		} else {
			b.WriteString("|")
		}
		for col := 0; col < width; col++ {
			cell := g.Get(col, row)
			switch {
			case cell.Has(InMaze):
				b.WriteString("   ")
			case cell.Has(Frontier):
				b.WriteString(" . ")
			default:
				b.WriteString(" # ")
			}
			if cell.Open(DirEast) {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")
	}

	// Bottom boundary
	b.WriteString("+")
	for col := 0; col < width; col++ {
		if height > 0 && g.Get(col, height-1).Open(DirSouth) {
			b.WriteString("   +")
		} else {
			b.WriteString("---+")
		}
	}
	b.WriteString("\n")

	return b.String()
}
