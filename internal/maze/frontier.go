package maze

// Point is a cell coordinate.
type Point struct {
	Col, Row int
}

// frontier is the unordered set of cells waiting to join the maze.
// Membership is guarded by the Frontier flag on the grid, so a point is
// never added twice.
type frontier struct {
	points []Point
}

func (f *frontier) add(p Point) {
	f.points = append(f.points, p)
}

// removeAt removes and returns the point at index i. Order is not preserved.
func (f *frontier) removeAt(i int) Point {
	last := len(f.points) - 1
	p := f.points[i]
	f.points[i] = f.points[last]
	f.points = f.points[:last]
	return p
}

func (f *frontier) len() int {
	return len(f.points)
}
