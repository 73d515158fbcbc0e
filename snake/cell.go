package snake

import "fmt"

// Cell is an integer grid position.
type Cell struct {
	X, Y int
}

// Add returns the component-wise sum of c and other.
func (c Cell) Add(other Cell) Cell {
	return Cell{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Bounds is a rectangular region of the grid, measured in cells. It is
// half-open: a cell is inside when Origin <= cell < Origin+extent on both axes.
type Bounds struct {
	Origin Cell
	Width  int
	Height int
}

// NewBounds creates bounds with the given origin and extent.
func NewBounds(x, y, width, height int) Bounds {
	return Bounds{Origin: Cell{X: x, Y: y}, Width: width, Height: height}
}

// Empty reports whether the bounds contain no cells.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Area returns the number of cells inside the bounds.
func (b Bounds) Area() int {
	if b.Empty() {
		return 0
	}
	return b.Width * b.Height
}

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.Origin.X && c.X < b.Origin.X+b.Width &&
		c.Y >= b.Origin.Y && c.Y < b.Origin.Y+b.Height
}

// Wrap folds c back into the bounds toroidally. A cell one step past an edge
// re-enters at the opposite edge.
func (b Bounds) Wrap(c Cell) Cell {
	if b.Empty() {
		return c
	}
	return Cell{
		X: b.Origin.X + mod(c.X-b.Origin.X, b.Width),
		Y: b.Origin.Y + mod(c.Y-b.Origin.Y, b.Height),
	}
}

// Index returns the row-major index of c within the bounds. c must be inside.
func (b Bounds) Index(c Cell) int {
	return (c.Y-b.Origin.Y)*b.Width + (c.X - b.Origin.X)
}

// CellAt is the inverse of Index.
func (b Bounds) CellAt(index int) Cell {
	return Cell{
		X: b.Origin.X + index%b.Width,
		Y: b.Origin.Y + index/b.Width,
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("%v+%dx%d", b.Origin, b.Width, b.Height)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
