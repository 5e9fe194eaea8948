package world

import (
	"fmt"

	"github.com/samdwyer/tileroads/internal/tiles"
)

// Point is a cell coordinate on the grid.
type Point struct {
	X, Y int
}

// Step returns the neighboring coordinate across edge d.
func (p Point) Step(d tiles.Direction) Point {
	dx, dy := d.Offset()
	return Point{p.X + dx, p.Y + dy}
}

// Manhattan returns the 4-connected grid distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
