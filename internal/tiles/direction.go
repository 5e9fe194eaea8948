package tiles

// Direction is one of the four tile edges.
type Direction int

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

// Directions lists every edge in propagation order.
var Directions = [4]Direction{Top, Bottom, Left, Right}

// Offset returns the grid step toward the neighbor across this edge.
// Top is +y, matching world space where z grows with y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Top:
		return 0, 1
	case Bottom:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the edge that faces this one on the neighbor.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// String returns a human-readable edge name.
func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
