// Package nav finds routes over the road network of a finalized grid.
// Two backends share the Pathfinder contract: A* directly on grid cells
// and A* on an explicit road graph built from the same grid.
package nav

import (
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// Path is an ordered run of adjacent, mutually connected road cells. The
// first element is the start and the last the goal.
type Path []world.Point

// Len returns the number of cells on the path.
func (p Path) Len() int { return len(p) }

// Waypoints converts the path to world positions lifted by height.
func (p Path) Waypoints(g *world.Grid, height float64) []vmath.Vec3 {
	out := make([]vmath.Vec3, len(p))
	for i, pt := range p {
		out[i] = vmath.Up(g.WorldPos(pt), height)
	}
	return out
}

// Pathfinder finds a lowest-cost road path between two cells. ok is false
// when either end is not a road cell or the goal is unreachable.
type Pathfinder interface {
	FindPath(start, goal world.Point) (Path, bool)
}

// Manhattan returns |ax-bx| + |ay-by|.
func Manhattan(a, b world.Point) int {
	return a.Manhattan(b)
}

// PathCost returns the number of unit steps along p.
func PathCost(p Path) int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Connected reports whether traffic can move from a to its neighbor in
// direction d: both must be road tiles that connect towards each other.
func Connected(g *world.Grid, a world.Point, d tiles.Direction) bool {
	from := g.Variant(a)
	if from == nil || !from.Connects(d) {
		return false
	}
	to := g.Variant(a.Step(d))
	return to != nil && to.Connects(d.Opposite())
}

// Neighbors returns the cells reachable from p in one step, in
// top, bottom, left, right order.
func Neighbors(g *world.Grid, p world.Point) []world.Point {
	out := make([]world.Point, 0, 4)
	for _, d := range tiles.Directions {
		if Connected(g, p, d) {
			out = append(out, p.Step(d))
		}
	}
	return out
}
