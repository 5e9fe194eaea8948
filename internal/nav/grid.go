package nav

import (
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/world"
)

// GridPathfinder runs A* directly on grid cells with unit step cost and a
// Manhattan heuristic.
type GridPathfinder struct {
	grid *world.Grid
}

// NewGridPathfinder returns a pathfinder over g. The grid must not change
// while the pathfinder is in use.
func NewGridPathfinder(g *world.Grid) *GridPathfinder {
	return &GridPathfinder{grid: g}
}

// FindPath returns a shortest road path from start to goal.
func (f *GridPathfinder) FindPath(start, goal world.Point) (Path, bool) {
	g := f.grid
	if !g.IsRoad(start) || !g.IsRoad(goal) {
		return nil, false
	}
	if start == goal {
		return Path{start}, true
	}

	height := g.Height()
	size := g.Width() * height
	index := func(p world.Point) int { return p.X*height + p.Y }
	point := func(i int) world.Point { return world.Point{X: i / height, Y: i % height} }

	gScore := make([]float64, size)
	cameFrom := make([]int, size)
	closed := make([]bool, size)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = -1
	}

	startIdx, goalIdx := index(start), index(goal)
	gScore[startIdx] = 0

	var open openHeap
	open.push(startIdx, 0, float64(Manhattan(start, goal)))

	for open.len() > 0 {
		e := open.pop()
		if closed[e.idx] || e.g != gScore[e.idx] {
			continue
		}
		if e.idx == goalIdx {
			return reconstruct(cameFrom, goalIdx, point), true
		}
		closed[e.idx] = true

		current := point(e.idx)
		for _, d := range tiles.Directions {
			if !Connected(g, current, d) {
				continue
			}
			n := current.Step(d)
			nIdx := index(n)
			if closed[nIdx] {
				continue
			}
			tentative := e.g + 1
			if gScore[nIdx] >= 0 && tentative >= gScore[nIdx] {
				continue
			}
			gScore[nIdx] = tentative
			cameFrom[nIdx] = e.idx
			open.push(nIdx, tentative, float64(Manhattan(n, goal)))
		}
	}
	return nil, false
}

func reconstruct(cameFrom []int, goal int, point func(int) world.Point) Path {
	var rev Path
	for i := goal; i >= 0; i = cameFrom[i] {
		rev = append(rev, point(i))
	}
	path := make(Path, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
