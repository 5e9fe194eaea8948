package nav

import (
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// RoadNode is one road cell in a RoadGraph.
type RoadNode struct {
	GridPos   world.Point
	WorldPos  vmath.Vec3
	Neighbors []*RoadNode

	index int
}

// RoadGraph is an explicit adjacency view of the road network. It owns its
// nodes; callers hold references only while the graph is alive.
type RoadGraph struct {
	nodes []*RoadNode
	byPos map[world.Point]*RoadNode
}

// BuildRoadGraph creates one node per road cell of g, in scan order, and
// links every pair of mutually connected neighbors.
func BuildRoadGraph(g *world.Grid) *RoadGraph {
	roads := g.RoadCells()
	rg := &RoadGraph{
		nodes: make([]*RoadNode, 0, len(roads)),
		byPos: make(map[world.Point]*RoadNode, len(roads)),
	}
	for i, p := range roads {
		n := &RoadNode{GridPos: p, WorldPos: g.WorldPos(p), index: i}
		rg.nodes = append(rg.nodes, n)
		rg.byPos[p] = n
	}
	for _, n := range rg.nodes {
		for _, d := range tiles.Directions {
			if Connected(g, n.GridPos, d) {
				n.Neighbors = append(n.Neighbors, rg.byPos[n.GridPos.Step(d)])
			}
		}
	}
	return rg
}

// Node returns the node at p.
func (rg *RoadGraph) Node(p world.Point) (*RoadNode, bool) {
	n, ok := rg.byPos[p]
	return n, ok
}

// Nodes returns every node in scan order. The slice is a copy.
func (rg *RoadGraph) Nodes() []*RoadNode {
	return append([]*RoadNode(nil), rg.nodes...)
}

// Len returns the number of nodes.
func (rg *RoadGraph) Len() int { return len(rg.nodes) }

// GraphPathfinder runs A* on a RoadGraph using straight-line world distance
// for both edge cost and heuristic.
type GraphPathfinder struct {
	graph *RoadGraph
}

// NewGraphPathfinder returns a pathfinder over rg.
func NewGraphPathfinder(rg *RoadGraph) *GraphPathfinder {
	return &GraphPathfinder{graph: rg}
}

// FindPath looks up both cells in the graph and searches between them.
func (f *GraphPathfinder) FindPath(start, goal world.Point) (Path, bool) {
	s, ok := f.graph.Node(start)
	if !ok {
		return nil, false
	}
	e, ok := f.graph.Node(goal)
	if !ok {
		return nil, false
	}
	nodes, ok := f.FindNodePath(s, e)
	if !ok {
		return nil, false
	}
	path := make(Path, len(nodes))
	for i, n := range nodes {
		path[i] = n.GridPos
	}
	return path, true
}

// FindNodePath returns the cheapest node sequence from start to goal. Both
// nodes must belong to this pathfinder's graph.
func (f *GraphPathfinder) FindNodePath(start, goal *RoadNode) ([]*RoadNode, bool) {
	if start == nil || goal == nil || !f.owns(start) || !f.owns(goal) {
		return nil, false
	}
	if start == goal {
		return []*RoadNode{start}, true
	}

	nodes := f.graph.nodes
	gScore := make([]float64, len(nodes))
	cameFrom := make([]int, len(nodes))
	closed := make([]bool, len(nodes))
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = -1
	}
	gScore[start.index] = 0

	var open openHeap
	open.push(start.index, 0, vmath.Distance(start.WorldPos, goal.WorldPos))

	for open.len() > 0 {
		e := open.pop()
		if closed[e.idx] || e.g != gScore[e.idx] {
			continue
		}
		if e.idx == goal.index {
			var rev []*RoadNode
			for i := e.idx; i >= 0; i = cameFrom[i] {
				rev = append(rev, nodes[i])
			}
			out := make([]*RoadNode, len(rev))
			for i, n := range rev {
				out[len(rev)-1-i] = n
			}
			return out, true
		}
		closed[e.idx] = true

		current := nodes[e.idx]
		for _, n := range current.Neighbors {
			if closed[n.index] {
				continue
			}
			tentative := e.g + vmath.Distance(current.WorldPos, n.WorldPos)
			if gScore[n.index] >= 0 && tentative >= gScore[n.index] {
				continue
			}
			gScore[n.index] = tentative
			cameFrom[n.index] = e.idx
			open.push(n.index, tentative, vmath.Distance(n.WorldPos, goal.WorldPos))
		}
	}
	return nil, false
}

func (f *GraphPathfinder) owns(n *RoadNode) bool {
	return n.index < len(f.graph.nodes) && f.graph.nodes[n.index] == n
}
