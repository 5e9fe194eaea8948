package world

import (
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
)

// Placement is a finalized tile on the grid.
type Placement struct {
	Point
	Variant  *tiles.Variant
	WorldPos vmath.Vec3
}

// Grid is the read-only result of generation. Cells that never collapsed
// (contradictions, or an interrupted run) have no placement.
type Grid struct {
	width    int
	height   int
	tileSize float64
	cells    []*Placement // indexed by x*height + y
	roads    []Point
	nonRoads []Point
}

// Grid snapshots the store into a finalized grid and partitions the
// placed cells into road and non-road lists in scan order.
func (s *Store) Grid() *Grid {
	g := &Grid{
		width:    s.width,
		height:   s.height,
		tileSize: s.tileSize,
		cells:    make([]*Placement, len(s.cells)),
	}
	s.each(func(p Point, c *Cell) {
		if !c.Collapsed() {
			return
		}
		g.cells[p.X*s.height+p.Y] = &Placement{Point: p, Variant: c.resolved, WorldPos: c.worldPos}
		if c.resolved.Road {
			g.roads = append(g.roads, p)
		} else {
			g.nonRoads = append(g.nonRoads, p)
		}
	})
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TileSize returns the world-space edge length of one cell.
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the placement at p. ok is false when p is out of bounds or
// the cell was never placed.
func (g *Grid) At(p Point) (pl Placement, ok bool) {
	if !g.InBounds(p) {
		return Placement{}, false
	}
	cell := g.cells[p.X*g.height+p.Y]
	if cell == nil {
		return Placement{}, false
	}
	return *cell, true
}

// Variant returns the variant placed at p, or nil.
func (g *Grid) Variant(p Point) *tiles.Variant {
	pl, ok := g.At(p)
	if !ok {
		return nil
	}
	return pl.Variant
}

// IsRoad reports whether p holds a road tile.
func (g *Grid) IsRoad(p Point) bool {
	v := g.Variant(p)
	return v != nil && v.Road
}

// WorldPos returns the world position of p whether or not it was placed.
func (g *Grid) WorldPos(p Point) vmath.Vec3 {
	return vmath.Vec3{X: float64(p.X) * g.tileSize, Z: float64(p.Y) * g.tileSize}
}

// RoadCells returns the road coordinates in scan order. The slice is a copy.
func (g *Grid) RoadCells() []Point {
	return append([]Point(nil), g.roads...)
}

// NonRoadCells returns the placed non-road coordinates in scan order.
func (g *Grid) NonRoadCells() []Point {
	return append([]Point(nil), g.nonRoads...)
}

// Placements returns every placed cell in scan order.
func (g *Grid) Placements() []Placement {
	out := make([]Placement, 0, len(g.cells))
	for _, cell := range g.cells {
		if cell != nil {
			out = append(out, *cell)
		}
	}
	return out
}

// Placed returns the number of cells holding a tile.
func (g *Grid) Placed() int {
	return len(g.roads) + len(g.nonRoads)
}
