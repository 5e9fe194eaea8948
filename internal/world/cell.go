// Package world holds the tile grid: the per-cell domain store, the
// constraint propagation solver that collapses it, and the finalized grid
// handed to pathfinding.
package world

import (
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
)

// Cell is either superposed over a set of candidate variants or collapsed
// to exactly one. The two states never share storage: candidates live in
// domain, the final choice in resolved.
type Cell struct {
	domain   []*tiles.Variant
	resolved *tiles.Variant
	worldPos vmath.Vec3
}

// Collapsed reports whether the cell has been fixed to one variant.
func (c *Cell) Collapsed() bool {
	return c.resolved != nil
}

// Resolved returns the fixed variant, or nil while superposed.
func (c *Cell) Resolved() *tiles.Variant {
	return c.resolved
}

// Options returns the number of variants still possible.
func (c *Cell) Options() int {
	if c.resolved != nil {
		return 1
	}
	return len(c.domain)
}

// Domain returns a copy of the candidate set. A collapsed cell reports
// exactly its resolved variant.
func (c *Cell) Domain() []*tiles.Variant {
	if c.resolved != nil {
		return []*tiles.Variant{c.resolved}
	}
	out := make([]*tiles.Variant, len(c.domain))
	copy(out, c.domain)
	return out
}

// Contradicted reports a superposed cell with no candidates left.
func (c *Cell) Contradicted() bool {
	return c.resolved == nil && len(c.domain) == 0
}

// WorldPos is the cell's world position, valid once collapsed.
func (c *Cell) WorldPos() vmath.Vec3 {
	return c.worldPos
}

func (c *Cell) has(v *tiles.Variant) bool {
	for _, candidate := range c.domain {
		if candidate == v {
			return true
		}
	}
	return false
}
