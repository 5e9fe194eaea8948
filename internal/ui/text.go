package ui

import (
	"strings"

	"github.com/samdwyer/tileroads/internal/world"
)

// Lines renders g as plain text, top row first, for non-interactive
// output. marks overrides the glyph of individual cells; unplaced cells
// print as '?'.
func Lines(g *world.Grid, marks map[world.Point]rune) []string {
	out := make([]string, 0, g.Height())
	for y := g.Height() - 1; y >= 0; y-- {
		var b strings.Builder
		for x := 0; x < g.Width(); x++ {
			p := world.Point{X: x, Y: y}
			if r, ok := marks[p]; ok {
				b.WriteRune(r)
				continue
			}
			if v := g.Variant(p); v != nil {
				b.WriteRune(v.GlyphRune())
			} else {
				b.WriteRune('?')
			}
		}
		out = append(out, b.String())
	}
	return out
}
