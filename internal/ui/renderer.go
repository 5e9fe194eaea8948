package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tileroads/internal/entity"
	"github.com/samdwyer/tileroads/internal/objective"
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// Frame is everything drawn on top of the tiles in one refresh.
type Frame struct {
	Waypoints []objective.Waypoint
	Cars      []*entity.Car
	Player    *entity.Player
	HUD       []string // Lines printed below the map
}

// Renderer handles drawing the map to the screen. Map row y is drawn on
// screen row height-1-y so that +y points up.
type Renderer struct {
	screen   *Screen
	width    int
	height   int
	tileSize float64
	placed   []*tiles.Variant // indexed by x*height + y
}

// NewRenderer creates a renderer for a width x height map.
func NewRenderer(screen *Screen, width, height int, tileSize float64) *Renderer {
	return &Renderer{
		screen:   screen,
		width:    width,
		height:   height,
		tileSize: tileSize,
		placed:   make([]*tiles.Variant, width*height),
	}
}

// RenderTile records a finalized tile and draws it. Tiles outside the
// map are ignored.
func (r *Renderer) RenderTile(p world.Point, v *tiles.Variant, _ vmath.Vec3) {
	if p.X < 0 || p.X >= r.width || p.Y < 0 || p.Y >= r.height {
		return
	}
	r.placed[p.X*r.height+p.Y] = v
	r.drawTile(p, v)
}

// Render redraws the map and the frame contents, then shows the screen.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	for x := 0; x < r.width; x++ {
		for y := 0; y < r.height; y++ {
			p := world.Point{X: x, Y: y}
			r.drawTile(p, r.placed[x*r.height+y])
		}
	}

	waypointStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, w := range f.Waypoints {
		if w.Collected {
			continue
		}
		r.setCell(r.cellAt(w.Pos), rune('0'+w.Order%10), waypointStyle)
	}

	for _, c := range f.Cars {
		if c.Arrived() {
			continue
		}
		r.setCell(c.Cell(r.tileSize), c.Symbol(), tcell.StyleDefault.Foreground(c.Color).Bold(true))
	}

	// Draw player on top
	if f.Player != nil {
		playerStyle := tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.setCell(f.Player.Position(), f.Player.Symbol, playerStyle)
	}

	for i, line := range f.HUD {
		r.RenderMessage(line, r.height+1+i)
	}

	r.screen.Show()
}

// RenderMessage displays a message on the given screen row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
		i++
	}
}

func (r *Renderer) drawTile(p world.Point, v *tiles.Variant) {
	if v == nil {
		r.setCell(p, '?', tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}
	r.setCell(p, v.GlyphRune(), tcell.StyleDefault.Foreground(v.TCellColor()))
}

func (r *Renderer) setCell(p world.Point, ch rune, style tcell.Style) {
	if p.X < 0 || p.X >= r.width || p.Y < 0 || p.Y >= r.height {
		return
	}
	r.screen.SetContent(p.X, r.height-1-p.Y, ch, style)
}

func (r *Renderer) cellAt(pos vmath.Vec3) world.Point {
	size := r.tileSize
	if size <= 0 {
		size = world.DefaultTileSize
	}
	return world.Point{X: int(pos.X/size + 0.5), Y: int(pos.Z/size + 0.5)}
}
