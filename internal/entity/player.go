// Package entity provides the agents that move over the road map: the
// player's car and the autonomous traffic.
package entity

import (
	"github.com/samdwyer/tileroads/internal/tiles"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// Player is the player's car. It moves one grid cell at a time.
type Player struct {
	X, Y   int             // Current cell on the map
	Symbol rune            // Display symbol ('&')
	Facing tiles.Direction // Direction of the last move
	Height float64         // Driving height above the tile
}

// NewPlayer creates a player on the given cell.
func NewPlayer(p world.Point, height float64) *Player {
	return &Player{
		X:      p.X,
		Y:      p.Y,
		Symbol: '&',
		Facing: tiles.Top,
		Height: height,
	}
}

// Move steps the player one cell in direction d and turns it that way.
// Whether the move is legal is the caller's decision.
func (p *Player) Move(d tiles.Direction) {
	q := p.Position().Step(d)
	p.X, p.Y = q.X, q.Y
	p.Facing = d
}

// Position returns the current cell.
func (p *Player) Position() world.Point {
	return world.Point{X: p.X, Y: p.Y}
}

// WorldPos returns the player's world position on a grid of the given
// tile size.
func (p *Player) WorldPos(tileSize float64) vmath.Vec3 {
	return vmath.Vec3{X: float64(p.X) * tileSize, Y: p.Height, Z: float64(p.Y) * tileSize}
}
