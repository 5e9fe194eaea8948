package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tileroads/internal/motion"
	"github.com/samdwyer/tileroads/internal/vmath"
	"github.com/samdwyer/tileroads/internal/world"
)

// carColors cycles through distinguishable colors as cars spawn.
var carColors = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorDodgerBlue,
	tcell.ColorLime,
	tcell.ColorFuchsia,
	tcell.ColorOrange,
	tcell.ColorAqua,
}

// Car is an autonomous agent driving a fixed waypoint route.
type Car struct {
	ID    string
	Speed float64
	Color tcell.Color

	pos     vmath.Vec3
	heading vmath.Vec3
	route   []vmath.Vec3
	next    int
}

// NewCar places a car on the first waypoint of route.
func NewCar(id string, route []vmath.Vec3, speed float64) *Car {
	c := &Car{
		ID:    id,
		Speed: speed,
		Color: tcell.ColorWhite,
		route: append([]vmath.Vec3(nil), route...),
	}
	if len(route) > 0 {
		c.pos = route[0]
	}
	return c
}

// Update drives the car for dt seconds.
func (c *Car) Update(dt float64) {
	if c.Arrived() {
		return
	}
	target := c.route[c.next]
	c.pos, c.next = motion.Follow(c.pos, c.route, c.next, c.Speed, dt)
	if h := motion.Heading(c.pos, target); h != (vmath.Vec3{}) {
		c.heading = h
	}
}

// Arrived reports whether the car has reached its last waypoint.
func (c *Car) Arrived() bool {
	return c.next >= len(c.route)
}

// Position returns the car's world position.
func (c *Car) Position() vmath.Vec3 { return c.pos }

// Heading returns the unit direction of travel, zero before the car moves.
func (c *Car) Heading() vmath.Vec3 { return c.heading }

// Remaining returns the number of waypoints still ahead.
func (c *Car) Remaining() int {
	return len(c.route) - c.next
}

// Cell returns the grid cell under the car.
func (c *Car) Cell(tileSize float64) world.Point {
	if tileSize <= 0 {
		tileSize = world.DefaultTileSize
	}
	return world.Point{
		X: int(math.Round(c.pos.X / tileSize)),
		Y: int(math.Round(c.pos.Z / tileSize)),
	}
}

// Symbol returns an arrow for the direction of travel. Screen rows grow
// downward while map y grows upward, so +Z draws as '^'.
func (c *Car) Symbol() rune {
	h := c.heading
	switch {
	case h == (vmath.Vec3{}):
		return 'o'
	case math.Abs(h.X) >= math.Abs(h.Z) && h.X > 0:
		return '>'
	case math.Abs(h.X) >= math.Abs(h.Z):
		return '<'
	case h.Z > 0:
		return '^'
	default:
		return 'v'
	}
}

// Fleet collects the cars of a session. It receives spawns from the
// session as they are planned.
type Fleet struct {
	Cars []*Car
}

// SpawnAgent adds a car driving waypoints at speed.
func (f *Fleet) SpawnAgent(id string, waypoints []vmath.Vec3, speed float64) {
	car := NewCar(id, waypoints, speed)
	car.Color = carColors[len(f.Cars)%len(carColors)]
	f.Cars = append(f.Cars, car)
}

// Update drives every car for dt seconds.
func (f *Fleet) Update(dt float64) {
	for _, c := range f.Cars {
		c.Update(dt)
	}
}

// Driving returns the number of cars still on their way.
func (f *Fleet) Driving() int {
	n := 0
	for _, c := range f.Cars {
		if !c.Arrived() {
			n++
		}
	}
	return n
}
