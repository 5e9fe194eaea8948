// Package motion moves agents along waypoint lists one tick at a time.
// Everything here is pure; the caller owns the clock.
package motion

import "github.com/samdwyer/tileroads/internal/vmath"

// ArrivalThreshold is how close an agent must get to a waypoint before it
// heads for the next one.
const ArrivalThreshold = 0.1

// Advance moves pos toward path[0] by at most speed*dt. The target is held
// at pos's height so agents stay on their driving plane. path holds the
// waypoints still ahead; the returned index is where the remaining path
// starts after this tick (1 once path[0] is reached, otherwise 0).
func Advance(pos vmath.Vec3, path []vmath.Vec3, speed, dt float64) (vmath.Vec3, int) {
	if len(path) == 0 || speed <= 0 || dt <= 0 {
		return pos, 0
	}
	target := path[0]
	target.Y = pos.Y

	next := vmath.MoveTowards(pos, target, speed*dt)
	if vmath.Distance(next, target) < ArrivalThreshold {
		return next, 1
	}
	return next, 0
}

// Heading returns the unit direction from pos to target on the ground
// plane, or the zero vector when they coincide.
func Heading(pos, target vmath.Vec3) vmath.Vec3 {
	d := vmath.Sub(target, pos)
	d.Y = 0
	return vmath.Normalize(d)
}

// Follow runs Advance against a full route, starting at index next, and
// returns the new position and index. It is a convenience for callers
// that keep the whole route rather than slicing it.
func Follow(pos vmath.Vec3, route []vmath.Vec3, next int, speed, dt float64) (vmath.Vec3, int) {
	if next >= len(route) {
		return pos, next
	}
	pos, consumed := Advance(pos, route[next:], speed, dt)
	return pos, next + consumed
}
