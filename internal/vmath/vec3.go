// Package vmath provides the float vector helpers used for world positions.
package vmath

import "math"

// Vec3 is a world-space position or direction. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func Mag(v Vec3) float64 {
	return math.Sqrt(MagSq(v))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return Mag(Sub(a, b))
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v Vec3) Vec3 {
	mag := Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// MoveTowards steps from current toward target by at most maxDelta,
// landing exactly on target when it is within reach.
func MoveTowards(current, target Vec3, maxDelta float64) Vec3 {
	delta := Sub(target, current)
	dist := Mag(delta)
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return Add(current, Scale(delta, maxDelta/dist))
}

// Up returns v raised by h along the Y axis.
func Up(v Vec3, h float64) Vec3 {
	return Vec3{v.X, v.Y + h, v.Z}
}
