package game

import (
	"math"

	"github.com/mazehunt/mazehunt-api/maze"
)

// Vec2 is a point or direction on the XZ plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Z: v.Z + o.Z}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Z: v.Z * s}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// Normalized returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// circleRectIntersect tests a circle against an axis-aligned wall
// rectangle by clamping the center onto the rectangle and comparing the
// squared distance to the squared radius.
func circleRectIntersect(c Vec2, r float64, rect maze.WallRect) bool {
	nx := clamp(c.X, rect.X, rect.X+rect.W)
	nz := clamp(c.Z, rect.Z, rect.Z+rect.H)
	dx := c.X - nx
	dz := c.Z - nz
	return dx*dx+dz*dz <= r*r
}

func circlesIntersect(a Vec2, ra float64, b Vec2, rb float64) bool {
	d := a.Sub(b)
	sum := ra + rb
	return d.X*d.X+d.Z*d.Z <= sum*sum
}

func collidesAny(c Vec2, r float64, walls []maze.WallRect) bool {
	for _, w := range walls {
		if circleRectIntersect(c, r, w) {
			return true
		}
	}
	return false
}

// slideStep advances a circle by step, testing the X and Z components
// independently so that movement into a wall slides along it instead of
// sticking.
func slideStep(pos Vec2, step Vec2, r float64, walls []maze.WallRect) Vec2 {
	next := Vec2{X: pos.X + step.X, Z: pos.Z}
	if collidesAny(next, r, walls) {
		next.X = pos.X
	}
	next.Z = pos.Z + step.Z
	if collidesAny(next, r, walls) {
		next.Z = pos.Z
	}
	return next
}
