// Package geom provides axis-aligned bounding boxes and the small vector
// helpers the collision code is built on.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the single precision machine epsilon used for strict point tests.
const Epsilon = 1.192092896e-07

// AABB is an axis-aligned rectangle given by its lower and upper corners.
type AABB struct {
	Lower r2.Vec
	Upper r2.Vec
}

// NewAABB creates a box from two corners.
func NewAABB(lower, upper r2.Vec) AABB {
	return AABB{Lower: lower, Upper: upper}
}

// FromCenter creates a box of the given size around center.
func FromCenter(center r2.Vec, width, height float64) AABB {
	half := r2.Vec{X: width / 2, Y: height / 2}
	return AABB{Lower: r2.Sub(center, half), Upper: r2.Add(center, half)}
}

// Width returns Upper.X - Lower.X.
func (b AABB) Width() float64 { return b.Upper.X - b.Lower.X }

// Height returns Upper.Y - Lower.Y.
func (b AABB) Height() float64 { return b.Upper.Y - b.Lower.Y }

// Center returns the midpoint of the box.
func (b AABB) Center() r2.Vec {
	return r2.Scale(0.5, r2.Add(b.Lower, b.Upper))
}

// Extents returns the half size of the box.
func (b AABB) Extents() r2.Vec {
	return r2.Scale(0.5, r2.Sub(b.Upper, b.Lower))
}

// Perimeter returns the length of the box outline.
func (b AABB) Perimeter() float64 {
	return 2 * (b.Width() + b.Height())
}

// Vertices returns the corners in counter-clockwise order starting at Lower.
func (b AABB) Vertices() [4]r2.Vec {
	return [4]r2.Vec{
		b.Lower,
		{X: b.Upper.X, Y: b.Lower.Y},
		b.Upper,
		{X: b.Lower.X, Y: b.Upper.Y},
	}
}

// IsValid reports whether the bounds are sorted and finite.
func (b AABB) IsValid() bool {
	d := r2.Sub(b.Upper, b.Lower)
	if d.X < 0 || d.Y < 0 {
		return false
	}
	return IsValidVec(b.Lower) && IsValidVec(b.Upper)
}

// Contains reports whether other lies entirely inside b. Touching edges count.
func (b AABB) Contains(other AABB) bool {
	return b.Lower.X <= other.Lower.X &&
		b.Lower.Y <= other.Lower.Y &&
		other.Upper.X <= b.Upper.X &&
		other.Upper.Y <= b.Upper.Y
}

// ContainsPoint reports whether p lies strictly inside b, at least Epsilon
// away from every edge.
func (b AABB) ContainsPoint(p r2.Vec) bool {
	return p.X > b.Lower.X+Epsilon && p.X < b.Upper.X-Epsilon &&
		p.Y > b.Lower.Y+Epsilon && p.Y < b.Upper.Y-Epsilon
}

// TestOverlap reports whether a and b intersect. Touching edges count as overlap.
func TestOverlap(a, b AABB) bool {
	d1 := r2.Sub(b.Lower, a.Upper)
	d2 := r2.Sub(a.Lower, b.Upper)

	if d1.X > 0 || d1.Y > 0 {
		return false
	}
	if d2.X > 0 || d2.Y > 0 {
		return false
	}
	return true
}

// Combine returns the smallest box enclosing a and b.
func Combine(a, b AABB) AABB {
	return AABB{
		Lower: r2.Vec{X: math.Min(a.Lower.X, b.Lower.X), Y: math.Min(a.Lower.Y, b.Lower.Y)},
		Upper: r2.Vec{X: math.Max(a.Upper.X, b.Upper.X), Y: math.Max(a.Upper.Y, b.Upper.Y)},
	}
}

// Combine grows b in place to enclose other.
func (b *AABB) Combine(other AABB) {
	*b = Combine(*b, other)
}

// Offset translates b in place.
func (b *AABB) Offset(d r2.Vec) {
	b.Lower = r2.Add(b.Lower, d)
	b.Upper = r2.Add(b.Upper, d)
}

// Offsetted returns a translated copy of b.
func (b AABB) Offsetted(d r2.Vec) AABB {
	b.Offset(d)
	return b
}

// Q1 returns the upper-right quadrant.
func (b AABB) Q1() AABB {
	return AABB{Lower: b.Center(), Upper: b.Upper}
}

// Q2 returns the upper-left quadrant.
func (b AABB) Q2() AABB {
	c := b.Center()
	return AABB{Lower: r2.Vec{X: b.Lower.X, Y: c.Y}, Upper: r2.Vec{X: c.X, Y: b.Upper.Y}}
}

// Q3 returns the lower-left quadrant.
func (b AABB) Q3() AABB {
	return AABB{Lower: b.Lower, Upper: b.Center()}
}

// Q4 returns the lower-right quadrant.
func (b AABB) Q4() AABB {
	c := b.Center()
	return AABB{Lower: r2.Vec{X: c.X, Y: b.Lower.Y}, Upper: r2.Vec{X: b.Upper.X, Y: c.Y}}
}

// Box converts b into gonum's box type.
func (b AABB) Box() r2.Box {
	return r2.Box{Min: b.Lower, Max: b.Upper}
}
