package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FloatEquals reports whether a and b differ by at most Epsilon.
func FloatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// FloatEqualsTol reports whether a and b differ by at most tol.
func FloatEqualsTol(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// FloatInRange reports whether lo <= v <= hi, widened by Epsilon.
func FloatInRange(v, lo, hi float64) bool {
	return v >= lo-Epsilon && v <= hi+Epsilon
}

// IsValid reports whether x is neither NaN nor infinite.
func IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsValidVec reports whether both components of v are finite.
func IsValidVec(v r2.Vec) bool {
	return IsValid(v.X) && IsValid(v.Y)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func Normalize(v r2.Vec) r2.Vec {
	if r2.Norm(v) < Epsilon {
		return v
	}
	return r2.Unit(v)
}

// Reflect mirrors d about the line perpendicular to the unit normal n.
func Reflect(d, n r2.Vec) r2.Vec {
	return r2.Sub(d, r2.Scale(2*r2.Dot(d, n), n))
}

// Rotate rotates v counter-clockwise by angle radians around the origin.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	return r2.Rotate(v, angle, r2.Vec{})
}

// Direction returns the unit vector pointing from a to b.
func Direction(a, b r2.Vec) r2.Vec {
	return Normalize(r2.Sub(b, a))
}

// LeftNormal returns v rotated a quarter turn counter-clockwise.
func LeftNormal(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// RightNormal returns v rotated a quarter turn clockwise.
func RightNormal(v r2.Vec) r2.Vec {
	return r2.Vec{X: v.Y, Y: -v.X}
}

// VectorAngle returns the signed angle from a to b in (-pi, pi].
func VectorAngle(a, b r2.Vec) float64 {
	theta1 := math.Atan2(a.Y, a.X)
	theta2 := math.Atan2(b.Y, b.X)
	d := theta2 - theta1
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// Area returns twice the signed area of triangle abc.
// Positive when the vertices wind counter-clockwise in a y-up frame.
func Area(a, b, c r2.Vec) float64 {
	return a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y)
}

// IsCollinear reports whether abc is degenerate within tol.
func IsCollinear(a, b, c r2.Vec, tol float64) bool {
	return FloatInRange(Area(a, b, c), -tol, tol)
}
