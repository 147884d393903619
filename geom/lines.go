package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// LineLineIntersect returns the intersection of the infinite lines p1-p2 and q1-q2.
// The second result is false when the lines are parallel.
func LineLineIntersect(p1, p2, q1, q2 r2.Vec) (r2.Vec, bool) {
	denom := (q2.Y-q1.Y)*(p2.X-p1.X) - (q2.X-q1.X)*(p2.Y-p1.Y)
	if FloatEquals(denom, 0) {
		return r2.Vec{}, false
	}
	s := ((q2.X-q1.X)*(p1.Y-q1.Y) - (q2.Y-q1.Y)*(p1.X-q1.X)) / denom
	return r2.Add(p1, r2.Scale(s, r2.Sub(p2, p1))), true
}

// IsLeftOf reports whether point lies left of the directed line p1->p2 in
// screen space (y down). Collinear points are not left.
func IsLeftOf(point, p1, p2 r2.Vec) bool {
	return r2.Cross(r2.Sub(p2, p1), r2.Sub(point, p1)) < 0
}

// DistancePointSegment returns the distance from point to the segment start-end
// and the closest point on the segment.
func DistancePointSegment(point, start, end r2.Vec) (float64, r2.Vec) {
	if start == end {
		return r2.Norm(r2.Sub(point, start)), start
	}

	v := r2.Sub(end, start)
	w := r2.Sub(point, start)

	c1 := r2.Dot(w, v)
	if c1 <= 0 {
		return r2.Norm(w), start
	}
	c2 := r2.Dot(v, v)
	if c2 <= c1 {
		return r2.Norm(r2.Sub(point, end)), end
	}

	on := r2.Add(start, r2.Scale(c1/c2, v))
	return r2.Norm(r2.Sub(point, on)), on
}
