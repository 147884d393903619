package render

import (
	"image/color"

	"github.com/pthm-cable/pong/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// DrawRectangle fills box with two triangles.
func DrawRectangle(b PrimitiveBatch, box geom.AABB, c color.RGBA) {
	v := box.Vertices()
	b.DrawTriangle(v[0], v[1], v[2], c)
	b.DrawTriangle(v[0], v[2], v[3], c)
}

// DrawRectangleOutline draws the four edges of box.
func DrawRectangleOutline(b PrimitiveBatch, box geom.AABB, c color.RGBA) {
	v := box.Vertices()
	for i := range v {
		b.DrawLine(v[i], v[(i+1)%len(v)], c)
	}
}

// DrawAABB outlines box. Alias kept for debug overlays.
func DrawAABB(b PrimitiveBatch, box geom.AABB, c color.RGBA) {
	DrawRectangleOutline(b, box, c)
}

// DrawMarkerCross draws an X of the given half size centered on p.
func DrawMarkerCross(b PrimitiveBatch, p r2.Vec, size float64, c color.RGBA) {
	b.DrawLine(r2.Vec{X: p.X - size, Y: p.Y - size}, r2.Vec{X: p.X + size, Y: p.Y + size}, c)
	b.DrawLine(r2.Vec{X: p.X - size, Y: p.Y + size}, r2.Vec{X: p.X + size, Y: p.Y - size}, c)
}

// DrawMarkerSquare fills a square of the given half size centered on p.
func DrawMarkerSquare(b PrimitiveBatch, p r2.Vec, size float64, c color.RGBA) {
	DrawRectangle(b, geom.FromCenter(p, 2*size, 2*size), c)
}

// DrawRectangleVerticesMarkers marks each corner of box with a small square.
func DrawRectangleVerticesMarkers(b PrimitiveBatch, box geom.AABB, size float64, c color.RGBA) {
	for _, v := range box.Vertices() {
		DrawMarkerSquare(b, v, size, c)
	}
}
