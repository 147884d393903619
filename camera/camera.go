// Package camera provides a 2D camera that maps world coordinates to window
// pixels under pan, rotation and zoom.
package camera

import (
	"image"
	"math"

	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Containment classifies how a box relates to the visible area.
type Containment uint8

const (
	Disjoint Containment = iota
	Intersects
	Contains
)

// Controls are the free camera speeds, per second.
type Controls struct {
	PanSpeed    float64
	RotateSpeed float64
	ZoomSpeed   float64
}

// DefaultControls are used by New.
var DefaultControls = Controls{PanSpeed: 300, RotateSpeed: 1.5, ZoomSpeed: 1}

// Camera controls the view into the world. The world point at Position is
// drawn at the center of the virtual screen.
type Camera struct {
	// Position is the camera center in world coordinates
	Position r2.Vec

	// Rotation in radians, applied about Origin
	Rotation float64

	// Origin is the pivot for rotation and zoom, relative to Position
	Origin r2.Vec

	// Parallax scales Position for layered scrolling; (1,1) is normal
	Parallax r2.Vec

	// Enabled gates input-driven movement in Update
	Enabled bool

	Controls Controls

	zoom    float64
	minZoom float64
	maxZoom float64

	adapter ScreenAdapter

	cached    transformKey
	transform *mat.Dense
	inverse   *mat.Dense
}

// transformKey captures every input of the world-to-screen transform.
type transformKey struct {
	pos, origin, parallax r2.Vec
	rot, zoom             float64
	viewport              geom.AABB
	scale, virtual        r2.Vec
	valid                 bool
}

// New creates a camera at the world origin with 1:1 zoom and no upper zoom bound.
func New(adapter ScreenAdapter) *Camera {
	if adapter == nil {
		panic("camera: New called with nil screen adapter")
	}
	return &Camera{
		Parallax: r2.Vec{X: 1, Y: 1},
		Controls: DefaultControls,
		zoom:     1,
		maxZoom:  math.Inf(1),
		adapter:  adapter,
	}
}

// Adapter returns the screen adapter.
func (c *Camera) Adapter() ScreenAdapter { return c.adapter }

// Zoom returns the zoom level (1.0 = 1:1, 2.0 = 2x magnification).
func (c *Camera) Zoom() float64 { return c.zoom }

// MinimumZoom returns the lower zoom bound.
func (c *Camera) MinimumZoom() float64 { return c.minZoom }

// MaximumZoom returns the upper zoom bound.
func (c *Camera) MaximumZoom() float64 { return c.maxZoom }

// SetZoom sets the zoom level. Values outside the bounds, and non-positive
// values, are ignored.
func (c *Camera) SetZoom(zoom float64) {
	if zoom <= 0 || zoom < c.minZoom || zoom > c.maxZoom || math.IsNaN(zoom) {
		return
	}
	c.zoom = zoom
}

// SetMinimumZoom sets the lower bound and pulls the zoom up to it if needed.
// Negative values and values above the upper bound are ignored.
func (c *Camera) SetMinimumZoom(v float64) {
	if v < 0 || v > c.maxZoom {
		return
	}
	c.minZoom = v
	if c.zoom < v {
		c.zoom = v
	}
}

// SetMaximumZoom sets the upper bound and pulls the zoom down to it if needed.
// Non-positive values and values below the lower bound are ignored.
func (c *Camera) SetMaximumZoom(v float64) {
	if v <= 0 || v < c.minZoom {
		return
	}
	c.maxZoom = v
	if c.zoom > v {
		c.zoom = v
	}
}

// ZoomIn increases zoom by delta, clamped to the bounds.
func (c *Camera) ZoomIn(delta float64) {
	c.clampZoom(c.zoom + delta)
}

// ZoomOut decreases zoom by delta, clamped to the bounds.
func (c *Camera) ZoomOut(delta float64) {
	c.clampZoom(c.zoom - delta)
}

// zoomFloor is where stepped zooming stops when the minimum is zero.
const zoomFloor = 0.01

func (c *Camera) clampZoom(v float64) {
	v = geom.Clamp(v, c.minZoom, c.maxZoom)
	if v <= 0 {
		v = min(zoomFloor, c.maxZoom)
	}
	c.zoom = v
}

// Move pans by direction expressed in screen orientation.
func (c *Camera) Move(direction r2.Vec) {
	c.Position = r2.Add(c.Position, geom.Rotate(direction, -c.Rotation))
}

// Rotate adds delta radians to the rotation.
func (c *Camera) Rotate(delta float64) {
	c.Rotation += delta
}

// LookAt centers the view on p.
func (c *Camera) LookAt(p r2.Vec) {
	c.Position = p
}

// Reset restores position, origin, rotation and zoom.
func (c *Camera) Reset() {
	c.Position = r2.Vec{}
	c.Origin = r2.Vec{}
	c.Rotation = 0
	c.zoom = geom.Clamp(1, c.minZoom, c.maxZoom)
}

// ViewMatrix returns the virtual view transform in column-vector form:
// translate(-position*parallax), translate(-origin), rotate, scale(zoom),
// translate(origin), applied in that order.
func (c *Camera) ViewMatrix(parallax r2.Vec) *mat.Dense {
	return compose(
		translation(c.Origin.X, c.Origin.Y),
		scaling(c.zoom, c.zoom),
		rotation(c.Rotation),
		translation(-c.Origin.X, -c.Origin.Y),
		translation(-c.Position.X*parallax.X, -c.Position.Y*parallax.Y),
	)
}

// Transform returns the full world-to-window matrix.
func (c *Camera) Transform() *mat.Dense {
	c.refresh()
	return c.transform
}

// InverseTransform returns the window-to-world matrix.
func (c *Camera) InverseTransform() *mat.Dense {
	c.refresh()
	return c.inverse
}

func (c *Camera) key() transformKey {
	return transformKey{
		pos:      c.Position,
		origin:   c.Origin,
		parallax: c.Parallax,
		rot:      c.Rotation,
		zoom:     c.zoom,
		viewport: c.adapter.Viewport(),
		scale:    c.adapter.Scale(),
		virtual:  c.adapter.VirtualSize(),
		valid:    true,
	}
}

func (c *Camera) refresh() {
	k := c.key()
	if k == c.cached {
		return
	}
	c.cached = k

	half := r2.Scale(0.5, k.virtual)
	c.transform = compose(
		translation(k.viewport.Lower.X, k.viewport.Lower.Y),
		scaling(k.scale.X, k.scale.Y),
		translation(half.X, half.Y),
		c.ViewMatrix(k.parallax),
	)

	// Each step inverted in reverse order keeps the inverse exact.
	c.inverse = compose(
		translation(k.pos.X*k.parallax.X, k.pos.Y*k.parallax.Y),
		translation(k.origin.X, k.origin.Y),
		rotation(-k.rot),
		scaling(1/k.zoom, 1/k.zoom),
		translation(-k.origin.X, -k.origin.Y),
		translation(-half.X, -half.Y),
		scaling(1/k.scale.X, 1/k.scale.Y),
		translation(-k.viewport.Lower.X, -k.viewport.Lower.Y),
	)
}

// WorldToScreen converts world coordinates to window pixels.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return apply(c.Transform(), p)
}

// ScreenToWorld converts window pixels to world coordinates.
func (c *Camera) ScreenToWorld(p r2.Vec) r2.Vec {
	return apply(c.InverseTransform(), p)
}

// MouseWorldPosition returns the mouse position in world coordinates.
func (c *Camera) MouseWorldPosition(in input.Input) r2.Vec {
	return c.ScreenToWorld(in.MousePosition())
}

// ScreenScale returns window pixels per world unit along the smaller axis.
func (c *Camera) ScreenScale() float64 {
	s := c.adapter.Scale()
	return c.zoom * min(s.X, s.Y)
}

// ScreenRotation returns the rotation applied to world content.
func (c *Camera) ScreenRotation() float64 {
	return c.Rotation
}

// Rectangle returns the virtual screen rectangle, used to lay out overlays.
func (c *Camera) Rectangle() image.Rectangle {
	v := c.adapter.VirtualSize()
	return image.Rect(0, 0, int(v.X), int(v.Y))
}

// Frustum returns the world-space bounds of everything the viewport can show.
func (c *Camera) Frustum() geom.AABB {
	vp := c.adapter.Viewport()
	var out geom.AABB
	for i, corner := range vp.Vertices() {
		w := c.ScreenToWorld(corner)
		if i == 0 {
			out = geom.AABB{Lower: w, Upper: w}
			continue
		}
		out.Combine(geom.AABB{Lower: w, Upper: w})
	}
	return out
}

// BoundingRectangle returns Frustum rounded out to integer world units.
func (c *Camera) BoundingRectangle() image.Rectangle {
	f := c.Frustum()
	return image.Rect(
		int(math.Floor(f.Lower.X)), int(math.Floor(f.Lower.Y)),
		int(math.Ceil(f.Upper.X)), int(math.Ceil(f.Upper.Y)),
	)
}

// Contains reports whether the world point p is drawn inside the viewport.
func (c *Camera) Contains(p r2.Vec) bool {
	s := c.WorldToScreen(p)
	vp := c.adapter.Viewport()
	return s.X >= vp.Lower.X && s.X <= vp.Upper.X && s.Y >= vp.Lower.Y && s.Y <= vp.Upper.Y
}

// ContainsAABB classifies box against the visible world bounds.
func (c *Camera) ContainsAABB(box geom.AABB) Containment {
	f := c.Frustum()
	switch {
	case f.Contains(box):
		return Contains
	case geom.TestOverlap(f, box):
		return Intersects
	}
	return Disjoint
}

// Update applies free camera controls while enabled:
// S/F/E/D pan, W/R rotate, X/V zoom, Q resets.
func (c *Camera) Update(dt float64, in input.Input) {
	if !c.Enabled || in == nil {
		return
	}

	pan := c.Controls.PanSpeed * dt / c.zoom
	if in.IsKeyDown(input.KeyS) {
		c.Move(r2.Vec{X: -pan})
	}
	if in.IsKeyDown(input.KeyF) {
		c.Move(r2.Vec{X: pan})
	}
	if in.IsKeyDown(input.KeyE) {
		c.Move(r2.Vec{Y: -pan})
	}
	if in.IsKeyDown(input.KeyD) {
		c.Move(r2.Vec{Y: pan})
	}

	if in.IsKeyDown(input.KeyW) {
		c.Rotate(-c.Controls.RotateSpeed * dt)
	}
	if in.IsKeyDown(input.KeyR) {
		c.Rotate(c.Controls.RotateSpeed * dt)
	}

	if in.IsKeyDown(input.KeyX) {
		c.ZoomIn(c.Controls.ZoomSpeed * dt)
	}
	if in.IsKeyDown(input.KeyV) {
		c.ZoomOut(c.Controls.ZoomSpeed * dt)
	}

	if in.IsKeyDown(input.KeyQ) {
		c.Reset()
	}
}
