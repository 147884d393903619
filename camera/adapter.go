package camera

import (
	"github.com/pthm-cable/pong/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// ScreenAdapter maps the virtual resolution the game is laid out in onto the
// real window.
type ScreenAdapter interface {
	VirtualSize() r2.Vec
	// Viewport is the window region, in pixels, the virtual screen is drawn into.
	Viewport() geom.AABB
	// Scale converts virtual pixels to window pixels.
	Scale() r2.Vec
	// Resize is called when the window size changes.
	Resize(w, h float64)
}

// NewAdapter returns the adapter named by kind: "default", "scaling" or "letterbox".
// Unknown kinds fall back to the default adapter.
func NewAdapter(kind string, windowW, windowH, virtualW, virtualH float64) ScreenAdapter {
	switch kind {
	case "scaling":
		return NewScalingAdapter(windowW, windowH, virtualW, virtualH)
	case "letterbox":
		return NewLetterboxAdapter(windowW, windowH, virtualW, virtualH)
	}
	return NewDefaultAdapter(windowW, windowH)
}

// DefaultAdapter uses the window resolution directly.
type DefaultAdapter struct {
	w, h float64
}

// NewDefaultAdapter creates an adapter whose virtual size tracks the window.
func NewDefaultAdapter(w, h float64) *DefaultAdapter {
	return &DefaultAdapter{w: w, h: h}
}

func (a *DefaultAdapter) VirtualSize() r2.Vec { return r2.Vec{X: a.w, Y: a.h} }
func (a *DefaultAdapter) Scale() r2.Vec       { return r2.Vec{X: 1, Y: 1} }
func (a *DefaultAdapter) Resize(w, h float64) { a.w, a.h = w, h }

func (a *DefaultAdapter) Viewport() geom.AABB {
	return geom.AABB{Upper: r2.Vec{X: a.w, Y: a.h}}
}

// ScalingAdapter stretches a fixed virtual resolution over the whole window.
type ScalingAdapter struct {
	windowW, windowH   float64
	virtualW, virtualH float64
}

// NewScalingAdapter creates a stretching adapter.
func NewScalingAdapter(windowW, windowH, virtualW, virtualH float64) *ScalingAdapter {
	return &ScalingAdapter{windowW: windowW, windowH: windowH, virtualW: virtualW, virtualH: virtualH}
}

func (a *ScalingAdapter) VirtualSize() r2.Vec { return r2.Vec{X: a.virtualW, Y: a.virtualH} }
func (a *ScalingAdapter) Resize(w, h float64) { a.windowW, a.windowH = w, h }

func (a *ScalingAdapter) Viewport() geom.AABB {
	return geom.AABB{Upper: r2.Vec{X: a.windowW, Y: a.windowH}}
}

func (a *ScalingAdapter) Scale() r2.Vec {
	return r2.Vec{X: a.windowW / a.virtualW, Y: a.windowH / a.virtualH}
}

// LetterboxAdapter scales the virtual resolution uniformly and centers it,
// leaving bars on the sides that do not fit.
type LetterboxAdapter struct {
	ScalingAdapter
}

// NewLetterboxAdapter creates an aspect-preserving adapter.
func NewLetterboxAdapter(windowW, windowH, virtualW, virtualH float64) *LetterboxAdapter {
	return &LetterboxAdapter{ScalingAdapter{windowW: windowW, windowH: windowH, virtualW: virtualW, virtualH: virtualH}}
}

func (a *LetterboxAdapter) Scale() r2.Vec {
	s := a.uniform()
	return r2.Vec{X: s, Y: s}
}

func (a *LetterboxAdapter) Viewport() geom.AABB {
	s := a.uniform()
	w, h := a.virtualW*s, a.virtualH*s
	lower := r2.Vec{X: (a.windowW - w) / 2, Y: (a.windowH - h) / 2}
	return geom.AABB{Lower: lower, Upper: r2.Add(lower, r2.Vec{X: w, Y: h})}
}

func (a *LetterboxAdapter) uniform() float64 {
	return min(a.windowW/a.virtualW, a.windowH/a.virtualH)
}

// VirtualView maps virtual screen pixels into the window. Overlays laid out
// against the virtual resolution draw through it.
type VirtualView struct {
	Adapter ScreenAdapter
}

func (v VirtualView) WorldToScreen(p r2.Vec) r2.Vec {
	s := v.Adapter.Scale()
	return r2.Add(v.Adapter.Viewport().Lower, r2.Vec{X: p.X * s.X, Y: p.Y * s.Y})
}

func (v VirtualView) ScreenScale() float64 {
	s := v.Adapter.Scale()
	return min(s.X, s.Y)
}

func (v VirtualView) ScreenRotation() float64 { return 0 }
