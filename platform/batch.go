package platform

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Sprites draws textured quads and text straight to the current raylib frame.
type Sprites struct {
	textures map[string]rl.Texture2D
	view     render.View
}

// NewSprites creates a sprite batch over textures, keyed by render.Texture name.
func NewSprites(textures map[string]rl.Texture2D) *Sprites {
	return &Sprites{textures: textures}
}

func (s *Sprites) Begin(view render.View) {
	if view == nil {
		view = render.ScreenSpace{}
	}
	s.view = view
}

func (s *Sprites) End() { s.view = nil }

// DrawSprite skips textures that were never loaded.
func (s *Sprites) DrawSprite(tex render.Texture, pos r2.Vec, rotation float64, origin r2.Vec, tint color.RGBA) {
	t, ok := s.textures[tex.Name]
	if !ok || s.view == nil {
		return
	}
	src := rl.Rectangle{Width: float32(t.Width), Height: float32(t.Height)}
	dst, org := spriteDest(s.view, tex, pos, origin)
	deg := (rotation + s.view.ScreenRotation()) * 180 / math.Pi
	rl.DrawTexturePro(t, src, dst, org, float32(deg), tint)
}

func (s *Sprites) DrawString(text string, pos r2.Vec, size float64, c color.RGBA) {
	if s.view == nil {
		return
	}
	p := s.view.WorldToScreen(pos)
	rl.DrawText(text, int32(p.X), int32(p.Y), int32(size*s.view.ScreenScale()), c)
}

func (s *Sprites) MeasureString(text string, size float64) r2.Vec {
	return r2.Vec{X: float64(rl.MeasureText(text, int32(size))), Y: size}
}

func (s *Sprites) FillRect(rect geom.AABB, c color.RGBA) {
	if s.view == nil {
		return
	}
	a := s.view.WorldToScreen(rect.Lower)
	b := s.view.WorldToScreen(rect.Upper)
	rl.DrawRectangleRec(rl.Rectangle{
		X:      float32(min(a.X, b.X)),
		Y:      float32(min(a.Y, b.Y)),
		Width:  float32(math.Abs(b.X - a.X)),
		Height: float32(math.Abs(b.Y - a.Y)),
	}, c)
}

// spriteDest returns the destination rectangle and the pivot, both in screen
// pixels, for a texture whose origin texel lands on pos.
func spriteDest(view render.View, tex render.Texture, pos, origin r2.Vec) (rl.Rectangle, rl.Vector2) {
	p := view.WorldToScreen(pos)
	scale := view.ScreenScale()
	dst := rl.Rectangle{
		X:      float32(p.X),
		Y:      float32(p.Y),
		Width:  float32(tex.Width * scale),
		Height: float32(tex.Height * scale),
	}
	return dst, rl.Vector2{X: float32(origin.X * scale), Y: float32(origin.Y * scale)}
}

// Primitives draws lines and filled triangles straight to the current raylib frame.
type Primitives struct {
	view render.View
}

func (p *Primitives) Begin(view render.View) {
	if view == nil {
		view = render.ScreenSpace{}
	}
	p.view = view
}

func (p *Primitives) End() { p.view = nil }

func (p *Primitives) DrawLine(a, b r2.Vec, c color.RGBA) {
	if p.view == nil {
		return
	}
	rl.DrawLineV(vec(p.view.WorldToScreen(a)), vec(p.view.WorldToScreen(b)), c)
}

func (p *Primitives) DrawTriangle(a, b, c r2.Vec, col color.RGBA) {
	if p.view == nil {
		return
	}
	v1, v2, v3 := screenTriangle(p.view, a, b, c)
	rl.DrawTriangle(v1, v2, v3, col)
}

// screenTriangle projects abc and orders it counter-clockwise as seen on
// screen, which is the only winding raylib fills.
func screenTriangle(view render.View, a, b, c r2.Vec) (rl.Vector2, rl.Vector2, rl.Vector2) {
	a, b, c = view.WorldToScreen(a), view.WorldToScreen(b), view.WorldToScreen(c)
	if geom.Area(a, b, c) > 0 {
		b, c = c, b
	}
	return vec(a), vec(b), vec(c)
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
