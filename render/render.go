// Package render defines the draw sinks game objects emit geometry into.
// Sinks own rasterization; callers only enqueue commands between Begin and End.
package render

import (
	"image/color"

	"github.com/pthm-cable/pong/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// View maps world coordinates into screen pixels.
type View interface {
	WorldToScreen(p r2.Vec) r2.Vec
	// ScreenScale is the number of screen pixels per world unit.
	ScreenScale() float64
	// ScreenRotation is the rotation applied to world content, in radians.
	ScreenRotation() float64
}

// Texture names an image the backend knows how to draw.
type Texture struct {
	Name          string
	Width, Height float64
}

// Center returns the texture midpoint in texel coordinates.
func (t Texture) Center() r2.Vec {
	return r2.Vec{X: t.Width / 2, Y: t.Height / 2}
}

// SpriteBatch draws textured quads and text.
type SpriteBatch interface {
	Begin(view View)
	End()
	// DrawSprite draws tex with its origin texel placed at pos, rotated around origin.
	DrawSprite(tex Texture, pos r2.Vec, rotation float64, origin r2.Vec, tint color.RGBA)
	DrawString(text string, pos r2.Vec, size float64, c color.RGBA)
	MeasureString(text string, size float64) r2.Vec
	FillRect(rect geom.AABB, c color.RGBA)
}

// PrimitiveBatch draws colored lines and filled triangles.
type PrimitiveBatch interface {
	Begin(view View)
	End()
	DrawLine(a, b r2.Vec, c color.RGBA)
	DrawTriangle(a, b, c r2.Vec, col color.RGBA)
}

// ScreenSpace is the identity view used for overlays drawn in pixels.
type ScreenSpace struct{}

func (ScreenSpace) WorldToScreen(p r2.Vec) r2.Vec { return p }
func (ScreenSpace) ScreenScale() float64          { return 1 }
func (ScreenSpace) ScreenRotation() float64       { return 0 }

// Palette
var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black     = color.RGBA{A: 255}
	Gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	DarkGray  = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	Red       = color.RGBA{R: 230, G: 41, B: 55, A: 255}
	Green     = color.RGBA{R: 0, G: 228, B: 48, A: 255}
	Yellow    = color.RGBA{R: 253, G: 249, B: 0, A: 255}
	Cyan      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Overlay   = color.RGBA{A: 160}
	Highlight = color.RGBA{R: 100, G: 149, B: 237, A: 255}

	// BlueViolet is the ball and unselected menu item color.
	BlueViolet = color.RGBA{R: 138, G: 43, B: 226, A: 255}
	Dim        = color.RGBA{A: 200}
)
