package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	fillRune   = '█'
	lineRune   = '·'
	spriteRune = '●'
)

// Canvas rasterizes sprites, text and primitives into terminal cells. Views
// project into a virtual screen of Virtual pixels, which is stretched over
// the whole terminal.
type Canvas struct {
	Screen  tcell.Screen
	Virtual r2.Vec
	view    render.View
}

// NewCanvas creates a canvas mapping a virtual screen of the given size onto s.
func NewCanvas(s tcell.Screen, virtual r2.Vec) *Canvas {
	return &Canvas{Screen: s, Virtual: virtual}
}

func (c *Canvas) Begin(view render.View) {
	if view == nil {
		view = render.ScreenSpace{}
	}
	c.view = view
}

func (c *Canvas) End() { c.view = nil }

// cellSize returns the virtual pixels covered by one cell.
func (c *Canvas) cellSize() r2.Vec {
	cols, rows := c.Screen.Size()
	if cols == 0 || rows == 0 {
		return r2.Vec{X: 1, Y: 1}
	}
	return r2.Vec{X: c.Virtual.X / float64(cols), Y: c.Virtual.Y / float64(rows)}
}

// cell returns the cell containing the virtual pixel p.
func (c *Canvas) cell(p r2.Vec) (int, int) {
	s := c.cellSize()
	return int(math.Floor(p.X / s.X)), int(math.Floor(p.Y / s.Y))
}

func (c *Canvas) set(x, y int, r rune, style tcell.Style) {
	cols, rows := c.Screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.Screen.SetContent(x, y, r, nil, style)
}

func (c *Canvas) DrawSprite(tex render.Texture, pos r2.Vec, rotation float64, origin r2.Vec, tint color.RGBA) {
	if c.view == nil || tint.A == 0 {
		return
	}
	// Bounding box of the rotated quad
	lo := r2.Vec{X: -origin.X, Y: -origin.Y}
	corners := []r2.Vec{lo, {X: lo.X + tex.Width, Y: lo.Y}, {X: lo.X + tex.Width, Y: lo.Y + tex.Height}, {X: lo.X, Y: lo.Y + tex.Height}}
	box := geom.AABB{Lower: r2.Vec{X: math.Inf(1), Y: math.Inf(1)}, Upper: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}}
	for _, k := range corners {
		p := c.view.WorldToScreen(r2.Add(pos, r2.Rotate(k, rotation, r2.Vec{})))
		box.Lower = r2.Vec{X: min(box.Lower.X, p.X), Y: min(box.Lower.Y, p.Y)}
		box.Upper = r2.Vec{X: max(box.Upper.X, p.X), Y: max(box.Upper.Y, p.Y)}
	}
	c.fillBox(box, spriteRune, fg(tint))
}

func (c *Canvas) DrawString(text string, pos r2.Vec, size float64, col color.RGBA) {
	if c.view == nil {
		return
	}
	x, y := c.cell(c.view.WorldToScreen(pos))
	for i, r := range []rune(text) {
		// Keep whatever background is already there
		_, _, st, _ := c.Screen.GetContent(x+i, y)
		c.set(x+i, y, r, st.Foreground(rgb(col)))
	}
}

// MeasureString returns the virtual size of text drawn one rune per cell.
func (c *Canvas) MeasureString(text string, size float64) r2.Vec {
	s := c.cellSize()
	return r2.Vec{X: float64(len([]rune(text))) * s.X, Y: s.Y}
}

func (c *Canvas) FillRect(rect geom.AABB, col color.RGBA) {
	if c.view == nil || col.A == 0 {
		return
	}
	a := c.view.WorldToScreen(rect.Lower)
	b := c.view.WorldToScreen(rect.Upper)
	box := geom.AABB{
		Lower: r2.Vec{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Upper: r2.Vec{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
	c.fillBox(box, ' ', tcell.StyleDefault.Background(rgb(col)))
}

// fillBox fills every cell whose center lies in box, or the single cell at its
// center when box is smaller than a cell.
func (c *Canvas) fillBox(box geom.AABB, r rune, style tcell.Style) {
	s := c.cellSize()
	x0, y0 := int(math.Floor(box.Lower.X/s.X+0.5)), int(math.Floor(box.Lower.Y/s.Y+0.5))
	x1, y1 := int(math.Ceil(box.Upper.X/s.X-0.5)), int(math.Ceil(box.Upper.Y/s.Y-0.5))
	if x1 <= x0 || y1 <= y0 {
		x, y := c.cell(box.Center())
		c.set(x, y, r, style)
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, r, style)
		}
	}
}

func (c *Canvas) DrawLine(a, b r2.Vec, col color.RGBA) {
	if c.view == nil {
		return
	}
	style := fg(col)
	x0, y0 := c.cell(c.view.WorldToScreen(a))
	x1, y1 := c.cell(c.view.WorldToScreen(b))
	n := max(abs(x1-x0), abs(y1-y0))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		c.set(x, y, lineRune, style)
	}
}

// DrawTriangle fills every cell a 3x3 sample grid finds inside the triangle,
// so strips thinner than a cell still show.
func (c *Canvas) DrawTriangle(a, b, cc r2.Vec, col color.RGBA) {
	if c.view == nil || col.A == 0 {
		return
	}
	a, b, cc = c.view.WorldToScreen(a), c.view.WorldToScreen(b), c.view.WorldToScreen(cc)
	style := fg(col)
	s := c.cellSize()

	x0, y0 := c.cell(r2.Vec{X: min(a.X, b.X, cc.X), Y: min(a.Y, b.Y, cc.Y)})
	x1, y1 := c.cell(r2.Vec{X: max(a.X, b.X, cc.X), Y: max(a.Y, b.Y, cc.Y)})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if cellHits(a, b, cc, r2.Vec{X: float64(x) * s.X, Y: float64(y) * s.Y}, s) {
				c.set(x, y, fillRune, style)
			}
		}
	}
}

func cellHits(a, b, c, corner, size r2.Vec) bool {
	for j := 1; j <= 5; j += 2 {
		for i := 1; i <= 5; i += 2 {
			p := r2.Vec{X: corner.X + size.X*float64(i)/6, Y: corner.Y + size.Y*float64(j)/6}
			if inTriangle(p, a, b, c) {
				return true
			}
		}
	}
	return false
}

func inTriangle(p, a, b, c r2.Vec) bool {
	d1, d2, d3 := geom.Area(p, a, b), geom.Area(p, b, c), geom.Area(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// rgb blends translucent colors over black.
func rgb(c color.RGBA) tcell.Color {
	a := int32(c.A)
	return tcell.NewRGBColor(int32(c.R)*a/255, int32(c.G)*a/255, int32(c.B)*a/255)
}

func fg(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(c))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
