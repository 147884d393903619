package ui

import (
	"math"
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/render"
	"github.com/pthm-cable/pong/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

// menuModel is implemented by every UI built on scene.Menu.
type menuModel interface {
	Model() *scene.Menu
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme   Theme
	Adapter camera.ScreenAdapter
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer(adapter camera.ScreenAdapter) *Renderer {
	return &Renderer{Theme: DefaultTheme(), Adapter: adapter}
}

// Draw renders u in virtual screen space. Its signature matches scene.UIDrawer.
// Menus become raygui controls; anything else draws itself through sb.
func (r *Renderer) Draw(u scene.UI, sb render.SpriteBatch, screen geom.AABB) {
	if m, ok := u.(menuModel); ok {
		r.DrawMenu(m.Model(), sb, screen)
		return
	}
	sb.Begin(r.view())
	u.Draw(sb, screen)
	sb.End()
}

// DrawMenu draws the menu background and title through sb and one control per item.
// Clicking a button or dragging a slider selects that item.
func (r *Renderer) DrawMenu(m *scene.Menu, sb render.SpriteBatch, screen geom.AABB) {
	view := r.view()
	rects := r.ItemRects(m, sb, screen)

	sb.Begin(view)
	sb.FillRect(screen, m.Background)
	if m.Title != "" {
		size := sb.MeasureString(m.Title, m.Layout.TitleSize)
		pos := r2.Vec{
			X: screen.Lower.X + screen.Width()/2 - size.X/2,
			Y: screen.Lower.Y + screen.Height()/4 + size.Y/2,
		}
		sb.DrawString(m.Title, pos, m.Layout.TitleSize, render.White)
	}
	sb.End()

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, int64(m.Layout.ItemSize*view.ScreenScale()))
	for i, it := range m.Items {
		rect := windowRect(view, rects[i])

		if it.IsValue() {
			v := gui.SliderBar(rect, it.Label, formatValue(it.Value), float32(it.Value), float32(it.Min), float32(it.Max))
			if v != float32(it.Value) {
				it.SetValue(float64(v))
				m.Select(i)
			}
		} else if gui.Button(rect, it.Label) {
			// The action may replace this menu
			m.Select(i)
			m.Activate()
			return
		}

		if i == m.Selected() {
			rl.DrawRectangleLinesEx(rect, r.Theme.LineWidth, r.Theme.Focus)
		}
	}
}

// ItemRects returns the control bounds of every menu item in virtual pixels.
// Controls sit where the keyboard menu draws its text, padded and at least MinWidth wide.
func (r *Renderer) ItemRects(m *scene.Menu, sb render.SpriteBatch, screen geom.AABB) []geom.AABB {
	pad := r.Theme.Padding
	rects := make([]geom.AABB, len(m.Items))
	for i, it := range m.Items {
		pos := m.ItemPosition(sb, i, screen)
		size := sb.MeasureString(it.Text(), m.Layout.ItemSize)
		w := max(size.X+2*pad, r.Theme.MinWidth)
		h := size.Y + pad

		lower := r2.Vec{X: pos.X - pad, Y: pos.Y - pad/2}
		if m.Layout.Centered {
			lower.X = pos.X + size.X/2 - w/2
		}
		rects[i] = geom.AABB{Lower: lower, Upper: r2.Add(lower, r2.Vec{X: w, Y: h})}
	}
	return rects
}

func (r *Renderer) view() camera.VirtualView {
	return camera.VirtualView{Adapter: r.Adapter}
}

// windowRect converts a virtual screen rectangle into window pixels.
func windowRect(view render.View, a geom.AABB) rl.Rectangle {
	p := view.WorldToScreen(a.Lower)
	s := view.ScreenScale()
	return rl.Rectangle{
		X:      float32(p.X),
		Y:      float32(p.Y),
		Width:  float32(a.Width() * s),
		Height: float32(a.Height() * s),
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
