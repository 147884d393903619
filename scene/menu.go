package scene

import (
	"image/color"
	"math"
	"strconv"

	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// MenuItem is a selectable entry. Items with a step hold a value adjusted
// with Left and Right; the others run OnSelect on Enter.
type MenuItem struct {
	Label    string
	OnSelect func()

	Value    float64
	Step     float64
	Min, Max float64
}

// Button creates an action item.
func Button(label string, onSelect func()) *MenuItem {
	return &MenuItem{Label: label, OnSelect: onSelect}
}

// Slider creates a value item clamped to [lo, hi] and moved in steps of step.
func Slider(label string, value, step, lo, hi float64) *MenuItem {
	it := &MenuItem{Label: label, Step: step, Min: lo, Max: hi}
	it.SetValue(value)
	return it
}

// IsValue reports whether the item holds an adjustable value.
func (it *MenuItem) IsValue() bool { return it.Step > 0 }

// SetValue clamps v to the item range and snaps it onto the step grid.
func (it *MenuItem) SetValue(v float64) {
	if !it.IsValue() {
		return
	}
	v = geom.Clamp(v, it.Min, it.Max)
	it.Value = it.Min + math.Round((v-it.Min)/it.Step)*it.Step
	it.Value = geom.Clamp(it.Value, it.Min, it.Max)
}

// Increment raises the value by one step.
func (it *MenuItem) Increment() { it.SetValue(it.Value + it.Step) }

// Decrement lowers the value by one step.
func (it *MenuItem) Decrement() { it.SetValue(it.Value - it.Step) }

// Text is the label as shown, with the value to one decimal for value items.
func (it *MenuItem) Text() string {
	if !it.IsValue() {
		return it.Label
	}
	return it.Label + ": " + strconv.FormatFloat(math.Round(it.Value*10)/10, 'f', -1, 64)
}

// MenuLayout positions a menu on the virtual screen.
type MenuLayout struct {
	// Centered items are centered horizontally; otherwise they start at a quarter of the width.
	Centered bool
	// Anchor is the vertical center of the item block as a fraction of the screen height.
	Anchor    float64
	Spacing   float64
	TitleSize float64
	ItemSize  float64
}

// Menu is a keyboard driven list of items. Up and Down move the selection and
// wrap at both ends; Escape runs OnBack.
type Menu struct {
	Title  string
	Items  []*MenuItem
	OnBack func()
	Layout MenuLayout

	Background color.RGBA
	Normal     color.RGBA
	Active     color.RGBA

	selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(title string, layout MenuLayout, items ...*MenuItem) *Menu {
	return &Menu{
		Title:      title,
		Items:      items,
		Layout:     layout,
		Background: render.Black,
		Normal:     render.BlueViolet,
		Active:     render.White,
	}
}

// Model returns m. Types embedding a Menu expose it to UI drawers this way.
func (m *Menu) Model() *Menu { return m }

// Selected returns the index of the selected item.
func (m *Menu) Selected() int { return m.selected }

// Select selects item i; out of range indices are ignored.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) {
		m.selected = i
	}
}

// Current returns the selected item, or nil for an empty menu.
func (m *Menu) Current() *MenuItem {
	if len(m.Items) == 0 {
		return nil
	}
	return m.Items[m.selected]
}

// Next moves the selection down, wrapping to the first item.
func (m *Menu) Next() {
	if n := len(m.Items); n > 0 {
		m.selected = (m.selected + 1) % n
	}
}

// Prev moves the selection up, wrapping to the last item.
func (m *Menu) Prev() {
	if n := len(m.Items); n > 0 {
		m.selected = (m.selected - 1 + n) % n
	}
}

// Activate runs the selected item's action.
func (m *Menu) Activate() {
	if it := m.Current(); it != nil && it.OnSelect != nil {
		it.OnSelect()
	}
}

func (m *Menu) Update(f object.Frame) {
	in := f.Input
	if in == nil {
		return
	}
	if in.KeyWasReleased(input.KeyEscape) {
		if m.OnBack != nil {
			m.OnBack()
		}
		return
	}
	if in.KeyWasReleased(input.KeyUp) {
		m.Prev()
	}
	if in.KeyWasReleased(input.KeyDown) {
		m.Next()
	}
	if it := m.Current(); it != nil && it.IsValue() {
		if in.KeyWasReleased(input.KeyLeft) {
			it.Decrement()
		}
		if in.KeyWasReleased(input.KeyRight) {
			it.Increment()
		}
	}
	if in.KeyWasReleased(input.KeyEnter) {
		m.Activate()
	}
}

// ItemPosition returns where item i is drawn.
func (m *Menu) ItemPosition(sb render.SpriteBatch, i int, screen geom.AABB) r2.Vec {
	l := m.Layout
	w, h := screen.Width(), screen.Height()
	y := screen.Lower.Y + h*l.Anchor + l.Spacing*float64(i) - float64(len(m.Items))*l.Spacing/2
	if l.Centered {
		return centered(sb, m.Items[i].Text(), l.ItemSize, screen.Lower.X+w/2, y)
	}
	return r2.Vec{X: screen.Lower.X + w/4, Y: y}
}

func (m *Menu) Draw(sb render.SpriteBatch, screen geom.AABB) {
	sb.FillRect(screen, m.Background)

	if m.Title != "" {
		size := sb.MeasureString(m.Title, m.Layout.TitleSize)
		pos := r2.Vec{
			X: screen.Lower.X + screen.Width()/2 - size.X/2,
			Y: screen.Lower.Y + screen.Height()/4 + size.Y/2,
		}
		sb.DrawString(m.Title, pos, m.Layout.TitleSize, render.White)
	}

	for i, it := range m.Items {
		c := m.Normal
		if i == m.selected {
			c = m.Active
		}
		sb.DrawString(it.Text(), m.ItemPosition(sb, i, screen), m.Layout.ItemSize, c)
	}
}

// Notice is a full screen message dismissed by any of its keys.
type Notice struct {
	Text       func() string
	Size       float64
	Background color.RGBA
	Keys       []input.Key
	OnDismiss  func()
}

// Message returns the text currently shown.
func (n *Notice) Message() string {
	if n.Text == nil {
		return ""
	}
	return n.Text()
}

func (n *Notice) Update(f object.Frame) {
	if f.Input == nil {
		return
	}
	for _, k := range n.Keys {
		if f.Input.KeyWasReleased(k) {
			if n.OnDismiss != nil {
				n.OnDismiss()
			}
			return
		}
	}
}

func (n *Notice) Draw(sb render.SpriteBatch, screen geom.AABB) {
	sb.FillRect(screen, n.Background)
	msg := n.Message()
	size := sb.MeasureString(msg, n.Size)
	c := screen.Center()
	sb.DrawString(msg, r2.Vec{X: c.X - size.X/2, Y: c.Y - size.Y/2}, n.Size, render.White)
}
