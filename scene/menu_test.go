package scene

import (
	"math"
	"testing"

	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSliderSteps(t *testing.T) {
	it := Slider("Master volume", 1, 0.1, 0, 1)

	it.Increment()
	if it.Value != 1 {
		t.Errorf("expected clamp at 1, got %v", it.Value)
	}
	for i := 0; i < 3; i++ {
		it.Decrement()
	}
	if math.Abs(it.Value-0.7) > 1e-9 {
		t.Errorf("expected 0.7, got %v", it.Value)
	}
	if it.Text() != "Master volume: 0.7" {
		t.Errorf("unexpected text %q", it.Text())
	}

	for i := 0; i < 20; i++ {
		it.Decrement()
	}
	if it.Value != 0 {
		t.Errorf("expected clamp at 0, got %v", it.Value)
	}
}

func TestSliderSnapsToGrid(t *testing.T) {
	it := Slider("Points to win", 2.6, 1, 1, 999)
	if it.Value != 3 {
		t.Errorf("expected snap to 3, got %v", it.Value)
	}
	it.SetValue(5000)
	if it.Value != 999 {
		t.Errorf("expected clamp to 999, got %v", it.Value)
	}
	if it.Text() != "Points to win: 999" {
		t.Errorf("unexpected text %q", it.Text())
	}
}

func TestButtonIgnoresValues(t *testing.T) {
	b := Button("Exit", nil)
	b.SetValue(3)
	b.Increment()
	if b.IsValue() || b.Value != 0 || b.Text() != "Exit" {
		t.Errorf("expected plain button, got %+v", b)
	}
}

func TestMenuKeys(t *testing.T) {
	var picked, back int
	m := NewMenu("T", MenuLayout{},
		Button("one", func() { picked = 1 }),
		Slider("two", 5, 1, 0, 10),
		Button("three", func() { picked = 3 }),
	)
	m.OnBack = func() { back++ }

	var in input.State
	press := func(k input.Key) {
		in.Update(held(k), r2.Vec{})
		m.Update(object.Frame{Input: &in})
		in.Update(held(), r2.Vec{})
		m.Update(object.Frame{Input: &in})
	}

	press(input.KeyDown)
	press(input.KeyRight)
	if m.Items[1].Value != 6 {
		t.Errorf("expected slider at 6, got %v", m.Items[1].Value)
	}
	press(input.KeyLeft)
	press(input.KeyLeft)
	if m.Items[1].Value != 4 {
		t.Errorf("expected slider at 4, got %v", m.Items[1].Value)
	}

	press(input.KeyDown)
	press(input.KeyEnter)
	if picked != 3 {
		t.Errorf("expected third item picked, got %d", picked)
	}

	press(input.KeyDown)
	if m.Selected() != 0 {
		t.Errorf("expected wrap to first item, got %d", m.Selected())
	}

	press(input.KeyEscape)
	if back != 1 {
		t.Errorf("expected back once, got %d", back)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenu("", MenuLayout{}, Button("a", nil), Button("b", nil))
	m.Select(1)
	m.Select(7)
	if m.Selected() != 1 {
		t.Errorf("expected out of range select ignored, got %d", m.Selected())
	}
	m.Activate()

	empty := NewMenu("", MenuLayout{})
	empty.Next()
	empty.Prev()
	empty.Activate()
	if empty.Current() != nil {
		t.Error("expected no current item")
	}
}

func TestMenuDraw(t *testing.T) {
	m := NewMenu("Title", MenuLayout{Centered: true, Anchor: 0.5, Spacing: 40, ItemSize: 20, TitleSize: 40},
		Button("aa", nil), Button("bbbb", nil))
	m.Select(1)

	rec := render.NewRecorder()
	rec.Begin(nil)
	m.Draw(rec, geom.AABB{Upper: r2.Vec{X: 800, Y: 600}})
	rec.End()

	if rec.Count(render.CmdFillRect) != 1 {
		t.Errorf("expected one background fill, got %d", rec.Count(render.CmdFillRect))
	}
	var items []render.Command
	for _, c := range rec.Commands {
		if c.Kind == render.CmdString && c.Text != "Title" {
			items = append(items, c)
		}
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items drawn, got %d", len(items))
	}
	if items[0].Color != m.Normal || items[1].Color != m.Active {
		t.Error("expected only the selected item highlighted")
	}
	// Both items centered on x=400, stacked 40 apart around y=300
	if items[0].Points[0] != (r2.Vec{X: 390, Y: 260}) || items[1].Points[0] != (r2.Vec{X: 380, Y: 300}) {
		t.Errorf("unexpected item positions %v %v", items[0].Points[0], items[1].Points[0])
	}
}

func TestNoticeDismiss(t *testing.T) {
	dismissed := 0
	n := &Notice{
		Text:      func() string { return "paused" },
		Keys:      []input.Key{input.KeyP, input.KeyEscape},
		OnDismiss: func() { dismissed++ },
	}

	var in input.State
	in.Update(held(input.KeyP, input.KeyEscape), r2.Vec{})
	n.Update(object.Frame{Input: &in})
	in.Update(held(), r2.Vec{})
	n.Update(object.Frame{Input: &in})

	if dismissed != 1 {
		t.Errorf("expected a single dismiss, got %d", dismissed)
	}
	if n.Message() != "paused" || (&Notice{}).Message() != "" {
		t.Error("unexpected message")
	}
}
