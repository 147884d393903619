package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/render"
	"github.com/pthm-cable/pong/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

var screen = geom.AABB{Upper: r2.Vec{X: 800, Y: 600}}

func testMenu(centered bool) *scene.Menu {
	return scene.NewMenu("Title", scene.MenuLayout{Centered: centered, Anchor: 0.5, Spacing: 40, ItemSize: 20, TitleSize: 40},
		scene.Button("aa", nil), scene.Button("bbbb", nil))
}

func TestItemRectsCentered(t *testing.T) {
	r := NewRenderer(camera.NewDefaultAdapter(800, 600))
	rects := r.ItemRects(testMenu(true), render.NewRecorder(), screen)

	want := []geom.AABB{
		{Lower: r2.Vec{X: 280, Y: 256}, Upper: r2.Vec{X: 520, Y: 284}},
		{Lower: r2.Vec{X: 280, Y: 296}, Upper: r2.Vec{X: 520, Y: 324}},
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("item %d: expected %v, got %v", i, want[i], rects[i])
		}
	}
}

func TestItemRectsLeftAligned(t *testing.T) {
	r := NewRenderer(camera.NewDefaultAdapter(800, 600))
	r.Theme.MinWidth = 0
	rects := r.ItemRects(testMenu(false), render.NewRecorder(), screen)

	// Text starts at a quarter of the width, padded on both sides
	if rects[1].Lower != (r2.Vec{X: 192, Y: 296}) || rects[1].Width() != 56 {
		t.Errorf("unexpected rect %v", rects[1])
	}
}

func TestWindowRectLetterbox(t *testing.T) {
	view := camera.VirtualView{Adapter: camera.NewLetterboxAdapter(1000, 600, 800, 600)}
	got := windowRect(view, geom.AABB{Lower: r2.Vec{X: 280, Y: 256}, Upper: r2.Vec{X: 520, Y: 284}})

	want := rl.Rectangle{X: 380, Y: 256, Width: 240, Height: 28}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDrawNoticeThroughBatch(t *testing.T) {
	r := NewRenderer(camera.NewDefaultAdapter(800, 600))
	n := &scene.Notice{Text: func() string { return "paused" }, Size: 20, Background: render.Dim}

	rec := render.NewRecorder()
	r.Draw(n, rec, screen)

	if rec.Count(render.CmdFillRect) != 1 || rec.Count(render.CmdString) != 1 {
		t.Errorf("expected background and message, got %v", rec.Strings())
	}
	if rec.Frames != 1 {
		t.Errorf("expected one batch, got %d", rec.Frames)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.30000000000000004, "0.3"},
		{3, "3"},
		{1, "1"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
