// Package platform runs the game in a raylib window: input polling, the main
// loop and draw batches backed by raylib calls.
package platform

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/render"
	"github.com/pthm-cable/pong/scene"
	"github.com/pthm-cable/pong/telemetry"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options control the main loop.
type Options struct {
	MaxFrames int // 0 = unlimited
	PerfEvery int // log frame timings every N frames, 0 = never
}

// Window owns the raylib window and the resources loaded into it.
type Window struct {
	adapter  camera.ScreenAdapter
	textures map[string]rl.Texture2D
	sprites  *Sprites
	prims    *Primitives
	perf     *telemetry.PerfCollector
	frames   int
}

// Open creates the window described by cfg. adapter is resized along with it.
func Open(cfg *config.Config, adapter camera.ScreenAdapter) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape belongs to the menus
	rl.SetExitKey(rl.KeyNull)

	w := &Window{
		adapter:  adapter,
		textures: loadTextures(),
		prims:    &Primitives{},
		perf:     telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
	}
	w.sprites = NewSprites(w.textures)
	return w
}

// Close releases textures and closes the window.
func (w *Window) Close() {
	for name, t := range w.textures {
		rl.UnloadTexture(t)
		delete(w.textures, name)
	}
	rl.CloseWindow()
}

// Run drives mgr until the window closes, a scene requests exit or MaxFrames is reached.
func (w *Window) Run(mgr *scene.Manager, opts Options) {
	targets := scene.Targets{Sprites: w.sprites, Primitives: w.prims}

	for !rl.WindowShouldClose() && !mgr.CallingExit {
		dt := float64(rl.GetFrameTime())
		w.perf.StartFrame()

		w.perf.StartPhase(telemetry.PhaseInput)
		w.handleResize()
		w.poll(mgr.Input)

		w.perf.StartPhase(telemetry.PhaseUpdate)
		mgr.Update(dt)

		w.perf.StartPhase(telemetry.PhaseDraw)
		rl.BeginDrawing()
		rl.ClearBackground(render.Black)
		mgr.Draw(targets, dt)
		rl.EndDrawing()

		w.perf.EndFrame()
		w.frames++

		if opts.PerfEvery > 0 && w.frames%opts.PerfEvery == 0 {
			slog.Debug("perf", "frame", w.frames, "stats", w.perf.Stats())
		}
		if opts.MaxFrames > 0 && w.frames >= opts.MaxFrames {
			slog.Info("max frames reached", "frames", w.frames)
			return
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w.adapter.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}

// poll samples the keyboard and converts the mouse into virtual screen pixels.
func (w *Window) poll(s *input.State) {
	m := rl.GetMousePosition()
	s.Update(isKeyDown, windowToVirtual(w.adapter, r2.Vec{X: float64(m.X), Y: float64(m.Y)}))
}

// windowToVirtual inverts camera.VirtualView.
func windowToVirtual(a camera.ScreenAdapter, p r2.Vec) r2.Vec {
	vp := a.Viewport()
	scale := a.Scale()
	d := r2.Sub(p, vp.Lower)
	return r2.Vec{X: d.X / scale.X, Y: d.Y / scale.Y}
}

// loadTextures builds every texture the scenes reference.
func loadTextures() map[string]rl.Texture2D {
	size := int(scene.BallTexture.Width)
	img := rl.GenImageColor(size, size, rl.Blank)
	r := int32(size/2 - 2)
	rl.ImageDrawCircle(img, int32(size/2), int32(size/2), r, rl.White)
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.UnloadImage(img)

	return map[string]rl.Texture2D{scene.BallTexture.Name: tex}
}
