// Package scene runs game scenes and the UI stack layered over them.
//
// A Manager owns every scene by name and updates the current one each frame,
// followed by the topmost UI. Scenes keep their actors in a Registry and draw
// them through the sinks handed to Draw.
package scene

import (
	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Targets are the draw sinks a scene renders into.
type Targets struct {
	Sprites    render.SpriteBatch
	Primitives render.PrimitiveBatch
}

// Scene is one screen of the game.
type Scene interface {
	Name() string
	// Load builds the scene's actors. The manager calls it when the scene
	// becomes current and Unload when it is replaced.
	Load(m *Manager)
	Unload()
	Loaded() bool
	Enabled() bool
	Camera() *camera.Camera
	Update(f object.Frame)
	Draw(t Targets, dt float64)
}

// UIListener is implemented by scenes that react to UI stack changes.
type UIListener interface {
	UIEntered(u UI)
	UIExited(u UI)
}

// UI is a layer drawn over the current scene.
type UI interface {
	Update(f object.Frame)
	// Draw renders into screen, given in virtual screen pixels.
	Draw(sb render.SpriteBatch, screen geom.AABB)
}

// Base carries the state every scene shares.
type Base struct {
	Actors *Registry

	name    string
	adapter camera.ScreenAdapter
	cam     *camera.Camera
	enabled bool
	loaded  bool
}

func newBase(name string, adapter camera.ScreenAdapter) Base {
	if name == "" {
		panic("scene: scene name must not be empty")
	}
	if adapter == nil {
		panic("scene: scene " + name + " requires a screen adapter")
	}
	return Base{
		Actors:  NewRegistry(),
		name:    name,
		adapter: adapter,
		enabled: true,
	}
}

// Name returns the name the scene is registered under.
func (b *Base) Name() string { return b.name }

// Loaded reports whether Load ran without a matching Unload.
func (b *Base) Loaded() bool { return b.loaded }

// Enabled reports whether the manager should update the scene.
func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled toggles scene updates.
func (b *Base) SetEnabled(v bool) { b.enabled = v }

// Camera returns the scene camera, nil before Load.
func (b *Base) Camera() *camera.Camera { return b.cam }

// Screen returns the virtual screen rectangle.
func (b *Base) Screen() geom.AABB {
	return geom.AABB{Upper: b.adapter.VirtualSize()}
}

// load creates a fresh camera configured from cc.
func (b *Base) load(cc config.CameraConfig) {
	if b.loaded {
		panic("scene: " + b.name + " loaded twice")
	}
	cam := camera.New(b.adapter)
	cam.Controls = camera.Controls{
		PanSpeed:    cc.PanSpeed,
		RotateSpeed: cc.RotateSpeed,
		ZoomSpeed:   cc.ZoomSpeed,
	}
	if cc.MaxZoom > 0 {
		cam.SetMaximumZoom(cc.MaxZoom)
	}
	cam.SetMinimumZoom(cc.MinZoom)
	b.cam = cam
	b.loaded = true
	b.enabled = true
}

func (b *Base) unload() {
	if !b.loaded {
		panic("scene: " + b.name + " unloaded before load")
	}
	b.Actors.Clear()
	b.loaded = false
}

// update advances the camera.
func (b *Base) update(f object.Frame) {
	if !b.loaded {
		panic("scene: " + b.name + " updated before load")
	}
	b.cam.Update(f.DT, f.Input)
}

// drawWorld runs both actor passes through the camera.
func (b *Base) drawWorld(t Targets, dt float64) {
	if t.Sprites != nil {
		t.Sprites.Begin(b.cam)
		b.Actors.DrawSprites(t.Sprites, dt)
		t.Sprites.End()
	}
	if t.Primitives != nil {
		t.Primitives.Begin(b.cam)
		b.Actors.DrawPrimitives(t.Primitives, dt)
		t.Primitives.End()
	}
}

// centered returns the position that centers text of the given size on x.
func centered(sb render.SpriteBatch, text string, size, x, y float64) r2.Vec {
	w := sb.MeasureString(text, size)
	return r2.Vec{X: x - w.X/2, Y: y}
}
