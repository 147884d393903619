package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// BallTexture is the sprite the sandbox draws. Backends provide it by name.
var BallTexture = render.Texture{Name: "ball", Width: 64, Height: 64}

// SpriteComponent draws a texture with its center on the owner's position,
// rotated with the owner.
type SpriteComponent struct {
	object.Base
	Texture render.Texture
	Tint    color.RGBA
	Origin  r2.Vec

	// Markers adds the center and corner markers in the primitive pass.
	Markers bool
}

// NewSpriteComponent creates a sprite for tex.
func NewSpriteComponent(tex render.Texture) *SpriteComponent {
	if tex.Width <= 0 || tex.Height <= 0 {
		panic("scene: sprite texture " + tex.Name + " has no size")
	}
	return &SpriteComponent{Texture: tex, Tint: render.White}
}

func (c *SpriteComponent) Type() object.Type { return object.Model }

func (c *SpriteComponent) Init(owner object.Entity) {
	c.Base.Init(owner)
	c.Origin = c.Texture.Center()
}

// Bounds returns the unrotated texture rectangle in world space.
func (c *SpriteComponent) Bounds() geom.AABB {
	lower := r2.Sub(c.Object().Position(), c.Origin)
	return geom.NewAABB(lower, r2.Add(lower, r2.Vec{X: c.Texture.Width, Y: c.Texture.Height}))
}

func (c *SpriteComponent) DrawSprites(b render.SpriteBatch, dt float64) {
	o := c.Object()
	b.DrawSprite(c.Texture, o.Position(), o.Rotation(), c.Origin, c.Tint)
}

func (c *SpriteComponent) DrawPrimitives(b render.PrimitiveBatch, dt float64) {
	if !c.Markers {
		return
	}
	render.DrawMarkerSquare(b, c.Object().Position(), 3, render.Red)
	render.DrawRectangleVerticesMarkers(b, c.Bounds(), 4, render.Yellow)
}

// SandboxBehavior moves its owner with the arrow keys, spins it with
// PageUp and PageDown and puts it back with Home.
type SandboxBehavior struct {
	object.Base
	Speed float64 // world units per second
	Spin  float64 // radians per second
}

// NewSandboxBehavior creates the behavior with sandbox defaults.
func NewSandboxBehavior() *SandboxBehavior {
	return &SandboxBehavior{Speed: 60, Spin: 0.6}
}

func (s *SandboxBehavior) Type() object.Type { return object.Behavior }

func (s *SandboxBehavior) Update(f object.Frame) {
	in, o := f.Input, s.Object()
	if in == nil || o == nil {
		return
	}

	step := s.Speed * f.DT
	if in.IsKeyDown(input.KeyLeft) {
		o.Move(r2.Vec{X: -step})
	}
	if in.IsKeyDown(input.KeyRight) {
		o.Move(r2.Vec{X: step})
	}
	if in.IsKeyDown(input.KeyUp) {
		o.Move(r2.Vec{Y: -step})
	}
	if in.IsKeyDown(input.KeyDown) {
		o.Move(r2.Vec{Y: step})
	}

	if in.IsKeyDown(input.KeyPageUp) {
		o.Rotate(s.Spin*f.DT, true)
	}
	if in.IsKeyDown(input.KeyPageDown) {
		o.Rotate(-s.Spin*f.DT, true)
	}

	if in.IsKeyDown(input.KeyHome) {
		o.Reset()
	}
}

// BallScene is a sandbox for the camera and sprite pipeline: one textured
// ball, a free camera and a readout of both.
type BallScene struct {
	Base

	cfg   *config.Config
	mgr   *Manager
	ball  *object.Object
	mouse r2.Vec
}

// NewBallScene creates the sandbox.
func NewBallScene(cfg *config.Config, adapter camera.ScreenAdapter) *BallScene {
	if cfg == nil {
		panic("scene: NewBallScene requires a config")
	}
	return &BallScene{Base: newBase(BallSceneName, adapter), cfg: cfg}
}

// Ball returns the sandbox object, nil before Load.
func (s *BallScene) Ball() *object.Object { return s.ball }

func (s *BallScene) Load(m *Manager) {
	s.load(s.cfg.Camera)
	s.mgr = m
	s.Camera().Enabled = true

	ball := object.New("ball", r2.Vec{}, BallTexture.Center())
	sprite := NewSpriteComponent(BallTexture)
	sprite.Markers = true
	ball.AddComponent(sprite)
	ball.AddComponent(NewSandboxBehavior())
	s.ball = ball
	s.Actors.Add(ball)
}

func (s *BallScene) Unload() {
	s.unload()
	s.ball = nil
	s.mgr = nil
}

func (s *BallScene) Update(f object.Frame) {
	s.update(f)
	if f.Input != nil {
		if f.Input.KeyWasReleased(input.KeyF5) {
			s.mgr.LoadScene(PongSceneName)
			return
		}
		s.mouse = f.Input.MousePosition()
	}
	s.Actors.Update(f)
}

func (s *BallScene) Draw(t Targets, dt float64) {
	s.drawWorld(t, dt)
	if t.Sprites == nil {
		return
	}

	t.Sprites.Begin(render.ScreenSpace{})
	pos := r2.Vec{X: 5, Y: 5}
	for _, line := range s.readout() {
		t.Sprites.DrawString(line, pos, 10, render.White)
		pos.Y += 12
	}
	t.Sprites.End()
}

// readout lists the camera, mouse and ball state.
func (s *BallScene) readout() []string {
	cam := s.Camera()
	rect := cam.BoundingRectangle()
	world := cam.ScreenToWorld(s.mouse)
	p := s.ball.Position()
	screen := cam.WorldToScreen(p)
	vp := cam.Adapter().Viewport()

	return []string{
		"Camera:",
		fmt.Sprintf("EDSF: Move [%.0f, %.0f]", cam.Position.X, cam.Position.Y),
		fmt.Sprintf("WR: Rotate [%.2f]", cam.Rotation*180/math.Pi),
		fmt.Sprintf("XV: Zoom [%.2f]", cam.Zoom()),
		fmt.Sprintf("Viewport: [%.0f, %.0f, %.0f, %.0f]", vp.Lower.X, vp.Lower.Y, vp.Width(), vp.Height()),
		"Mouse:",
		fmt.Sprintf("Mouse Pos: [%.0f, %.0f]", s.mouse.X, s.mouse.Y),
		fmt.Sprintf("Mouse World Pos: [%.0f, %.0f]", world.X, world.Y),
		fmt.Sprintf("Bounds(x,y, width, height): [%d, %d, %d, %d]", rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()),
		"Ball:",
		fmt.Sprintf("Ball: [%.1f, %.1f]", p.X, p.Y),
		fmt.Sprintf("Ball rotation: [%.3f]", s.ball.Rotation()),
		fmt.Sprintf("Ball screen pos: [%.1f, %.1f]", screen.X, screen.Y),
	}
}
