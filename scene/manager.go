package scene

import (
	"log/slog"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/pong"
	"github.com/pthm-cable/pong/render"
)

// Mixer is the sound player with a master volume the options menu can set.
type Mixer interface {
	pong.SoundPlayer
	MasterVolume() float64
	SetMasterVolume(v float64)
}

// Muted is a Mixer that keeps a volume but plays nothing. It stands in when
// audio is disabled or no device could be opened.
type Muted struct {
	Volume float64
}

func (m *Muted) PlaySound(name, id string, pitch, volume, pan float64) {}
func (m *Muted) MasterVolume() float64                                 { return m.Volume }
func (m *Muted) SetMasterVolume(v float64)                             { m.Volume = geom.Clamp(v, 0, 1) }

// UIDrawer renders u over screen. Backends install one to draw UIs with
// their own widgets.
type UIDrawer func(u UI, sb render.SpriteBatch, screen geom.AABB)

// Manager switches scenes and drives the UI stack.
type Manager struct {
	Input  *input.State
	Sounds Mixer

	// DrawUI replaces UI.Draw for the topmost UI when set.
	DrawUI UIDrawer

	// CallingExit is set when the player asked to quit. The frame loop
	// checks it at frame boundaries.
	CallingExit bool

	scenes  map[string]Scene
	current Scene
	uiStack []UI
}

// NewManager creates a manager reading in and playing through sounds.
// A nil sounds plays nothing.
func NewManager(in *input.State, sounds Mixer) *Manager {
	if in == nil {
		in = &input.State{}
	}
	if sounds == nil {
		sounds = &Muted{Volume: 1}
	}
	return &Manager{
		Input:  in,
		Sounds: sounds,
		scenes: make(map[string]Scene),
	}
}

// Add registers s under its name, replacing any scene of the same name.
func (m *Manager) Add(s Scene) {
	m.scenes[s.Name()] = s
}

// Scene returns the scene registered under name, or nil.
func (m *Manager) Scene(name string) Scene {
	return m.scenes[name]
}

// Current returns the loaded scene, or nil.
func (m *Manager) Current() Scene {
	return m.current
}

// LoadScene unloads the current scene and loads the one named name.
// Unknown names and the current scene are ignored. The UI stack belongs to
// the outgoing scene and is cleared.
func (m *Manager) LoadScene(name string) {
	next, ok := m.scenes[name]
	if !ok {
		slog.Debug("unknown scene", "name", name)
		return
	}
	if next == m.current {
		return
	}

	m.uiStack = m.uiStack[:0]
	if m.current != nil && m.current.Loaded() {
		m.current.Unload()
	}
	m.current = next
	next.Load(m)
	slog.Debug("scene loaded", "name", name)
}

// PushUI makes u the topmost UI. The current scene hears about it before u
// lands on the stack, so it may push layers beneath u.
func (m *Manager) PushUI(u UI) {
	m.Input.Settle()
	if l, ok := m.current.(UIListener); ok {
		l.UIEntered(u)
	}
	m.uiStack = append(m.uiStack, u)
	slog.Debug("ui pushed", "depth", len(m.uiStack))
}

// PopUI removes the topmost UI. Popping an empty stack does nothing.
func (m *Manager) PopUI() {
	n := len(m.uiStack)
	if n == 0 {
		return
	}
	u := m.uiStack[n-1]
	m.uiStack[n-1] = nil
	m.uiStack = m.uiStack[:n-1]

	m.Input.Settle()
	if l, ok := m.current.(UIListener); ok {
		l.UIExited(u)
	}
	slog.Debug("ui popped", "depth", len(m.uiStack))
}

// TopUI returns the topmost UI, or nil.
func (m *Manager) TopUI() UI {
	if len(m.uiStack) == 0 {
		return nil
	}
	return m.uiStack[len(m.uiStack)-1]
}

// UIActive reports whether any UI is on the stack.
func (m *Manager) UIActive() bool {
	return len(m.uiStack) > 0
}

// UIDepth returns the number of stacked UIs.
func (m *Manager) UIDepth() int {
	return len(m.uiStack)
}

// Update advances the current scene, if enabled, and then the topmost UI.
func (m *Manager) Update(dt float64) {
	f := object.Frame{DT: dt, Input: m.Input}
	if m.current != nil && m.current.Enabled() {
		m.current.Update(f)
	}
	if u := m.TopUI(); u != nil {
		u.Update(f)
	}
}

// Draw renders the current scene and then the topmost UI in virtual screen space.
func (m *Manager) Draw(t Targets, dt float64) {
	if m.current == nil || !m.current.Loaded() {
		return
	}
	m.current.Draw(t, dt)

	u := m.TopUI()
	if u == nil || t.Sprites == nil {
		return
	}
	cam := m.current.Camera()
	screen := geom.AABB{Upper: cam.Adapter().VirtualSize()}
	if m.DrawUI != nil {
		m.DrawUI(u, t.Sprites, screen)
		return
	}
	t.Sprites.Begin(camera.VirtualView{Adapter: cam.Adapter()})
	u.Draw(t.Sprites, screen)
	t.Sprites.End()
}

// Close unloads the current scene.
func (m *Manager) Close() {
	if m.current != nil && m.current.Loaded() {
		m.current.Unload()
	}
	m.current = nil
	m.uiStack = m.uiStack[:0]
}
