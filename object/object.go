// Package object implements the component-based game object model.
//
// An Object holds transform state and an ordered list of components. Each
// component declares a tag and may implement any of the capability interfaces
// (Updater, SpriteDrawer, PrimitiveDrawer). Capabilities are resolved once when
// the component is attached, so the per-frame traversal never type-asserts.
package object

import (
	"fmt"

	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Type tags a component so siblings can find each other.
type Type uint8

const (
	Behavior Type = iota
	Model
)

func (t Type) String() string {
	switch t {
	case Behavior:
		return "behavior"
	case Model:
		return "model"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Frame is the per-frame context passed to every Update.
type Frame struct {
	DT    float64 // seconds since the previous frame
	Input input.Input
}

// Entity is anything built on an Object. Entity types embed *Object and
// call Bind so components receive the concrete type in Init.
type Entity interface {
	Root() *Object
}

// Component is a unit of behavior or presentation attached to an Object.
type Component interface {
	Type() Type
	// Init is called every time the component is attached.
	Init(owner Entity)
}

// Updater components run once per frame while the owner is enabled.
type Updater interface {
	Update(f Frame)
}

// SpriteDrawer components draw in the sprite pass.
type SpriteDrawer interface {
	DrawSprites(b render.SpriteBatch, dt float64)
}

// PrimitiveDrawer components draw in the primitive pass.
type PrimitiveDrawer interface {
	DrawPrimitives(b render.PrimitiveBatch, dt float64)
}

type entry struct {
	c       Component
	updater Updater
	sprites SpriteDrawer
	prims   PrimitiveDrawer
}

// Object is the transform and component container shared by every entity.
type Object struct {
	Name    string
	Enabled bool
	Visible bool

	position r2.Vec
	rotation float64
	half     r2.Vec
	bounds   geom.AABB

	self       Entity
	components []entry
}

// New creates an enabled, visible object at pos whose bounds have the given half extents.
func New(name string, pos, half r2.Vec) *Object {
	o := &Object{
		Name:     name,
		Enabled:  true,
		Visible:  true,
		position: pos,
		half:     half,
	}
	o.self = o
	o.refreshBounds()
	return o
}

// Root returns o.
func (o *Object) Root() *Object { return o }

// Bind registers the entity that wraps o. Components attached afterwards
// receive self in Init.
func (o *Object) Bind(self Entity) {
	if self == nil || self.Root() != o {
		panic("object: Bind requires an entity wrapping this object")
	}
	o.self = self
}

// Self returns the bound entity, or o when nothing was bound.
func (o *Object) Self() Entity { return o.self }

// Position returns the world position.
func (o *Object) Position() r2.Vec { return o.position }

// Rotation returns the accumulated rotation in radians.
func (o *Object) Rotation() float64 { return o.rotation }

// HalfExtents returns the fixed half size used for bounds.
func (o *Object) HalfExtents() r2.Vec { return o.half }

// Bounds returns the axis-aligned bounds around the current position.
func (o *Object) Bounds() geom.AABB { return o.bounds }

// Move translates the object by offset.
func (o *Object) Move(offset r2.Vec) {
	o.position = r2.Add(o.position, offset)
	o.refreshBounds()
}

// SetPosition moves the object so that it sits at p.
func (o *Object) SetPosition(p r2.Vec) {
	o.Move(r2.Sub(p, o.position))
}

// Rotate adds radians to the rotation. Position is untouched whether the
// rotation is local or not.
func (o *Object) Rotate(radians float64, local bool) {
	o.rotation += radians
}

// Reset cancels the accumulated translation and rotation.
func (o *Object) Reset() {
	o.Move(r2.Scale(-1, o.position))
	o.Rotate(-o.rotation, true)
}

func (o *Object) refreshBounds() {
	o.bounds = geom.AABB{
		Lower: r2.Sub(o.position, o.half),
		Upper: r2.Add(o.position, o.half),
	}
}

// AddComponent attaches c and calls its Init. Attaching the same component
// twice keeps a single entry but re-runs Init.
func (o *Object) AddComponent(c Component) {
	if c == nil {
		panic("object: AddComponent called with nil component")
	}
	if o.indexOf(c) < 0 {
		e := entry{c: c}
		e.updater, _ = c.(Updater)
		e.sprites, _ = c.(SpriteDrawer)
		e.prims, _ = c.(PrimitiveDrawer)
		o.components = append(o.components, e)
	}
	c.Init(o.self)
}

// RemoveComponent detaches c. Unknown components are ignored.
func (o *Object) RemoveComponent(c Component) {
	if i := o.indexOf(c); i >= 0 {
		o.components = append(o.components[:i], o.components[i+1:]...)
	}
}

// Component returns the first attached component with tag t, or nil.
func (o *Object) Component(t Type) Component {
	for _, e := range o.components {
		if e.c.Type() == t {
			return e.c
		}
	}
	return nil
}

// Components returns the attached components in attachment order.
func (o *Object) Components() []Component {
	out := make([]Component, len(o.components))
	for i, e := range o.components {
		out[i] = e.c
	}
	return out
}

// Detach removes every component.
func (o *Object) Detach() {
	o.components = nil
}

func (o *Object) indexOf(c Component) int {
	for i, e := range o.components {
		if e.c == c {
			return i
		}
	}
	return -1
}

// Update runs every Updater once in attachment order and then refreshes bounds.
func (o *Object) Update(f Frame) {
	if !o.Enabled {
		return
	}
	for _, e := range o.components {
		if e.updater != nil {
			e.updater.Update(f)
		}
	}
	o.refreshBounds()
}

// DrawSprites runs the sprite pass of every component.
func (o *Object) DrawSprites(b render.SpriteBatch, dt float64) {
	if !o.Visible {
		return
	}
	for _, e := range o.components {
		if e.sprites != nil {
			e.sprites.DrawSprites(b, dt)
		}
	}
}

// DrawPrimitives runs the primitive pass of every component.
func (o *Object) DrawPrimitives(b render.PrimitiveBatch, dt float64) {
	if !o.Visible {
		return
	}
	for _, e := range o.components {
		if e.prims != nil {
			e.prims.DrawPrimitives(b, dt)
		}
	}
}
