package scene

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/render"
)

// Actor is the ECS component that ties an entity to its game object.
type Actor struct {
	Object object.Entity
	seq    uint64
}

// Registry stores a scene's actors in an ECS world. Update and draw order is
// the order actors were added.
type Registry struct {
	world  *ecs.World
	actors *ecs.Map1[Actor]
	filter *ecs.Filter1[Actor]

	next    uint64
	ordered []object.Entity
	dirty   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world:  world,
		actors: ecs.NewMap1[Actor](world),
		filter: ecs.NewFilter1[Actor](world),
	}
}

// Add registers e and returns its entity handle.
func (r *Registry) Add(e object.Entity) ecs.Entity {
	if e == nil {
		panic("scene: Registry.Add called with nil actor")
	}
	a := Actor{Object: e, seq: r.next}
	r.next++
	r.dirty = true
	return r.actors.NewEntity(&a)
}

// Get returns the actor behind id, or nil once it is removed.
func (r *Registry) Get(id ecs.Entity) object.Entity {
	if !r.world.Alive(id) {
		return nil
	}
	return r.actors.Get(id).Object
}

// Remove detaches and drops the actor behind id. Stale ids are ignored.
func (r *Registry) Remove(id ecs.Entity) {
	if !r.world.Alive(id) {
		return
	}
	r.actors.Get(id).Object.Root().Detach()
	r.world.RemoveEntity(id)
	r.dirty = true
}

// Clear detaches and drops every actor.
func (r *Registry) Clear() {
	var ids []ecs.Entity
	query := r.filter.Query()
	for query.Next() {
		ids = append(ids, query.Entity())
	}
	for _, id := range ids {
		r.Remove(id)
	}
	r.ordered = r.ordered[:0]
	r.dirty = false
}

// Len returns the number of actors.
func (r *Registry) Len() int {
	return len(r.Actors())
}

// Actors returns the actors in insertion order. The slice is reused between
// calls and must not be retained.
func (r *Registry) Actors() []object.Entity {
	if !r.dirty {
		return r.ordered
	}

	type ranked struct {
		seq uint64
		e   object.Entity
	}
	var all []ranked
	query := r.filter.Query()
	for query.Next() {
		a := query.Get()
		all = append(all, ranked{a.seq, a.Object})
	}
	slices.SortFunc(all, func(a, b ranked) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	r.ordered = r.ordered[:0]
	for _, a := range all {
		r.ordered = append(r.ordered, a.e)
	}
	r.dirty = false
	return r.ordered
}

// Update runs every enabled actor.
func (r *Registry) Update(f object.Frame) {
	for _, a := range r.Actors() {
		a.Root().Update(f)
	}
}

// DrawSprites runs the sprite pass of every visible actor.
func (r *Registry) DrawSprites(b render.SpriteBatch, dt float64) {
	for _, a := range r.Actors() {
		a.Root().DrawSprites(b, dt)
	}
}

// DrawPrimitives runs the primitive pass of every visible actor.
func (r *Registry) DrawPrimitives(b render.PrimitiveBatch, dt float64) {
	for _, a := range r.Actors() {
		a.Root().DrawPrimitives(b, dt)
	}
}
