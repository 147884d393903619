package object

import "fmt"

// Base carries the owner back-reference for component implementations to embed.
// The owner is not retained beyond the object's lifetime; Detach drops the
// component list and with it the only path back to the component.
type Base struct {
	owner Entity
}

// Init records the owner. Embedders that override Init should call it.
func (b *Base) Init(owner Entity) { b.owner = owner }

// Owner returns the entity the component is attached to, or nil.
func (b *Base) Owner() Entity { return b.owner }

// Object returns the owner's Object, or nil before attachment.
func (b *Base) Object() *Object {
	if b.owner == nil {
		return nil
	}
	return b.owner.Root()
}

// Sibling returns the owner's first component tagged t.
func (b *Base) Sibling(t Type) Component {
	if o := b.Object(); o != nil {
		return o.Component(t)
	}
	return nil
}

// OwnerAs casts owner to T and panics with a descriptive message when the
// component was attached to the wrong kind of entity.
func OwnerAs[T Entity](owner Entity, component string) T {
	e, ok := owner.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("object: %s requires owner %T, got %T", component, zero, owner))
	}
	return e
}
