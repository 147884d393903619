package pong

import (
	"github.com/pthm-cable/pong/object"
	"gonum.org/v1/gonum/spatial/r2"
)

// Ball is the square ball. Radius is half its edge length.
type Ball struct {
	*object.Object
	Radius float64
}

// NewBall creates a ball centered on pos.
func NewBall(name string, pos r2.Vec, radius float64) *Ball {
	b := &Ball{
		Object: object.New(name, pos, r2.Vec{X: radius, Y: radius}),
		Radius: radius,
	}
	b.Bind(b)
	return b
}

// Behavior returns the attached ball behavior, or nil.
func (b *Ball) Behavior() *BallBehavior {
	bb, _ := b.Component(object.Behavior).(*BallBehavior)
	return bb
}
