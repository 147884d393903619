package pong

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/object"
	"gonum.org/v1/gonum/spatial/r2"
)

// Spread bounds for outer band deflections.
const (
	spreadMin   = 0.3
	spreadRange = 1.0
)

// Paddle is a rectangular bat on one side of the field.
type Paddle struct {
	*object.Object
	Width  float64
	Height float64
	Side   Side

	rng *rand.Rand
}

// NewPaddle creates a paddle centered on pos. rng drives outer band spread.
func NewPaddle(name string, side Side, pos r2.Vec, width, height float64, rng *rand.Rand) *Paddle {
	if rng == nil {
		panic("pong: NewPaddle requires a random source")
	}
	p := &Paddle{
		Object: object.New(name, pos, r2.Vec{X: width / 2, Y: height / 2}),
		Width:  width,
		Height: height,
		Side:   side,
		rng:    rng,
	}
	p.Bind(p)
	return p
}

// HitSector classifies a contact at vertical position y. Bands are tested
// outer-down, outer-up, inner-down, inner-up, so the exact center is inner-down.
func (p *Paddle) HitSector(y float64) HitSector {
	py := p.Position().Y
	q := p.Height / 4

	switch {
	case y >= py+q:
		return OuterDown
	case y <= py-q:
		return OuterUp
	case y >= py && y <= py+q:
		return InnerDown
	case y <= py && y >= py-q:
		return InnerUp
	}
	return SectorNone
}

// Collide tests the ball against the paddle and, on overlap, returns the
// contact manifold for a ball travelling along dir. A ball moving away from
// the paddle's face never collides.
func (p *Paddle) Collide(ball *Ball, dir r2.Vec) (Manifold, bool) {
	if p.receding(dir) || !geom.TestOverlap(p.Bounds(), ball.Bounds()) {
		return Manifold{}, false
	}

	m := Manifold{
		Normal:           collisionNormal(dir),
		PenetrationDepth: p.penetration(ball, dir),
	}

	spread := spreadMin + spreadRange*p.rng.Float64()
	m.Sector = p.HitSector(ball.Position().Y)
	switch m.Sector {
	case OuterUp:
		m.NewDirection = geom.Normalize(r2.Vec{X: m.Normal.X, Y: -spread})
	case OuterDown:
		m.NewDirection = geom.Normalize(r2.Vec{X: m.Normal.X, Y: spread})
	case InnerUp, InnerDown:
		m.NewDirection = geom.Reflect(dir, m.Normal)
	default:
		panic(fmt.Sprintf("pong: unclassifiable hit sector for ball y=%v, paddle y=%v",
			ball.Position().Y, p.Position().Y))
	}
	return m, true
}

// receding reports whether dir points away from the side of the paddle that faces the field.
func (p *Paddle) receding(dir r2.Vec) bool {
	switch p.Side {
	case Left:
		return dir.X > 0
	case Right:
		return dir.X < 0
	}
	return false
}

// collisionNormal opposes horizontal travel. Top and bottom contacts are not distinguished.
func collisionNormal(dir r2.Vec) r2.Vec {
	if dir.X > 0 {
		return r2.Vec{X: -1}
	}
	return r2.Vec{X: 1}
}

// penetration is the distance from the ball's leading edge to the paddle's near face.
func (p *Paddle) penetration(ball *Ball, dir r2.Vec) float64 {
	px := p.Position().X
	bx := ball.Position().X
	switch {
	case dir.X > 0:
		return max(0, bx+ball.Radius-(px-p.Width/2))
	case dir.X < 0:
		return max(0, (px+p.Width/2)-(bx-ball.Radius))
	}
	return 0
}
