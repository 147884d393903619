// Package pong implements the ball, paddles and their collision response.
package pong

import (
	"fmt"

	"github.com/pthm-cable/pong/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Side identifies a half of the playfield.
type Side uint8

const (
	NoSide Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	}
	return NoSide
}

// HitSector is one of the four vertical bands of a paddle face.
type HitSector uint8

const (
	SectorNone HitSector = iota
	OuterUp
	InnerUp
	InnerDown
	OuterDown
)

func (h HitSector) String() string {
	switch h {
	case OuterUp:
		return "outer-up"
	case InnerUp:
		return "inner-up"
	case InnerDown:
		return "inner-down"
	case OuterDown:
		return "outer-down"
	}
	return fmt.Sprintf("HitSector(%d)", uint8(h))
}

// Manifold describes a paddle contact.
type Manifold struct {
	Normal           r2.Vec // horizontal unit vector pointing away from the paddle face
	NewDirection     r2.Vec // unit direction after the bounce
	PenetrationDepth float64
	Sector           HitSector
}

// Goal is queued each time the ball crosses a goal line.
type Goal struct {
	Scorer     Side
	RallyHits  int
	Multiplier float64
}

// SoundPlayer plays short effects. Implementations must not block.
type SoundPlayer interface {
	PlaySound(name, id string, pitch, volume, pan float64)
}

// Silent discards every sound.
type Silent struct{}

func (Silent) PlaySound(name, id string, pitch, volume, pan float64) {}

// Arena is the world view ball and paddle behaviors read every frame.
type Arena interface {
	Bounds() geom.AABB
	Paddles() (left, right *Paddle)
	Sounds() SoundPlayer
}

// Sound effect names and instance ids.
const (
	SoundPlop         = "8bit_plop"
	SoundIDWall       = "collision_wall"
	SoundIDPaddle     = "collision_paddle"
	SoundIDGoalZone   = "collision_goalzone"
	paddlePitch       = 1.0
	goalPitch         = -1.0
	defaultSoundLevel = 1.0
)

// clampVertical returns the offset along Y that moves box by at most dy
// without leaving bounds vertically.
func clampVertical(box, bounds geom.AABB, dy float64) float64 {
	if dy < 0 {
		room := bounds.Lower.Y - box.Lower.Y
		return min(0, max(dy, room))
	}
	if dy > 0 {
		room := bounds.Upper.Y - box.Upper.Y
		return max(0, min(dy, room))
	}
	return 0
}

func vertical(dy float64) r2.Vec {
	return r2.Vec{Y: dy}
}
