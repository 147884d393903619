package pong

import (
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"gonum.org/v1/gonum/spatial/r2"
)

// BallTuning controls ball speed and rally escalation.
type BallTuning struct {
	Speed              float64 // world units per second at multiplier 1
	MaxSpeedMultiplier float64
	SpeedStep          float64
	HitsPerStep        int
	SeparationMargin   float64
}

// DefaultBallTuning matches the embedded configuration defaults.
var DefaultBallTuning = BallTuning{
	Speed:              350,
	MaxSpeedMultiplier: 4,
	SpeedStep:          0.2,
	HitsPerStep:        4,
	SeparationMargin:   0.5,
}

// BallBehavior moves the ball, bounces it off paddles and walls and queues
// goals. It waits idle until Space is released, then stays in flight.
type BallBehavior struct {
	object.Base

	Fired bool

	ball       *Ball
	arena      Arena
	tuning     BallTuning
	direction  r2.Vec
	hits       int
	multiplier float64
	goals      []Goal
}

// NewBallBehavior creates an idle behavior heading right.
func NewBallBehavior(arena Arena, tuning BallTuning) *BallBehavior {
	if arena == nil {
		panic("pong: NewBallBehavior requires an arena")
	}
	if tuning.HitsPerStep <= 0 {
		tuning.HitsPerStep = DefaultBallTuning.HitsPerStep
	}
	return &BallBehavior{
		arena:      arena,
		tuning:     tuning,
		direction:  r2.Vec{X: 1},
		multiplier: 1,
	}
}

func (b *BallBehavior) Type() object.Type { return object.Behavior }

func (b *BallBehavior) Init(owner object.Entity) {
	b.Base.Init(owner)
	b.ball = object.OwnerAs[*Ball](owner, "BallBehavior")
}

// Direction returns the unit travel direction.
func (b *BallBehavior) Direction() r2.Vec { return b.direction }

// SetDirection normalizes and stores d.
func (b *BallBehavior) SetDirection(d r2.Vec) { b.direction = geom.Normalize(d) }

// Hits returns paddle hits since the last goal.
func (b *BallBehavior) Hits() int { return b.hits }

// Multiplier returns the current speed multiplier.
func (b *BallBehavior) Multiplier() float64 { return b.multiplier }

// Velocity returns the displacement per second.
func (b *BallBehavior) Velocity() r2.Vec {
	return r2.Scale(b.multiplier*b.tuning.Speed, b.direction)
}

// DrainGoals returns and clears the queued goals.
func (b *BallBehavior) DrainGoals() []Goal {
	g := b.goals
	b.goals = nil
	return g
}

// Serve puts the behavior back to idle heading along dir with rally state cleared.
func (b *BallBehavior) Serve(dir r2.Vec) {
	b.Fired = false
	b.SetDirection(dir)
	b.hits = 0
	b.multiplier = 1
}

func (b *BallBehavior) Update(f object.Frame) {
	if f.Input != nil && f.Input.KeyWasReleased(input.KeySpace) {
		b.Fired = true
	}
	if !b.Fired {
		return
	}

	b.resolvePaddles()
	b.resolveWalls()

	b.ball.Move(r2.Scale(b.multiplier*b.tuning.Speed*f.DT, b.direction))
}

func (b *BallBehavior) resolvePaddles() {
	left, right := b.arena.Paddles()

	var (
		m   Manifold
		hit bool
	)
	for _, p := range [...]*Paddle{left, right} {
		if p == nil {
			continue
		}
		if m, hit = p.Collide(b.ball, b.direction); hit {
			break
		}
	}
	if !hit {
		return
	}

	b.hits++
	if b.hits%b.tuning.HitsPerStep == 0 {
		b.multiplier = geom.Clamp(b.multiplier+b.tuning.SpeedStep, 1, b.tuning.MaxSpeedMultiplier)
	}

	b.play(SoundIDPaddle, paddlePitch)
	b.ball.Move(r2.Scale(m.PenetrationDepth*2+b.tuning.SeparationMargin, m.Normal))
	b.SetDirection(m.NewDirection)
}

func (b *BallBehavior) resolveWalls() {
	bounds := b.arena.Bounds()
	r := b.ball.Radius

	if p := b.ball.Position(); p.X-r < bounds.Lower.X {
		depth := bounds.Lower.X - (p.X - r)
		b.direction.X = -b.direction.X
		b.ball.Move(r2.Vec{X: 2 * depth})
		b.play(SoundIDGoalZone, goalPitch)
		b.score(Right)
	}
	if p := b.ball.Position(); p.X+r > bounds.Upper.X {
		depth := p.X + r - bounds.Upper.X
		b.direction.X = -b.direction.X
		b.ball.Move(r2.Vec{X: -2 * depth})
		b.play(SoundIDGoalZone, goalPitch)
		b.score(Left)
	}
	if p := b.ball.Position(); p.Y-r < bounds.Lower.Y {
		depth := bounds.Lower.Y - (p.Y - r)
		b.direction.Y = -b.direction.Y
		b.ball.Move(r2.Vec{Y: 2 * depth})
		b.play(SoundIDWall, 0)
	}
	if p := b.ball.Position(); p.Y+r > bounds.Upper.Y {
		depth := p.Y + r - bounds.Upper.Y
		b.direction.Y = -b.direction.Y
		b.ball.Move(r2.Vec{Y: -2 * depth})
		b.play(SoundIDWall, 0)
	}
}

func (b *BallBehavior) score(side Side) {
	b.goals = append(b.goals, Goal{Scorer: side, RallyHits: b.hits, Multiplier: b.multiplier})
	b.hits = 0
	b.multiplier = 1
}

// play pans the effect toward the ball's horizontal position.
func (b *BallBehavior) play(id string, pitch float64) {
	s := b.arena.Sounds()
	if s == nil {
		return
	}
	pan := 0.0
	if w := b.arena.Bounds().Width(); w > 0 {
		pan = geom.Clamp((b.ball.Position().X-b.arena.Bounds().Center().X)/(w/2), -1, 1)
	}
	s.PlaySound(SoundPlop, id, pitch, defaultSoundLevel, pan)
}
