package pong

import (
	"math"

	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
)

// AITuning controls the computer paddle.
type AITuning struct {
	MaxSpeed float64 // world units per second
	DeadZone float64
	SlowZone float64
}

// DefaultAITuning matches the embedded configuration defaults.
var DefaultAITuning = AITuning{MaxSpeed: 300, DeadZone: 10, SlowZone: 200}

// PaddleAIBehavior tracks the ball vertically while it approaches.
type PaddleAIBehavior struct {
	object.Base

	paddle *Paddle
	ball   *Ball
	arena  Arena
	tuning AITuning

	lastReach float64
	seen      bool
}

// NewPaddleAIBehavior creates an AI controller chasing ball.
func NewPaddleAIBehavior(ball *Ball, arena Arena, tuning AITuning) *PaddleAIBehavior {
	if ball == nil || arena == nil {
		panic("pong: NewPaddleAIBehavior requires a ball and an arena")
	}
	return &PaddleAIBehavior{ball: ball, arena: arena, tuning: tuning}
}

func (a *PaddleAIBehavior) Type() object.Type { return object.Behavior }

func (a *PaddleAIBehavior) Init(owner object.Entity) {
	a.Base.Init(owner)
	a.paddle = object.OwnerAs[*Paddle](owner, "PaddleAIBehavior")
}

// SpeedFactor returns the fraction of MaxSpeed to use for a vertical gap of
// distance. It ramps linearly to zero inside the slow zone.
func (a *PaddleAIBehavior) SpeedFactor(distance float64) float64 {
	if distance < a.tuning.DeadZone {
		return 0
	}
	if a.tuning.SlowZone <= 0 {
		return 1
	}
	return min(distance/a.tuning.SlowZone, 1)
}

func (a *PaddleAIBehavior) Update(f object.Frame) {
	pp := a.paddle.Position()
	bp := a.ball.Position()

	reach := math.Abs(bp.X - pp.X)
	receding := a.seen && reach > a.lastReach
	a.lastReach, a.seen = reach, true

	dy := bp.Y - pp.Y
	factor := a.SpeedFactor(math.Abs(dy))
	if receding || factor == 0 {
		return
	}

	step := min(a.tuning.MaxSpeed*factor*f.DT, math.Abs(dy))
	if dy < 0 {
		step = -step
	}
	a.paddle.Move(vertical(clampVertical(a.paddle.Bounds(), a.arena.Bounds(), step)))
}

// PaddlePlayerBehavior moves the paddle with the keyboard.
type PaddlePlayerBehavior struct {
	object.Base

	Speed float64 // world units per second
	Up    input.Key
	Down  input.Key

	paddle *Paddle
	arena  Arena
}

// NewPaddlePlayerBehavior creates an Up/Down keyboard controller.
func NewPaddlePlayerBehavior(arena Arena, speed float64) *PaddlePlayerBehavior {
	if arena == nil {
		panic("pong: NewPaddlePlayerBehavior requires an arena")
	}
	return &PaddlePlayerBehavior{Speed: speed, Up: input.KeyUp, Down: input.KeyDown, arena: arena}
}

func (p *PaddlePlayerBehavior) Type() object.Type { return object.Behavior }

func (p *PaddlePlayerBehavior) Init(owner object.Entity) {
	p.Base.Init(owner)
	p.paddle = object.OwnerAs[*Paddle](owner, "PaddlePlayerBehavior")
}

func (p *PaddlePlayerBehavior) Update(f object.Frame) {
	if f.Input == nil {
		return
	}
	dy := 0.0
	if f.Input.IsKeyDown(p.Up) {
		dy -= p.Speed * f.DT
	}
	if f.Input.IsKeyDown(p.Down) {
		dy += p.Speed * f.DT
	}
	if dy != 0 {
		p.paddle.Move(vertical(clampVertical(p.paddle.Bounds(), p.arena.Bounds(), dy)))
	}
}
