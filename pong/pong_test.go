package pong

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"gonum.org/v1/gonum/spatial/r2"
)

type playedSound struct {
	id         string
	pitch, pan float64
}

type soundLog struct {
	played []playedSound
}

func (s *soundLog) PlaySound(name, id string, pitch, volume, pan float64) {
	s.played = append(s.played, playedSound{id: id, pitch: pitch, pan: pan})
}

type testArena struct {
	bounds      geom.AABB
	left, right *Paddle
	sounds      *soundLog
}

func (a *testArena) Bounds() geom.AABB             { return a.bounds }
func (a *testArena) Paddles() (left, right *Paddle) { return a.left, a.right }
func (a *testArena) Sounds() SoundPlayer            { return a.sounds }

// newTestArena builds the default 1200x570 field with paddles at +-335.
func newTestArena() *testArena {
	rng := rand.New(rand.NewSource(42))
	return &testArena{
		bounds: geom.FromCenter(r2.Vec{}, 1200, 570),
		left:   NewPaddle("left", Left, r2.Vec{X: -335}, 4, 80, rng),
		right:  NewPaddle("right", Right, r2.Vec{X: 335}, 4, 80, rng),
		sounds: &soundLog{},
	}
}

func newFiredBall(arena *testArena, pos r2.Vec) (*Ball, *BallBehavior) {
	ball := NewBall("ball", pos, 4)
	bb := NewBallBehavior(arena, DefaultBallTuning)
	ball.AddComponent(bb)
	bb.Fired = true
	return ball, bb
}

func still() object.Frame {
	return object.Frame{DT: 0, Input: input.None}
}

func vecNear(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestHitSectorBands(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPaddle("p", Right, r2.Vec{X: 0, Y: 100}, 4, 80, rng)

	testCases := []struct {
		y    float64
		want HitSector
	}{
		{60, OuterUp},
		{80, OuterUp},
		{80.001, InnerUp},
		{99.999, InnerUp},
		{100, InnerDown}, // center resolves to inner-down
		{119.999, InnerDown},
		{120, OuterDown},
		{140, OuterDown},
	}
	for _, tc := range testCases {
		if got := p.HitSector(tc.y); got != tc.want {
			t.Errorf("y=%v: expected %s, got %s", tc.y, tc.want, got)
		}
	}
}

func TestHitSectorExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPaddle("p", Left, r2.Vec{Y: -37.5}, 4, 80, rng)

	// Sweep the face plus the ball's reach; every y gets exactly one band and
	// bands appear in order from top to bottom.
	prev := OuterUp
	for y := -37.5 - 44; y <= -37.5+44; y += 0.01 {
		s := p.HitSector(y)
		if s == SectorNone {
			t.Fatalf("y=%v unclassified", y)
		}
		if s < prev {
			t.Fatalf("band order broken at y=%v: %s after %s", y, s, prev)
		}
		prev = s
	}
	if prev != OuterDown {
		t.Errorf("sweep ended in %s", prev)
	}
}

func TestCollideUnclassifiablePanics(t *testing.T) {
	a := newTestArena()
	ball := NewBall("ball", r2.Vec{X: 333}, 4)
	ball.SetPosition(r2.Vec{X: 333, Y: math.NaN()})

	// NaN bounds still overlap horizontally but fail every band
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unclassifiable sector")
		}
	}()
	a.right.Collide(ball, r2.Vec{X: 1})
}

func TestCollideMiss(t *testing.T) {
	a := newTestArena()
	ball := NewBall("ball", r2.Vec{}, 4)
	if _, ok := a.right.Collide(ball, r2.Vec{X: 1}); ok {
		t.Error("expected no collision at center")
	}
}

func TestCollideInnerReflects(t *testing.T) {
	a := newTestArena()
	dirs := []r2.Vec{
		geom.Normalize(r2.Vec{X: 1, Y: 0.3}),
		geom.Normalize(r2.Vec{X: 1, Y: -0.7}),
		{X: 1},
	}
	for _, d := range dirs {
		ball := NewBall("ball", r2.Vec{X: 330, Y: 5}, 4)
		m, ok := a.right.Collide(ball, d)
		if !ok {
			t.Fatalf("expected collision for %v", d)
		}
		if m.Sector != InnerDown {
			t.Errorf("expected inner-down, got %s", m.Sector)
		}
		if m.Normal != (r2.Vec{X: -1}) {
			t.Errorf("expected normal (-1,0), got %v", m.Normal)
		}
		if math.Abs(r2.Norm(m.NewDirection)-1) > 1e-9 {
			t.Errorf("expected unit direction, got %v", m.NewDirection)
		}
		// Normal component flips, tangential component is kept
		if math.Abs(r2.Dot(m.NewDirection, m.Normal)+r2.Dot(d, m.Normal)) > 1e-9 ||
			math.Abs(m.NewDirection.Y-d.Y) > 1e-9 {
			t.Errorf("reflection law violated: %v -> %v", d, m.NewDirection)
		}
	}
}

func TestCollideOuterBandsSpread(t *testing.T) {
	a := newTestArena()
	for i := 0; i < 200; i++ {
		up := NewBall("ball", r2.Vec{X: 330, Y: -30}, 4)
		m, ok := a.right.Collide(up, r2.Vec{X: 1})
		if !ok || m.Sector != OuterUp {
			t.Fatalf("expected outer-up hit, got %v %s", ok, m.Sector)
		}
		if m.NewDirection.X >= 0 || m.NewDirection.Y >= 0 {
			t.Fatalf("expected up-left deflection, got %v", m.NewDirection)
		}
		slope := -m.NewDirection.Y / -m.NewDirection.X
		if slope < spreadMin-1e-9 || slope >= spreadMin+spreadRange {
			t.Fatalf("spread %v outside [0.3, 1.3)", slope)
		}

		down := NewBall("ball", r2.Vec{X: -333, Y: 30}, 4)
		m, ok = a.left.Collide(down, r2.Vec{X: -1})
		if !ok || m.Sector != OuterDown {
			t.Fatalf("expected outer-down hit, got %v %s", ok, m.Sector)
		}
		if m.NewDirection.X <= 0 || m.NewDirection.Y <= 0 {
			t.Fatalf("expected down-right deflection, got %v", m.NewDirection)
		}
		if math.Abs(r2.Norm(m.NewDirection)-1) > 1e-9 {
			t.Fatalf("expected unit direction, got %v", m.NewDirection)
		}
	}
}

func TestCollideSeededSpreadRepeats(t *testing.T) {
	p1 := NewPaddle("a", Right, r2.Vec{}, 4, 80, rand.New(rand.NewSource(9)))
	p2 := NewPaddle("b", Right, r2.Vec{}, 4, 80, rand.New(rand.NewSource(9)))
	ball := NewBall("ball", r2.Vec{X: -4, Y: 35}, 4)

	for i := 0; i < 10; i++ {
		m1, _ := p1.Collide(ball, r2.Vec{X: 1})
		m2, _ := p2.Collide(ball, r2.Vec{X: 1})
		if m1.NewDirection != m2.NewDirection {
			t.Fatalf("same seed produced %v and %v", m1.NewDirection, m2.NewDirection)
		}
	}
}

func TestPenetrationDepth(t *testing.T) {
	a := newTestArena()

	// Right paddle face is at 333; ball leading edge at 336
	ball := NewBall("ball", r2.Vec{X: 332}, 4)
	m, _ := a.right.Collide(ball, r2.Vec{X: 1})
	if math.Abs(m.PenetrationDepth-3) > 1e-9 {
		t.Errorf("expected depth 3, got %v", m.PenetrationDepth)
	}

	// Left paddle face is at -333; ball leading edge at -335
	ball = NewBall("ball", r2.Vec{X: -331}, 4)
	m, _ = a.left.Collide(ball, r2.Vec{X: -1})
	if math.Abs(m.PenetrationDepth-2) > 1e-9 {
		t.Errorf("expected depth 2, got %v", m.PenetrationDepth)
	}
}

func TestCollideIgnoresRecedingBall(t *testing.T) {
	a := newTestArena()

	// Flush against the left paddle's field face and moving away from it
	ball := NewBall("ball", r2.Vec{X: -333 + 4}, 4)
	if _, ok := a.left.Collide(ball, r2.Vec{X: 1}); ok {
		t.Error("expected no contact for a ball leaving the left paddle")
	}
	ball = NewBall("ball", r2.Vec{X: 333 - 4}, 4)
	if _, ok := a.right.Collide(ball, r2.Vec{X: -1, Y: 0.5}); ok {
		t.Error("expected no contact for a ball leaving the right paddle")
	}

	// The same ball heading back in still hits
	if _, ok := a.right.Collide(ball, r2.Vec{X: 1}); !ok {
		t.Error("expected contact for a ball approaching the right paddle")
	}
}

func TestBallLeavesPaddleItTouches(t *testing.T) {
	a := newTestArena()
	ball, bb := newFiredBall(a, r2.Vec{X: -333 + 4})
	bb.SetDirection(r2.Vec{X: 1})

	for i := 0; i < 10; i++ {
		ball.Update(object.Frame{DT: 1.0 / 60, Input: input.None})
	}
	if bb.Direction().X <= 0 || bb.Hits() != 0 {
		t.Errorf("expected ball to keep moving right without a hit, got dir %v hits %d", bb.Direction(), bb.Hits())
	}
	if ball.Position().X <= -329 {
		t.Errorf("expected ball to move away from the paddle, got %v", ball.Position())
	}
}

func TestBallIdleUntilSpaceReleased(t *testing.T) {
	a := newTestArena()
	ball := NewBall("ball", r2.Vec{}, 4)
	bb := NewBallBehavior(a, DefaultBallTuning)
	ball.AddComponent(bb)

	var in input.State
	in.Update(func(k input.Key) bool { return k == input.KeySpace }, r2.Vec{})
	ball.Update(object.Frame{DT: 0.1, Input: &in})
	if bb.Fired || ball.Position() != (r2.Vec{}) {
		t.Fatalf("ball moved before launch: %v", ball.Position())
	}

	in.Update(func(input.Key) bool { return false }, r2.Vec{})
	ball.Update(object.Frame{DT: 0.1, Input: &in})
	if !bb.Fired {
		t.Fatal("expected launch on release")
	}
	if !vecNear(ball.Position(), r2.Vec{X: 35}, 1e-9) {
		t.Errorf("expected (35,0) after 0.1s, got %v", ball.Position())
	}
}

func TestBallBehaviorRequiresBall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic attaching ball behavior to a paddle")
		}
	}()
	a := newTestArena()
	a.left.AddComponent(NewBallBehavior(a, DefaultBallTuning))
}

func TestPaddleHitPushOut(t *testing.T) {
	a := newTestArena()
	ball, bb := newFiredBall(a, r2.Vec{X: 332})

	ball.Update(still())

	// depth 3, pushed back 2*3 + 0.5
	if !vecNear(ball.Position(), r2.Vec{X: 325.5}, 1e-9) {
		t.Errorf("expected x=325.5, got %v", ball.Position())
	}
	if bb.Direction() != (r2.Vec{X: -1}) {
		t.Errorf("expected direction (-1,0), got %v", bb.Direction())
	}
	if bb.Hits() != 1 {
		t.Errorf("expected 1 hit, got %d", bb.Hits())
	}
	if len(a.sounds.played) != 1 || a.sounds.played[0].id != SoundIDPaddle || a.sounds.played[0].pitch != 1 {
		t.Errorf("expected paddle sound, got %+v", a.sounds.played)
	}
	if a.sounds.played[0].pan <= 0 {
		t.Errorf("expected right pan, got %v", a.sounds.played[0].pan)
	}
}

func TestSpeedEscalation(t *testing.T) {
	a := newTestArena()
	ball, bb := newFiredBall(a, r2.Vec{})

	hit := func() {
		ball.SetPosition(r2.Vec{X: 332})
		bb.SetDirection(r2.Vec{X: 1})
		ball.Update(still())
	}

	for i := 0; i < 3; i++ {
		hit()
	}
	if bb.Multiplier() != 1 {
		t.Errorf("expected 1.0 after 3 hits, got %v", bb.Multiplier())
	}
	hit()
	if math.Abs(bb.Multiplier()-1.2) > 1e-9 {
		t.Errorf("expected 1.2 after 4 hits, got %v", bb.Multiplier())
	}

	// Far more hits than needed still stay under the clamp
	for i := 0; i < 100; i++ {
		hit()
	}
	if bb.Multiplier() > DefaultBallTuning.MaxSpeedMultiplier+1e-9 {
		t.Errorf("multiplier %v exceeds clamp", bb.Multiplier())
	}

	// A goal resets the rally
	ball.SetPosition(r2.Vec{X: 599})
	bb.SetDirection(r2.Vec{X: 1})
	ball.Update(still())
	if bb.Multiplier() != 1 || bb.Hits() != 0 {
		t.Errorf("expected reset after goal, got multiplier %v hits %d", bb.Multiplier(), bb.Hits())
	}
	goals := bb.DrainGoals()
	if len(goals) != 1 || goals[0].RallyHits != 104 {
		t.Errorf("expected one goal after 104 hits, got %+v", goals)
	}
}

func TestRightWallGoal(t *testing.T) {
	a := newTestArena()
	match := NewMatch(3)

	// Leading edge 3 units past the right wall at x=600
	ball, bb := newFiredBall(a, r2.Vec{X: 599, Y: 100})
	ball.Update(still())

	if !vecNear(ball.Position(), r2.Vec{X: 593, Y: 100}, 1e-9) {
		t.Errorf("expected ball moved left by 6 to x=593, got %v", ball.Position())
	}
	if bb.Direction().X != -1 {
		t.Errorf("expected X component negated, got %v", bb.Direction())
	}

	goals := bb.DrainGoals()
	if len(goals) != 1 || goals[0].Scorer != Left {
		t.Fatalf("expected one left goal, got %+v", goals)
	}
	for _, g := range goals {
		match.Goal(g.Scorer)
	}
	if l, r := match.Score(); l != 1 || r != 0 {
		t.Errorf("expected 1:0, got %d:%d", l, r)
	}

	// The ball is back inside; no second goal
	ball.Update(still())
	if g := bb.DrainGoals(); len(g) != 0 {
		t.Errorf("expected no further goals, got %+v", g)
	}
	if last := a.sounds.played[0]; last.id != SoundIDGoalZone || last.pitch != -1 {
		t.Errorf("expected goal zone sound, got %+v", last)
	}
}

func TestLeftWallGoal(t *testing.T) {
	a := newTestArena()
	ball, bb := newFiredBall(a, r2.Vec{X: -598, Y: -200})
	bb.SetDirection(r2.Vec{X: -1})
	ball.Update(still())

	if !vecNear(ball.Position(), r2.Vec{X: -594, Y: -200}, 1e-9) {
		t.Errorf("expected x=-594, got %v", ball.Position())
	}
	goals := bb.DrainGoals()
	if len(goals) != 1 || goals[0].Scorer != Right {
		t.Errorf("expected one right goal, got %+v", goals)
	}
}

func TestTopAndBottomWalls(t *testing.T) {
	a := newTestArena()

	// Top wall at y=-285, penetration 1
	ball, bb := newFiredBall(a, r2.Vec{X: 0, Y: -282})
	bb.SetDirection(r2.Vec{X: 1, Y: -1})
	ball.Update(still())
	if !vecNear(ball.Position(), r2.Vec{Y: -280}, 1e-9) {
		t.Errorf("expected y=-280, got %v", ball.Position())
	}
	if bb.Direction().Y <= 0 {
		t.Errorf("expected Y flipped downward, got %v", bb.Direction())
	}

	// Bottom wall at y=285, penetration 2
	ball, bb = newFiredBall(a, r2.Vec{X: 0, Y: 283})
	bb.SetDirection(r2.Vec{X: 1, Y: 1})
	ball.Update(still())
	if !vecNear(ball.Position(), r2.Vec{Y: 279}, 1e-9) {
		t.Errorf("expected y=279, got %v", ball.Position())
	}
	if bb.Direction().Y >= 0 {
		t.Errorf("expected Y flipped upward, got %v", bb.Direction())
	}
	if len(bb.DrainGoals()) != 0 {
		t.Error("top and bottom walls must not score")
	}
}

func TestRallyInnerDownBounce(t *testing.T) {
	a := newTestArena()
	a.right.SetPosition(r2.Vec{X: 50})
	ball, bb := newFiredBall(a, r2.Vec{})
	incoming := geom.Normalize(r2.Vec{X: 4, Y: 1})
	bb.SetDirection(incoming)

	frame := object.Frame{DT: 1.0 / 60, Input: input.None}
	for i := 0; i < 30 && bb.Direction().X > 0; i++ {
		ball.Update(frame)
	}

	want := r2.Vec{X: -incoming.X, Y: incoming.Y}
	if !vecNear(bb.Direction(), want, 1e-9) {
		t.Errorf("expected mirrored direction %v, got %v", want, bb.Direction())
	}
	if bb.Direction().Y <= 0 {
		t.Errorf("expected positive Y after inner-down bounce, got %v", bb.Direction())
	}
	if g := bb.DrainGoals(); len(g) != 0 {
		t.Errorf("expected no goal, got %+v", g)
	}
	if bb.Hits() != 1 {
		t.Errorf("expected 1 hit, got %d", bb.Hits())
	}
}

func TestServeResetsState(t *testing.T) {
	a := newTestArena()
	ball, bb := newFiredBall(a, r2.Vec{X: 332})
	ball.Update(still())

	bb.Serve(r2.Vec{X: -3})
	if bb.Fired || bb.Hits() != 0 || bb.Multiplier() != 1 || bb.Direction() != (r2.Vec{X: -1}) {
		t.Errorf("unexpected state after serve: fired=%v hits=%d mult=%v dir=%v",
			bb.Fired, bb.Hits(), bb.Multiplier(), bb.Direction())
	}
	if ball.Behavior() != bb {
		t.Error("expected Behavior to find the attached ball behavior")
	}
}
