package scene

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/geom"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/pong"
	"github.com/pthm-cable/pong/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Scene names.
const (
	PongSceneName = "PongScene"
	BallSceneName = "BallScene"
)

const (
	scoreSize       = 32
	backgroundLineH = 2.0
)

// MatchSink receives match events, typically for telemetry.
type MatchSink interface {
	Goal(g pong.Goal, left, right int, elapsed float64) error
	Finish(winner pong.Side, left, right int, elapsed float64) error
}

// PongScene is the game: two paddles, a ball and the menus around them.
type PongScene struct {
	Base

	// Autoplay puts the AI on both paddles, skips the main menu and serves
	// with a random vertical tilt so unattended rallies end.
	Autoplay bool
	Sink     MatchSink

	cfg *config.Config
	rng *rand.Rand
	mgr *Manager

	bounds      geom.AABB
	ball        *pong.Ball
	ballAI      *pong.BallBehavior
	left, right *pong.Paddle
	match       *pong.Match
	finished    bool
	elapsed     float64

	mainMenu *Menu
	options  *OptionsMenu
	paused   *Notice
	win      *Notice
}

// NewPongScene creates the scene. rng drives paddle deflection spread and,
// in autoplay, serve direction.
func NewPongScene(cfg *config.Config, adapter camera.ScreenAdapter, rng *rand.Rand) *PongScene {
	if cfg == nil {
		panic("scene: NewPongScene requires a config")
	}
	if rng == nil {
		panic("scene: NewPongScene requires a random source")
	}
	return &PongScene{
		Base:  newBase(PongSceneName, adapter),
		cfg:   cfg,
		rng:   rng,
		match: pong.NewMatch(cfg.Match.PointsToWin),
	}
}

// Bounds returns the playfield.
func (s *PongScene) Bounds() geom.AABB { return s.bounds }

// Paddles returns both paddles, nil before Load.
func (s *PongScene) Paddles() (left, right *pong.Paddle) { return s.left, s.right }

// Sounds returns the manager's mixer.
func (s *PongScene) Sounds() pong.SoundPlayer {
	if s.mgr == nil {
		return pong.Silent{}
	}
	return s.mgr.Sounds
}

// Ball returns the ball, nil before Load.
func (s *PongScene) Ball() *pong.Ball { return s.ball }

// Score returns the left and right scores.
func (s *PongScene) Score() (left, right int) { return s.match.Score() }

// Finished reports whether the current match has been decided and recorded.
func (s *PongScene) Finished() bool { return s.finished }

// Winner returns the side that won, or NoSide while the match runs.
func (s *PongScene) Winner() pong.Side { return s.match.Winner() }

// PointsToWin returns the winning score.
func (s *PongScene) PointsToWin() int { return s.match.PointsToWin() }

// SetPointsToWin sets the winning score, clamped to [pong.MinPoints, pong.MaxPoints].
func (s *PongScene) SetPointsToWin(n int) { s.match.SetPointsToWin(n) }

// MainMenu returns the main menu UI.
func (s *PongScene) MainMenu() *Menu { return s.mainMenu }

// Options returns the options UI.
func (s *PongScene) Options() *OptionsMenu { return s.options }

// PausedUI returns the pause overlay.
func (s *PongScene) PausedUI() *Notice { return s.paused }

// WinUI returns the match result overlay.
func (s *PongScene) WinUI() *Notice { return s.win }

func (s *PongScene) Load(m *Manager) {
	s.load(s.cfg.Camera)
	s.mgr = m
	s.bounds = s.cfg.Derived.WorldBox

	ball := pong.NewBall("pong_ball", r2.Vec{}, s.cfg.Derived.BallHalf)
	s.ballAI = pong.NewBallBehavior(s, pong.BallTuning{
		Speed:              s.cfg.Ball.Speed,
		MaxSpeedMultiplier: s.cfg.Ball.MaxSpeedMultiplier,
		SpeedStep:          s.cfg.Ball.SpeedStep,
		HitsPerStep:        s.cfg.Ball.HitsPerStep,
		SeparationMargin:   s.cfg.Ball.SeparationMargin,
	})
	ball.AddComponent(pong.NewBallModel())
	ball.AddComponent(s.ballAI)
	s.ball = ball

	pc := s.cfg.Paddle
	s.left = pong.NewPaddle("paddle_left", pong.Left, r2.Vec{X: -pc.Offset}, pc.Width, pc.Height, s.rng)
	s.right = pong.NewPaddle("paddle_right", pong.Right, r2.Vec{X: pc.Offset}, pc.Width, pc.Height, s.rng)

	ai := pong.AITuning{MaxSpeed: s.cfg.AI.MaxSpeed, DeadZone: s.cfg.AI.DeadZone, SlowZone: s.cfg.AI.SlowZone}
	s.left.AddComponent(pong.NewPaddleModel())
	if s.Autoplay {
		s.left.AddComponent(pong.NewPaddleAIBehavior(ball, s, ai))
	} else {
		s.left.AddComponent(pong.NewPaddlePlayerBehavior(s, pc.PlayerSpeed))
	}
	s.right.AddComponent(pong.NewPaddleModel())
	s.right.AddComponent(pong.NewPaddleAIBehavior(ball, s, ai))

	s.Actors.Add(s.left)
	s.Actors.Add(s.right)
	s.Actors.Add(ball)

	s.buildUI()
	s.Reset(0)

	if s.Autoplay {
		s.launch()
		return
	}
	m.PushUI(s.mainMenu)
}

// Rematch starts a new match with the ball already in flight.
func (s *PongScene) Rematch() {
	s.Reset(0)
	s.launch()
}

func (s *PongScene) launch() {
	s.serve(pong.Right)
	s.ballAI.Fired = true
}

func (s *PongScene) Unload() {
	s.unload()
	s.ball, s.ballAI, s.left, s.right = nil, nil, nil, nil
	s.mgr = nil
}

func (s *PongScene) buildUI() {
	s.options = newOptionsMenu(s)

	s.mainMenu = NewMenu("P O N G", MenuLayout{Centered: true, Anchor: 2.0 / 3, Spacing: 70, TitleSize: 64, ItemSize: 32},
		Button("New Game", func() { s.Reset(2) }),
		Button("Options", func() {
			s.options.Sync()
			s.mgr.PushUI(s.options)
		}),
		Button("Exit", func() { s.mgr.CallingExit = true }),
	)
	s.mainMenu.OnBack = s.mgr.PopUI

	s.paused = &Notice{
		Text:       func() string { return "Game is [P]aused" },
		Size:       32,
		Background: render.Dim,
		Keys:       []input.Key{input.KeyP, input.KeyEscape},
		OnDismiss:  s.mgr.PopUI,
	}

	s.win = &Notice{
		Text: func() string {
			l, r := s.match.Score()
			return fmt.Sprintf("%s side won! (%d:%d)", sideTitle(s.match.Winner()), l, r)
		},
		Size:       32,
		Background: render.Black,
		Keys:       []input.Key{input.KeyEscape, input.KeySpace, input.KeyEnter},
		OnDismiss:  func() { s.Reset(1) },
	}
}

// Reset starts a fresh match with the ball idle at the center, then pops
// popUI layers off the UI stack.
func (s *PongScene) Reset(popUI int) {
	if !s.finished {
		if l, r := s.match.Score(); l+r > 0 {
			s.finish(pong.NoSide)
		}
	}
	s.match.Reset()
	s.finished = false
	s.elapsed = 0

	s.ball.SetPosition(r2.Vec{})
	s.ballAI.Serve(r2.Vec{X: 1})
	s.left.SetPosition(r2.Vec{X: -s.cfg.Paddle.Offset})
	s.right.SetPosition(r2.Vec{X: s.cfg.Paddle.Offset})

	for range max(popUI, -popUI) {
		s.mgr.PopUI()
	}
}

func (s *PongScene) Update(f object.Frame) {
	s.update(f)
	in := f.Input
	if in == nil {
		in = input.None
	}

	if in.KeyWasReleased(input.KeyF4) {
		s.Camera().Enabled = !s.Camera().Enabled
	}
	if in.KeyWasReleased(input.KeyF5) {
		s.mgr.LoadScene(BallSceneName)
		return
	}

	if w := s.match.Winner(); w != pong.NoSide {
		if !s.finished {
			s.finish(w)
		}
		if s.Autoplay {
			return
		}
		s.mgr.PushUI(s.mainMenu)
		s.mgr.PushUI(s.win)
		return
	}

	if in.KeyWasReleased(input.KeyP) {
		s.mgr.PushUI(s.paused)
		return
	}
	if in.KeyWasReleased(input.KeyEscape) {
		s.mgr.PushUI(s.mainMenu)
		return
	}

	s.Actors.Update(f)
	s.elapsed += f.DT

	for _, g := range s.ballAI.DrainGoals() {
		s.goal(g)
	}
}

func (s *PongScene) goal(g pong.Goal) {
	s.match.Goal(g.Scorer)
	l, r := s.match.Score()
	slog.Info("goal", "side", g.Scorer.String(), "left", l, "right", r, "rally_hits", g.RallyHits, "multiplier", g.Multiplier)
	if s.Sink != nil {
		if err := s.Sink.Goal(g, l, r, s.elapsed); err != nil {
			slog.Warn("recording goal", "error", err)
		}
	}
	s.serve(g.Scorer)
}

func (s *PongScene) finish(winner pong.Side) {
	s.finished = true
	l, r := s.match.Score()
	slog.Info("match over", "winner", winner.String(), "left", l, "right", r, "elapsed", s.elapsed)
	if s.Sink != nil {
		if err := s.Sink.Finish(winner, l, r, s.elapsed); err != nil {
			slog.Warn("recording match", "error", err)
		}
	}
}

// serve puts the ball in front of the scorer's paddle, clear of its face,
// heading at the opponent. The ball stays in flight.
func (s *PongScene) serve(scorer pong.Side) {
	offset := s.left.Width/2 + s.ball.Radius + s.cfg.Ball.SeparationMargin
	var pos, dir r2.Vec
	switch scorer {
	case pong.Left:
		pos = r2.Add(s.left.Position(), r2.Vec{X: offset})
		dir = r2.Vec{X: 1}
	case pong.Right:
		pos = r2.Sub(s.right.Position(), r2.Vec{X: offset})
		dir = r2.Vec{X: -1}
	default:
		return
	}
	if s.Autoplay {
		dir.Y = s.rng.Float64() - 0.5
	}
	s.ball.SetPosition(pos)
	s.ballAI.SetDirection(dir)
}

// UIEntered pauses the scene. Opening the main menu mid rally stacks the
// pause overlay beneath it.
func (s *PongScene) UIEntered(u UI) {
	if s.ballAI.Fired && u == UI(s.mainMenu) {
		s.mgr.PushUI(s.paused)
	}
	s.SetEnabled(false)
}

// UIExited resumes the scene once the UI stack is empty.
func (s *PongScene) UIExited(u UI) {
	if !s.mgr.UIActive() {
		s.SetEnabled(true)
	}
}

func (s *PongScene) Draw(t Targets, dt float64) {
	if t.Primitives != nil {
		t.Primitives.Begin(s.Camera())
		s.drawBackground(t.Primitives)
		t.Primitives.End()
	}
	s.drawWorld(t, dt)

	if t.Sprites != nil {
		t.Sprites.Begin(camera.VirtualView{Adapter: s.adapter})
		l, r := s.match.Score()
		text := fmt.Sprintf("%d | %d", l, r)
		t.Sprites.DrawString(text, centered(t.Sprites, text, scoreSize, s.Screen().Center().X, 15), scoreSize, render.White)
		t.Sprites.End()
	}
}

// drawBackground draws the lines just outside the top and bottom walls.
func (s *PongScene) drawBackground(b render.PrimitiveBatch) {
	w := s.bounds.Width()
	off := s.bounds.Height()/2 + backgroundLineH
	c := s.bounds.Center()

	top := geom.NewAABB(r2.Vec{X: c.X - w/2, Y: c.Y - off - backgroundLineH}, r2.Vec{X: c.X + w/2, Y: c.Y - off + backgroundLineH})
	bottom := geom.NewAABB(r2.Vec{X: c.X - w/2, Y: c.Y + off - backgroundLineH}, r2.Vec{X: c.X + w/2, Y: c.Y + off + backgroundLineH})
	render.DrawRectangle(b, top, render.White)
	render.DrawRectangle(b, bottom, render.White)
}

func sideTitle(s pong.Side) string {
	switch s {
	case pong.Left:
		return "Left"
	case pong.Right:
		return "Right"
	}
	return "None"
}

// OptionsMenu edits master volume and points to win. Changes apply when the
// menu is closed with Escape.
type OptionsMenu struct {
	*Menu

	Volume *MenuItem
	Points *MenuItem

	scene *PongScene
}

func newOptionsMenu(s *PongScene) *OptionsMenu {
	o := &OptionsMenu{
		Volume: Slider("Master volume", 1, 0.1, 0, 1),
		Points: Slider("Points to win", float64(s.PointsToWin()), 1, pong.MinPoints, pong.MaxPoints),
		scene:  s,
	}
	o.Menu = NewMenu("", MenuLayout{Anchor: 0.5, Spacing: 40, ItemSize: 24}, o.Volume, o.Points)
	o.Menu.OnBack = o.Apply
	return o
}

// Sync loads the current settings into the items.
func (o *OptionsMenu) Sync() {
	o.Volume.SetValue(o.scene.mgr.Sounds.MasterVolume())
	o.Points.SetValue(float64(o.scene.PointsToWin()))
}

// Apply closes the menu and applies the item values.
func (o *OptionsMenu) Apply() {
	mgr := o.scene.mgr
	mgr.PopUI()
	mgr.Sounds.SetMasterVolume(o.Volume.Value)
	o.scene.SetPointsToWin(int(o.Points.Value))
}
