// Package term runs the game in a terminal through tcell.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pthm-cable/pong/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options control the terminal loop.
type Options struct {
	FPS       int // ticks per second, 0 = 60
	MaxFrames int // 0 = unlimited
	Hold      float64
}

// Terminal drives a scene manager on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	canvas *Canvas
	keys   *Keys
	frames int
}

// New initializes screen, which may be a simulation screen, for a virtual
// resolution of virtual pixels.
func New(screen tcell.Screen, virtual r2.Vec, hold float64) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	screen.HideCursor()
	return &Terminal{
		screen: screen,
		canvas: NewCanvas(screen, virtual),
		keys:   NewKeys(hold),
	}, nil
}

// Frames returns the number of frames drawn so far.
func (t *Terminal) Frames() int { return t.frames }

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Run ticks mgr until ctx is done, Ctrl-C is pressed, a scene requests exit
// or MaxFrames is reached.
func (t *Terminal) Run(ctx context.Context, mgr *scene.Manager, opts Options) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float64(fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	targets := scene.Targets{Sprites: t.canvas, Primitives: t.canvas}
	for !mgr.CallingExit {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			t.keys.Advance(dt)
			mgr.Input.Update(t.keys.IsDown, r2.Vec{})
			mgr.Update(dt)

			t.screen.Clear()
			mgr.Draw(targets, dt)
			t.screen.Show()

			t.frames++
			if opts.MaxFrames > 0 && t.frames >= opts.MaxFrames {
				slog.Info("max frames reached", "frames", t.frames)
				return
			}
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
			return false
		}
		if k, ok := KeyOf(ev); ok {
			t.keys.Press(k)
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}
