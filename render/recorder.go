package render

import (
	"image/color"

	"github.com/pthm-cable/pong/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// CommandKind identifies a recorded draw command.
type CommandKind uint8

const (
	CmdLine CommandKind = iota
	CmdTriangle
	CmdSprite
	CmdString
	CmdFillRect
)

// Command is one draw call captured by a Recorder, with points already in screen space.
type Command struct {
	Kind     CommandKind
	Points   []r2.Vec
	Color    color.RGBA
	Text     string
	Texture  string
	Rotation float64
}

// Recorder is an in-memory SpriteBatch and PrimitiveBatch. It backs headless
// runs and tests. Calls outside Begin/End are counted in Dropped and discarded.
type Recorder struct {
	Commands []Command
	Dropped  int
	Frames   int

	view   View
	active bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin opens a bracket using view for coordinate mapping.
func (r *Recorder) Begin(view View) {
	if view == nil {
		view = ScreenSpace{}
	}
	r.view = view
	r.active = true
}

// End closes the bracket.
func (r *Recorder) End() {
	if r.active {
		r.Frames++
	}
	r.active = false
}

// Reset discards recorded commands and counters.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.Dropped = 0
	r.Frames = 0
}

// Count returns how many commands of kind were recorded.
func (r *Recorder) Count(kind CommandKind) int {
	n := 0
	for _, c := range r.Commands {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Strings returns the text of every recorded string command in order.
func (r *Recorder) Strings() []string {
	var out []string
	for _, c := range r.Commands {
		if c.Kind == CmdString {
			out = append(out, c.Text)
		}
	}
	return out
}

func (r *Recorder) record(c Command) {
	if !r.active {
		r.Dropped++
		return
	}
	r.Commands = append(r.Commands, c)
}

func (r *Recorder) project(pts ...r2.Vec) []r2.Vec {
	if !r.active {
		return nil
	}
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r.view.WorldToScreen(p)
	}
	return out
}

func (r *Recorder) DrawLine(a, b r2.Vec, c color.RGBA) {
	r.record(Command{Kind: CmdLine, Points: r.project(a, b), Color: c})
}

func (r *Recorder) DrawTriangle(a, b, c r2.Vec, col color.RGBA) {
	r.record(Command{Kind: CmdTriangle, Points: r.project(a, b, c), Color: col})
}

func (r *Recorder) DrawSprite(tex Texture, pos r2.Vec, rotation float64, origin r2.Vec, tint color.RGBA) {
	rot := rotation
	if r.active {
		rot += r.view.ScreenRotation()
	}
	r.record(Command{Kind: CmdSprite, Points: r.project(pos), Color: tint, Texture: tex.Name, Rotation: rot})
}

func (r *Recorder) DrawString(text string, pos r2.Vec, size float64, c color.RGBA) {
	r.record(Command{Kind: CmdString, Points: r.project(pos), Color: c, Text: text})
}

// MeasureString assumes a monospace font half as wide as it is tall.
func (r *Recorder) MeasureString(text string, size float64) r2.Vec {
	return r2.Vec{X: float64(len(text)) * size / 2, Y: size}
}

func (r *Recorder) FillRect(rect geom.AABB, c color.RGBA) {
	r.record(Command{Kind: CmdFillRect, Points: r.project(rect.Lower, rect.Upper), Color: c})
}
