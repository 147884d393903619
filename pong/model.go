package pong

import (
	"image/color"

	"github.com/pthm-cable/pong/object"
	"github.com/pthm-cable/pong/render"
)

// BoxModel fills the owner's bounds in the primitive pass.
type BoxModel struct {
	object.Base
	Color color.RGBA

	// Debug additionally outlines the bounds and marks the center.
	Debug bool
}

// NewPaddleModel draws a white paddle.
func NewPaddleModel() *BoxModel {
	return &BoxModel{Color: render.White}
}

// NewBallModel draws a violet ball.
func NewBallModel() *BoxModel {
	return &BoxModel{Color: render.BlueViolet}
}

func (m *BoxModel) Type() object.Type { return object.Model }

func (m *BoxModel) DrawPrimitives(b render.PrimitiveBatch, dt float64) {
	o := m.Object()
	if o == nil {
		return
	}
	render.DrawRectangle(b, o.Bounds(), m.Color)
	if m.Debug {
		render.DrawAABB(b, o.Bounds(), render.Green)
		render.DrawMarkerCross(b, o.Position(), 2, render.Red)
	}
}
