// Package ui draws scene menus and notices with raygui controls, so the
// mouse can drive the same menus the keyboard navigates.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/pong/render"
)

// Theme holds UI styling constants.
type Theme struct {
	Focus     rl.Color // outline around the selected control
	Label     rl.Color
	Padding   float64
	MinWidth  float64 // narrowest control, in virtual pixels
	LineWidth float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Focus:     render.White,
		Label:     render.BlueViolet,
		Padding:   8,
		MinWidth:  240,
		LineWidth: 2,
	}
}
