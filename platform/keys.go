package platform

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/pong/input"
)

// keyCodes maps game keys to raylib key codes.
var keyCodes = map[input.Key]int32{
	input.KeyUp:       rl.KeyUp,
	input.KeyDown:     rl.KeyDown,
	input.KeyLeft:     rl.KeyLeft,
	input.KeyRight:    rl.KeyRight,
	input.KeySpace:    rl.KeySpace,
	input.KeyEnter:    rl.KeyEnter,
	input.KeyEscape:   rl.KeyEscape,
	input.KeyP:        rl.KeyP,
	input.KeyPageUp:   rl.KeyPageUp,
	input.KeyPageDown: rl.KeyPageDown,
	input.KeyHome:     rl.KeyHome,
	input.KeyF4:       rl.KeyF4,
	input.KeyF5:       rl.KeyF5,
	input.KeyS:        rl.KeyS,
	input.KeyF:        rl.KeyF,
	input.KeyE:        rl.KeyE,
	input.KeyD:        rl.KeyD,
	input.KeyW:        rl.KeyW,
	input.KeyR:        rl.KeyR,
	input.KeyX:        rl.KeyX,
	input.KeyV:        rl.KeyV,
	input.KeyQ:        rl.KeyQ,
}

// KeyCode returns the raylib code for k, or false if k has none.
func KeyCode(k input.Key) (int32, bool) {
	code, ok := keyCodes[k]
	return code, ok
}

func isKeyDown(k input.Key) bool {
	code, ok := keyCodes[k]
	return ok && rl.IsKeyDown(code)
}
