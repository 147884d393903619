package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pthm-cable/pong/input"
)

// DefaultHold bridges the gap between a key press and the terminal's first auto-repeat.
const DefaultHold = 0.25

// Keys turns press events into held keys. Terminals never report releases,
// so a key counts as held for Hold seconds after its last press or repeat.
type Keys struct {
	Hold float64
	left map[input.Key]float64
}

// NewKeys creates a tracker holding each press for hold seconds.
func NewKeys(hold float64) *Keys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keys{Hold: hold, left: make(map[input.Key]float64)}
}

// Press marks k held.
func (k *Keys) Press(key input.Key) {
	k.left[key] = k.Hold
}

// Advance ages every held key by dt seconds.
func (k *Keys) Advance(dt float64) {
	for key, t := range k.left {
		if t -= dt; t <= 0 {
			delete(k.left, key)
			continue
		}
		k.left[key] = t
	}
}

// IsDown reports whether key is held. It matches the callback input.State.Update takes.
func (k *Keys) IsDown(key input.Key) bool {
	_, ok := k.left[key]
	return ok
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyUp:     input.KeyUp,
	tcell.KeyDown:   input.KeyDown,
	tcell.KeyLeft:   input.KeyLeft,
	tcell.KeyRight:  input.KeyRight,
	tcell.KeyEnter:  input.KeyEnter,
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyPgUp:   input.KeyPageUp,
	tcell.KeyPgDn:   input.KeyPageDown,
	tcell.KeyHome:   input.KeyHome,
	tcell.KeyF4:     input.KeyF4,
	tcell.KeyF5:     input.KeyF5,
}

var runeKeys = map[rune]input.Key{
	' ': input.KeySpace,
	'p': input.KeyP,
	's': input.KeyS,
	'f': input.KeyF,
	'e': input.KeyE,
	'd': input.KeyD,
	'w': input.KeyW,
	'r': input.KeyR,
	'x': input.KeyX,
	'v': input.KeyV,
	'q': input.KeyQ,
}

// KeyOf translates a terminal key event. Letters match either case.
func KeyOf(ev *tcell.EventKey) (input.Key, bool) {
	if ev.Key() != tcell.KeyRune {
		k, ok := specialKeys[ev.Key()]
		return k, ok
	}
	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, ok := runeKeys[r]
	return k, ok
}
