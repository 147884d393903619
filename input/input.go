// Package input defines the keyboard and mouse view the game logic reads each frame.
package input

import "gonum.org/v1/gonum/spatial/r2"

// Key identifies a keyboard key independent of the backend.
type Key int

// Keys the game reacts to.
const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyP
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyF4
	KeyF5
	KeyS
	KeyF
	KeyE
	KeyD
	KeyW
	KeyR
	KeyX
	KeyV
	KeyQ

	keyCount
)

var keyNames = [...]string{
	KeyNone:     "None",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeySpace:    "Space",
	KeyEnter:    "Enter",
	KeyEscape:   "Escape",
	KeyP:        "P",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyHome:     "Home",
	KeyF4:       "F4",
	KeyF5:       "F5",
	KeyS:        "S",
	KeyF:        "F",
	KeyE:        "E",
	KeyD:        "D",
	KeyW:        "W",
	KeyR:        "R",
	KeyX:        "X",
	KeyV:        "V",
	KeyQ:        "Q",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// AllKeys returns every key backends are expected to poll.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Input is the per-frame input view.
type Input interface {
	IsKeyDown(k Key) bool
	// KeyWasReleased is true on the first frame a previously held key is up.
	KeyWasReleased(k Key) bool
	MousePosition() r2.Vec
}

// State tracks two consecutive key polls. Backends only report which keys are
// down; edge detection lives here so every backend behaves the same.
type State struct {
	prev  [keyCount]bool
	cur   [keyCount]bool
	mouse r2.Vec
}

// Update shifts the current poll into the previous one and samples isDown for every key.
func (s *State) Update(isDown func(Key) bool, mouse r2.Vec) {
	s.prev = s.cur
	for k := KeyNone + 1; k < keyCount; k++ {
		s.cur[k] = isDown(k)
	}
	s.mouse = mouse
}

// Settle makes the current poll the previous one, so edges already seen this
// frame are not reported again to whoever reads the state next.
func (s *State) Settle() {
	s.prev = s.cur
}

// IsKeyDown reports whether k is held in the current poll.
func (s *State) IsKeyDown(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return s.cur[k]
}

// KeyWasReleased reports whether k was held last poll and is up now.
func (s *State) KeyWasReleased(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return s.prev[k] && !s.cur[k]
}

// KeyWasPressed reports whether k is held now and was up last poll.
func (s *State) KeyWasPressed(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return !s.prev[k] && s.cur[k]
}

// MousePosition returns the mouse position from the last poll.
func (s *State) MousePosition() r2.Vec {
	return s.mouse
}

// None is an Input with nothing pressed.
var None Input = &State{}
