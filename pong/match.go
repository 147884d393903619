package pong

import "github.com/pthm-cable/pong/geom"

// Points-to-win limits.
const (
	MinPoints = 1
	MaxPoints = 999
)

// Match keeps the score and decides the winner.
type Match struct {
	left, right int
	pointsToWin int
}

// NewMatch creates a 0:0 match. pointsToWin is clamped to [MinPoints, MaxPoints].
func NewMatch(pointsToWin int) *Match {
	m := &Match{}
	m.SetPointsToWin(pointsToWin)
	return m
}

// PointsToWin returns the winning score.
func (m *Match) PointsToWin() int { return m.pointsToWin }

// SetPointsToWin sets the winning score, clamped to [MinPoints, MaxPoints].
func (m *Match) SetPointsToWin(n int) {
	m.pointsToWin = int(geom.Clamp(float64(n), MinPoints, MaxPoints))
}

// Score returns the left and right scores.
func (m *Match) Score() (left, right int) { return m.left, m.right }

// Goal credits side with a point. Goals after the match is decided are ignored.
func (m *Match) Goal(side Side) {
	if m.Winner() != NoSide {
		return
	}
	switch side {
	case Left:
		m.left++
	case Right:
		m.right++
	}
}

// Winner returns the side that reached PointsToWin, or NoSide.
func (m *Match) Winner() Side {
	switch {
	case m.left >= m.pointsToWin:
		return Left
	case m.right >= m.pointsToWin:
		return Right
	}
	return NoSide
}

// Reset zeroes the score.
func (m *Match) Reset() {
	m.left, m.right = 0, 0
}
