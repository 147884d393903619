// Package telemetry records goals and per-match rally statistics to CSV.
package telemetry

import (
	"github.com/google/uuid"
	"github.com/pthm-cable/pong/pong"
)

// Collector accumulates the goals of the running match. Every match gets a
// fresh id so rows from several matches in one file can be told apart.
type Collector struct {
	out *Output

	matchID string
	goals   int
	hits    []float64
	mults   []float64
	last    RallyStats
	matches int
}

// NewCollector creates a collector writing to out. A nil out only keeps statistics.
func NewCollector(out *Output) *Collector {
	return &Collector{out: out, matchID: uuid.NewString()}
}

// MatchID returns the id of the running match.
func (c *Collector) MatchID() string { return c.matchID }

// Matches returns the number of finished matches.
func (c *Collector) Matches() int { return c.matches }

// Last returns the summary of the most recently finished match.
func (c *Collector) Last() RallyStats { return c.last }

// Goal records a counted goal. left and right are the scores after it.
func (c *Collector) Goal(g pong.Goal, left, right int, elapsed float64) error {
	c.goals++
	c.hits = append(c.hits, float64(g.RallyHits))
	c.mults = append(c.mults, g.Multiplier)

	return c.out.WriteGoal(GoalRecord{
		MatchID:    c.matchID,
		Goal:       c.goals,
		Elapsed:    elapsed,
		Scorer:     g.Scorer.String(),
		Left:       left,
		Right:      right,
		RallyHits:  g.RallyHits,
		Multiplier: g.Multiplier,
	})
}

// Finish summarizes the match, writes it and starts a new one.
// winner is pong.NoSide when the match was abandoned.
func (c *Collector) Finish(winner pong.Side, left, right int, elapsed float64) error {
	s := RallyStats{
		MatchID:  c.matchID,
		Winner:   winner.String(),
		Left:     left,
		Right:    right,
		Duration: elapsed,
		Rallies:  len(c.hits),
	}
	s.MeanHits, s.StdHits, s.P50Hits, s.P90Hits, s.MaxHits = ComputeHitStats(c.hits)
	s.MeanMultiplier, s.MaxMultiplier = ComputeMultiplierStats(c.mults)

	c.last = s
	c.matches++
	c.matchID = uuid.NewString()
	c.goals = 0
	c.hits = c.hits[:0]
	c.mults = c.mults[:0]

	return c.out.WriteRallies(s)
}
