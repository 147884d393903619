package telemetry

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GoalRecord is one row of goals.csv.
type GoalRecord struct {
	MatchID    string  `csv:"match_id"`
	Goal       int     `csv:"goal"`
	Elapsed    float64 `csv:"elapsed"`
	Scorer     string  `csv:"scorer"`
	Left       int     `csv:"left"`
	Right      int     `csv:"right"`
	RallyHits  int     `csv:"rally_hits"`
	Multiplier float64 `csv:"multiplier"`
}

// RallyStats summarizes the rallies of one match. One row of rallies.csv.
type RallyStats struct {
	MatchID  string  `csv:"match_id"`
	Winner   string  `csv:"winner"` // "none" for abandoned matches
	Left     int     `csv:"left"`
	Right    int     `csv:"right"`
	Duration float64 `csv:"duration"`

	Rallies  int     `csv:"rallies"`
	MeanHits float64 `csv:"mean_hits"`
	StdHits  float64 `csv:"std_hits"`
	P50Hits  float64 `csv:"p50_hits"`
	P90Hits  float64 `csv:"p90_hits"`
	MaxHits  float64 `csv:"max_hits"`

	MeanMultiplier float64 `csv:"mean_multiplier"`
	MaxMultiplier  float64 `csv:"max_multiplier"`
}

// ComputeHitStats returns mean, standard deviation and empirical quantiles of
// rally hit counts. Empty input yields zeros; a single rally has no spread.
func ComputeHitStats(hits []float64) (mean, std, p50, p90, maxHits float64) {
	n := len(hits)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = hits[0]
	} else {
		mean, std = stat.MeanStdDev(hits, nil)
	}

	sorted := slices.Clone(hits)
	slices.Sort(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	maxHits = floats.Max(sorted)
	return mean, std, p50, p90, maxHits
}

// ComputeMultiplierStats returns the mean and maximum speed multiplier at goal time.
func ComputeMultiplierStats(mults []float64) (mean, maxMult float64) {
	if len(mults) == 0 {
		return 0, 0
	}
	return stat.Mean(mults, nil), floats.Max(mults)
}
