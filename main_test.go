package main

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/telemetry"
)

func TestRunHeadlessPlaysMatches(t *testing.T) {
	cfg := config.Defaults()
	cfg.Match.PointsToWin = 1
	collector := telemetry.NewCollector(nil)

	// Half an hour of simulated play is far more than two single-point matches need
	runHeadless(cfg, rand.New(rand.NewSource(5)), collector, 60*60*30, 2)

	if collector.Matches() != 2 {
		t.Fatalf("expected 2 finished matches, got %d", collector.Matches())
	}
	last := collector.Last()
	if last.Winner == "none" || last.Rallies != 1 {
		t.Errorf("expected a decided single-rally match, got %+v", last)
	}
	if last.Left+last.Right != 1 {
		t.Errorf("expected a 1:0 score, got %d:%d", last.Left, last.Right)
	}
}
