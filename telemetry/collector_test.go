package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/pong"
)

func TestNilOutputIsDisabled(t *testing.T) {
	out, err := NewOutput("")
	if err != nil || out != nil {
		t.Fatalf("expected disabled output, got %v %v", out, err)
	}
	if err := out.WriteGoal(GoalRecord{}); err != nil {
		t.Errorf("expected nil output to accept goals, got %v", err)
	}
	if err := out.WriteConfig(config.Defaults()); err != nil {
		t.Errorf("expected nil output to skip config, got %v", err)
	}
	if out.Dir() != "" || out.Close() != nil {
		t.Error("expected nil output to be inert")
	}
}

func TestCollectorWithoutOutput(t *testing.T) {
	c := NewCollector(nil)
	first := c.MatchID()

	c.Goal(pong.Goal{Scorer: pong.Left, RallyHits: 2, Multiplier: 1}, 1, 0, 3)
	c.Goal(pong.Goal{Scorer: pong.Left, RallyHits: 6, Multiplier: 1.2}, 2, 0, 9)
	if err := c.Finish(pong.Left, 2, 0, 9); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	s := c.Last()
	if s.MatchID != first || s.Winner != "left" || s.Rallies != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.MeanHits != 4 || s.MaxHits != 6 || s.MaxMultiplier != 1.2 {
		t.Errorf("unexpected rally stats %+v", s)
	}
	if c.MatchID() == first {
		t.Error("expected a new match id after Finish")
	}
	if c.Matches() != 1 {
		t.Errorf("expected 1 finished match, got %d", c.Matches())
	}
}

func TestCollectorWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	out, err := NewOutput(dir)
	if err != nil {
		t.Fatalf("NewOutput failed: %v", err)
	}

	c := NewCollector(out)
	c.Goal(pong.Goal{Scorer: pong.Right, RallyHits: 3, Multiplier: 1}, 0, 1, 4.5)
	c.Goal(pong.Goal{Scorer: pong.Left, RallyHits: 5, Multiplier: 1.2}, 1, 1, 11)
	c.Finish(pong.NoSide, 1, 1, 12)
	c.Goal(pong.Goal{Scorer: pong.Left, RallyHits: 1, Multiplier: 1}, 1, 0, 2)
	c.Finish(pong.Left, 1, 0, 2)

	if err := out.WriteConfig(config.Defaults()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "goals.csv"))
	if err != nil {
		t.Fatalf("reading goals.csv: %v", err)
	}
	header := strings.SplitN(string(raw), "\n", 2)[0]
	if header != "match_id,goal,elapsed,scorer,left,right,rally_hits,multiplier" {
		t.Errorf("unexpected header %q", header)
	}
	if n := strings.Count(string(raw), "match_id"); n != 1 {
		t.Errorf("expected a single header row, got %d", n)
	}

	var goals []GoalRecord
	if err := gocsv.UnmarshalBytes(raw, &goals); err != nil {
		t.Fatalf("parsing goals.csv: %v", err)
	}
	if len(goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(goals))
	}
	if goals[0].MatchID != goals[1].MatchID || goals[1].MatchID == goals[2].MatchID {
		t.Error("expected goals grouped by match id")
	}
	if goals[1].Goal != 2 || goals[2].Goal != 1 {
		t.Errorf("expected goal numbering per match, got %d %d", goals[1].Goal, goals[2].Goal)
	}
	if goals[0].Scorer != "right" || goals[0].RallyHits != 3 || goals[0].Elapsed != 4.5 {
		t.Errorf("unexpected first goal %+v", goals[0])
	}

	raw, err = os.ReadFile(filepath.Join(dir, "rallies.csv"))
	if err != nil {
		t.Fatalf("reading rallies.csv: %v", err)
	}
	var rallies []RallyStats
	if err := gocsv.UnmarshalBytes(raw, &rallies); err != nil {
		t.Fatalf("parsing rallies.csv: %v", err)
	}
	if len(rallies) != 2 {
		t.Fatalf("expected 2 match rows, got %d", len(rallies))
	}
	if rallies[0].Winner != "none" || rallies[0].MeanHits != 4 || rallies[0].Rallies != 2 {
		t.Errorf("unexpected abandoned match row %+v", rallies[0])
	}
	if rallies[1].Winner != "left" || rallies[1].MatchID != goals[2].MatchID {
		t.Errorf("unexpected second match row %+v", rallies[1])
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected saved config to load, got %v", err)
	}
}
