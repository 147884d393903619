package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.MinFrame > stats.MaxFrame {
		t.Errorf("expected min <= max, got %v > %v", stats.MinFrame, stats.MaxFrame)
	}
	if _, ok := stats.PhasePct[PhaseUpdate]; !ok {
		t.Error("expected update phase to be tracked")
	}
	if _, ok := stats.PhasePct[PhaseDraw]; !ok {
		t.Error("expected draw phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	if pc.Frames() != 5 {
		t.Errorf("expected window of 5 frames, got %d", pc.Frames())
	}
	if pc.Stats().FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseInput)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseDraw] <= stats.PhasePct[PhaseInput] {
		t.Errorf("expected draw to dominate, got input=%.1f%% draw=%.1f%%",
			stats.PhasePct[PhaseInput], stats.PhasePct[PhaseDraw])
	}
	if total := stats.PhasePct[PhaseInput] + stats.PhasePct[PhaseDraw]; total > 100.5 {
		t.Errorf("expected phases to sum to at most 100%%, got %.1f", total)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgFrame != 0 || stats.PhasePct == nil {
		t.Errorf("expected zero stats with an empty phase map, got %+v", stats)
	}
}

func TestPerfCollector_UnknownPhaseIgnored(t *testing.T) {
	pc := NewPerfCollector(3)
	pc.StartFrame()
	pc.StartPhase("physics")
	time.Sleep(50 * time.Microsecond)
	pc.StartPhase(PhaseDraw)
	time.Sleep(50 * time.Microsecond)
	pc.EndFrame()

	stats := pc.Stats()
	if len(stats.PhasePct) != 1 {
		t.Errorf("expected only the draw phase, got %v", stats.PhasePct)
	}
	if stats.PhasePct[PhaseDraw] >= 100 {
		t.Errorf("expected the untracked time outside draw, got %.1f%%", stats.PhasePct[PhaseDraw])
	}
}
