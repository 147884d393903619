package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Frame phases of the main loop, in the order they run.
const (
	PhaseInput  = "input"
	PhaseUpdate = "update"
	PhaseDraw   = "draw"
)

var phases = [...]string{PhaseInput, PhaseUpdate, PhaseDraw}

func phaseSlot(name string) int {
	for i, p := range phases {
		if p == name {
			return i
		}
	}
	return -1
}

// PerfCollector keeps the timings of the last N frames, in seconds, split by phase.
type PerfCollector struct {
	frames []float64
	split  [len(phases)][]float64
	next   int
	filled int

	started time.Time
	mark    time.Time
	running int
	current [len(phases)]float64
}

// NewPerfCollector keeps a window of n frames, 60 when n < 1.
func NewPerfCollector(n int) *PerfCollector {
	if n < 1 {
		n = 60
	}
	p := &PerfCollector{frames: make([]float64, n), running: -1}
	for i := range p.split {
		p.split[i] = make([]float64, n)
	}
	return p
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.started = time.Now()
	p.running = -1
	p.current = [len(phases)]float64{}
}

// StartPhase closes the running phase and opens name. Unknown names only
// close the running phase.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.mark = now
	p.running = phaseSlot(name)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.running >= 0 {
		p.current[p.running] += now.Sub(p.mark).Seconds()
	}
	p.running = -1
}

// EndFrame records the frame into the window.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)

	p.frames[p.next] = now.Sub(p.started).Seconds()
	for i := range p.split {
		p.split[i][p.next] = p.current[i]
	}
	p.next = (p.next + 1) % len(p.frames)
	p.filled = min(p.filled+1, len(p.frames))
}

// Frames returns how many frames the window holds.
func (p *PerfCollector) Frames() int { return p.filled }

// PerfStats summarizes the window.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	// Share of frame time per phase, in percent. Phases that never ran are absent.
	PhasePct map[string]float64

	FramesPerSecond float64
}

// Stats summarizes the frames currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{PhasePct: make(map[string]float64)}
	if p.filled == 0 {
		return st
	}

	window := p.frames[:p.filled]
	total := floats.Sum(window)
	avg := total / float64(p.filled)
	st.AvgFrame = seconds(avg)
	st.MinFrame = seconds(floats.Min(window))
	st.MaxFrame = seconds(floats.Max(window))
	if avg > 0 {
		st.FramesPerSecond = 1 / avg
	}

	for i, name := range phases {
		spent := floats.Sum(p.split[i][:p.filled])
		if spent > 0 && total > 0 {
			st.PhasePct[name] = spent / total * 100
		}
	}
	return st
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("fps", s.FramesPerSecond),
	}
	for _, name := range phases {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}
