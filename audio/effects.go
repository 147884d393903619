package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Generator builds a fresh, finite streamer for one playback of an effect.
type Generator func(rate beep.SampleRate) beep.Streamer

// plop is a short square wave chirp sweeping down in pitch with an exponential decay.
type plop struct {
	rate     beep.SampleRate
	pos      int
	total    int
	phase    float64
	startHz  float64
	endHz    float64
	decay    float64
	loudness float64
}

// NewPlop creates the "8bit_plop" effect.
func NewPlop(rate beep.SampleRate) beep.Streamer {
	return &plop{
		rate:     rate,
		total:    rate.N(90 * time.Millisecond),
		startHz:  660,
		endHz:    220,
		decay:    5,
		loudness: 0.4,
	}
}

func (p *plop) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if p.pos >= p.total {
			return i, i > 0
		}
		t := float64(p.pos) / float64(p.total)
		freq := p.startHz + (p.endHz-p.startHz)*t

		val := -1.0
		if p.phase < 0.5 {
			val = 1.0
		}
		val *= p.loudness * math.Exp(-p.decay*t)

		samples[i][0] = val
		samples[i][1] = val

		p.phase += freq / float64(p.rate)
		p.phase -= math.Floor(p.phase)
		p.pos++
	}
	return len(samples), true
}

func (p *plop) Err() error { return nil }

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(gain)
	v.Silent = false
}

// pitchRatio maps pitch in octaves, [-1, 1], to a playback speed ratio.
func pitchRatio(pitch float64) float64 {
	return math.Exp2(pitch)
}
