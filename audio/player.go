// Package audio plays the game's synthesized sound effects through beep.
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pthm-cable/pong/geom"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultSampleRate    = beep.SampleRate(44100)
	DefaultMasterVolume  = 0.3
	DefaultMaxConcurrent = 4
)

// Config holds player parameters.
type Config struct {
	SampleRate    int
	MasterVolume  float64
	MaxConcurrent int
}

// instance is one playing effect addressed by a caller supplied id.
type instance struct {
	name      string
	gain      float64
	resampler *beep.Resampler
	volume    *effects.Volume
	pan       *effects.Pan
	done      atomic.Bool
}

// Player mixes named effects. Each PlaySound id maps to at most one playing
// instance; replaying an id that is still sounding re-parameterizes it.
type Player struct {
	mu sync.Mutex

	rate          beep.SampleRate
	master        float64
	maxConcurrent int
	mixer         *beep.Mixer
	generators    map[string]Generator
	instances     map[string]*instance
	started       bool
}

// NewPlayer creates a player with the built-in effects registered.
// No audio device is opened until Start.
func NewPlayer(cfg Config) *Player {
	p := &Player{
		rate:          beep.SampleRate(cfg.SampleRate),
		master:        DefaultMasterVolume,
		maxConcurrent: cfg.MaxConcurrent,
		mixer:         &beep.Mixer{},
		generators:    make(map[string]Generator),
		instances:     make(map[string]*instance),
	}
	if p.rate <= 0 {
		p.rate = DefaultSampleRate
	}
	if p.maxConcurrent <= 0 {
		p.maxConcurrent = DefaultMaxConcurrent
	}
	if cfg.MasterVolume != 0 {
		p.master = geom.Clamp(cfg.MasterVolume, 0, 1)
	}
	p.Register("8bit_plop", NewPlop)
	return p
}

// Start opens the audio device and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lockSpeaker()
	p.mixer.Clear()
	p.unlockSpeaker()
	clear(p.instances)
	if p.started {
		speaker.Clear()
	}
	p.started = false
}

// Register adds or replaces an effect generator.
func (p *Player) Register(name string, g Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generators[name] = g
}

// Streamer exposes the mix, for offline rendering.
func (p *Player) Streamer() beep.Streamer {
	return p.mixer
}

// MasterVolume returns the master gain in [0, 1].
func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master
}

// SetMasterVolume clamps v to [0, 1] and applies it to playing instances.
func (p *Player) SetMasterVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.master = geom.Clamp(v, 0, 1)
	p.lockSpeaker()
	for _, inst := range p.instances {
		setGain(inst.volume, inst.gain*p.master)
	}
	p.unlockSpeaker()
}

// Active returns the number of instances still sounding.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweep()
	return len(p.instances)
}

// PlaySound starts effect name under id. pitch is in octaves [-1, 1], volume
// in [0, 1] and pan in [-1, 1]; out of range values are clamped. Unknown names
// are ignored, as are new instances beyond the concurrency limit.
func (p *Player) PlaySound(name, id string, pitch, volume, pan float64) {
	if name == "" {
		return
	}
	if id == "" {
		panic("audio: PlaySound requires an instance id")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweep()

	gen, ok := p.generators[name]
	if !ok {
		return
	}

	pitch = geom.Clamp(pitch, -1, 1)
	volume = geom.Clamp(volume, 0, 1)
	pan = geom.Clamp(pan, -1, 1)

	if inst, ok := p.instances[id]; ok && inst.name == name {
		p.lockSpeaker()
		inst.gain = volume
		inst.resampler.SetRatio(pitchRatio(pitch))
		setGain(inst.volume, volume*p.master)
		inst.pan.Pan = pan
		p.unlockSpeaker()
		return
	}

	if len(p.instances) >= p.maxConcurrent {
		return
	}

	inst := &instance{name: name, gain: volume}
	inst.resampler = beep.ResampleRatio(4, pitchRatio(pitch), gen(p.rate))
	inst.volume = newVolume(inst.resampler, volume*p.master)
	inst.pan = &effects.Pan{Streamer: inst.volume, Pan: pan}
	stream := beep.Seq(inst.pan, beep.Callback(func() { inst.done.Store(true) }))

	p.instances[id] = inst
	p.lockSpeaker()
	p.mixer.Add(stream)
	p.unlockSpeaker()
}

// sweep drops finished instances. Caller holds mu.
func (p *Player) sweep() {
	for id, inst := range p.instances {
		if inst.done.Load() {
			delete(p.instances, id)
		}
	}
}

// The speaker streams on its own goroutine; mixer state changes must hold its lock.
func (p *Player) lockSpeaker() {
	if p.started {
		speaker.Lock()
	}
}

func (p *Player) unlockSpeaker() {
	if p.started {
		speaker.Unlock()
	}
}
