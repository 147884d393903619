package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain pulls n samples through the mix the way the speaker would.
func drain(p *Player, n int) {
	buf := make([][2]float64, 512)
	for n > 0 {
		k := min(n, len(buf))
		p.Streamer().Stream(buf[:k])
		n -= k
	}
}

func TestPlopIsFinite(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := NewPlop(rate)

	buf := make([][2]float64, 1024)
	total := 0
	for i := 0; i < 100; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if math.Abs(buf[j][0]) > 1 || buf[j][0] != buf[j][1] {
				t.Fatalf("sample %d out of range or not mono: %v", total+j, buf[j])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if total != rate.N(90*time.Millisecond) {
		t.Errorf("expected %d samples, got %d", rate.N(90*time.Millisecond), total)
	}
	if s.Err() != nil {
		t.Errorf("Expected no error, got: %v", s.Err())
	}
}

func TestPlaySoundIgnoresUnknown(t *testing.T) {
	p := NewPlayer(Config{})

	p.PlaySound("", "id", 0, 1, 0)
	p.PlaySound("missing", "id", 0, 1, 0)
	if p.Active() != 0 {
		t.Errorf("expected no instances, got %d", p.Active())
	}
}

func TestPlaySoundRequiresID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty id")
		}
	}()
	NewPlayer(Config{}).PlaySound("8bit_plop", "", 0, 1, 0)
}

func TestPlaySoundReusesID(t *testing.T) {
	p := NewPlayer(Config{})

	p.PlaySound("8bit_plop", "collision_wall", 0, 1, 0)
	p.PlaySound("8bit_plop", "collision_wall", 0.5, 0.5, -0.5)
	if p.Active() != 1 {
		t.Fatalf("expected 1 instance, got %d", p.Active())
	}

	inst := p.instances["collision_wall"]
	if inst.gain != 0.5 || inst.pan.Pan != -0.5 {
		t.Errorf("expected instance re-parameterized, got gain %v pan %v", inst.gain, inst.pan.Pan)
	}
	if math.Abs(inst.resampler.Ratio()-math.Sqrt2) > 1e-9 {
		t.Errorf("expected ratio sqrt(2), got %v", inst.resampler.Ratio())
	}
}

func TestPlaySoundClamps(t *testing.T) {
	p := NewPlayer(Config{MasterVolume: 1})
	p.PlaySound("8bit_plop", "a", 5, 3, -9)

	inst := p.instances["a"]
	if inst.resampler.Ratio() != 2 {
		t.Errorf("expected pitch clamped to one octave, got ratio %v", inst.resampler.Ratio())
	}
	if inst.gain != 1 || inst.pan.Pan != -1 {
		t.Errorf("expected clamped gain 1 and pan -1, got %v %v", inst.gain, inst.pan.Pan)
	}
}

func TestMaxConcurrent(t *testing.T) {
	p := NewPlayer(Config{MaxConcurrent: 2})
	p.PlaySound("8bit_plop", "a", 0, 1, 0)
	p.PlaySound("8bit_plop", "b", 0, 1, 0)
	p.PlaySound("8bit_plop", "c", 0, 1, 0)

	if p.Active() != 2 {
		t.Errorf("expected 2 instances, got %d", p.Active())
	}
	if _, ok := p.instances["c"]; ok {
		t.Error("expected third instance to be dropped")
	}
}

func TestFinishedInstancesAreCleared(t *testing.T) {
	p := NewPlayer(Config{MaxConcurrent: 1})
	p.PlaySound("8bit_plop", "a", 0, 1, 0)

	drain(p, int(DefaultSampleRate))
	if p.Active() != 0 {
		t.Fatalf("expected instance to finish, %d still active", p.Active())
	}

	// The freed slot can be reused
	p.PlaySound("8bit_plop", "b", 0, 1, 0)
	if p.Active() != 1 {
		t.Errorf("expected new instance, got %d", p.Active())
	}
}

func TestMasterVolume(t *testing.T) {
	p := NewPlayer(Config{})
	if p.MasterVolume() != DefaultMasterVolume {
		t.Errorf("expected default %v, got %v", DefaultMasterVolume, p.MasterVolume())
	}

	p.PlaySound("8bit_plop", "a", 0, 1, 0)
	p.SetMasterVolume(2)
	if p.MasterVolume() != 1 {
		t.Errorf("expected clamp to 1, got %v", p.MasterVolume())
	}
	p.SetMasterVolume(0)
	if !p.instances["a"].volume.Silent {
		t.Error("expected zero master volume to silence playing instances")
	}
}

func TestStartDegradesWithoutDevice(t *testing.T) {
	p := NewPlayer(Config{})
	if err := p.Start(); err != nil {
		t.Skipf("no audio device: %v", err)
	}
	defer p.Close()

	p.PlaySound("8bit_plop", "a", 0, 1, 0)
}
