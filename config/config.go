// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pong/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Ball      BallConfig      `yaml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	AI        AIConfig        `yaml:"ai"`
	Match     MatchConfig     `yaml:"match"`
	Audio     AudioConfig     `yaml:"audio"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window and virtual resolution parameters.
type ScreenConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	TargetFPS     int    `yaml:"target_fps"`
	Title         string `yaml:"title"`
	VirtualWidth  int    `yaml:"virtual_width"`  // 0 = same as Width
	VirtualHeight int    `yaml:"virtual_height"` // 0 = same as Height
	Adapter       string `yaml:"adapter"`        // default, scaling, letterbox
}

// WorldConfig holds the playfield dimensions. The field is centered on the origin.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig holds ball movement parameters.
type BallConfig struct {
	Size               float64 `yaml:"size"`                 // Edge length of the ball square
	Speed              float64 `yaml:"speed"`                // Base speed in world units per second
	MaxSpeedMultiplier float64 `yaml:"max_speed_multiplier"` // Upper clamp for the rally multiplier
	SpeedStep          float64 `yaml:"speed_step"`           // Multiplier increase per escalation
	HitsPerStep        int     `yaml:"hits_per_step"`        // Paddle hits between escalations
	SeparationMargin   float64 `yaml:"separation_margin"`    // Extra push-out after a paddle hit
}

// PaddleConfig holds paddle geometry and player speed.
type PaddleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Offset      float64 `yaml:"offset"`       // Horizontal distance of each paddle from the center
	PlayerSpeed float64 `yaml:"player_speed"` // World units per second
}

// AIConfig holds computer paddle tuning.
type AIConfig struct {
	MaxSpeed float64 `yaml:"max_speed"` // World units per second
	DeadZone float64 `yaml:"dead_zone"` // No movement within this vertical distance
	SlowZone float64 `yaml:"slow_zone"` // Speed ramps down inside this vertical distance
}

// MatchConfig holds scoring parameters.
type MatchConfig struct {
	PointsToWin int   `yaml:"points_to_win"`
	Seed        int64 `yaml:"seed"` // 0 = derive from time
}

// AudioConfig holds sound player parameters.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MasterVolume  float64 `yaml:"master_volume"`
	MaxConcurrent int     `yaml:"max_concurrent"`
	SampleRate    int     `yaml:"sample_rate"`
}

// CameraConfig holds free camera controls.
type CameraConfig struct {
	PanSpeed    float64 `yaml:"pan_speed"`    // World units per second
	RotateSpeed float64 `yaml:"rotate_speed"` // Radians per second
	ZoomSpeed   float64 `yaml:"zoom_speed"`   // Zoom units per second
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"` // 0 = unbounded
}

// TelemetryConfig holds CSV output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // Empty disables output
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32   // Screen.Width as float32
	ScreenH32 float32   // Screen.Height as float32
	VirtualW  float64   // Effective virtual width
	VirtualH  float64   // Effective virtual height
	WorldBox  geom.AABB // Playfield bounds centered on the origin
	BallHalf  float64   // Ball.Size / 2
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration from a file, falling back to embedded defaults.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded configuration without reading any file.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.Ball.Size <= 0 || c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		return fmt.Errorf("ball and paddle sizes must be positive")
	}
	if c.Ball.HitsPerStep <= 0 {
		return fmt.Errorf("ball.hits_per_step must be positive, got %d", c.Ball.HitsPerStep)
	}
	if c.Camera.MinZoom < 0 || c.Camera.MaxZoom < 0 {
		return fmt.Errorf("camera zoom bounds must not be negative")
	}
	switch c.Screen.Adapter {
	case "", "default", "scaling", "letterbox":
	default:
		return fmt.Errorf("unknown screen adapter %q", c.Screen.Adapter)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Virtual resolution defaults to the window size
	c.Derived.VirtualW = float64(c.Screen.VirtualWidth)
	if c.Derived.VirtualW == 0 {
		c.Derived.VirtualW = float64(c.Screen.Width)
	}
	c.Derived.VirtualH = float64(c.Screen.VirtualHeight)
	if c.Derived.VirtualH == 0 {
		c.Derived.VirtualH = float64(c.Screen.Height)
	}

	c.Derived.WorldBox = geom.FromCenter(r2.Vec{}, c.World.Width, c.World.Height)
	c.Derived.BallHalf = c.Ball.Size / 2
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
