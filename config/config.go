// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/shapes"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Noise     NoiseConfig     `yaml:"noise"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Count      int          `yaml:"count"`
	Shape      shapes.Shape `yaml:"shape"`
	Rate       float32      `yaml:"rate"`        // Fraction of remaining distance per frame
	SpreadMin  float32      `yaml:"spread_min"`  // Spread floor at a closed pinch
	SpreadGain float32      `yaml:"spread_gain"` // Spread at a fully open hand
	HandGain   float32      `yaml:"hand_gain"`   // World offset per unit of hand position
}

// NoiseConfig selects the per-particle jitter.
type NoiseConfig struct {
	Model string  `yaml:"model"` // sine, simplex or none
	Amp   float32 `yaml:"amp"`
	Freq  float64 `yaml:"freq"`
}

// GestureConfig selects and tunes the gesture producer.
type GestureConfig struct {
	Source     string        `yaml:"source"` // mouse, synthetic, replay or none
	ReplayPath string        `yaml:"replay_path"`
	ReplayLoop bool          `yaml:"replay_loop"`
	RecordPath string        `yaml:"record_path"`
	Range      gesture.Range `yaml:"range"`
}

// SyntheticConfig holds parameters of the scripted hand.
type SyntheticConfig struct {
	IntervalMS int     `yaml:"interval_ms"`
	PeriodSec  float64 `yaml:"period_sec"`
	Radius     float32 `yaml:"radius"`
	AbsentSec  float64 `yaml:"absent_sec"`
}

// RenderConfig holds presentation settings.
type RenderConfig struct {
	Color          string   `yaml:"color"`
	Background     string   `yaml:"background"`
	PointSize      float32  `yaml:"point_size"`
	SpinRate       float32  `yaml:"spin_rate"` // Radians per frame
	CameraDistance float32  `yaml:"camera_distance"`
	Fovy           float32  `yaml:"fovy"`
	AutoOrbit      float32  `yaml:"auto_orbit"` // Idle orbit speed, 1.0 = one turn per minute
	Palette        []string `yaml:"palette"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Color             color.RGBA
	Background        color.RGBA
	Palette           []color.RGBA
	SyntheticInterval time.Duration
	SyntheticPeriod   time.Duration
	SyntheticAbsent   time.Duration
}

// MaxParticles is the largest particle count a cloud may have.
const MaxParticles = 50000

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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes layered over the embedded
// defaults. Empty data yields the defaults.
func Parse(data []byte) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Field.Count < 0 || c.Field.Count > MaxParticles {
		return fmt.Errorf("field.count must be in [0, %d], got %d", MaxParticles, c.Field.Count)
	}
	if c.Field.Rate <= 0 || c.Field.Rate > 1 {
		return fmt.Errorf("field.rate must be in (0, 1], got %v", c.Field.Rate)
	}
	if c.Gesture.Range.MaxPinch <= c.Gesture.Range.MinPinch {
		return fmt.Errorf("gesture.range: max_pinch (%v) must exceed min_pinch (%v)",
			c.Gesture.Range.MaxPinch, c.Gesture.Range.MinPinch)
	}
	switch c.Noise.Model {
	case "sine", "simplex", "none":
	default:
		return fmt.Errorf("noise.model: unknown model %q", c.Noise.Model)
	}
	switch c.Gesture.Source {
	case "mouse", "synthetic", "replay", "none":
	default:
		return fmt.Errorf("gesture.source: unknown source %q", c.Gesture.Source)
	}
	if c.Gesture.Source == "replay" && c.Gesture.ReplayPath == "" {
		return fmt.Errorf("gesture.source is replay but gesture.replay_path is empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.Color, err = ParseColor(c.Render.Color); err != nil {
		return fmt.Errorf("render.color: %w", err)
	}
	if c.Derived.Background, err = ParseColor(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}

	c.Derived.Palette = make([]color.RGBA, 0, len(c.Render.Palette))
	for i, hex := range c.Render.Palette {
		col, err := ParseColor(hex)
		if err != nil {
			return fmt.Errorf("render.palette[%d]: %w", i, err)
		}
		c.Derived.Palette = append(c.Derived.Palette, col)
	}

	c.Derived.SyntheticInterval = time.Duration(c.Synthetic.IntervalMS) * time.Millisecond
	c.Derived.SyntheticPeriod = time.Duration(c.Synthetic.PeriodSec * float64(time.Second))
	c.Derived.SyntheticAbsent = time.Duration(c.Synthetic.AbsentSec * float64(time.Second))
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" into an opaque-by-default color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
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
