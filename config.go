package fireworks

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds engine settings and the physics tuning shared by every
// particle the engine creates.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Tuning Tuning       `yaml:"tuning"`
}

// EngineConfig holds the animation engine settings.
type EngineConfig struct {
	Framerate  float64 `yaml:"framerate"`
	LaunchRate float64 `yaml:"launch_rate"`
	Seed       uint64  `yaml:"seed"`
	FadeEasing string  `yaml:"fade_easing"`
}

// Tuning is the complete numeric parameter set for particle physics.
type Tuning struct {
	Rocket RocketTuning `yaml:"rocket"`
	Spark  SparkTuning  `yaml:"spark"`
	Trail  TrailTuning  `yaml:"trail"`
}

// RocketTuning controls rocket construction and ascent.
type RocketTuning struct {
	ApogeeMin        float64 `yaml:"apogee_min"`
	ApogeeMax        float64 `yaml:"apogee_max"`
	ApogeeDivisors   int     `yaml:"apogee_divisors"`
	Margin           float64 `yaml:"margin"`
	LaunchSpan       float64 `yaml:"launch_span"`
	Speed            float64 `yaml:"speed"`
	Drift            float64 `yaml:"drift"`
	StraightChance   float64 `yaml:"straight_chance"`
	AccentChance     float64 `yaml:"accent_chance"`
	TrailChance      float64 `yaml:"trail_chance"`
	Braking          float64 `yaml:"braking"`
	MinSpeedFraction float64 `yaml:"min_speed_fraction"`
	Size             float64 `yaml:"size"`
}

// SparkTuning controls explosion patterns and spark motion.
type SparkTuning struct {
	HeartVelocity  float64 `yaml:"heart_velocity"`
	BallVelocity   float64 `yaml:"ball_velocity"`
	BurstVelocity  float64 `yaml:"burst_velocity"`
	Gravity        float64 `yaml:"gravity"`
	LifetimeMin    float64 `yaml:"lifetime_min"`
	LifetimeJitter float64 `yaml:"lifetime_jitter"`
	FadeThreshold  float64 `yaml:"fade_threshold"`
	DenseChance    float64 `yaml:"dense_chance"`
	Size           float64 `yaml:"size"`
}

// TrailTuning controls rocket trail segments.
type TrailTuning struct {
	Lifetime      float64 `yaml:"lifetime"`
	FadeThreshold float64 `yaml:"fade_threshold"`
}

// Framerate and launch rate bounds.
const (
	MinimumFramerate  = 10
	MaximumFramerate  = 120
	DefaultFramerate  = 60
	MinimumLaunchRate = 1
	MaximumLaunchRate = 5
	DefaultLaunchRate = 3
)

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() *Config {
	cfg, err := parseConfig(nil)
	if err != nil {
		panic("fireworks: embedded defaults: " + err.Error())
	}
	return cfg
}

// LoadConfig reads configuration from a YAML file, overlaid on the embedded
// defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return parseConfig(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return parseConfig(data)
}

// ParseConfig parses YAML data overlaid on the embedded defaults.
func ParseConfig(data []byte) (*Config, error) {
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		// Unmarshal into the same struct so only keys present in data overwrite.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate clamps engine rates into their documented bounds and rejects
// tuning values that would break the physics invariants.
func (c *Config) Validate() error {
	c.Engine.Framerate = clampRound(c.Engine.Framerate, MinimumFramerate, MaximumFramerate)
	c.Engine.LaunchRate = clampRound(c.Engine.LaunchRate, MinimumLaunchRate, MaximumLaunchRate)
	if _, err := LookupFadeCurve(c.Engine.FadeEasing); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	r := c.Tuning.Rocket
	switch {
	case r.ApogeeMin <= 0 || r.ApogeeMax < r.ApogeeMin || r.ApogeeMax >= 1:
		return fmt.Errorf("invalid config: rocket apogee range [%v, %v]", r.ApogeeMin, r.ApogeeMax)
	case r.ApogeeDivisors < 1:
		return fmt.Errorf("invalid config: rocket apogee_divisors %d < 1", r.ApogeeDivisors)
	case r.Margin < 0 || r.Margin >= 0.5:
		return fmt.Errorf("invalid config: rocket margin %v outside [0, 0.5)", r.Margin)
	case r.Speed <= 0:
		return fmt.Errorf("invalid config: rocket speed %v must be positive", r.Speed)
	case r.MinSpeedFraction <= 0 || r.MinSpeedFraction > 1:
		return fmt.Errorf("invalid config: rocket min_speed_fraction %v outside (0, 1]", r.MinSpeedFraction)
	}

	s := c.Tuning.Spark
	if s.LifetimeMin <= 0 || s.LifetimeJitter < 0 {
		return fmt.Errorf("invalid config: spark lifetime min %v jitter %v", s.LifetimeMin, s.LifetimeJitter)
	}
	if c.Tuning.Trail.Lifetime <= 0 {
		return fmt.Errorf("invalid config: trail lifetime %v must be positive", c.Tuning.Trail.Lifetime)
	}
	return nil
}

// WriteYAML saves the configuration to path.
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

// clampRound rounds v to the nearest integer and clamps it into [lo, hi].
// NaN maps to lo.
func clampRound(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	v = math.Round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
