// Package config loads forcegraph settings from defaults, an optional YAML file, and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/parameter"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "FORCEGRAPH_"

// Config is the full runtime configuration
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Forces  ForcesConfig  `yaml:"forces"`
	Arena   ArenaConfig   `yaml:"arena"`
	Tick    TickConfig    `yaml:"tick"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Audio   AudioConfig   `yaml:"audio"`
	Graph   GraphConfig   `yaml:"graph"`
}

// PhysicsConfig mirrors parameter.Physics tunables
type PhysicsConfig struct {
	CoulombConstant float64 `yaml:"coulomb_constant"`
	MinDistanceSq   float64 `yaml:"min_distance_sq"`
	MouseMaxAccel   float64 `yaml:"mouse_max_accel"`
	MouseMaxRange   float64 `yaml:"mouse_max_range"`
	Damping         float64 `yaml:"damping"`
	Restitution     float64 `yaml:"restitution"`
	UnitConversion  float64 `yaml:"unit_conversion"`
}

// ForcesConfig enables individual passes
type ForcesConfig struct {
	Mouse    bool `yaml:"mouse"`
	Spring   bool `yaml:"spring"`
	Coulomb  bool `yaml:"coulomb"`
	Damping  bool `yaml:"damping"`
	Boundary bool `yaml:"boundary"`
}

// ArenaConfig is the initial containment rectangle
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TickConfig controls the run loop cadence
type TickConfig struct {
	Interval time.Duration `yaml:"interval"`
	// Budget flags slow ticks in metrics; zero disables
	Budget time.Duration `yaml:"budget"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is info, debug, or trace
	Level string `yaml:"level"`
	// File receives logs when set; the terminal front end needs one since it owns stderr
	File string `yaml:"file,omitempty"`
}

// ServerConfig configures the websocket frame stream
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AudioConfig configures bounce clicks
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// GraphConfig describes the demo population
type GraphConfig struct {
	Nodes        int     `yaml:"nodes"`
	Edges        int     `yaml:"edges"`
	Charge       float64 `yaml:"charge"`
	RestLength   float64 `yaml:"rest_length"`
	Stiffness    float64 `yaml:"stiffness"`
	HalfExtent   float64 `yaml:"half_extent"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MouseAttract bool    `yaml:"mouse_attract"`
	Seed         uint64  `yaml:"seed"`
}

// Default returns the reference configuration
func Default() *Config {
	p := parameter.DefaultPhysics()
	return &Config{
		Physics: PhysicsConfig{
			CoulombConstant: p.CoulombConstant,
			MinDistanceSq:   p.MinDistanceSq,
			MouseMaxAccel:   p.MouseMaxAccel,
			MouseMaxRange:   p.MouseMaxRange,
			Damping:         p.Damping,
			Restitution:     p.Restitution,
			UnitConversion:  p.UnitConversion,
		},
		Forces: ForcesConfig{Mouse: true, Spring: true, Coulomb: true, Damping: true, Boundary: true},
		Arena: ArenaConfig{
			Width:  parameter.ArenaWidth,
			Height: parameter.ArenaHeight,
		},
		Tick: TickConfig{
			Interval: 16 * time.Millisecond,
			Budget:   16 * time.Millisecond,
		},
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		Audio:   AudioConfig{Enabled: false, Volume: 0.5},
		Graph: GraphConfig{
			Nodes:        40,
			Edges:        50,
			Charge:       parameter.NodeCharge,
			RestLength:   parameter.EdgeRestLength,
			Stiffness:    parameter.EdgeStiffness,
			HalfExtent:   2,
			MaxSpeed:     20,
			MouseAttract: true,
			Seed:         1,
		},
	}
}

// Load resolves configuration in order: defaults -> path (if non-empty) -> environment variables
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile overlays a YAML file on the defaults; keys absent from the file keep their default
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks cross-field ranges; physics ranges are checked by parameter.Physics.Validate
func (c *Config) Validate() error {
	if err := c.PhysicsParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Arena.Width < 0 || c.Arena.Height < 0 {
		return fmt.Errorf("%w: arena must be non-negative, got %gx%g", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	}
	if c.Tick.Interval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %v", ErrInvalidConfig, c.Tick.Interval)
	}
	if c.Tick.Budget < 0 {
		return fmt.Errorf("%w: tick budget must be non-negative, got %v", ErrInvalidConfig, c.Tick.Budget)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: invalid log level: %s (valid: trace, debug, info, warn, error, or empty for default)", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume must be between 0 and 1, got %g", ErrInvalidConfig, c.Audio.Volume)
	}
	if c.Graph.Nodes < 0 || c.Graph.Edges < 0 {
		return fmt.Errorf("%w: graph counts must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// PhysicsParams converts the physics and forces sections into simulation parameters
func (c *Config) PhysicsParams() *parameter.Physics {
	return &parameter.Physics{
		CoulombConstant: c.Physics.CoulombConstant,
		MinDistanceSq:   c.Physics.MinDistanceSq,
		MouseMaxAccel:   c.Physics.MouseMaxAccel,
		MouseMaxRange:   c.Physics.MouseMaxRange,
		Damping:         c.Physics.Damping,
		Restitution:     c.Physics.Restitution,
		UnitConversion:  c.Physics.UnitConversion,
		Forces: parameter.Forces{
			Mouse:    c.Forces.Mouse,
			Spring:   c.Forces.Spring,
			Coulomb:  c.Forces.Coulomb,
			Damping:  c.Forces.Damping,
			Boundary: c.Forces.Boundary,
		},
	}
}

// ArenaExtent returns the configured arena
func (c *Config) ArenaExtent() core.Extent {
	return core.Extent{Width: c.Arena.Width, Height: c.Arena.Height}
}

// applyEnvOverrides applies FORCEGRAPH_* variables; malformed values are reported rather than ignored
func applyEnvOverrides(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"COULOMB_CONSTANT", &cfg.Physics.CoulombConstant},
		{"MIN_DISTANCE_SQ", &cfg.Physics.MinDistanceSq},
		{"DAMPING", &cfg.Physics.Damping},
		{"RESTITUTION", &cfg.Physics.Restitution},
		{"ARENA_WIDTH", &cfg.Arena.Width},
		{"ARENA_HEIGHT", &cfg.Arena.Height},
		{"AUDIO_VOLUME", &cfg.Audio.Volume},
	}
	for _, f := range floats {
		if v := os.Getenv(EnvPrefix + f.key); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, f.key, err)
			}
			*f.dst = parsed
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"FORCE_MOUSE", &cfg.Forces.Mouse},
		{"FORCE_SPRING", &cfg.Forces.Spring},
		{"FORCE_COULOMB", &cfg.Forces.Coulomb},
		{"FORCE_DAMPING", &cfg.Forces.Damping},
		{"FORCE_BOUNDARY", &cfg.Forces.Boundary},
		{"AUDIO_ENABLED", &cfg.Audio.Enabled},
	}
	for _, b := range bools {
		if v := os.Getenv(EnvPrefix + b.key); v != "" {
			*b.dst = v == "true" || v == "1"
		}
	}

	if v := os.Getenv(EnvPrefix + "TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sTICK_INTERVAL: %w", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Tick.Interval = d
	}
	if v := os.Getenv(EnvPrefix + "GRAPH_NODES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sGRAPH_NODES: %w", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Graph.Nodes = n
	}
	if v := os.Getenv(EnvPrefix + "SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FILE"); v != "" {
		cfg.Logging.File = os.ExpandEnv(v)
	}
	return nil
}
