package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the variable consulted when Load gets an empty path.
const EnvPath = "OPENCRAFT_CONFIG"

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	World   WorldConfig   `yaml:"world"`
	Assets  AssetsConfig  `yaml:"assets"`
	Metrics MetricsConfig `yaml:"metrics"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	Vsync  bool   `yaml:"vsync"`
}

type WorldConfig struct {
	Seed int64 `yaml:"seed"`
	// RenderDistance is the column radius generated around the spawn.
	RenderDistance   int  `yaml:"render_distance"`
	MeshWorkers      int  `yaml:"mesh_workers"`
	AmbientOcclusion bool `yaml:"ambient_occlusion"`
}

type AssetsConfig struct {
	Atlas     string `yaml:"atlas"`
	Font      string `yaml:"font"`
	ShaderDir string `yaml:"shader_dir"`
}

type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint. Empty disables it.
	Addr string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "OpenCraft",
			Vsync:  true,
		},
		World: WorldConfig{
			Seed:             12,
			RenderDistance:   6,
			AmbientOcclusion: true,
		},
		Assets: AssetsConfig{
			Atlas:     "assets/textures/atlas.png",
			Font:      "assets/fonts/Mojang-Regular.ttf",
			ShaderDir: "shaders",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. With an empty path it falls
// back to $OPENCRAFT_CONFIG, and without that to the defaults alone.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("OPENCRAFT_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("OPENCRAFT_SEED: %w", err)
		}
		c.World.Seed = seed
	}
	if v := os.Getenv("OPENCRAFT_RENDER_DISTANCE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OPENCRAFT_RENDER_DISTANCE: %w", err)
		}
		c.World.RenderDistance = n
	}
	if v := os.Getenv("OPENCRAFT_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("OPENCRAFT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

var (
	ErrWindowSize     = errors.New("window size must be positive")
	ErrRenderDistance = errors.New("render distance must be between 0 and 32")
	ErrMeshWorkers    = errors.New("mesh workers must not be negative")
)

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrWindowSize, c.Window.Width, c.Window.Height))
	}
	if c.World.RenderDistance < 0 || c.World.RenderDistance > 32 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrRenderDistance, c.World.RenderDistance))
	}
	if c.World.MeshWorkers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrMeshWorkers, c.World.MeshWorkers))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
