// Package config loads the developer console settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every NAVPERF_* setting.
type Config struct {
	ResourceLogging    bool          `env:"NAVPERF_RESOURCE_LOGGING" envDefault:"false"`
	HomeScreen         string        `env:"NAVPERF_HOME_SCREEN" envDefault:"home"`
	TransitionDuration time.Duration `env:"NAVPERF_TRANSITION_DURATION" envDefault:"280ms"`
	FrameRate          time.Duration `env:"NAVPERF_FRAME_RATE" envDefault:"16667us"`
	ViewportWidth      float64       `env:"NAVPERF_VIEWPORT_WIDTH" envDefault:"390"`
	LogLevel           string        `env:"NAVPERF_LOG_LEVEL" envDefault:"info"`

	TimelineDir    string `env:"NAVPERF_TIMELINE_DIR"`
	TimelineFormat string `env:"NAVPERF_TIMELINE_FORMAT" envDefault:"json"`
	JournalPath    string `env:"NAVPERF_JOURNAL_PATH"`
	RoutesPath     string `env:"NAVPERF_ROUTES_PATH"`

	OTelEnabled  bool   `env:"NAVPERF_OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint string `env:"NAVPERF_OTEL_ENDPOINT"`
	ServiceName  string `env:"NAVPERF_SERVICE_NAME" envDefault:"navperf"`
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HomeScreen) == "" {
		return fmt.Errorf("%w: home screen is required", ErrInvalid)
	}
	if c.TransitionDuration <= 0 {
		return fmt.Errorf("%w: transition duration must be positive, got %s", ErrInvalid, c.TransitionDuration)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %s", ErrInvalid, c.FrameRate)
	}
	if c.ViewportWidth <= 0 {
		return fmt.Errorf("%w: viewport width must be positive, got %v", ErrInvalid, c.ViewportWidth)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.TimelineFormat {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("%w: timeline format %q", ErrInvalid, c.TimelineFormat)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return level, nil
}
