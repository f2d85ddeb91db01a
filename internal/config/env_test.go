package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"NAVPERF_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("NAVPERF_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HomeScreen != "home" {
		t.Errorf("HomeScreen = %q, want home", cfg.HomeScreen)
	}
	if cfg.TransitionDuration != 280*time.Millisecond {
		t.Errorf("TransitionDuration = %s, want 280ms", cfg.TransitionDuration)
	}
	if cfg.FrameRate != 16667*time.Microsecond {
		t.Errorf("FrameRate = %s", cfg.FrameRate)
	}
	if cfg.ViewportWidth != 390 {
		t.Errorf("ViewportWidth = %v, want 390", cfg.ViewportWidth)
	}
	if cfg.ResourceLogging || cfg.OTelEnabled {
		t.Error("opt-in features enabled by default")
	}
	if cfg.TimelineFormat != "json" || cfg.ServiceName != "navperf" {
		t.Errorf("TimelineFormat = %q, ServiceName = %q", cfg.TimelineFormat, cfg.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NAVPERF_RESOURCE_LOGGING", "true")
	t.Setenv("NAVPERF_HOME_SCREEN", "dashboard")
	t.Setenv("NAVPERF_TRANSITION_DURATION", "400ms")
	t.Setenv("NAVPERF_LOG_LEVEL", "debug")
	t.Setenv("NAVPERF_TIMELINE_FORMAT", "yaml")
	t.Setenv("NAVPERF_JOURNAL_PATH", "/tmp/navperf.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.ResourceLogging || cfg.HomeScreen != "dashboard" || cfg.TransitionDuration != 400*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.JournalPath != "/tmp/navperf.db" || cfg.TimelineFormat != "yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v; want debug", level, err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		HomeScreen:         "home",
		TransitionDuration: time.Millisecond,
		FrameRate:          time.Millisecond,
		ViewportWidth:      1,
		LogLevel:           "info",
		TimelineFormat:     "json",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"blank home", func(c *Config) { c.HomeScreen = " " }},
		{"zero duration", func(c *Config) { c.TransitionDuration = 0 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"negative width", func(c *Config) { c.ViewportWidth = -10 }},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad format", func(c *Config) { c.TimelineFormat = "toml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("NAVPERF_VIEWPORT_WIDTH", "0")
	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}
