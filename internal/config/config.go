// Package config loads the trajectory engine settings from an optional JSON file
// and TRAJECTORY_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cxd309/trajectory-engine/internal/kinematics"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variable names read by ApplyEnv.
const (
	EnvGravity         = "TRAJECTORY_GRAVITY"
	EnvSamples         = "TRAJECTORY_SAMPLES"
	EnvLogLevel        = "TRAJECTORY_LOG_LEVEL"
	EnvLogFormat       = "TRAJECTORY_LOG_FORMAT"
	EnvChartWidth      = "TRAJECTORY_CHART_WIDTH"
	EnvChartHeight     = "TRAJECTORY_CHART_HEIGHT"
	EnvAudioSeconds    = "TRAJECTORY_AUDIO_SECONDS"
	EnvAudioSampleRate = "TRAJECTORY_AUDIO_SAMPLE_RATE"
)

// Config holds every tunable of the engine and its exporters.
type Config struct {
	Gravity         float64 `json:"gravity"`           // m/s²
	Samples         int     `json:"samples"`           // samples per trajectory
	LogLevel        string  `json:"log_level"`         // DEBUG, INFO, WARN, ERROR
	LogFormat       string  `json:"log_format"`        // text or json
	ChartWidth      int     `json:"chart_width"`       // pixels
	ChartHeight     int     `json:"chart_height"`      // pixels
	AudioSeconds    float64 `json:"audio_seconds"`     // WAV playback length
	AudioSampleRate int     `json:"audio_sample_rate"` // Hz
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gravity:         kinematics.DefaultGravity,
		Samples:         kinematics.DefaultSamples,
		LogLevel:        "INFO",
		LogFormat:       "text",
		ChartWidth:      800,
		ChartHeight:     600,
		AudioSeconds:    3,
		AudioSampleRate: 44100,
	}
}

// Load reads a JSON config file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays any TRAJECTORY_* variables that are set and non-empty.
func (c *Config) ApplyEnv() error {
	if err := envFloat(EnvGravity, &c.Gravity); err != nil {
		return err
	}
	if err := envInt(EnvSamples, &c.Samples); err != nil {
		return err
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if err := envInt(EnvChartWidth, &c.ChartWidth); err != nil {
		return err
	}
	if err := envInt(EnvChartHeight, &c.ChartHeight); err != nil {
		return err
	}
	if err := envFloat(EnvAudioSeconds, &c.AudioSeconds); err != nil {
		return err
	}
	return envInt(EnvAudioSampleRate, &c.AudioSampleRate)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := c.Model().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		return fmt.Errorf("%w: chart must be at least 100x100 pixels, got %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	}
	if math.IsNaN(c.AudioSeconds) || math.IsInf(c.AudioSeconds, 0) || c.AudioSeconds <= 0 {
		return fmt.Errorf("%w: audio_seconds must be a finite value > 0, got %v", ErrInvalidConfig, c.AudioSeconds)
	}
	if c.AudioSampleRate < 8000 {
		return fmt.Errorf("%w: audio_sample_rate must be >= 8000, got %d", ErrInvalidConfig, c.AudioSampleRate)
	}
	return nil
}

// Model returns the trajectory model described by the config.
func (c *Config) Model() kinematics.Model {
	return kinematics.Model{Gravity: c.Gravity, Samples: c.Samples}
}

// LoadWithEnv is Load followed by ApplyEnv and Validate.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
