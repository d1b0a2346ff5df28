// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/yuvsnap/pkg/orchestrator"
	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// Config represents the full configuration for yuvsnap.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	GIF    GIFConfig    `yaml:"gif"`

	// Sampling
	Every     int `yaml:"every"`
	MaxFrames int `yaml:"max_frames"`
	ChunkSize int `yaml:"chunk_size"`

	// Performance
	Workers int `yaml:"workers"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// InputConfig describes headerless input frames. Y4M input carries its own
// size and format; Range and Matrix still apply when the header has none.
type InputConfig struct {
	Format    string  `yaml:"format"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Range     string  `yaml:"range"`
	Matrix    string  `yaml:"matrix"`
	FrameRate float64 `yaml:"frame_rate"`
}

// OutputConfig controls still image output.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
	Pattern string `yaml:"pattern"`
	Mirror  bool   `yaml:"mirror"` // Flip snapshots horizontally, as a front camera preview shows them
}

// GIFConfig controls animated GIF output.
type GIFConfig struct {
	FrameRate float64 `yaml:"frame_rate"`
	MaxWidth  int     `yaml:"max_width"`
	Dither    bool    `yaml:"dither"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Input: InputConfig{
			Format:    "i420",
			Range:     "video",
			Matrix:    "bt601",
			FrameRate: 30,
		},
		Output: OutputConfig{
			Format:  "png",
			Quality: 90,
			Pattern: "frame-%04d",
		},
		GIF: GIFConfig{
			MaxWidth: 480,
			Dither:   true,
		},

		Every:     1,
		ChunkSize: 32,

		Workers: 0, // runtime.NumCPU()

		LogLevel: "info",

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and numeric ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := yuv.ParseFormat(c.Input.Format); err != nil {
		errs = append(errs, fmt.Errorf("input.format: %w", err))
	}
	if _, err := yuv.ParseRange(c.Input.Range); err != nil {
		errs = append(errs, fmt.Errorf("input.range: %w", err))
	}
	if _, err := yuv.ParseMatrix(c.Input.Matrix); err != nil {
		errs = append(errs, fmt.Errorf("input.matrix: %w", err))
	}
	if c.Input.Width < 0 || c.Input.Height < 0 {
		errs = append(errs, fmt.Errorf("input size must not be negative: %dx%d", c.Input.Width, c.Input.Height))
	}
	if c.Input.Width > yuv.MaxDimension || c.Input.Height > yuv.MaxDimension {
		errs = append(errs, fmt.Errorf("input size %dx%d exceeds %d", c.Input.Width, c.Input.Height, yuv.MaxDimension))
	}
	if _, err := ports.ParseImageFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.Quality < 0 || c.Output.Quality > 100 {
		errs = append(errs, fmt.Errorf("output.quality must be 0-100, got %d", c.Output.Quality))
	}
	if err := pipeline.ValidateSnapshotPattern(c.Output.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("output.pattern: %w", err))
	}
	if c.Every < 0 || c.MaxFrames < 0 || c.ChunkSize < 0 || c.Workers < 0 {
		errs = append(errs, fmt.Errorf("every, max_frames, chunk_size and workers must not be negative"))
	}
	return errors.Join(errs...)
}

// Descriptor builds the frame descriptor for headerless input.
func (c Config) Descriptor() (yuv.Descriptor, error) {
	format, err := yuv.ParseFormat(c.Input.Format)
	if err != nil {
		return yuv.Descriptor{}, err
	}
	rng, err := yuv.ParseRange(c.Input.Range)
	if err != nil {
		return yuv.Descriptor{}, err
	}
	matrix, err := yuv.ParseMatrix(c.Input.Matrix)
	if err != nil {
		return yuv.Descriptor{}, err
	}
	return yuv.Descriptor{
		Width:  c.Input.Width,
		Height: c.Input.Height,
		Format: format,
		Range:  rng,
		Matrix: matrix,
	}, nil
}

// LogLevelValue returns the configured ports.LogLevel.
func (c Config) LogLevelValue() ports.LogLevel {
	if c.Quiet {
		return ports.LevelQuiet
	}
	return ports.ParseLogLevel(c.LogLevel)
}

// ToOrchestratorConfig converts Config to orchestrator.Config. Source and
// output paths are filled in by the caller.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	cfg.Every = c.Every
	cfg.MaxFrames = c.MaxFrames
	cfg.ChunkSize = c.ChunkSize
	cfg.SnapshotPattern = c.Output.Pattern
	cfg.SnapshotMirror = c.Output.Mirror
	if f, err := ports.ParseImageFormat(c.Output.Format); err == nil {
		cfg.SnapshotFormat = f
	}
	cfg.Quality = c.Output.Quality
	cfg.GIFFrameRate = c.GIF.FrameRate
	cfg.GIFMaxWidth = c.GIF.MaxWidth
	cfg.GIFDither = c.GIF.Dither
	return cfg
}
