// Package yuvsnap provides capture-source presets and a fluent builder over
// config.Config.
package yuvsnap

import (
	"fmt"
	"strings"

	"github.com/user/yuvsnap/pkg/config"
)

// Preset names a typical capture source.
type Preset string

const (
	// PresetDefault is planar I420, BT.601 video range.
	PresetDefault Preset = "default"
	// PresetAndroid matches the NV21 preview buffers of Android cameras.
	PresetAndroid Preset = "android"
	// PresetApple matches 420v biplanar buffers from AVFoundation HD capture.
	PresetApple Preset = "apple"
	// PresetJPEG matches frames decoded from JPEG/MJPEG (full range BT.601).
	PresetJPEG Preset = "jpeg"
	// PresetHD matches broadcast HD video (BT.709 video range).
	PresetHD Preset = "hd"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetDefault, PresetAndroid, PresetApple, PresetJPEG, PresetHD}
}

// ParsePreset parses a preset name.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return PresetDefault, fmt.Errorf("unknown preset: %q", s)
}

// QualityPreset names an output quality level.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// QualitySettings are the output parameters of a quality preset.
type QualitySettings struct {
	JPEGQuality int
	GIFMaxWidth int
	GIFDither   bool
}

// GetQualitySettings returns settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityLow:
		return QualitySettings{JPEGQuality: 60, GIFMaxWidth: 320, GIFDither: false}
	case QualityHigh:
		return QualitySettings{JPEGQuality: 95, GIFMaxWidth: 0, GIFDither: true}
	default: // medium
		return QualitySettings{JPEGQuality: 85, GIFMaxWidth: 480, GIFDither: true}
	}
}

// Builder provides a fluent interface for building config.Config.
type Builder struct {
	cfg config.Config
}

// NewBuilder starts from base with the preset's input settings applied.
func NewBuilder(base config.Config, preset Preset) *Builder {
	b := &Builder{cfg: base}
	switch preset {
	case PresetAndroid:
		b.cfg.Input.Format, b.cfg.Input.Range, b.cfg.Input.Matrix = "nv21", "video", "bt601"
	case PresetApple:
		b.cfg.Input.Format, b.cfg.Input.Range, b.cfg.Input.Matrix = "nv12", "video", "bt709"
	case PresetJPEG:
		b.cfg.Input.Format, b.cfg.Input.Range, b.cfg.Input.Matrix = "i420", "full", "bt601"
	case PresetHD:
		b.cfg.Input.Format, b.cfg.Input.Range, b.cfg.Input.Matrix = "i420", "video", "bt709"
	}
	return b
}

// Build returns the final Config, applying constraints.
func (b *Builder) Build() config.Config {
	cfg := b.cfg
	if cfg.Every < 1 {
		cfg.Every = 1
	}
	if cfg.Output.Quality > 100 {
		cfg.Output.Quality = 100
	}
	if cfg.Output.Quality < 0 {
		cfg.Output.Quality = 0
	}
	return cfg
}

// WithFormat sets the input pixel format name.
func (b *Builder) WithFormat(format string) *Builder {
	b.cfg.Input.Format = format
	return b
}

// WithSize sets the input frame size.
func (b *Builder) WithSize(width, height int) *Builder {
	b.cfg.Input.Width = width
	b.cfg.Input.Height = height
	return b
}

func (b *Builder) WithRange(r string) *Builder {
	b.cfg.Input.Range = r
	return b
}

func (b *Builder) WithMatrix(m string) *Builder {
	b.cfg.Input.Matrix = m
	return b
}

func (b *Builder) WithFrameRate(fps float64) *Builder {
	b.cfg.Input.FrameRate = fps
	return b
}

// WithOutputFormat sets the snapshot image format.
func (b *Builder) WithOutputFormat(format string) *Builder {
	b.cfg.Output.Format = format
	return b
}

// WithQuality sets the JPEG quality (0-100).
func (b *Builder) WithQuality(quality int) *Builder {
	b.cfg.Output.Quality = quality
	return b
}

// WithQualityPreset applies a quality preset.
func (b *Builder) WithQualityPreset(preset QualityPreset) *Builder {
	s := GetQualitySettings(preset)
	b.cfg.Output.Quality = s.JPEGQuality
	b.cfg.GIF.MaxWidth = s.GIFMaxWidth
	b.cfg.GIF.Dither = s.GIFDither
	return b
}

// WithPattern sets the snapshot file name pattern.
func (b *Builder) WithPattern(pattern string) *Builder {
	b.cfg.Output.Pattern = pattern
	return b
}

// WithMirror flips snapshots horizontally.
func (b *Builder) WithMirror(mirror bool) *Builder {
	b.cfg.Output.Mirror = mirror
	return b
}

// WithEvery keeps every Nth frame. Values below 1 will be forced to 1.
func (b *Builder) WithEvery(n int) *Builder {
	b.cfg.Every = n
	return b
}

// WithMaxFrames stops reading after n source frames (0 = all).
func (b *Builder) WithMaxFrames(n int) *Builder {
	b.cfg.MaxFrames = n
	return b
}

// WithGIFFrameRate overrides the animation frame rate.
func (b *Builder) WithGIFFrameRate(fps float64) *Builder {
	b.cfg.GIF.FrameRate = fps
	return b
}

func (b *Builder) WithWorkers(n int) *Builder {
	b.cfg.Workers = n
	return b
}

// WithDebug enables debug output into dir.
func (b *Builder) WithDebug(dir string) *Builder {
	b.cfg.Debug = true
	if dir != "" {
		b.cfg.DebugDir = dir
	}
	return b
}
