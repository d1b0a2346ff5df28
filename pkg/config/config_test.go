package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	d, err := cfg.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor failed: %v", err)
	}
	if d.Format != yuv.FormatI420 || d.Range != yuv.RangeVideo || d.Matrix != yuv.MatrixBT601 {
		t.Errorf("unexpected default descriptor: %+v", d)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := []byte(`
input:
  format: nv21
  width: 640
  height: 480
  range: full
  matrix: bt709
output:
  format: jpeg
  quality: 75
  mirror: true
gif:
  frame_rate: 12
every: 2
workers: 3
log_level: debug
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	d, err := cfg.Descriptor()
	if err != nil {
		t.Fatalf("Descriptor failed: %v", err)
	}
	want := yuv.Descriptor{Width: 640, Height: 480, Format: yuv.FormatNV21, Range: yuv.RangeFull, Matrix: yuv.MatrixBT709}
	if d != want {
		t.Errorf("Descriptor() = %+v, want %+v", d, want)
	}

	// Untouched fields keep defaults.
	if cfg.Output.Pattern != "frame-%04d" || cfg.GIF.MaxWidth != 480 || !cfg.GIF.Dither {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.LogLevelValue() != ports.LevelDebug {
		t.Errorf("LogLevelValue() = %v", cfg.LogLevelValue())
	}

	oc := cfg.ToOrchestratorConfig()
	if oc.Every != 2 || oc.SnapshotFormat != ports.FormatJPEG || oc.Quality != 75 || oc.GIFFrameRate != 12 || !oc.SnapshotMirror {
		t.Errorf("unexpected orchestrator config: %+v", oc)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"format", "input:\n  format: rgb24\n", "input.format"},
		{"range", "input:\n  range: studio\n", "input.range"},
		{"matrix", "input:\n  matrix: bt2020\n", "input.matrix"},
		{"output", "output:\n  format: webp\n", "output.format"},
		{"quality", "output:\n  quality: 101\n", "output.quality"},
		{"negative", "every: -1\n", "must not be negative"},
		{"oversized", "input:\n  width: 100000\n  height: 100000\n", "exceeds"},
		{"pattern without verb", "output:\n  pattern: \"frame\"\n", "output.pattern"},
		{"pattern with two verbs", "output:\n  pattern: \"%d-%d\"\n", "output.pattern"},
		{"pattern escapes dir", "output:\n  pattern: \"../frame-%d\"\n", "output.pattern"},
		{"syntax", "input: [", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "yuvsnap.yaml")
	if err := os.WriteFile(path, []byte("quiet: true\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.LogLevelValue() != ports.LevelQuiet {
		t.Errorf("expected quiet level, got %v", cfg.LogLevelValue())
	}

	if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
