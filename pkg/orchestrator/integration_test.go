package orchestrator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/yuvsnap/pkg/adapters/filesink"
	"github.com/user/yuvsnap/pkg/adapters/imageencoder"
	"github.com/user/yuvsnap/pkg/adapters/logger"
	"github.com/user/yuvsnap/pkg/adapters/osfilesystem"
	"github.com/user/yuvsnap/pkg/adapters/patterngen"
	"github.com/user/yuvsnap/pkg/adapters/y4m"
	"github.com/user/yuvsnap/pkg/orchestrator"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/stages/batch"
	gifstage "github.com/user/yuvsnap/pkg/stages/gif"
	"github.com/user/yuvsnap/pkg/stages/snapshot"
	"github.com/user/yuvsnap/pkg/yuv"
)

// TestPatternThroughY4M writes a synthetic sequence to a y4m file and runs it
// through the real stages, filesystem and debug sink.
func TestPatternThroughY4M(t *testing.T) {
	dir := t.TempDir()
	fs := osfilesystem.New()
	log := logger.NewNoop()

	d := yuv.Descriptor{Width: 48, Height: 32, Format: yuv.FormatI420, Range: yuv.RangeVideo}
	gen, err := patterngen.New(d, patterngen.Options{Frames: 5, FrameRate: 25, Align: 16})
	if err != nil {
		t.Fatalf("patterngen.New failed: %v", err)
	}

	var stream bytes.Buffer
	w, err := y4m.NewWriter(&stream, d, gen.FrameRate())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for {
		buf, err := gen.Next()
		if err != nil {
			break
		}
		if err := w.WriteFrame(buf); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}
	input := filepath.Join(dir, "bars.y4m")
	if err := fs.WriteFile(input, stream.Bytes()); err != nil {
		t.Fatalf("write input: %v", err)
	}

	source, err := y4m.Open(fs, input)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer source.Close()

	debugDir := filepath.Join(dir, "debug")
	encoder := imageencoder.New(true)
	sink := filesink.New(debugDir, fs, encoder)

	orch := orchestrator.New(
		batch.NewStage(sink, log, 2),
		snapshot.NewStage(encoder, fs, log),
		gifstage.NewStage(log),
		fs,
		sink,
		log,
	)

	cfg := orchestrator.DefaultConfig()
	cfg.Source = source
	cfg.InputPath = input
	cfg.ChunkSize = 2
	cfg.SnapshotDir = filepath.Join(dir, "snaps")
	cfg.SnapshotFormat = ports.FormatJPEG
	cfg.GIFPath = filepath.Join(dir, "out.gif")

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FramesRead != 5 || result.FramesConverted != 5 || result.FramesDropped != 0 {
		t.Errorf("unexpected counts: read=%d converted=%d dropped=%d",
			result.FramesRead, result.FramesConverted, result.FramesDropped)
	}
	if result.FrameRate != 25 {
		t.Errorf("FrameRate = %v, want 25", result.FrameRate)
	}
	if len(result.FilesWritten) != 6 {
		t.Errorf("expected 5 snapshots and 1 GIF, got %v", result.FilesWritten)
	}

	for i := 0; i < 5; i++ {
		path := filepath.Join(cfg.SnapshotDir, snapshot.FileName(cfg.SnapshotPattern, i, ports.FormatJPEG))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read snapshot %d: %v", i, err)
		}
		img, err := imageencoder.Decode(data, ports.FormatJPEG)
		if err != nil {
			t.Fatalf("decode snapshot %d: %v", i, err)
		}
		if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
			t.Errorf("snapshot %d: unexpected size %v", i, b)
		}
	}

	f, err := os.Open(cfg.GIFPath)
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != 5 || anim.Delay[0] != 4 {
		t.Errorf("expected 5 frames at 4/100 s, got %d frames delay %d", len(anim.Image), anim.Delay[0])
	}

	// Debug sink output
	for _, rel := range []string{
		"summary.json",
		"frames/raw/frame-0000.yuv",
		"frames/converted/frame-0004.png",
	} {
		if _, err := os.Stat(filepath.Join(debugDir, rel)); err != nil {
			t.Errorf("missing debug file %s: %v", rel, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(debugDir, "frames/raw/frame-0000.yuv"))
	if err != nil {
		t.Fatalf("read raw frame: %v", err)
	}
	if len(raw) != d.FrameSize() {
		t.Errorf("raw frame size = %d, want %d", len(raw), d.FrameSize())
	}

	var summary map[string]interface{}
	data, err := os.ReadFile(filepath.Join(debugDir, "summary.json"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("parse summary: %v", err)
	}
	if summary["run_id"] != result.RunID || summary["format"] != "i420" {
		t.Errorf("unexpected summary: %v", summary)
	}
}
