// Package orchestrator drives a frame source through conversion and output stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"

	"github.com/user/yuvsnap/pkg/converter"
	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
)

// Config contains all configuration for a run.
type Config struct {
	// Input
	Source    ports.FrameSource
	InputPath string // Reported in the summary only
	Every     int    // Convert every Nth frame (default: 1)
	MaxFrames int    // Stop after this many source frames; 0 reads to the end
	ChunkSize int    // Frames converted per batch (default: 32)

	// Snapshots
	SnapshotDir     string // Empty disables snapshots
	SnapshotPattern string
	SnapshotMirror  bool // Flip snapshots horizontally
	SnapshotFormat  ports.ImageFormat
	Quality         int

	// Animation
	GIFPath      string // Empty disables GIF output
	GIFFrameRate float64
	GIFMaxWidth  int
	GIFDither    bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Every:           1,
		ChunkSize:       32,
		SnapshotPattern: pipeline.DefaultSnapshotPattern,
		SnapshotFormat:  ports.FormatPNG,
		Quality:         90,
		GIFMaxWidth:     480,
		GIFDither:       true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	batchStage    pipeline.Stage[pipeline.BatchInput, pipeline.BatchResult]
	snapshotStage pipeline.Stage[pipeline.SnapshotInput, pipeline.SnapshotResult]
	gifStage      pipeline.GIFStarter
	fs            ports.FileSystem
	sink          ports.DebugSink
	logger        ports.Logger
	newID         func() string
}

// New creates a new Orchestrator.
func New(
	batchStage pipeline.Stage[pipeline.BatchInput, pipeline.BatchResult],
	snapshotStage pipeline.Stage[pipeline.SnapshotInput, pipeline.SnapshotResult],
	gifStage pipeline.GIFStarter,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		batchStage:    batchStage,
		snapshotStage: snapshotStage,
		gifStage:      gifStage,
		fs:            fs,
		sink:          sink,
		logger:        logger,
		newID:         uuid.NewString,
	}
}

// RunResult contains the results of a run for summary generation.
type RunResult struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	ElapsedMs int64     `json:"elapsed_ms"`

	Input     string  `json:"input,omitempty"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Format    string  `json:"format"`
	Range     string  `json:"range"`
	Matrix    string  `json:"matrix"`
	FrameRate float64 `json:"frame_rate"`

	FramesRead      int            `json:"frames_read"`
	FramesConverted int            `json:"frames_converted"`
	FramesDropped   int            `json:"frames_dropped"`
	DropReasons     map[string]int `json:"drop_reasons,omitempty"`

	FilesWritten []string `json:"files_written"`
	BytesWritten int64    `json:"bytes_written"`
	GIFPath      string   `json:"gif_path,omitempty"`
	GIFFrames    int      `json:"gif_frames,omitempty"`
}

// Run reads the source to the end, converting and writing frames in chunks.
// Frames that fail to convert are dropped; source, encode and write errors
// stop the run. The source is not closed.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if config.Source == nil {
		return RunResult{}, fmt.Errorf("no frame source")
	}
	if config.Every <= 0 {
		config.Every = 1
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = 32
	}

	desc := config.Source.Descriptor()
	result := RunResult{
		RunID:        o.newID(),
		StartedAt:    time.Now(),
		Input:        config.InputPath,
		Width:        desc.Width,
		Height:       desc.Height,
		Format:       desc.Format.String(),
		Range:        desc.Range.String(),
		Matrix:       desc.Matrix.String(),
		FrameRate:    config.Source.FrameRate(),
		FilesWritten: []string{},
	}

	o.logger.Info(l10n.F("Converting %s %dx%d frames (%s, %s)", result.Format, desc.Width, desc.Height, result.Matrix, result.Range))

	// Frames are handed to the animation chunk by chunk so only paletted
	// copies outlive a batch.
	var anim pipeline.GIFAnimation
	gifFrames := 0
	if config.GIFPath != "" {
		anim = o.gifStage.Start(gifOptions(config, result.FrameRate))
	}

	for {
		chunk, first, done, err := o.readChunk(config, &result)
		if err != nil {
			o.logger.Error(l10n.F("Failed to read frame: %s", err))
			return result, fmt.Errorf("read source: %w", err)
		}

		if len(chunk) > 0 {
			batch, err := o.batchStage.Execute(ctx, pipeline.BatchInput{
				Frames:     chunk,
				FirstIndex: first,
				Step:       config.Every,
			})
			o.countBatch(&result, batch)
			if err != nil {
				return result, fmt.Errorf("batch stage: %w", err)
			}

			if config.SnapshotDir != "" && len(batch.Frames) > 0 {
				snap, err := o.snapshotStage.Execute(ctx, pipeline.SnapshotInput{
					Frames:  batch.Frames,
					Dir:     config.SnapshotDir,
					Pattern: config.SnapshotPattern,
					Mirror:  config.SnapshotMirror,
					Format:  config.SnapshotFormat,
					Quality: config.Quality,
				})
				result.FilesWritten = append(result.FilesWritten, snap.Paths...)
				result.BytesWritten += snap.BytesWritten
				if err != nil {
					o.logger.Error(l10n.F("Failed to write snapshots: %s", err))
					return result, fmt.Errorf("snapshot stage: %w", err)
				}
			}

			if anim != nil && len(batch.Frames) > 0 {
				if err := anim.Add(ctx, batch.Frames); err != nil {
					o.logger.Error(l10n.F("Failed to encode GIF: %s", err))
					return result, fmt.Errorf("gif stage: %w", err)
				}
				gifFrames += len(batch.Frames)
			}
		}

		if done {
			break
		}
	}

	if anim != nil {
		if err := o.writeGIF(ctx, config, anim, gifFrames, &result); err != nil {
			return result, err
		}
	}

	result.ElapsedMs = time.Since(result.StartedAt).Milliseconds()
	o.logger.Info(l10n.F("Converted %d of %d frames, %d dropped", result.FramesConverted, result.FramesRead, result.FramesDropped))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			if err := o.sink.SaveSummaryJSON(data); err != nil {
				o.logger.Warn(l10n.F("Failed to save debug summary: %s", err))
			}
		}
	}

	return result, nil
}

// readChunk pulls up to ChunkSize sampled frames from the source. It reports
// the source index of the first sampled frame and whether the source is done.
func (o *Orchestrator) readChunk(config Config, result *RunResult) ([]ports.FrameBuffer, int, bool, error) {
	chunk := make([]ports.FrameBuffer, 0, config.ChunkSize)
	first := -1

	for len(chunk) < config.ChunkSize {
		if config.MaxFrames > 0 && result.FramesRead >= config.MaxFrames {
			return chunk, first, true, nil
		}

		buf, err := config.Source.Next()
		if errors.Is(err, io.EOF) {
			return chunk, first, true, nil
		}
		if err != nil {
			return chunk, first, false, err
		}

		index := result.FramesRead
		result.FramesRead++
		if index%config.Every != 0 {
			continue
		}
		if first < 0 {
			first = index
		}

		if o.sink.Enabled() {
			o.saveRaw(index, buf)
		}
		chunk = append(chunk, buf)
	}
	return chunk, first, false, nil
}

func (o *Orchestrator) countBatch(result *RunResult, batch pipeline.BatchResult) {
	result.FramesConverted += len(batch.Frames)
	result.FramesDropped += len(batch.Dropped)
	for _, d := range batch.Dropped {
		if result.DropReasons == nil {
			result.DropReasons = make(map[string]int)
		}
		result.DropReasons[dropReason(d.Err)]++
	}
}

// gifOptions defaults the animation rate to the sampled source rate.
func gifOptions(config Config, sourceFPS float64) pipeline.GIFOptions {
	fps := config.GIFFrameRate
	if fps <= 0 {
		fps = sourceFPS / float64(config.Every)
	}
	return pipeline.GIFOptions{
		FrameRate: fps,
		MaxWidth:  config.GIFMaxWidth,
		Dither:    config.GIFDither,
	}
}

func (o *Orchestrator) writeGIF(ctx context.Context, config Config, frames pipeline.GIFAnimation, added int, result *RunResult) error {
	if added == 0 {
		o.logger.Warn(l10n.T("No frames converted, skipping GIF"))
		return nil
	}

	anim, err := frames.Finish(ctx)
	if err != nil {
		o.logger.Error(l10n.F("Failed to encode GIF: %s", err))
		return fmt.Errorf("gif stage: %w", err)
	}

	if err := o.fs.WriteFile(config.GIFPath, anim.Data); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return fmt.Errorf("write gif: %w", err)
	}

	result.GIFPath = config.GIFPath
	result.GIFFrames = anim.Frames
	result.FilesWritten = append(result.FilesWritten, config.GIFPath)
	result.BytesWritten += int64(len(anim.Data))
	o.logger.Info(l10n.F("Output saved to %s", config.GIFPath))
	return nil
}

// saveRaw stores the tightly packed bytes of a frame in the debug sink.
func (o *Orchestrator) saveRaw(index int, buf ports.FrameBuffer) {
	if buf == nil {
		return
	}
	data, err := PackedBytes(buf)
	if err != nil {
		return
	}
	if err := o.sink.SaveRawFrame(index, data); err != nil {
		o.logger.Warn(l10n.F("Failed to save debug frame %d: %s", index, err))
	}
}

// PackedBytes copies a frame's planes without row padding.
func PackedBytes(buf ports.FrameBuffer) ([]byte, error) {
	d := buf.Descriptor()
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	planes, err := buf.Lock()
	if err != nil {
		return nil, err
	}
	defer buf.Unlock()

	out := make([]byte, 0, d.FrameSize())
	for i, p := range planes {
		rowBytes, rows := d.PlaneGeometry(i)
		if !p.Fits(rowBytes, rows) {
			return nil, fmt.Errorf("plane %d too small", i)
		}
		for y := 0; y < rows; y++ {
			out = append(out, p.Data[y*p.Stride:y*p.Stride+rowBytes]...)
		}
	}
	return out, nil
}

func dropReason(err error) string {
	var convErr *converter.ConversionError
	if errors.As(err, &convErr) {
		return convErr.Kind.String()
	}
	return "other"
}
