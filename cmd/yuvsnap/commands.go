package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/yuvsnap/pkg/adapters/imageencoder"
	"github.com/user/yuvsnap/pkg/adapters/nullsink"
	"github.com/user/yuvsnap/pkg/adapters/osfilesystem"
	"github.com/user/yuvsnap/pkg/adapters/patterngen"
	"github.com/user/yuvsnap/pkg/adapters/rawframe"
	"github.com/user/yuvsnap/pkg/adapters/y4m"
	"github.com/user/yuvsnap/pkg/converter"
	"github.com/user/yuvsnap/pkg/juxtapose"
	"github.com/user/yuvsnap/pkg/orchestrator"
	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/stages/batch"
	"github.com/user/yuvsnap/pkg/stages/gif"
	"github.com/user/yuvsnap/pkg/stages/snapshot"
	"github.com/user/yuvsnap/pkg/summarizer"
)

const (
	defaultPatternWidth  = 320
	defaultPatternHeight = 240
)

// =============================================================================
// convert
// =============================================================================

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     l10n.T("Convert one YUV frame to an image"),
		ArgsUsage: "INPUT",
		Flags: withFlags(commonFlags(), outputFlags(), []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output image path (- for stdout)")},
			mirrorFlag(),
		}),
		Action: runConvert,
	}
}

func runConvert(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one INPUT argument")
	}
	input, output := c.Args().First(), c.String("output")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	fs := osfilesystem.New()

	var frame ports.FrameBuffer
	if isY4M(input) {
		r, err := y4m.Open(fs, input)
		if err != nil {
			return err
		}
		defer r.Close()
		d, err := cfg.Descriptor()
		if err != nil {
			return err
		}
		r.SetColor(d.Range, d.Matrix)
		if frame, err = r.Next(); err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
	} else {
		d, err := cfg.Descriptor()
		if err != nil {
			return err
		}
		buf, err := rawframe.Load(fs, input, d)
		if err != nil {
			return err
		}
		frame = buf
	}

	d := frame.Descriptor()
	log.Info(l10n.F("Converting %s %dx%d frames (%s, %s)", d.Format, d.Width, d.Height, d.Matrix, d.Range))

	img, err := converter.Convert(frame)
	if err != nil {
		return err
	}
	if cfg.Output.Mirror {
		img = snapshot.Mirror(img)
	}

	format, err := imageFormatFor(c, cfg, output)
	if err != nil {
		return err
	}
	data, err := imageencoder.New(false).Encode(img, format, cfg.Output.Quality)
	if err != nil {
		return err
	}
	if err := writeOutput(fs, output, data); err != nil {
		log.Error(l10n.F("Failed to write output: %s", err))
		return err
	}

	log.Info(l10n.F("Output saved to %s", output))
	return nil
}

// writeOutput writes data to path, streaming through Create so "-" reaches stdout.
func writeOutput(fs *osfilesystem.FileSystem, path string, data []byte) error {
	w, err := fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// =============================================================================
// sequence
// =============================================================================

func sequenceCommand() *cli.Command {
	return &cli.Command{
		Name:      "sequence",
		Usage:     l10n.T("Convert a stream of YUV frames to snapshots and an animated GIF"),
		ArgsUsage: "INPUT",
		Flags: withFlags(commonFlags(), outputFlags(), []cli.Flag{
			&cli.StringFlag{Name: "snapshots", Aliases: []string{"s"}, Category: l10n.T("Output"), Usage: l10n.T("Directory for still images")},
			&cli.StringFlag{Name: "pattern", Category: l10n.T("Output"), Usage: l10n.T("Snapshot file name pattern (default: frame-%04d)")},
			mirrorFlag(),
			&cli.StringFlag{Name: "gif", Aliases: []string{"g"}, Category: l10n.T("Output"), Usage: l10n.T("Animated GIF output path")},
			&cli.Float64Flag{Name: "gif-fps", Category: l10n.T("Output"), Usage: l10n.T("GIF frame rate (default: input rate divided by --every)")},
			&cli.StringFlag{Name: "summary", Category: l10n.T("Output"), Usage: l10n.T("Markdown summary output path")},
			&cli.IntFlag{Name: "every", Aliases: []string{"n"}, Category: l10n.T("Sampling"), Usage: l10n.T("Convert every Nth frame")},
			&cli.IntFlag{Name: "max-frames", Aliases: []string{"m"}, Category: l10n.T("Sampling"), Usage: l10n.T("Stop after this many input frames (0 = all)")},
		}),
		Action: runSequence,
	}
}

func runSequence(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one INPUT argument")
	}
	input := c.Args().First()
	if c.String("snapshots") == "" && c.String("gif") == "" {
		return fmt.Errorf("nothing to do: set --snapshots and/or --gif")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, cancel := signalContext(c.Context, log)
	defer cancel()

	fs := osfilesystem.New()
	sink, err := newSink(fs, cfg)
	if err != nil {
		return err
	}

	source, err := openSource(fs, input, cfg)
	if err != nil {
		return err
	}
	defer source.Close()

	encoder := imageencoder.New(false)
	orch := orchestrator.New(
		batch.NewStage(sink, log, workerCount(cfg)),
		snapshot.NewStage(encoder, fs, log),
		gif.NewStage(log),
		fs,
		sink,
		log,
	)

	orchConfig := cfg.ToOrchestratorConfig()
	orchConfig.Source = source
	orchConfig.InputPath = input
	orchConfig.SnapshotDir = c.String("snapshots")
	orchConfig.GIFPath = c.String("gif")

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(summarizer.WithTranslator(l10n.T)), fs)
		if err := writer.Write(path, buildSummary(result, orchConfig)); err != nil {
			log.Error(l10n.F("Failed to write output: %s", err))
			return err
		}
		log.Info(l10n.F("Output saved to %s", path))
	}
	return nil
}

func buildSummary(result orchestrator.RunResult, cfg orchestrator.Config) *summarizer.Summary {
	output := summarizer.OutputInfo{
		Files:        len(result.FilesWritten),
		BytesWritten: result.BytesWritten,
		GIFPath:      result.GIFPath,
		GIFFrames:    result.GIFFrames,
	}
	if cfg.SnapshotDir != "" {
		output.SnapshotDir = cfg.SnapshotDir
		output.SnapshotFormat = cfg.SnapshotFormat.String()
	}

	return summarizer.NewBuilder().
		WithRunID(result.RunID).
		WithInput(summarizer.InputInfo{
			Path:      result.Input,
			Width:     result.Width,
			Height:    result.Height,
			Format:    result.Format,
			Range:     result.Range,
			Matrix:    result.Matrix,
			FrameRate: result.FrameRate,
		}).
		WithFrames(summarizer.FrameStats{
			Read:        result.FramesRead,
			Converted:   result.FramesConverted,
			DropReasons: result.DropReasons,
			ElapsedMs:   result.ElapsedMs,
		}).
		WithOutput(output).
		Build()
}

// =============================================================================
// compare
// =============================================================================

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     l10n.T("Show the same YUV input under two color interpretations side by side"),
		ArgsUsage: "INPUT",
		Flags: withFlags(commonFlags(), outputFlags(), []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output image or .gif path")},
			&cli.StringFlag{Name: "left-matrix", Value: "bt601", Category: l10n.T("Comparison"), Usage: l10n.T("Color matrix of the left side")},
			&cli.StringFlag{Name: "right-matrix", Value: "bt709", Category: l10n.T("Comparison"), Usage: l10n.T("Color matrix of the right side")},
			&cli.StringFlag{Name: "left-range", Category: l10n.T("Comparison"), Usage: l10n.T("Color range of the left side (default: input range)")},
			&cli.StringFlag{Name: "right-range", Category: l10n.T("Comparison"), Usage: l10n.T("Color range of the right side (default: input range)")},
			&cli.IntFlag{Name: "gap", Value: juxtapose.DefaultOptions().Gap, Category: l10n.T("Comparison"), Usage: l10n.T("Gap between the two sides in pixels")},
			&cli.IntFlag{Name: "max-frames", Aliases: []string{"m"}, Category: l10n.T("Sampling"), Usage: l10n.T("Stop after this many input frames (0 = all, default: 1 for still images)")},
			&cli.Float64Flag{Name: "gif-fps", Category: l10n.T("Output"), Usage: l10n.T("GIF frame rate (default: input rate)")},
		}),
		Action: runCompare,
	}
}

func runCompare(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one INPUT argument")
	}
	input, output := c.Args().First(), c.String("output")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !c.IsSet("max-frames") && !isGIF(output) {
		cfg.MaxFrames = 1
	}
	log := newLogger(cfg)

	ctx, cancel := signalContext(c.Context, log)
	defer cancel()

	fs := osfilesystem.New()
	stage := batch.NewStage(nullsink.New(), log, workerCount(cfg))

	side := func(matrix, rng string) ([]pipeline.ConvertedFrame, float64, error) {
		sideCfg := cfg
		sideCfg.Input.Matrix = matrix
		if rng != "" {
			sideCfg.Input.Range = rng
		}
		if err := sideCfg.Validate(); err != nil {
			return nil, 0, err
		}
		source, err := openSource(fs, input, sideCfg)
		if err != nil {
			return nil, 0, err
		}
		defer source.Close()
		frames, err := convertAll(ctx, stage, source, cfg.MaxFrames)
		return frames, source.FrameRate(), err
	}

	lefts, fps, err := side(c.String("left-matrix"), c.String("left-range"))
	if err != nil {
		return err
	}
	rights, _, err := side(c.String("right-matrix"), c.String("right-range"))
	if err != nil {
		return err
	}

	opts := juxtapose.Options{Gap: c.Int("gap"), Background: color.Black}
	pairs := juxtapose.Pair(lefts, rights, opts)
	if len(pairs) == 0 {
		return fmt.Errorf("no frames converted")
	}

	var data []byte
	if isGIF(output) {
		if cfg.GIF.FrameRate > 0 {
			fps = cfg.GIF.FrameRate
		}
		anim, err := gif.NewStage(log).Execute(ctx, pipeline.GIFInput{
			Frames:    pairs,
			FrameRate: fps,
			MaxWidth:  cfg.GIF.MaxWidth * 2,
			Dither:    cfg.GIF.Dither,
		})
		if err != nil {
			log.Error(l10n.F("Failed to encode GIF: %s", err))
			return err
		}
		data = anim.Data
	} else {
		format, err := imageFormatFor(c, cfg, output)
		if err != nil {
			return err
		}
		if data, err = imageencoder.New(false).Encode(pairs[0].Image, format, cfg.Output.Quality); err != nil {
			return err
		}
	}

	if err := writeOutput(fs, output, data); err != nil {
		log.Error(l10n.F("Failed to write output: %s", err))
		return err
	}
	log.Info(l10n.F("Output saved to %s", output))
	return nil
}

// convertAll reads up to max frames (0 = all) and converts them in one batch.
func convertAll(ctx context.Context, stage *batch.Stage, source ports.FrameSource, max int) ([]pipeline.ConvertedFrame, error) {
	var frames []ports.FrameBuffer
	for max <= 0 || len(frames) < max {
		buf, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		frames = append(frames, buf)
	}

	result, err := stage.Execute(ctx, pipeline.BatchInput{Frames: frames, Step: 1})
	if err != nil {
		return nil, err
	}
	return result.Frames, nil
}

// =============================================================================
// pattern
// =============================================================================

func patternCommand() *cli.Command {
	return &cli.Command{
		Name:  "pattern",
		Usage: l10n.T("Write a synthetic test sequence as y4m or raw YUV"),
		Flags: withFlags(commonFlags(), []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output .y4m or raw file path (- for stdout)")},
			&cli.IntFlag{Name: "frames", Value: 30, Usage: l10n.T("Number of frames to generate")},
		}),
		Action: runPattern,
	}
}

func runPattern(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	output := c.String("output")

	d, err := cfg.Descriptor()
	if err != nil {
		return err
	}
	if d.Width == 0 && d.Height == 0 {
		d.Width, d.Height = defaultPatternWidth, defaultPatternHeight
	}

	gen, err := patterngen.New(d, patterngen.Options{Frames: c.Int("frames"), FrameRate: cfg.Input.FrameRate})
	if err != nil {
		return err
	}

	fs := osfilesystem.New()
	w, err := fs.Create(output)
	if err != nil {
		return err
	}

	n, err := writePattern(w, gen, isY4M(output))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Error(l10n.F("Failed to write output: %s", err))
		return err
	}

	log.Info(l10n.F("Wrote %d %s frames to %s", n, d.Format, output))
	return nil
}

// writePattern drains gen into w and returns the number of frames written.
func writePattern(w io.Writer, gen *patterngen.Generator, asY4M bool) (int, error) {
	var y4mWriter *y4m.Writer
	if asY4M {
		yw, err := y4m.NewWriter(w, gen.Descriptor(), gen.FrameRate())
		if err != nil {
			return 0, err
		}
		y4mWriter = yw
	}

	n := 0
	for {
		buf, err := gen.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		if y4mWriter != nil {
			err = y4mWriter.WriteFrame(buf)
		} else {
			err = writeRaw(w, buf)
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

func writeRaw(w io.Writer, buf ports.FrameBuffer) error {
	data, err := orchestrator.PackedBytes(buf)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
