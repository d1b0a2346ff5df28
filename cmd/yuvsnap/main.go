// Package main provides the CLI entry point for yuvsnap.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/yuvsnap/pkg/adapters/filesink"
	"github.com/user/yuvsnap/pkg/adapters/imageencoder"
	"github.com/user/yuvsnap/pkg/adapters/logger"
	"github.com/user/yuvsnap/pkg/adapters/nullsink"
	"github.com/user/yuvsnap/pkg/adapters/patterngen"
	"github.com/user/yuvsnap/pkg/adapters/rawframe"
	"github.com/user/yuvsnap/pkg/adapters/y4m"
	"github.com/user/yuvsnap/pkg/config"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuvsnap"
)

var version = "dev"

// patternPrefix selects the synthetic source, e.g. "pattern:60".
const patternPrefix = "pattern:"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "yuvsnap",
		Usage:   l10n.T("Convert raw YUV frames to RGB images and animations"),
		Version: version,
		Commands: []*cli.Command{
			convertCommand(),
			sequenceCommand(),
			compareCommand(),
			patternCommand(),
		},
	}
}

// commonFlags are shared by every subcommand. urfave/cli stops parsing flags
// at the first positional argument, so they must precede INPUT.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{"YUVSNAP_CONFIG"}, Usage: l10n.T("YAML configuration file")},
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Value: string(yuvsnap.PresetDefault), Usage: l10n.T("Capture preset (default, android, apple, jpeg, hd)")},

		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Category: l10n.T("Input"), Usage: l10n.T("Pixel format (i420, yv12, nv12, nv21, i422, nv16, i444)")},
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Category: l10n.T("Input"), Usage: l10n.T("Frame width in pixels")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Category: l10n.T("Input"), Usage: l10n.T("Frame height in pixels")},
		&cli.StringFlag{Name: "range", Category: l10n.T("Input"), Usage: l10n.T("Color range (video, full)")},
		&cli.StringFlag{Name: "matrix", Category: l10n.T("Input"), Usage: l10n.T("Color matrix (bt601, bt709)")},
		&cli.Float64Flag{Name: "fps", Category: l10n.T("Input"), Usage: l10n.T("Frame rate of headerless input")},

		&cli.IntFlag{Name: "workers", Category: l10n.T("Performance"), Usage: l10n.T("Number of conversion workers (default: CPU count)")},

		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Category: l10n.T("Logging"), Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: l10n.T("Logging"), Usage: l10n.T("Suppress all log output")},

		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Category: l10n.T("Debug"), Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Category: l10n.T("Debug"), Usage: l10n.T("Directory for debug output")},
	}
}

// outputFlags control still image encoding.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "output-format", Category: l10n.T("Output"), Usage: l10n.T("Image format (png, jpeg, bmp, tiff); inferred from the output extension when omitted")},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Category: l10n.T("Output"), Usage: l10n.T("JPEG quality (1-100)")},
		&cli.StringFlag{Name: "quality-preset", Category: l10n.T("Output"), Usage: l10n.T("Quality preset (low, medium, high)")},
	}
}

// mirrorFlag flips stills horizontally, as a front camera preview shows them.
func mirrorFlag() cli.Flag {
	return &cli.BoolFlag{Name: "mirror", Category: l10n.T("Output"), Usage: l10n.T("Flip images horizontally, as a front camera preview shows them")}
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// loadConfig builds the effective configuration: file, then preset, then flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	base := config.Defaults()
	if path := c.String("config"); path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		base = cfg
	}

	preset, err := yuvsnap.ParsePreset(c.String("preset"))
	if err != nil {
		return base, err
	}
	b := yuvsnap.NewBuilder(base, preset)

	if c.IsSet("format") {
		b.WithFormat(c.String("format"))
	}
	if c.IsSet("width") || c.IsSet("height") {
		w, h := base.Input.Width, base.Input.Height
		if c.IsSet("width") {
			w = c.Int("width")
		}
		if c.IsSet("height") {
			h = c.Int("height")
		}
		b.WithSize(w, h)
	}
	if c.IsSet("range") {
		b.WithRange(c.String("range"))
	}
	if c.IsSet("matrix") {
		b.WithMatrix(c.String("matrix"))
	}
	if c.IsSet("fps") {
		b.WithFrameRate(c.Float64("fps"))
	}
	if c.IsSet("workers") {
		b.WithWorkers(c.Int("workers"))
	}
	if c.IsSet("quality-preset") {
		b.WithQualityPreset(yuvsnap.QualityPreset(c.String("quality-preset")))
	}
	if c.IsSet("quality") {
		b.WithQuality(c.Int("quality"))
	}
	if c.IsSet("output-format") {
		b.WithOutputFormat(c.String("output-format"))
	}
	if c.IsSet("every") {
		b.WithEvery(c.Int("every"))
	}
	if c.IsSet("max-frames") {
		b.WithMaxFrames(c.Int("max-frames"))
	}
	if c.IsSet("pattern") {
		b.WithPattern(c.String("pattern"))
	}
	if c.IsSet("mirror") {
		b.WithMirror(c.Bool("mirror"))
	}
	if c.IsSet("gif-fps") {
		b.WithGIFFrameRate(c.Float64("gif-fps"))
	}
	if c.Bool("debug") {
		b.WithDebug(c.String("debug-dir"))
	}

	cfg := b.Build()
	if c.IsSet("log-level") || c.String("config") == "" {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.Quiet = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) ports.Logger {
	return logger.New(cfg.LogLevelValue(), cfg.Quiet)
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func workerCount(cfg config.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.NumCPU()
}

func newSink(fs ports.FileSystem, cfg config.Config) (ports.DebugSink, error) {
	if !cfg.Debug {
		return nullsink.New(), nil
	}
	if err := fs.MkdirAll(cfg.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(cfg.DebugDir, fs, imageencoder.New(true)), nil
}

// openSource opens a y4m file, a headerless raw file, or the synthetic
// pattern when path is "pattern:<frames>".
func openSource(fs ports.FileSystem, path string, cfg config.Config) (ports.FrameSource, error) {
	d, err := cfg.Descriptor()
	if err != nil {
		return nil, err
	}

	if spec, ok := strings.CutPrefix(path, patternPrefix); ok {
		frames, err := strconv.Atoi(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern frame count %q: %w", spec, err)
		}
		if d.Width == 0 && d.Height == 0 {
			d.Width, d.Height = defaultPatternWidth, defaultPatternHeight
		}
		return patterngen.New(d, patterngen.Options{Frames: frames, FrameRate: cfg.Input.FrameRate})
	}

	if isY4M(path) {
		r, err := y4m.Open(fs, path)
		if err != nil {
			return nil, err
		}
		r.SetColor(d.Range, d.Matrix)
		return r, nil
	}
	return rawframe.Open(fs, path, d, cfg.Input.FrameRate)
}

func isY4M(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".y4m")
}

func isGIF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gif")
}

// imageFormatFor prefers an explicit --output-format, then the extension.
func imageFormatFor(c *cli.Context, cfg config.Config, path string) (ports.ImageFormat, error) {
	if c.IsSet("output-format") {
		return ports.ParseImageFormat(cfg.Output.Format)
	}
	if ext := filepath.Ext(path); ext != "" {
		return ports.ParseImageFormat(ext)
	}
	return ports.ParseImageFormat(cfg.Output.Format)
}
