// Package gif assembles converted frames into an animated GIF.
package gif

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"math"

	"golang.org/x/image/draw"

	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
)

// Stage encodes frames as a looping GIF.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new GIF stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("gif")}
}

// Delay returns the per-frame delay in 1/100 s for fps, never below 2.
// Most viewers treat smaller delays as 10.
func Delay(fps float64) int {
	if fps <= 0 {
		return 10
	}
	d := int(math.Round(100 / fps))
	if d < 2 {
		d = 2
	}
	return d
}

// Execute quantizes every frame to the web-safe palette and encodes the animation.
func (s *Stage) Execute(ctx context.Context, input pipeline.GIFInput) (pipeline.GIFResult, error) {
	anim := s.NewAnimation(input.Options())
	if err := anim.Add(ctx, input.Frames); err != nil {
		return pipeline.GIFResult{}, err
	}
	return anim.Finish(ctx)
}

// Start begins an animation that quantizes frames as they are added.
func (s *Stage) Start(opts pipeline.GIFOptions) pipeline.GIFAnimation {
	return s.NewAnimation(opts)
}

// NewAnimation is Start returning the concrete type.
func (s *Stage) NewAnimation(opts pipeline.GIFOptions) *Animation {
	return &Animation{
		stage: s,
		opts:  opts,
		delay: Delay(opts.FrameRate),
		gif:   &gif.GIF{LoopCount: 0},
	}
}

// Animation holds paletted frames only. The RGBA frames passed to Add are
// not referenced after Add returns.
type Animation struct {
	stage *Stage
	opts  pipeline.GIFOptions
	delay int
	gif   *gif.GIF
}

// Add quantizes and scales frames and appends them to the animation.
func (a *Animation) Add(ctx context.Context, frames []pipeline.ConvertedFrame) error {
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.gif.Image = append(a.gif.Image, a.stage.quantize(frame.Image, a.opts.MaxWidth, a.opts.Dither))
		a.gif.Delay = append(a.gif.Delay, a.delay)
	}
	return nil
}

// Len returns the number of frames added so far.
func (a *Animation) Len() int {
	return len(a.gif.Image)
}

// Frames returns the paletted frames added so far.
func (a *Animation) Frames() []*image.Paletted {
	return a.gif.Image
}

// Finish encodes the looping animation. At least one frame is required.
func (a *Animation) Finish(ctx context.Context) (pipeline.GIFResult, error) {
	n := len(a.gif.Image)
	if n == 0 {
		return pipeline.GIFResult{}, fmt.Errorf("no frames to encode")
	}
	if err := ctx.Err(); err != nil {
		return pipeline.GIFResult{}, err
	}

	a.stage.logger.Debug("Encoding %d frames at %.1f fps", n, a.opts.FrameRate)

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, a.gif); err != nil {
		return pipeline.GIFResult{}, fmt.Errorf("encode GIF: %w", err)
	}

	result := pipeline.GIFResult{
		Data:       buf.Bytes(),
		Frames:     n,
		DurationMs: n * a.delay * 10,
	}
	a.stage.logger.Debug("GIF encoded: %d bytes", len(result.Data))
	return result, nil
}

var _ pipeline.GIFStarter = (*Stage)(nil)

func (s *Stage) quantize(img image.Image, maxWidth int, dither bool) *image.Paletted {
	src := img
	b := img.Bounds()
	if maxWidth > 0 && b.Dx() > maxWidth {
		h := b.Dy() * maxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		src = scaled
	}

	sb := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, sb.Dx(), sb.Dy()), palette.WebSafe)
	if dither {
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, sb.Min)
	} else {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
	}
	return dst
}
