// Package juxtapose places two converted frames side by side, typically the
// same YUV data interpreted with two different matrices or ranges.
package juxtapose

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/user/yuvsnap/pkg/pipeline"
)

// Options configures the layout.
type Options struct {
	// Gap is the horizontal gap between the two frames in pixels.
	Gap int
	// Background fills the gap and any vertical slack.
	Background color.Color
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Gap:        10,
		Background: color.Black,
	}
}

// Combine draws left and right next to each other, vertically centered.
func Combine(left, right image.Image, opts Options) *image.RGBA {
	if opts.Background == nil {
		opts.Background = color.Black
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}

	lb, rb := left.Bounds(), right.Bounds()
	width := lb.Dx() + opts.Gap + rb.Dx()
	height := lb.Dy()
	if rb.Dy() > height {
		height = rb.Dy()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	leftY := (height - lb.Dy()) / 2
	draw.Draw(out, image.Rect(0, leftY, lb.Dx(), leftY+lb.Dy()), left, lb.Min, draw.Src)

	rightX := lb.Dx() + opts.Gap
	rightY := (height - rb.Dy()) / 2
	draw.Draw(out, image.Rect(rightX, rightY, rightX+rb.Dx(), rightY+rb.Dy()), right, rb.Min, draw.Src)

	return out
}

// Pair combines two frame sequences index by index. The shorter sequence holds
// its last frame until the longer one finishes.
func Pair(lefts, rights []pipeline.ConvertedFrame, opts Options) []pipeline.ConvertedFrame {
	if len(lefts) == 0 || len(rights) == 0 {
		return nil
	}

	n := len(lefts)
	if len(rights) > n {
		n = len(rights)
	}

	out := make([]pipeline.ConvertedFrame, n)
	for i := 0; i < n; i++ {
		l := frameAt(lefts, i)
		r := frameAt(rights, i)
		index := l.Index
		if i >= len(lefts) {
			index = r.Index
		}
		out[i] = pipeline.ConvertedFrame{Index: index, Image: Combine(l.Image, r.Image, opts)}
	}
	return out
}

// frameAt returns frames[i], or the last frame past the end.
func frameAt(frames []pipeline.ConvertedFrame, i int) pipeline.ConvertedFrame {
	if i >= len(frames) {
		return frames[len(frames)-1]
	}
	return frames[i]
}
