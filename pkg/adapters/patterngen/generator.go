// Package patterngen synthesizes test frames: colour bars over a grey ramp,
// with a marker square that moves one step per frame.
package patterngen

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/user/yuvsnap/pkg/adapters/memframe"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// Bars are the 75% colour bars, left to right.
var Bars = []color.RGBA{
	{191, 191, 191, 255}, // white
	{191, 191, 0, 255},   // yellow
	{0, 191, 191, 255},   // cyan
	{0, 191, 0, 255},     // green
	{191, 0, 191, 255},   // magenta
	{191, 0, 0, 255},     // red
	{0, 0, 191, 255},     // blue
}

// Generator produces a fixed number of synthetic frames.
type Generator struct {
	desc   yuv.Descriptor
	fps    float64
	frames int
	align  int
	next   int
}

// Options configures a Generator.
type Options struct {
	Frames    int     // Number of frames before io.EOF (default: 1)
	FrameRate float64 // Nominal frame rate (default: 30)
	Align     int     // Row alignment in bytes for generated planes (default: 1)
}

// New creates a generator for frames described by d.
func New(d yuv.Descriptor, opts Options) (*Generator, error) {
	if !d.Format.Supported() {
		return nil, fmt.Errorf("unsupported format: %s", d.Format)
	}
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	if opts.Frames <= 0 {
		opts.Frames = 1
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	if opts.Align <= 0 {
		opts.Align = 1
	}
	return &Generator{desc: d, fps: opts.FrameRate, frames: opts.Frames, align: opts.Align}, nil
}

// Render draws frame index as RGBA.
func (g *Generator) Render(index int) image.Image {
	w, h := g.desc.Width, g.desc.Height
	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()

	barsHeight := float64(h) * 2 / 3
	barWidth := float64(w) / float64(len(Bars))
	for i, c := range Bars {
		dc.SetColor(c)
		dc.DrawRectangle(float64(i)*barWidth, 0, barWidth, barsHeight)
		dc.Fill()
	}

	ramp := gg.NewLinearGradient(0, 0, float64(w), 0)
	ramp.AddColorStop(0, color.Black)
	ramp.AddColorStop(1, color.White)
	dc.SetFillStyle(ramp)
	dc.DrawRectangle(0, barsHeight, float64(w), float64(h)-barsHeight)
	dc.Fill()

	// Marker square inside the ramp band.
	size := (float64(h) - barsHeight) / 2
	if size >= 1 {
		step := size / 2
		travel := float64(w) - size
		x := 0.0
		if travel > 0 {
			x = float64(int(float64(index)*step) % (int(travel) + 1))
		}
		dc.SetColor(color.RGBA{255, 255, 255, 255})
		dc.DrawRectangle(x, barsHeight+size/2, size, size)
		dc.Fill()
	}

	return dc.Image()
}

// Frame renders frame index and packs it into a YUV buffer.
func (g *Generator) Frame(index int) (*memframe.Buffer, error) {
	buf, err := memframe.FromImage(g.Render(index), g.desc, g.align)
	if err != nil {
		return nil, fmt.Errorf("pack pattern frame %d: %w", index, err)
	}
	return buf, nil
}

func (g *Generator) Descriptor() yuv.Descriptor {
	return g.desc
}

func (g *Generator) FrameRate() float64 {
	return g.fps
}

// Next returns the next frame, or io.EOF once all frames are produced.
func (g *Generator) Next() (ports.FrameBuffer, error) {
	if g.next >= g.frames {
		return nil, io.EOF
	}
	buf, err := g.Frame(g.next)
	if err != nil {
		return nil, err
	}
	g.next++
	return buf, nil
}

func (g *Generator) Close() error {
	return nil
}

// Ensure Generator implements ports.FrameSource
var _ ports.FrameSource = (*Generator)(nil)
