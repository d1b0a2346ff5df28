// Package y4m reads and writes YUV4MPEG2 streams.
package y4m

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/user/yuvsnap/pkg/adapters/memframe"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

const (
	streamMagic = "YUV4MPEG2"
	frameMagic  = "FRAME"

	maxHeaderLen = 4096
)

// colorspaces maps the C header tag to a pixel format.
var colorspaces = map[string]yuv.Format{
	"420jpeg":  yuv.FormatI420,
	"420paldv": yuv.FormatI420,
	"420mpeg2": yuv.FormatI420,
	"420":      yuv.FormatI420,
	"422":      yuv.FormatI422,
	"444":      yuv.FormatI444,
}

// Reader decodes frames from a YUV4MPEG2 stream.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
	desc   yuv.Descriptor
	fps    float64
	frames int

	rangeSet bool
}

// NewReader parses the stream header from r.
// If r is an io.Closer it is closed by Close.
func NewReader(r io.Reader) (*Reader, error) {
	reader := &Reader{br: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		reader.closer = c
	}

	line, err := reader.readLine()
	if err != nil {
		return nil, fmt.Errorf("read stream header: %w", err)
	}
	if err := reader.parseHeader(line); err != nil {
		return nil, err
	}
	return reader, nil
}

// Open opens a y4m file through fs.
func Open(fs ports.FileSystem, path string) (*Reader, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) parseHeader(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != streamMagic {
		return fmt.Errorf("not a YUV4MPEG2 stream")
	}

	r.desc = yuv.Descriptor{Format: yuv.FormatI420, Range: yuv.RangeVideo}
	for _, field := range fields[1:] {
		tag, value := field[0], field[1:]
		switch tag {
		case 'W':
			w, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid width %q: %w", value, err)
			}
			r.desc.Width = w
		case 'H':
			h, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid height %q: %w", value, err)
			}
			r.desc.Height = h
		case 'F':
			fps, err := parseRatio(value)
			if err != nil {
				return fmt.Errorf("invalid frame rate %q: %w", value, err)
			}
			r.fps = fps
		case 'C':
			f, ok := colorspaces[value]
			if !ok {
				return fmt.Errorf("unsupported colorspace: %s", value)
			}
			r.desc.Format = f
		case 'X':
			if rng, ok := strings.CutPrefix(value, "COLORRANGE="); ok {
				r.rangeSet = true
				if strings.EqualFold(rng, "FULL") {
					r.desc.Range = yuv.RangeFull
				}
			}
		}
	}

	return r.desc.ValidateSize()
}

// Descriptor returns the stream's frame metadata.
func (r *Reader) Descriptor() yuv.Descriptor {
	return r.desc
}

// SetColor sets the matrix for subsequent frames, and the range unless the
// header declared one. YUV4MPEG2 has no matrix tag.
func (r *Reader) SetColor(rng yuv.Range, matrix yuv.Matrix) {
	r.desc.Matrix = matrix
	if !r.rangeSet {
		r.desc.Range = rng
	}
}

// FrameRate returns the frame rate from the F header, or 0 if absent.
func (r *Reader) FrameRate() float64 {
	return r.fps
}

// Next reads the next frame. It returns io.EOF after the last frame.
func (r *Reader) Next() (ports.FrameBuffer, error) {
	line, err := r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame %d header: %w", r.frames, err)
	}
	if !strings.HasPrefix(line, frameMagic) {
		return nil, fmt.Errorf("frame %d: expected %s marker, got %q", r.frames, frameMagic, line)
	}

	data := make([]byte, r.desc.FrameSize())
	if _, err := io.ReadFull(r.br, data); err != nil {
		return nil, fmt.Errorf("read frame %d: %w", r.frames, err)
	}
	r.frames++

	buf, err := memframe.FromBytes(r.desc, data)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Close closes the underlying reader if it is closable.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *Reader) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		if b == '\n' {
			return sb.String(), nil
		}
		if sb.Len() >= maxHeaderLen {
			return sb.String(), fmt.Errorf("header line exceeds %d bytes", maxHeaderLen)
		}
		sb.WriteByte(b)
	}
}

func parseRatio(s string) (float64, error) {
	num, den, ok := strings.Cut(s, ":")
	if !ok {
		return strconv.ParseFloat(s, 64)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, err
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, nil
	}
	return float64(n) / float64(d), nil
}

// Writer encodes frames into a YUV4MPEG2 stream.
type Writer struct {
	w      io.Writer
	desc   yuv.Descriptor
	fps    float64
	header bool
}

// NewWriter creates a writer for frames matching d. Only I420, I422 and I444
// have a YUV4MPEG2 colorspace tag.
func NewWriter(w io.Writer, d yuv.Descriptor, fps float64) (*Writer, error) {
	if colorspaceTag(d.Format) == "" {
		return nil, fmt.Errorf("format %s cannot be stored in y4m", d.Format)
	}
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	return &Writer{w: w, desc: d, fps: fps}, nil
}

// WriteFrame writes one frame, emitting the stream header first if needed.
func (w *Writer) WriteFrame(buf ports.FrameBuffer) error {
	d := buf.Descriptor()
	if d.Width != w.desc.Width || d.Height != w.desc.Height || d.Format != w.desc.Format {
		return fmt.Errorf("frame %dx%d %s does not match stream %dx%d %s",
			d.Width, d.Height, d.Format, w.desc.Width, w.desc.Height, w.desc.Format)
	}

	if !w.header {
		if _, err := io.WriteString(w.w, w.headerLine()); err != nil {
			return fmt.Errorf("write stream header: %w", err)
		}
		w.header = true
	}

	planes, err := buf.Lock()
	if err != nil {
		return fmt.Errorf("lock frame: %w", err)
	}
	defer buf.Unlock()

	if layout, _ := d.Format.Layout(); len(planes) != layout.Planes {
		return fmt.Errorf("expected %d planes, got %d", layout.Planes, len(planes))
	}
	for i, p := range planes {
		if rowBytes, rows := d.PlaneGeometry(i); !p.Fits(rowBytes, rows) {
			return fmt.Errorf("plane %d too small", i)
		}
	}

	if _, err := io.WriteString(w.w, frameMagic+"\n"); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	for i, p := range planes {
		rowBytes, rows := d.PlaneGeometry(i)
		for y := 0; y < rows; y++ {
			start := y * p.Stride
			if _, err := w.w.Write(p.Data[start : start+rowBytes]); err != nil {
				return fmt.Errorf("write plane %d: %w", i, err)
			}
		}
	}
	return nil
}

func (w *Writer) headerLine() string {
	colorRange := "LIMITED"
	if w.desc.Range == yuv.RangeFull {
		colorRange = "FULL"
	}
	num, den := rationalFPS(w.fps)
	return fmt.Sprintf("%s W%d H%d F%d:%d Ip A1:1 C%s XCOLORRANGE=%s\n",
		streamMagic, w.desc.Width, w.desc.Height, num, den, colorspaceTag(w.desc.Format), colorRange)
}

func colorspaceTag(f yuv.Format) string {
	switch f {
	case yuv.FormatI420:
		return "420jpeg"
	case yuv.FormatI422:
		return "422"
	case yuv.FormatI444:
		return "444"
	default:
		return ""
	}
}

func rationalFPS(fps float64) (int, int) {
	if fps <= 0 {
		return 30, 1
	}
	if fps == math.Trunc(fps) {
		return int(fps), 1
	}
	return int(math.Round(fps * 1001)), 1001
}

// Ensure Reader implements ports.FrameSource
var _ ports.FrameSource = (*Reader)(nil)
