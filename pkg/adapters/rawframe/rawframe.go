// Package rawframe loads headerless YUV frames from files.
package rawframe

import (
	"errors"
	"fmt"
	"io"

	"github.com/user/yuvsnap/pkg/adapters/memframe"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// Load reads one tightly packed frame described by d from path.
// Bytes beyond the first frame are ignored.
func Load(fs ports.FileSystem, path string, d yuv.Descriptor) (*memframe.Buffer, error) {
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	buf, err := memframe.FromBytes(d, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return buf, nil
}

// Source streams consecutive tightly packed frames from one file.
type Source struct {
	r      io.ReadCloser
	desc   yuv.Descriptor
	fps    float64
	frames int
}

// Open opens path as a sequence of frames described by d.
func Open(fs ports.FileSystem, path string, d yuv.Descriptor, fps float64) (*Source, error) {
	if !d.Format.Supported() {
		return nil, fmt.Errorf("unsupported format: %s", d.Format)
	}
	if err := d.ValidateSize(); err != nil {
		return nil, err
	}
	r, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Source{r: r, desc: d, fps: fps}, nil
}

func (s *Source) Descriptor() yuv.Descriptor {
	return s.desc
}

func (s *Source) FrameRate() float64 {
	return s.fps
}

// Next reads the next frame. A trailing partial frame is an error.
func (s *Source) Next() (ports.FrameBuffer, error) {
	data := make([]byte, s.desc.FrameSize())
	n, err := io.ReadFull(s.r, data)
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame %d: %w", s.frames, err)
	}
	s.frames++

	buf, err := memframe.FromBytes(s.desc, data)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *Source) Close() error {
	return s.r.Close()
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
