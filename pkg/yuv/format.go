// Package yuv describes planar and semi-planar YUV pixel layouts.
package yuv

import (
	"fmt"
	"strings"
)

// Format identifies a YUV pixel layout.
type Format int

const (
	// FormatUnknown is the zero value and is never supported.
	FormatUnknown Format = iota
	// FormatI420 is 4:2:0 with separate Y, U and V planes.
	FormatI420
	// FormatYV12 is 4:2:0 with separate Y, V and U planes (V first).
	FormatYV12
	// FormatNV12 is 4:2:0 with a Y plane and an interleaved UV plane.
	FormatNV12
	// FormatNV21 is 4:2:0 with a Y plane and an interleaved VU plane.
	FormatNV21
	// FormatI422 is 4:2:2 with separate Y, U and V planes.
	FormatI422
	// FormatNV16 is 4:2:2 with a Y plane and an interleaved UV plane.
	FormatNV16
	// FormatI444 is 4:4:4 with separate Y, U and V planes.
	FormatI444
)

var formatNames = map[Format]string{
	FormatI420: "i420",
	FormatYV12: "yv12",
	FormatNV12: "nv12",
	FormatNV21: "nv21",
	FormatI422: "i422",
	FormatNV16: "nv16",
	FormatI444: "i444",
}

// String returns the lower-case name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(f))
}

// Supported reports whether f is one of the recognised layouts.
func (f Format) Supported() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseFormat parses a format name such as "nv12" or "I420".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "yuv420p", "iyuv":
		return FormatI420, nil
	case "yuv422p":
		return FormatI422, nil
	case "yuv444p":
		return FormatI444, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown pixel format: %q", s)
}

// Formats returns all supported formats in declaration order.
func Formats() []Format {
	return []Format{FormatI420, FormatYV12, FormatNV12, FormatNV21, FormatI422, FormatNV16, FormatI444}
}

// Range is the quantisation range of the samples.
type Range int

const (
	// RangeVideo is studio swing: Y in 16..235, chroma in 16..240.
	RangeVideo Range = iota
	// RangeFull uses the whole 0..255 span for every component.
	RangeFull
)

// String returns "video" or "full".
func (r Range) String() string {
	switch r {
	case RangeVideo:
		return "video"
	case RangeFull:
		return "full"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ParseRange parses "video"/"limited"/"tv" or "full"/"pc"/"jpeg".
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "video", "limited", "tv", "mpeg":
		return RangeVideo, nil
	case "full", "pc", "jpeg":
		return RangeFull, nil
	default:
		return RangeVideo, fmt.Errorf("unknown color range: %q", s)
	}
}

// Matrix selects the YCbCr to RGB coefficients.
type Matrix int

const (
	// MatrixBT601 is ITU-R BT.601, the default for SD camera output.
	MatrixBT601 Matrix = iota
	// MatrixBT709 is ITU-R BT.709.
	MatrixBT709
)

// String returns "bt601" or "bt709".
func (m Matrix) String() string {
	switch m {
	case MatrixBT601:
		return "bt601"
	case MatrixBT709:
		return "bt709"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMatrix parses "bt601"/"601" or "bt709"/"709".
func ParseMatrix(s string) (Matrix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bt601", "601", "bt.601", "smpte170m":
		return MatrixBT601, nil
	case "bt709", "709", "bt.709":
		return MatrixBT709, nil
	default:
		return MatrixBT601, fmt.Errorf("unknown color matrix: %q", s)
	}
}
