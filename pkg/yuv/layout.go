package yuv

import "fmt"

// MaxDimension bounds frame width and height. Larger values are rejected
// before any allocation so size arithmetic cannot overflow.
const MaxDimension = 16384

// Layout is the resolved plane arrangement of a Format.
type Layout struct {
	// Planes is the number of memory planes (2 for semi-planar, 3 for planar).
	Planes int
	// ShiftX and ShiftY are the log2 chroma subsampling factors.
	ShiftX, ShiftY uint
	// UPlane and VPlane are the plane indices holding U and V samples.
	UPlane, VPlane int
	// UOffset and VOffset are byte offsets within one chroma sample group.
	UOffset, VOffset int
	// ChromaStep is the byte distance between horizontally adjacent chroma samples.
	ChromaStep int
}

var layouts = map[Format]Layout{
	FormatI420: {Planes: 3, ShiftX: 1, ShiftY: 1, UPlane: 1, VPlane: 2, ChromaStep: 1},
	FormatYV12: {Planes: 3, ShiftX: 1, ShiftY: 1, UPlane: 2, VPlane: 1, ChromaStep: 1},
	FormatNV12: {Planes: 2, ShiftX: 1, ShiftY: 1, UPlane: 1, VPlane: 1, VOffset: 1, ChromaStep: 2},
	FormatNV21: {Planes: 2, ShiftX: 1, ShiftY: 1, UPlane: 1, VPlane: 1, UOffset: 1, ChromaStep: 2},
	FormatI422: {Planes: 3, ShiftX: 1, ShiftY: 0, UPlane: 1, VPlane: 2, ChromaStep: 1},
	FormatNV16: {Planes: 2, ShiftX: 1, ShiftY: 0, UPlane: 1, VPlane: 1, VOffset: 1, ChromaStep: 2},
	FormatI444: {Planes: 3, ShiftX: 0, ShiftY: 0, UPlane: 1, VPlane: 2, ChromaStep: 1},
}

// Layout returns the plane arrangement for f. ok is false for unsupported formats.
func (f Format) Layout() (Layout, bool) {
	l, ok := layouts[f]
	return l, ok
}

// Interleaved reports whether U and V share a plane.
func (l Layout) Interleaved() bool {
	return l.ChromaStep == 2
}

// Plane is one mapped plane of a frame.
type Plane struct {
	Data   []byte
	Stride int
}

// Fits reports whether p holds rows rows of rowBytes bytes at its stride.
// The bound is checked by division so a huge stride cannot overflow.
func (p Plane) Fits(rowBytes, rows int) bool {
	if rowBytes < 0 || rows < 0 || p.Stride < rowBytes {
		return false
	}
	if rows == 0 {
		return true
	}
	if len(p.Data) < rowBytes {
		return false
	}
	return rows == 1 || p.Stride <= (len(p.Data)-rowBytes)/(rows-1)
}

// Descriptor carries the metadata of a frame buffer.
type Descriptor struct {
	Width  int
	Height int
	Format Format
	Range  Range
	Matrix Matrix
}

// ValidateSize checks that both dimensions are positive and at most MaxDimension.
func (d Descriptor) ValidateSize() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", d.Width, d.Height)
	}
	if d.Width > MaxDimension || d.Height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d exceed %d", d.Width, d.Height, MaxDimension)
	}
	return nil
}

// ChromaSize returns the chroma plane dimensions in samples.
// Odd luma sizes round up so the last column and row still have chroma.
func (d Descriptor) ChromaSize() (width, height int) {
	l, ok := d.Format.Layout()
	if !ok {
		return 0, 0
	}
	return ceilShift(d.Width, l.ShiftX), ceilShift(d.Height, l.ShiftY)
}

// PlaneGeometry returns the minimum row length in bytes and the row count of plane i.
func (d Descriptor) PlaneGeometry(i int) (rowBytes, rows int) {
	l, ok := d.Format.Layout()
	if !ok || i < 0 || i >= l.Planes {
		return 0, 0
	}
	if i == 0 {
		return d.Width, d.Height
	}
	cw, ch := d.ChromaSize()
	return cw * l.ChromaStep, ch
}

// FrameSize returns the byte size of a tightly packed frame.
func (d Descriptor) FrameSize() int {
	l, ok := d.Format.Layout()
	if !ok {
		return 0
	}
	total := 0
	for i := 0; i < l.Planes; i++ {
		rowBytes, rows := d.PlaneGeometry(i)
		total += rowBytes * rows
	}
	return total
}

// AlignStride rounds rowBytes up to a multiple of align. align <= 1 leaves it unchanged.
func AlignStride(rowBytes, align int) int {
	if align <= 1 {
		return rowBytes
	}
	return (rowBytes + align - 1) / align * align
}

func ceilShift(v int, shift uint) int {
	return (v + (1 << shift) - 1) >> shift
}
