// Package converter turns locked YUV frame buffers into RGBA bitmaps.
//
// Chroma is co-sited: every luma sample takes the chroma sample of the block it
// falls in, without interpolation. Coefficients follow the frame's matrix and
// range (BT.601 video range unless the descriptor says otherwise).
package converter

import (
	"image"
	"reflect"

	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// Convert decodes buf into a newly allocated RGBA bitmap with the same
// dimensions as the luma plane. Alpha is always 255.
//
// The buffer is locked for the duration of the call and unlocked on every
// path that acquired the lock. No bitmap is allocated when an error is returned.
func Convert(buf ports.FrameBuffer) (*image.RGBA, error) {
	desc, err := describe(buf)
	if err != nil {
		return nil, err
	}

	planes, err := lock(buf, desc)
	if err != nil {
		return nil, err
	}
	defer buf.Unlock()

	if err := validatePlanes(desc, planes); err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	convertPlanes(desc, planes, dst)
	return dst, nil
}

// ConvertInto decodes buf into dst, which must match the frame dimensions.
// Every pixel of dst is overwritten on success; dst is untouched on error.
func ConvertInto(buf ports.FrameBuffer, dst *image.RGBA) error {
	desc, err := describe(buf)
	if err != nil {
		return err
	}
	if dst == nil {
		return newError(MalformedBuffer, desc.Format, "nil destination")
	}
	if dst.Rect.Dx() != desc.Width || dst.Rect.Dy() != desc.Height {
		return newError(MalformedBuffer, desc.Format, "destination is %dx%d, frame is %dx%d",
			dst.Rect.Dx(), dst.Rect.Dy(), desc.Width, desc.Height)
	}

	planes, err := lock(buf, desc)
	if err != nil {
		return err
	}
	defer buf.Unlock()

	if err := validatePlanes(desc, planes); err != nil {
		return err
	}

	convertPlanes(desc, planes, dst)
	return nil
}

// describe runs the checks that need no buffer access.
func describe(buf ports.FrameBuffer) (yuv.Descriptor, error) {
	if isNil(buf) {
		return yuv.Descriptor{}, newError(NullBuffer, yuv.FormatUnknown, "")
	}

	desc := buf.Descriptor()
	if desc.Width <= 0 || desc.Height <= 0 {
		return desc, newError(EmptyDimensions, desc.Format, "%dx%d", desc.Width, desc.Height)
	}
	if !desc.Format.Supported() {
		return desc, newError(UnsupportedFormat, desc.Format, "")
	}
	return desc, nil
}

func lock(buf ports.FrameBuffer, desc yuv.Descriptor) ([]yuv.Plane, error) {
	planes, err := buf.Lock()
	if err != nil {
		return nil, &ConversionError{Kind: LockFailed, Format: desc.Format, Err: err}
	}
	return planes, nil
}

func validatePlanes(desc yuv.Descriptor, planes []yuv.Plane) error {
	layout, _ := desc.Format.Layout()
	if len(planes) != layout.Planes {
		return newError(MalformedBuffer, desc.Format, "expected %d planes, got %d", layout.Planes, len(planes))
	}

	for i, p := range planes {
		rowBytes, rows := desc.PlaneGeometry(i)
		if p.Stride < rowBytes {
			return newError(MalformedBuffer, desc.Format, "plane %d stride %d below row size %d", i, p.Stride, rowBytes)
		}
		if !p.Fits(rowBytes, rows) {
			return newError(MalformedBuffer, desc.Format, "plane %d has %d bytes, too short for %d rows at stride %d",
				i, len(p.Data), rows, p.Stride)
		}
	}
	return nil
}

// convertPlanes assumes validated planes and a destination of matching size.
func convertPlanes(desc yuv.Descriptor, planes []yuv.Plane, dst *image.RGBA) {
	layout, _ := desc.Format.Layout()
	coeff := yuv.CoefficientsFor(desc.Matrix, desc.Range)

	width, height := desc.Width, desc.Height
	yPlane := planes[0]
	uPlane := planes[layout.UPlane]
	vPlane := planes[layout.VPlane]

	for y := 0; y < height; y++ {
		yRow := yPlane.Data[y*yPlane.Stride : y*yPlane.Stride+width]
		cy := y >> layout.ShiftY
		uRow := uPlane.Data[cy*uPlane.Stride:]
		vRow := vPlane.Data[cy*vPlane.Stride:]

		off := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		out := dst.Pix[off : off+width*4]

		for x := 0; x < width; x++ {
			ci := (x >> layout.ShiftX) * layout.ChromaStep
			r, g, b := coeff.ToRGB(yRow[x], uRow[ci+layout.UOffset], vRow[ci+layout.VOffset])

			o := x * 4
			out[o] = r
			out[o+1] = g
			out[o+2] = b
			out[o+3] = 0xff
		}
	}
}

// isNil catches both a nil interface and a typed nil pointer inside one.
func isNil(buf ports.FrameBuffer) bool {
	if buf == nil {
		return true
	}
	v := reflect.ValueOf(buf)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
