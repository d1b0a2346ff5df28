package converter

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/user/yuvsnap/pkg/yuv"
)

// Pack encodes img into freshly allocated planes laid out as d describes.
// Rows are padded to a multiple of align bytes. Chroma is taken from the
// top-left pixel of each subsampling block, matching the co-sited decode.
func Pack(img image.Image, d yuv.Descriptor, align int) ([]yuv.Plane, error) {
	if img == nil {
		return nil, newError(NullBuffer, d.Format, "nil image")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return nil, newError(EmptyDimensions, d.Format, "%dx%d", d.Width, d.Height)
	}
	layout, ok := d.Format.Layout()
	if !ok {
		return nil, newError(UnsupportedFormat, d.Format, "")
	}
	bounds := img.Bounds()
	if bounds.Dx() != d.Width || bounds.Dy() != d.Height {
		return nil, newError(MalformedBuffer, d.Format, "image is %dx%d, descriptor is %dx%d",
			bounds.Dx(), bounds.Dy(), d.Width, d.Height)
	}

	rgba := toRGBA(img)
	coeff := yuv.CoefficientsFor(d.Matrix, d.Range)

	planes := make([]yuv.Plane, layout.Planes)
	for i := range planes {
		rowBytes, rows := d.PlaneGeometry(i)
		stride := yuv.AlignStride(rowBytes, align)
		planes[i] = yuv.Plane{Data: make([]byte, stride*rows), Stride: stride}
	}

	yPlane := planes[0]
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			r, g, b := rgbAt(rgba, x, y)
			yPlane.Data[y*yPlane.Stride+x] = coeff.Luma(r, g, b)
		}
	}

	uPlane := planes[layout.UPlane]
	vPlane := planes[layout.VPlane]
	cw, ch := d.ChromaSize()
	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			r, g, b := rgbAt(rgba, cx<<layout.ShiftX, cy<<layout.ShiftY)
			u, v := coeff.Chroma(r, g, b)
			ci := cx * layout.ChromaStep
			uPlane.Data[cy*uPlane.Stride+ci+layout.UOffset] = u
			vPlane.Data[cy*vPlane.Stride+ci+layout.VOffset] = v
		}
	}

	return planes, nil
}

// toRGBA returns img as a zero-origin *image.RGBA, copying only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func rgbAt(img *image.RGBA, x, y int) (r, g, b int) {
	i := img.PixOffset(x, y)
	return int(img.Pix[i]), int(img.Pix[i+1]), int(img.Pix[i+2])
}
