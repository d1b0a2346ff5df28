package memframe

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/yuvsnap/pkg/converter"
	"github.com/user/yuvsnap/pkg/yuv"
)

func TestFromBytes_SplitsPlanes(t *testing.T) {
	d := yuv.Descriptor{Width: 4, Height: 2, Format: yuv.FormatNV12}
	data := []byte{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}

	buf, err := FromBytes(d, data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	planes := buf.Planes()
	if len(planes) != 2 {
		t.Fatalf("expected 2 planes, got %d", len(planes))
	}
	if !bytes.Equal(planes[0].Data, data[:8]) || planes[0].Stride != 4 {
		t.Errorf("unexpected luma plane: %+v", planes[0])
	}
	if !bytes.Equal(planes[1].Data, data[8:]) || planes[1].Stride != 4 {
		t.Errorf("unexpected chroma plane: %+v", planes[1])
	}
}

func TestFromBytes_ShortData(t *testing.T) {
	d := yuv.Descriptor{Width: 4, Height: 4, Format: yuv.FormatI420}
	if _, err := FromBytes(d, make([]byte, 10)); err == nil {
		t.Error("expected error for short frame")
	}
	if _, err := FromBytes(yuv.Descriptor{Width: 4, Height: 4}, make([]byte, 64)); err == nil {
		t.Error("expected error for unknown format")
	}
	huge := yuv.Descriptor{Width: 3037000500, Height: 3037000500, Format: yuv.FormatI444}
	if _, err := FromBytes(huge, make([]byte, 64)); err == nil {
		t.Error("expected error for oversized dimensions")
	}
}

func TestAlloc_PadsRows(t *testing.T) {
	d := yuv.Descriptor{Width: 5, Height: 3, Format: yuv.FormatI420}
	buf, err := Alloc(d, 16)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}

	for i, p := range buf.Planes() {
		if p.Stride != 16 {
			t.Errorf("plane %d: stride = %d, want 16", i, p.Stride)
		}
	}
	if got := len(buf.Bytes()); got != d.FrameSize() {
		t.Errorf("Bytes() length = %d, want %d", got, d.FrameSize())
	}

	if _, err := Alloc(yuv.Descriptor{Width: 0, Height: 3, Format: yuv.FormatI420}, 16); err == nil {
		t.Error("expected error for empty dimensions")
	}
	if _, err := Alloc(yuv.Descriptor{Width: 100000, Height: 100000, Format: yuv.FormatI420}, 16); err == nil {
		t.Error("expected error for oversized dimensions")
	}
}

func TestBuffer_LockUnlock(t *testing.T) {
	buf, err := Alloc(yuv.Descriptor{Width: 2, Height: 2, Format: yuv.FormatI444}, 1)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}

	planes, err := buf.Lock()
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if len(planes) != 3 || !buf.Locked() {
		t.Fatal("expected three planes and a held lock")
	}

	if _, err := buf.Lock(); !errors.Is(err, ErrAlreadyLocked) {
		t.Errorf("expected ErrAlreadyLocked, got %v", err)
	}

	buf.Unlock()
	buf.Unlock() // Double unlock should be safe
	if buf.Locked() {
		t.Error("expected buffer to be unlocked")
	}
	if buf.LockCount() != 1 {
		t.Errorf("LockCount() = %d, want 1", buf.LockCount())
	}
}

func TestBuffer_LockedViewsCannotGrow(t *testing.T) {
	buf, err := Alloc(yuv.Descriptor{Width: 2, Height: 2, Format: yuv.FormatI420}, 1)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	planes, _ := buf.Lock()
	defer buf.Unlock()

	if cap(planes[0].Data) != len(planes[0].Data) {
		t.Error("expected locked view capacity to be capped at its length")
	}
}

func TestBuffer_ConvertReleasesLock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 255, 0, 0, 255
	}

	buf, err := FromImage(img, yuv.Descriptor{Width: 4, Height: 4, Format: yuv.FormatNV21}, 8)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	out, err := converter.Convert(buf)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if buf.Locked() || buf.LockCount() != 1 {
		t.Error("expected exactly one lock, released after conversion")
	}

	got := out.RGBAAt(2, 2)
	if got.R < 250 || got.G > 5 || got.B > 5 {
		t.Errorf("expected red, got %v", got)
	}

	// A second conversion must be able to lock again.
	if _, err := converter.Convert(buf); err != nil {
		t.Fatalf("second Convert failed: %v", err)
	}
}

func TestBuffer_ConvertWhileLockedFails(t *testing.T) {
	buf, err := Alloc(yuv.Descriptor{Width: 2, Height: 2, Format: yuv.FormatI420}, 1)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if _, err := buf.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	_, err = converter.Convert(buf)
	if !errors.Is(err, converter.ErrLockFailed) || !errors.Is(err, ErrAlreadyLocked) {
		t.Errorf("expected lock failure wrapping ErrAlreadyLocked, got %v", err)
	}
	if !buf.Locked() {
		t.Error("expected the original lock to remain held")
	}
}

func TestFromImage_SizeMismatch(t *testing.T) {
	_, err := FromImage(image.NewUniform(color.White), yuv.Descriptor{Width: 2, Height: 2, Format: yuv.FormatI420}, 1)
	if !errors.Is(err, converter.ErrMalformedBuffer) {
		t.Errorf("expected ErrMalformedBuffer for unbounded image, got %v", err)
	}
}

func TestBuffer_BytesStripsPadding(t *testing.T) {
	d := yuv.Descriptor{Width: 3, Height: 2, Format: yuv.FormatI444}
	tight := []byte{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
		13, 14, 15, 16, 17, 18,
	}

	padded, err := Alloc(d, 8)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	src, _ := FromBytes(d, tight)
	for i, p := range padded.Planes() {
		sp := src.Planes()[i]
		for y := 0; y < 2; y++ {
			copy(p.Data[y*p.Stride:], sp.Data[y*sp.Stride:y*sp.Stride+3])
			p.Data[y*p.Stride+3] = 0xEE
		}
	}

	if !bytes.Equal(padded.Bytes(), tight) {
		t.Errorf("Bytes() = %v, want %v", padded.Bytes(), tight)
	}
}
