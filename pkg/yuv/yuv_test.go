package yuv

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"nv12", FormatNV12, false},
		{"NV21", FormatNV21, false},
		{" i420 ", FormatI420, false},
		{"yuv420p", FormatI420, false},
		{"YV12", FormatYV12, false},
		{"i422", FormatI422, false},
		{"nv16", FormatNV16, false},
		{"yuv444p", FormatI444, false},
		{"bgra", FormatUnknown, true},
		{"", FormatUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestFormat_StringRoundTrip(t *testing.T) {
	for _, f := range Formats() {
		parsed, err := ParseFormat(f.String())
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", f.String(), err)
		}
		if parsed != f {
			t.Errorf("expected %v, got %v", f, parsed)
		}
	}
}

func TestFormat_Supported(t *testing.T) {
	if FormatUnknown.Supported() {
		t.Error("expected FormatUnknown to be unsupported")
	}
	if Format(99).Supported() {
		t.Error("expected out-of-range tag to be unsupported")
	}
	if _, ok := Format(99).Layout(); ok {
		t.Error("expected no layout for out-of-range tag")
	}
	for _, f := range Formats() {
		if !f.Supported() {
			t.Errorf("expected %v to be supported", f)
		}
	}
}

func TestParseRangeAndMatrix(t *testing.T) {
	if r, err := ParseRange("full"); err != nil || r != RangeFull {
		t.Errorf("ParseRange(full) = %v, %v", r, err)
	}
	if r, err := ParseRange("limited"); err != nil || r != RangeVideo {
		t.Errorf("ParseRange(limited) = %v, %v", r, err)
	}
	if _, err := ParseRange("hdr"); err == nil {
		t.Error("expected error for unknown range")
	}
	if m, err := ParseMatrix("709"); err != nil || m != MatrixBT709 {
		t.Errorf("ParseMatrix(709) = %v, %v", m, err)
	}
	if m, err := ParseMatrix(""); err != nil || m != MatrixBT601 {
		t.Errorf("ParseMatrix(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMatrix("bt2020"); err == nil {
		t.Error("expected error for unknown matrix")
	}
}

func TestDescriptor_PlaneGeometry(t *testing.T) {
	tests := []struct {
		name      string
		desc      Descriptor
		planes    [][2]int
		frameSize int
	}{
		{
			name:      "i420 even",
			desc:      Descriptor{Width: 4, Height: 2, Format: FormatI420},
			planes:    [][2]int{{4, 2}, {2, 1}, {2, 1}},
			frameSize: 12,
		},
		{
			name:      "nv12 odd",
			desc:      Descriptor{Width: 5, Height: 3, Format: FormatNV12},
			planes:    [][2]int{{5, 3}, {6, 2}},
			frameSize: 27,
		},
		{
			name:      "i422",
			desc:      Descriptor{Width: 4, Height: 2, Format: FormatI422},
			planes:    [][2]int{{4, 2}, {2, 2}, {2, 2}},
			frameSize: 16,
		},
		{
			name:      "nv16",
			desc:      Descriptor{Width: 4, Height: 2, Format: FormatNV16},
			planes:    [][2]int{{4, 2}, {4, 2}},
			frameSize: 16,
		},
		{
			name:      "i444",
			desc:      Descriptor{Width: 3, Height: 3, Format: FormatI444},
			planes:    [][2]int{{3, 3}, {3, 3}, {3, 3}},
			frameSize: 27,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.planes {
				rowBytes, rows := tt.desc.PlaneGeometry(i)
				if rowBytes != want[0] || rows != want[1] {
					t.Errorf("plane %d: got %dx%d, want %dx%d", i, rowBytes, rows, want[0], want[1])
				}
			}
			if got := tt.desc.FrameSize(); got != tt.frameSize {
				t.Errorf("FrameSize() = %d, want %d", got, tt.frameSize)
			}
		})
	}
}

func TestDescriptor_UnsupportedGeometry(t *testing.T) {
	d := Descriptor{Width: 4, Height: 4, Format: FormatUnknown}
	if d.FrameSize() != 0 {
		t.Error("expected zero frame size for unknown format")
	}
	if w, h := d.ChromaSize(); w != 0 || h != 0 {
		t.Errorf("expected zero chroma size, got %dx%d", w, h)
	}
}

func TestAlignStride(t *testing.T) {
	tests := []struct {
		rowBytes, align, expected int
	}{
		{5, 0, 5},
		{5, 1, 5},
		{5, 4, 8},
		{8, 4, 8},
		{33, 32, 64},
	}
	for _, tt := range tests {
		if got := AlignStride(tt.rowBytes, tt.align); got != tt.expected {
			t.Errorf("AlignStride(%d, %d) = %d, want %d", tt.rowBytes, tt.align, got, tt.expected)
		}
	}
}

func TestCoefficients_VideoRangeLevels(t *testing.T) {
	c := CoefficientsFor(MatrixBT601, RangeVideo)

	r, g, b := c.ToRGB(235, 128, 128)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("white: got (%d,%d,%d), want (255,255,255)", r, g, b)
	}

	r, g, b = c.ToRGB(16, 128, 128)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("black: got (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestCoefficients_FullRangeDiffers(t *testing.T) {
	video := CoefficientsFor(MatrixBT601, RangeVideo)
	full := CoefficientsFor(MatrixBT601, RangeFull)

	vr, _, _ := video.ToRGB(235, 128, 128)
	fr, fg, fb := full.ToRGB(235, 128, 128)
	if vr == fr {
		t.Errorf("expected different red for video and full range, both %d", vr)
	}
	if fr != 235 || fg != 235 || fb != 235 {
		t.Errorf("full range grey: got (%d,%d,%d), want (235,235,235)", fr, fg, fb)
	}
}

func TestCoefficients_FallBack(t *testing.T) {
	got := CoefficientsFor(Matrix(42), Range(42))
	want := CoefficientsFor(MatrixBT601, RangeVideo)
	if got != want {
		t.Errorf("expected BT.601 video fallback, got %+v", got)
	}
}

func TestCoefficients_RoundTripPrimaries(t *testing.T) {
	primaries := [][3]int{
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{255, 255, 255},
		{0, 0, 0},
		{128, 128, 128},
	}

	for _, m := range []Matrix{MatrixBT601, MatrixBT709} {
		for _, rg := range []Range{RangeVideo, RangeFull} {
			c := CoefficientsFor(m, rg)
			for _, p := range primaries {
				y := c.Luma(p[0], p[1], p[2])
				u, v := c.Chroma(p[0], p[1], p[2])
				r, g, b := c.ToRGB(y, u, v)
				got := [3]int{int(r), int(g), int(b)}
				for i := range got {
					if diff := got[i] - p[i]; diff > 4 || diff < -4 {
						t.Errorf("%v/%v %v: round trip gave %v", m, rg, p, got)
						break
					}
				}
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		input    int
		expected uint8
	}{
		{-10, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{300, 255},
	}

	for _, tt := range tests {
		if got := clamp(tt.input); got != tt.expected {
			t.Errorf("clamp(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestPlane_Fits(t *testing.T) {
	tests := []struct {
		name           string
		plane          Plane
		rowBytes, rows int
		expected       bool
	}{
		{"tight", Plane{Data: make([]byte, 6), Stride: 2}, 2, 3, true},
		{"padded last row short", Plane{Data: make([]byte, 10), Stride: 4}, 2, 3, true},
		{"too short", Plane{Data: make([]byte, 9), Stride: 4}, 2, 3, false},
		{"stride below row", Plane{Data: make([]byte, 6), Stride: 1}, 2, 3, false},
		{"huge stride", Plane{Data: make([]byte, 8), Stride: 1 << 62}, 2, 3, false},
		{"huge stride single row", Plane{Data: make([]byte, 8), Stride: 1 << 62}, 2, 1, true},
		{"no rows", Plane{Stride: 4}, 2, 0, true},
		{"empty data", Plane{Stride: 4}, 2, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.plane.Fits(tt.rowBytes, tt.rows); got != tt.expected {
				t.Errorf("Fits(%d, %d) = %v, want %v", tt.rowBytes, tt.rows, got, tt.expected)
			}
		})
	}
}

func TestDescriptor_ValidateSize(t *testing.T) {
	valid := []Descriptor{
		{Width: 1, Height: 1},
		{Width: MaxDimension, Height: MaxDimension},
	}
	for _, d := range valid {
		if err := d.ValidateSize(); err != nil {
			t.Errorf("%dx%d: unexpected error %v", d.Width, d.Height, err)
		}
	}

	invalid := []Descriptor{
		{Width: 0, Height: 2},
		{Width: 2, Height: -1},
		{Width: MaxDimension + 1, Height: 2},
		{Width: 3037000500, Height: 3037000500},
	}
	for _, d := range invalid {
		if err := d.ValidateSize(); err == nil {
			t.Errorf("%dx%d: expected error", d.Width, d.Height)
		}
	}
}
