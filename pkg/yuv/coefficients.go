package yuv

// Coefficients is a fixed-point YCbCr<->RGB transform scaled by 256.
type Coefficients struct {
	// YOffset is the black level subtracted from Y (16 for video range).
	YOffset int
	// YScale is the luma gain applied on decode.
	YScale int
	// RV, GU, GV, BU are the chroma contributions on decode.
	RV, GU, GV, BU int

	// Forward (RGB -> YCbCr) rows.
	YR, YG, YB int
	UR, UG, UB int
	VR, VG, VB int
}

var coefficientTable = map[Matrix]map[Range]Coefficients{
	MatrixBT601: {
		RangeVideo: {
			YOffset: 16, YScale: 298, RV: 409, GU: 100, GV: 208, BU: 516,
			YR: 66, YG: 129, YB: 25,
			UR: -38, UG: -74, UB: 112,
			VR: 112, VG: -94, VB: -18,
		},
		RangeFull: {
			YOffset: 0, YScale: 256, RV: 359, GU: 88, GV: 183, BU: 454,
			YR: 77, YG: 150, YB: 29,
			UR: -43, UG: -85, UB: 128,
			VR: 128, VG: -107, VB: -21,
		},
	},
	MatrixBT709: {
		RangeVideo: {
			YOffset: 16, YScale: 298, RV: 459, GU: 55, GV: 136, BU: 541,
			YR: 47, YG: 157, YB: 16,
			UR: -26, UG: -86, UB: 112,
			VR: 112, VG: -102, VB: -10,
		},
		RangeFull: {
			YOffset: 0, YScale: 256, RV: 403, GU: 48, GV: 120, BU: 475,
			YR: 54, YG: 183, YB: 19,
			UR: -29, UG: -99, UB: 128,
			VR: 128, VG: -116, VB: -12,
		},
	},
}

// CoefficientsFor returns the transform for the given matrix and range.
// Unknown values fall back to BT.601 video range.
func CoefficientsFor(m Matrix, r Range) Coefficients {
	byRange, ok := coefficientTable[m]
	if !ok {
		byRange = coefficientTable[MatrixBT601]
	}
	c, ok := byRange[r]
	if !ok {
		c = byRange[RangeVideo]
	}
	return c
}

// ToRGB converts one YCbCr sample triple to RGB.
func (c Coefficients) ToRGB(y, u, v uint8) (r, g, b uint8) {
	yy := c.YScale * (int(y) - c.YOffset)
	d := int(u) - 128
	e := int(v) - 128

	r = clamp((yy + c.RV*e + 128) >> 8)
	g = clamp((yy - c.GU*d - c.GV*e + 128) >> 8)
	b = clamp((yy + c.BU*d + 128) >> 8)
	return r, g, b
}

// Luma returns the Y sample for an RGB triple.
func (c Coefficients) Luma(r, g, b int) uint8 {
	return clamp(((c.YR*r + c.YG*g + c.YB*b + 128) >> 8) + c.YOffset)
}

// Chroma returns the U and V samples for an RGB triple.
func (c Coefficients) Chroma(r, g, b int) (u, v uint8) {
	u = clamp(((c.UR*r + c.UG*g + c.UB*b + 128) >> 8) + 128)
	v = clamp(((c.VR*r + c.VG*g + c.VB*b + 128) >> 8) + 128)
	return u, v
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
