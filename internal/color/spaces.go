package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// LinearRGB is sRGB with the transfer function removed.
type LinearRGB struct {
	R, G, B, A float64
}

// HSV: hue in degrees [0,360), saturation and value in [0,1].
type HSV struct {
	H, S, V, A float64
}

// HSL: hue in degrees [0,360), saturation and lightness in [0,1].
type HSL struct {
	H, S, L, A float64
}

// HWB: hue in degrees [0,360), whiteness and blackness in [0,1].
type HWB struct {
	H, W, B, A float64
}

// Oklab: perceptual lightness L in [0,1], a and b roughly in [-0.4,0.4].
type Oklab struct {
	L, A, B, Alpha float64
}

func (c Color) LinearRGB() LinearRGB {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.LinearRgb()
	return LinearRGB{R: r, G: g, B: b, A: c.A}
}

// Color keeps out of gamut values, blend results are clamped later.
func (l LinearRGB) Color() Color {
	c := colorful.LinearRgb(l.R, l.G, l.B)
	return Color{R: c.R, G: c.G, B: c.B, A: l.A}
}

func (c Color) HSV() HSV {
	h, sat, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return HSV{H: normalizeHue(h), S: sat, V: v, A: c.A}
}

func (hsv HSV) Color() Color {
	c := colorful.Hsv(normalizeHue(hsv.H), hsv.S, hsv.V)
	return Color{R: c.R, G: c.G, B: c.B, A: hsv.A}
}

func (c Color) HSL() HSL {
	h, sat, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return HSL{H: normalizeHue(h), S: sat, L: l, A: c.A}
}

func (hsl HSL) Color() Color {
	c := colorful.Hsl(normalizeHue(hsl.H), hsl.S, hsl.L)
	return Color{R: c.R, G: c.G, B: c.B, A: hsl.A}
}

func (c Color) HWB() HWB {
	min := math.Min(c.R, math.Min(c.G, c.B))
	return HWB{H: c.HSV().H, W: min, B: 1 - math.Max(c.R, math.Max(c.G, c.B)), A: c.A}
}

func (hwb HWB) Color() Color {
	if hwb.W+hwb.B >= 1 {
		gray := hwb.W / (hwb.W + hwb.B)
		return Color{R: gray, G: gray, B: gray, A: hwb.A}
	}
	pure := HSV{H: hwb.H, S: 1, V: 1, A: hwb.A}.Color()
	scale := 1 - hwb.W - hwb.B
	return Color{
		R: pure.R*scale + hwb.W,
		G: pure.G*scale + hwb.W,
		B: pure.B*scale + hwb.W,
		A: hwb.A,
	}
}

type mat3 [3][3]float64

func (m *mat3) mul(x, y, z float64) (float64, float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

func (m *mat3) inverse() mat3 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	return mat3{
		{(e*i - f*h) / det, (c*h - b*i) / det, (b*f - c*e) / det},
		{(f*g - d*i) / det, (a*i - c*g) / det, (c*d - a*f) / det},
		{(d*h - e*g) / det, (b*g - a*h) / det, (a*e - b*d) / det},
	}
}

// https://bottosson.github.io/posts/oklab/
var (
	linearToLMS = mat3{
		{0.4122214708, 0.5363325363, 0.0514459929},
		{0.2119034982, 0.6806995451, 0.1073969566},
		{0.0883024619, 0.2817188376, 0.6299787005},
	}
	lmsToLab = mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}

	// the published inverses are rounded to 10 digits; computing them keeps
	// the round trip exact to float precision
	lmsToLinear = linearToLMS.inverse()
	labToLMS    = lmsToLab.inverse()
)

func (c Color) Oklab() Oklab {
	lin := c.LinearRGB()
	l, m, s := linearToLMS.mul(lin.R, lin.G, lin.B)
	L, a, b := lmsToLab.mul(math.Cbrt(l), math.Cbrt(m), math.Cbrt(s))
	return Oklab{L: L, A: a, B: b, Alpha: c.A}
}

func (lab Oklab) Color() Color {
	l, m, s := labToLMS.mul(lab.L, lab.A, lab.B)
	r, g, b := lmsToLinear.mul(l*l*l, m*m*m, s*s*s)
	return LinearRGB{R: r, G: g, B: b, A: lab.Alpha}.Color()
}
