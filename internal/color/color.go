// Package color holds the float RGBA color used by the gradient engine and
// the conversions between sRGB and the spaces gradients are blended in.
package color

import (
	"fmt"
	"math"
)

// Color is a straight (not premultiplied) sRGB color, all channels in [0,1].
type Color struct {
	R, G, B, A float64
}

func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func FromRGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// RGBA8 returns channels scaled to 0..255 and rounded
func (c Color) RGBA8() (uint8, uint8, uint8, uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// Clamp forces every channel into [0,1]
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Hex returns #rrggbb, or #rrggbbaa for translucent colors.
func (c Color) Hex() string {
	r, g, b, a := c.RGBA8()
	if a < 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func (c Color) String() string {
	return c.Hex()
}

// Lerp blends every channel, alpha included.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + t*(o.R-c.R),
		G: c.G + t*(o.G-c.G),
		B: c.B + t*(o.B-c.B),
		A: c.A + t*(o.A-c.A),
	}
}

// Over composites c over an opaque background: out = fg*a + bg*(1-a).
// The result is always opaque.
func (c Color) Over(bg Color) Color {
	if c.A >= 1 {
		return Color{R: c.R, G: c.G, B: c.B, A: 1}
	}
	a := clamp01(c.A)
	return Color{
		R: c.R*a + bg.R*(1-a),
		G: c.G*a + bg.G*(1-a),
		B: c.B*a + bg.B*(1-a),
		A: 1,
	}
}

// Luminance is the WCAG 2.0 relative luminance.
// http://www.w3.org/TR/2008/REC-WCAG20-20081211/#relativeluminancedef
func (c Color) Luminance() float64 {
	lum := func(t float64) float64 {
		if t <= 0.03928 {
			return t / 12.92
		}
		return math.Pow((t+0.055)/1.055, 2.4)
	}
	return 0.2126*lum(c.R) + 0.7152*lum(c.G) + 0.0722*lum(c.B)
}

// normalizeHue maps any hue to [0,360)
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		// -tiny + 360 rounds up
		h = 0
	}
	return h
}
