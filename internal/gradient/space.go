package gradient

import (
	"math"

	"github.com/maxb-odessa/gradient/internal/color"
)

// vec holds the three color components of a stop in the blend space
type vec [3]float64

func toSpace(c color.Color, mode BlendMode) vec {
	switch mode {
	case BlendLinearRGB:
		l := c.LinearRGB()
		return vec{l.R, l.G, l.B}
	case BlendHSV:
		h := c.HSV()
		return vec{h.H, h.S, h.V}
	case BlendOklab:
		l := c.Oklab()
		return vec{l.L, l.A, l.B}
	default:
		return vec{c.R, c.G, c.B}
	}
}

func fromSpace(v vec, alpha float64, mode BlendMode) color.Color {
	var c color.Color
	switch mode {
	case BlendLinearRGB:
		c = color.LinearRGB{R: v[0], G: v[1], B: v[2], A: alpha}.Color()
	case BlendHSV:
		c = color.HSV{H: v[0], S: clamp(v[1], 0, 1), V: clamp(v[2], 0, 1), A: alpha}.Color()
	case BlendOklab:
		c = color.Oklab{L: v[0], A: v[1], B: v[2], Alpha: alpha}.Color()
	default:
		c = color.Color{R: v[0], G: v[1], B: v[2], A: alpha}
	}
	return c.Clamp()
}

// convert all stops at once; HSV hues are made continuous so that splines
// take the short way around the wheel
func stopValues(stops Stops, mode BlendMode) []vec {
	vals := make([]vec, len(stops))
	for i, s := range stops {
		vals[i] = toSpace(s.Color, mode)
	}

	if mode == BlendHSV {
		fixAchromaticHues(vals)
		for i := 1; i < len(vals); i++ {
			for vals[i][0]-vals[i-1][0] > 180 {
				vals[i][0] -= 360
			}
			for vals[i][0]-vals[i-1][0] < -180 {
				vals[i][0] += 360
			}
		}
	}

	return vals
}

// grays have no hue: borrow the nearest chromatic neighbour's one
func fixAchromaticHues(vals []vec) {
	chromatic := func(v vec) bool {
		return v[1] > 0 && v[2] > 0
	}

	for i := range vals {
		if chromatic(vals[i]) {
			continue
		}
		for d := 1; d < len(vals); d++ {
			if j := i - d; j >= 0 && chromatic(vals[j]) {
				vals[i][0] = vals[j][0]
				break
			}
			if j := i + d; j < len(vals) && chromatic(vals[j]) {
				vals[i][0] = vals[j][0]
				break
			}
		}
	}
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
