package ggr

import (
	"math"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

const (
	epsilon = 1e-10

	// samples per segment for the non linear blend functions
	curveSamples = 16
)

func (s *Segment) endpoint(t EndpointType, fixed, fg, bg color.Color) color.Color {
	switch t {
	case EndpointForeground:
		return fg
	case EndpointForegroundTransparent:
		fg.A = 0
		return fg
	case EndpointBackground:
		return bg
	case EndpointBackgroundTransparent:
		bg.A = 0
		return bg
	}
	return fixed
}

func linearFactor(middle, pos float64) float64 {
	if pos <= middle {
		if middle < epsilon {
			return 0
		}
		return 0.5 * pos / middle
	}
	pos -= middle
	middle = 1 - middle
	if middle < epsilon {
		return 1
	}
	return 0.5 + 0.5*pos/middle
}

// factor maps a position inside the segment, 0..1, to a blend factor.
func (s *Segment) factor(pos float64) float64 {
	width := s.Right - s.Left
	middle := 0.5
	if width > epsilon {
		middle = (s.Middle - s.Left) / width
	}

	switch s.Blend {
	case BlendCurved:
		if middle < epsilon {
			middle = epsilon
		}
		return math.Pow(pos, math.Log(0.5)/math.Log(middle))
	case BlendSine:
		return (math.Sin(-math.Pi/2+math.Pi*linearFactor(middle, pos)) + 1) / 2
	case BlendSphereIncreasing:
		f := linearFactor(middle, pos) - 1
		return math.Sqrt(1 - f*f)
	case BlendSphereDecreasing:
		f := linearFactor(middle, pos)
		return 1 - math.Sqrt(1-f*f)
	case BlendStep:
		if pos >= middle {
			return 1
		}
		return 0
	}
	return linearFactor(middle, pos)
}

// blend mixes the endpoint colors; hues are in degrees
func (s *Segment) blend(lc, rc color.Color, f float64) color.Color {
	if s.Coloring == ColorRGB {
		return lc.Lerp(rc, f)
	}

	lh, rh := lc.HSV(), rc.HSV()
	var h float64

	if s.Coloring == ColorHSVCCW {
		if lh.H < rh.H {
			h = lh.H + (rh.H-lh.H)*f
		} else {
			h = lh.H + (360-(lh.H-rh.H))*f
		}
	} else {
		if rh.H < lh.H {
			h = lh.H - (lh.H-rh.H)*f
		} else {
			h = lh.H - (360-(rh.H-lh.H))*f
		}
	}

	return color.HSV{
		H: h,
		S: lh.S + (rh.S-lh.S)*f,
		V: lh.V + (rh.V-lh.V)*f,
		A: lc.A + (rc.A-lc.A)*f,
	}.Color().Clamp()
}

// segmentStops lists the stops that reproduce one segment under linear
// RGB interpolation.
func (s *Segment) segmentStops(fg, bg color.Color) []gradient.Stop {
	lc := s.endpoint(s.LeftType, s.LeftColor, fg, bg)
	rc := s.endpoint(s.RightType, s.RightColor, fg, bg)
	width := s.Right - s.Left

	at := func(pos float64) gradient.Stop {
		return gradient.Stop{Pos: s.Left + pos*width, Color: s.blend(lc, rc, s.factor(pos))}
	}

	if s.Blend == BlendStep {
		return []gradient.Stop{
			{Pos: s.Left, Color: lc},
			{Pos: s.Middle, Color: lc},
			{Pos: s.Middle, Color: rc},
			{Pos: s.Right, Color: rc},
		}
	}

	if s.Blend == BlendLinear && s.Coloring == ColorRGB {
		// piecewise linear around the middle point
		return []gradient.Stop{
			{Pos: s.Left, Color: lc},
			{Pos: s.Middle, Color: lc.Lerp(rc, 0.5)},
			{Pos: s.Right, Color: rc},
		}
	}

	stops := make([]gradient.Stop, 0, curveSamples+1)
	for i := 0; i <= curveSamples; i++ {
		stops = append(stops, at(float64(i)/curveSamples))
	}
	return stops
}

// Stops converts every segment; fg and bg fill the foreground and
// background endpoint types.
func (g *Gradient) Stops(fg, bg color.Color) []gradient.Stop {
	var stops []gradient.Stop
	for i := range g.Segments {
		stops = append(stops, g.Segments[i].segmentStops(fg, bg)...)
	}
	return stops
}

// Build makes an RGB linear gradient over the segments' span.
func (g *Gradient) Build(fg, bg color.Color) (*gradient.Gradient, error) {
	stops := g.Stops(fg, bg)
	if len(stops) == 0 {
		return nil, gradient.ErrEmptyStops
	}

	dmin, dmax := stops[0].Pos, stops[len(stops)-1].Pos
	if !(dmin < dmax) {
		dmin, dmax = 0, 1
	}
	return gradient.New(stops, gradient.BlendRGB, gradient.InterpLinear, dmin, dmax)
}
