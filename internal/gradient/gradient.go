// Package gradient turns a list of color stops into a continuous gradient
// that can be sampled at any position of its domain.
package gradient

import (
	"math"

	"github.com/maxb-odessa/gradient/internal/color"
)

// Gradient is immutable once built and safe for concurrent use.
type Gradient struct {
	stops  Stops
	vals   []vec // stop colors in the blend space
	mode   BlendMode
	interp Interpolation
	dmin   float64
	dmax   float64
}

// New builds a gradient over [dmin, dmax]. Stop positions outside the
// domain are clamped into it; NaN positions are an InvalidDomainError.
func New(stops []Stop, mode BlendMode, interp Interpolation, dmin, dmax float64) (*Gradient, error) {

	if !(dmin < dmax) || math.IsInf(dmin, 0) || math.IsInf(dmax, 0) {
		return nil, &InvalidDomainError{Min: dmin, Max: dmax}
	}

	sorted, err := NewStops(stops)
	if err != nil {
		return nil, err
	}

	// clamping keeps the order, the positions were sorted as given
	for i := range sorted {
		sorted[i].Pos = clamp(sorted[i].Pos, dmin, dmax)
	}

	g := &Gradient{
		stops:  sorted,
		mode:   mode,
		interp: interp,
		dmin:   dmin,
		dmax:   dmax,
	}
	g.vals = stopValues(sorted, mode)

	return g, nil
}

func (g *Gradient) Domain() (float64, float64) {
	return g.dmin, g.dmax
}

func (g *Gradient) Mode() BlendMode {
	return g.mode
}

func (g *Gradient) Interpolation() Interpolation {
	return g.interp
}

// Stops returns a copy of the sorted stops
func (g *Gradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

// At returns the sRGB color at t. t is clamped into the domain, positions
// before the first or after the last stop take that stop's color.
func (g *Gradient) At(t float64) color.Color {
	t = clamp(t, g.dmin, g.dmax)

	n := len(g.stops)
	first, last := g.stops.First(), g.stops.Last()

	if n == 1 || t < first.Pos {
		return first.Color
	}
	if t > last.Pos {
		return last.Color
	}

	i := g.stops.Index(t)
	f := 0.0

	if i == n-1 {
		// exactly on the last stop
		if g.interp != InterpBasis {
			return last.Color
		}
		i, f = n-2, 1
	} else if p0, p1 := g.stops[i].Pos, g.stops[i+1].Pos; p1 > p0 {
		f = (t - p0) / (p1 - p0)
	}

	cp := controlPoints(g.vals, i)
	v := cp.eval(g.interp, f)

	// alpha is not color: always linear over the segment
	alpha := linear(f, g.stops[i].Color.A, g.stops[i+1].Color.A)

	return fromSpace(v, alpha, g.mode)
}
