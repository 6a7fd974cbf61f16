package gradient

import (
	"github.com/maxb-odessa/gradient/internal/color"
)

// Colors returns n evenly spaced colors, both domain ends included.
// A single color is taken from the middle of the domain.
func (g *Gradient) Colors(n int) []color.Color {
	if n <= 0 {
		return []color.Color{}
	}

	if n == 1 {
		return []color.Color{g.At((g.dmin + g.dmax) / 2)}
	}

	colors := make([]color.Color, n)
	step := (g.dmax - g.dmin) / float64(n-1)
	for i := range colors {
		colors[i] = g.At(g.dmin + float64(i)*step)
	}

	return colors
}

// SampleMany is At for every position, order preserved.
func (g *Gradient) SampleMany(positions []float64) []color.Color {
	colors := make([]color.Color, len(positions))
	for i, t := range positions {
		colors[i] = g.At(t)
	}
	return colors
}

// Sharp returns a stepped copy of g with the given number of flat
// segments, each colored like g at the matching Colors() position.
func (g *Gradient) Sharp(segments int) *Gradient {
	if segments < 1 {
		segments = 1
	}

	colors := g.Colors(segments)
	width := (g.dmax - g.dmin) / float64(segments)
	stops := make([]Stop, 0, segments*2)

	for i, c := range colors {
		stops = append(stops,
			Stop{Pos: g.dmin + float64(i)*width, Color: c},
			Stop{Pos: g.dmin + float64(i+1)*width, Color: c},
		)
	}

	// stops and domain are valid by construction
	sharp, _ := New(stops, BlendRGB, InterpLinear, g.dmin, g.dmax)
	return sharp
}
