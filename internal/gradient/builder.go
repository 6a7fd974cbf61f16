package gradient

import (
	"fmt"
	"math"

	"github.com/maxb-odessa/gradient/internal/color"
)

// Builder assembles a gradient from colors and optional positions, the way
// the command line specifies custom gradients.
//
//	no positions:                colors evenly spread over [0,1]
//	two positions, N>2 colors:   the domain, colors evenly spread over it
//	one position per color:      explicit non decreasing stops, domain = [first,last]
type Builder struct {
	colors    []color.Color
	positions []float64
	mode      BlendMode
	interp    Interpolation
}

func NewBuilder() *Builder {
	return &Builder{
		mode:   DefaultBlendMode,
		interp: DefaultInterpolation,
	}
}

func (b *Builder) Colors(colors ...color.Color) *Builder {
	b.colors = append(b.colors, colors...)
	return b
}

func (b *Builder) Positions(positions ...float64) *Builder {
	b.positions = append(b.positions, positions...)
	return b
}

func (b *Builder) Mode(mode BlendMode) *Builder {
	b.mode = mode
	return b
}

func (b *Builder) Interpolation(interp Interpolation) *Builder {
	b.interp = interp
	return b
}

func (b *Builder) Build() (*Gradient, error) {
	n := len(b.colors)
	if n == 0 {
		return nil, ErrEmptyStops
	}

	dmin, dmax := 0.0, 1.0
	stops := make([]Stop, n)

	switch {
	case len(b.positions) == 0 || (len(b.positions) == 2 && n != 2):
		if len(b.positions) == 2 {
			dmin, dmax = b.positions[0], b.positions[1]
		}
		if !(dmin < dmax) {
			return nil, &InvalidDomainError{Min: dmin, Max: dmax}
		}
		for i, c := range b.colors {
			pos := dmin
			if n > 1 {
				pos = dmin + float64(i)*(dmax-dmin)/float64(n-1)
			}
			stops[i] = Stop{Pos: pos, Color: c}
		}

	case len(b.positions) == n:
		for i, c := range b.colors {
			p := b.positions[i]
			if math.IsNaN(p) || (i > 0 && p < b.positions[i-1]) {
				return nil, &InvalidDomainError{
					Reason: fmt.Sprintf("position %g of color %d is out of order", p, i+1),
				}
			}
			stops[i] = Stop{Pos: p, Color: c}
		}
		if n == 1 {
			// a lone stop still needs a non empty domain
			break
		}
		dmin, dmax = b.positions[0], b.positions[n-1]
		if !(dmin < dmax) {
			return nil, &InvalidDomainError{Min: dmin, Max: dmax}
		}

	default:
		return nil, &InvalidDomainError{
			Reason: fmt.Sprintf("%d positions for %d colors, expected 2 or %d", len(b.positions), n, n),
		}
	}

	return New(stops, b.mode, b.interp, dmin, dmax)
}
