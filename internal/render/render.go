// Package render turns sampled gradient colors into a grid of opaque cell
// colors, compositing translucent colors over a background.
package render

import (
	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

// Background supplies the opaque color behind cell (x, y).
type Background interface {
	At(x, y int) color.Color
}

// Solid is a single color background.
type Solid color.Color

func (s Solid) At(int, int) color.Color {
	c := color.Color(s)
	c.A = 1
	return c
}

// Checkerboard alternates two tones in blocks of BlockW columns by BlockH
// rows, independent of the gradient resolution.
type Checkerboard struct {
	Colors [2]color.Color
	BlockW int
	BlockH int
}

// DefaultCheckerboard: terminal cells are about twice as tall as wide, so
// 2x1 blocks look square.
func DefaultCheckerboard() Checkerboard {
	return Checkerboard{
		Colors: [2]color.Color{color.RGB(0.20, 0.20, 0.20), color.RGB(0.05, 0.05, 0.05)},
		BlockW: 2,
		BlockH: 1,
	}
}

func (cb Checkerboard) At(x, y int) color.Color {
	bw, bh := cb.BlockW, cb.BlockH
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}
	c := cb.Colors[((x/bw)+(y/bh))&1]
	c.A = 1
	return c
}

// Grid repeats one row of colors over rows lines and composites every cell
// over bg. Fully opaque colors are passed through untouched.
func Grid(colors []color.Color, rows int, bg Background) [][]color.Color {
	if rows < 0 {
		rows = 0
	}

	grid := make([][]color.Color, rows)
	for y := range grid {
		line := make([]color.Color, len(colors))
		for x, c := range colors {
			if c.A >= 1 {
				line[x] = c
			} else {
				line[x] = c.Over(bg.At(x, y))
			}
		}
		grid[y] = line
	}

	return grid
}

// Columns samples one color per column: column x maps to
// dmin + x*(dmax-dmin)/width.
func Columns(g *gradient.Gradient, width int) []color.Color {
	if width <= 0 {
		return []color.Color{}
	}

	dmin, dmax := g.Domain()
	positions := make([]float64, width)
	for x := range positions {
		positions[x] = dmin + float64(x)*(dmax-dmin)/float64(width)
	}

	return g.SampleMany(positions)
}

// Swatch renders a width x height preview of g.
func Swatch(g *gradient.Gradient, width, height int, bg Background) [][]color.Color {
	return Grid(Columns(g, width), height, bg)
}
