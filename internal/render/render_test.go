package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

func TestGrid_OpaqueUnchanged(t *testing.T) {
	fg := color.RGB(0.9, 0.2, 0.4)
	for _, bg := range []Background{Solid(color.RGB(0, 1, 0)), DefaultCheckerboard()} {
		grid := Grid([]color.Color{fg, fg, fg}, 3, bg)
		require.Len(t, grid, 3)
		for _, row := range grid {
			for _, c := range row {
				assert.Equal(t, fg, c)
			}
		}
	}
}

func TestGrid_TransparentIsBackground(t *testing.T) {
	fg := color.RGBA(0.9, 0.2, 0.4, 0)

	solid := Solid(color.RGB(0.1, 0.2, 0.3))
	grid := Grid([]color.Color{fg}, 1, solid)
	assert.Equal(t, color.RGB(0.1, 0.2, 0.3), grid[0][0])

	cb := DefaultCheckerboard()
	grid = Grid([]color.Color{fg, fg, fg, fg}, 2, cb)
	for y, row := range grid {
		for x, c := range row {
			assert.Equal(t, cb.At(x, y), c, "cell %d,%d", x, y)
		}
	}
}

func TestCheckerboard_Pattern(t *testing.T) {
	cb := DefaultCheckerboard()
	light, dark := cb.Colors[0], cb.Colors[1]

	// 2x1 blocks
	assert.Equal(t, light, cb.At(0, 0))
	assert.Equal(t, light, cb.At(1, 0))
	assert.Equal(t, dark, cb.At(2, 0))
	assert.Equal(t, dark, cb.At(3, 0))
	assert.Equal(t, dark, cb.At(0, 1))
	assert.Equal(t, light, cb.At(2, 1))

	odd := Checkerboard{Colors: [2]color.Color{color.RGB(1, 1, 1), color.RGB(0, 0, 0)}}
	assert.Equal(t, color.RGB(0, 0, 0), odd.At(1, 0))
}

func TestSwatch_TransparentSingleCell(t *testing.T) {
	g, err := gradient.New([]gradient.Stop{{Pos: 0, Color: color.RGBA(1, 0, 0, 0)}}, gradient.BlendRGB, gradient.InterpLinear, 0, 1)
	require.NoError(t, err)

	cb := DefaultCheckerboard()
	grid := Swatch(g, 1, 1, cb)
	require.Len(t, grid, 1)
	require.Len(t, grid[0], 1)
	assert.Equal(t, cb.Colors[0], grid[0][0])
}

func TestGrid_HalfAlpha(t *testing.T) {
	grid := Grid([]color.Color{color.RGBA(1, 1, 1, 0.5)}, 1, Solid(color.RGB(0, 0, 0)))
	assert.InDelta(t, 0.5, grid[0][0].R, 1e-12)
	assert.Equal(t, 1.0, grid[0][0].A)
}

func TestColumns(t *testing.T) {
	g, err := gradient.New([]gradient.Stop{
		{Pos: 0, Color: color.RGB(0, 0, 0)},
		{Pos: 1, Color: color.RGB(1, 1, 1)},
	}, gradient.BlendRGB, gradient.InterpLinear, 0, 1)
	require.NoError(t, err)

	cols := Columns(g, 4)
	require.Len(t, cols, 4)
	assert.InDelta(t, 0.0, cols[0].R, 1e-12)
	assert.InDelta(t, 0.75, cols[3].R, 1e-12)

	assert.Empty(t, Columns(g, 0))
	assert.Empty(t, Swatch(g, 5, 0, DefaultCheckerboard()))
}
