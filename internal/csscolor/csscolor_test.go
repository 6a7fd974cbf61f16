package csscolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#f05", "#ff0055"},
		{"#F05A", "#ff0055aa"},
		{"#ff00ff", "#ff00ff"},
		{"ff00ff", "#ff00ff"},
		{"#11223344", "#11223344"},
		{"deeppink", "#ff1493"},
		{"  Gold ", "#ffd700"},
		{"rebeccapurple", "#663399"},
		{"transparent", "#00000000"},
		{"rgb(0, 255, 90)", "#00ff5a"},
		{"rgb(50,200,70)", "#32c846"},
		{"rgba(255,0,0,0.5)", "#ff000080"},
		{"rgb(100% 0% 0% / 50%)", "#ff000080"},
		{"hsl(0, 100%, 50%)", "#ff0000"},
		{"hsl(120deg 100% 25%)", "#008000"},
		{"hsl(0.5turn, 1, 0.5)", "#00ffff"},
		{"hsv(240,100%,100%)", "#0000ff"},
		{"hwb(195,0,0.5)", "#006080"},
		{"hwb(0, 60%, 60%)", "#808080"},
	}

	for _, tt := range tests {
		c, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c.Hex(), tt.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"#ff",
		"#12345",
		"#gggggg",
		"notacolor",
		"rgb(1,2)",
		"rgb(1,2,3",
		"rgb(a,b,c)",
		"hsl(red,1,1)",
		"lab(50,0,0)",
		"rgb(1,2,3,4,5)",
	} {
		_, err := Parse(in)
		var colErr *InvalidColorError
		require.ErrorAs(t, err, &colErr, "%q", in)
		assert.Equal(t, in, colErr.Input)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "aliceblue")
	assert.Contains(t, names, "rebeccapurple")
	assert.IsIncreasing(t, names)

	for _, n := range names {
		_, ok := Named(n)
		assert.True(t, ok, n)
	}
}

func positions(stops []gradient.Stop) []float64 {
	out := make([]float64, len(stops))
	for i, s := range stops {
		out[i] = s.Pos
	}
	return out
}

func TestParseGradient(t *testing.T) {
	stops, err := ParseGradient("#f05, rgb(0, 255, 90)")
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, []float64{0, 1}, positions(stops))
	assert.Equal(t, "#ff0055", stops[0].Color.Hex())
	assert.Equal(t, "#00ff5a", stops[1].Color.Hex())

	stops, err = ParseGradient("red, 30% gold, blue")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.3, 1}, positions(stops))

	stops, err = ParseGradient("red, gold, lime, blue 0.9")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.3, 0.6, 0.9}, positions(stops), 1e-12)

	// two positions make a flat band
	stops, err = ParseGradient("red, gold 40% 60%, blue")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.4, 0.6, 1}, positions(stops))
	assert.Equal(t, stops[1].Color, stops[2].Color)

	// positions never go backwards
	stops, err = ParseGradient("red 50%, lime 20%, blue")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 1}, positions(stops))

	stops, err = ParseGradient("blue")
	require.NoError(t, err)
	assert.Equal(t, []gradient.Stop{{Pos: 0, Color: color.RGB(0, 0, 1)}}, stops)
}

func TestParseGradient_Errors(t *testing.T) {
	_, err := ParseGradient("  ")
	assert.ErrorIs(t, err, gradient.ErrEmptyStops)

	var colErr *InvalidColorError
	for _, in := range []string{"red, 50%", "red blue", "red 1 2 3", "red, nope",
		// non finite numbers are no positions
		"blue 80%, lime nan, red 20%", "red inf", "red NaN%", "red -Inf",
	} {
		_, err = ParseGradient(in)
		assert.ErrorAs(t, err, &colErr, in)
	}
}
