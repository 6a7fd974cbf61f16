package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

func TestFormat_Color(t *testing.T) {
	red := color.RGB(1, 0, 0)
	halfRed := color.RGBA(1, 0, 0, 0.5)

	tests := []struct {
		format Format
		in     color.Color
		want   string
	}{
		{Hex, red, "#ff0000"},
		{Hex, halfRed, "#ff000080"},
		{RGB, red, "rgb(1.000,0.000,0.000)"},
		{RGB, halfRed, "rgb(1.000,0.000,0.000,0.500)"},
		{RGB255, red, "rgb(255,0,0)"},
		{RGB255, halfRed, "rgb(255,0,0,50.00%)"},
		{RGB255, color.RGBA(1, 0, 0, 0.99999), "rgb(255,0,0)"},
		{HSL, red, "hsl(0.00,100.00%,50.00%)"},
		{HSV, color.RGB(0, 0, 1), "hsv(240.00,100.00%,100.00%)"},
		{HWB, color.RGB(0.5, 0.5, 0.5), "hwb(0.00,50.00%,50.00%)"},
		{HWB, color.RGBA(0.5, 0.5, 0.5, 0.25), "hwb(0.00,50.00%,50.00%,25.00%)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.Color(tt.in), "%v %v", tt.format, tt.in)
	}
}

func TestFormat_OutOfRangeIsClamped(t *testing.T) {
	assert.Equal(t, "rgb(255,0,0)", RGB255.Color(color.RGBA(1.5, -0.2, 0, 2)))
}

func TestParse(t *testing.T) {
	for i, n := range Names() {
		f, err := Parse(n)
		require.NoError(t, err)
		assert.Equal(t, Format(i), f)
		assert.Equal(t, n, f.String())
	}

	f, err := Parse(" RGB255 ")
	require.NoError(t, err)
	assert.Equal(t, RGB255, f)

	_, err = Parse("cmyk")
	var modeErr *gradient.UnsupportedModeError
	require.ErrorAs(t, err, &modeErr)
	assert.Equal(t, "format", modeErr.Kind)
	assert.Equal(t, "cmyk", modeErr.Value)
}

func TestArray(t *testing.T) {
	assert.Equal(t, "[]", Array(nil))
	assert.Equal(t, `["#ff0055", "#00ff5a"]`, Array([]string{"#ff0055", "#00ff5a"}))

	colors := Hex.Colors([]color.Color{color.RGB(1, 0, 0), color.RGB(0, 1, 0)})
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, colors)
}
