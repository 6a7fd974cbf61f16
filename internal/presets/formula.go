package presets

import (
	"math"

	"github.com/maxb-odessa/gradient/internal/color"
)

// Keypoints of the matplotlib perceptual maps.
var (
	viridis = [][3]uint8{
		{68, 1, 84}, {72, 35, 116}, {64, 67, 135}, {52, 94, 141},
		{41, 120, 142}, {32, 144, 140}, {34, 167, 132}, {68, 190, 112},
		{121, 209, 81}, {189, 222, 38}, {253, 231, 37},
	}
	plasma = [][3]uint8{
		{13, 8, 135}, {75, 3, 161}, {125, 3, 168}, {168, 34, 150},
		{203, 70, 121}, {229, 107, 93}, {248, 148, 65}, {253, 195, 40},
		{240, 249, 33},
	}
	inferno = [][3]uint8{
		{0, 0, 4}, {40, 11, 84}, {101, 21, 110}, {159, 42, 99},
		{212, 72, 66}, {245, 125, 21}, {250, 193, 39}, {252, 255, 164},
	}
	magma = [][3]uint8{
		{0, 0, 4}, {28, 16, 68}, {79, 18, 123}, {129, 37, 129},
		{181, 54, 122}, {229, 80, 100}, {251, 135, 97}, {254, 194, 135},
		{252, 253, 191},
	}
)

// cubehelix maps Green's cubehelix coordinates to sRGB. h in degrees.
func cubehelix(h, s, l float64) color.Color {
	const (
		a = -0.14861
		b = +1.78277
		c = -0.29227
		d = -0.90649
		e = +1.97294
	)

	h = (h + 120) * math.Pi / 180
	amp := s * l * (1 - l)
	cosh, sinh := math.Cos(h), math.Sin(h)

	return color.RGB(
		l+amp*(a*cosh+b*sinh),
		l+amp*(c*cosh+d*sinh),
		l+amp*(e*cosh),
	).Clamp()
}

func rainbow(t float64) color.Color {
	ts := math.Abs(t - 0.5)
	return cubehelix(360*t-100, 1.5-1.5*ts, 0.8-0.9*ts)
}

func warm(t float64) color.Color {
	return cubehelix(-100+180*t, 0.75+0.75*t, 0.35+0.45*t)
}

func cool(t float64) color.Color {
	return cubehelix(260-180*t, 0.75+0.75*t, 0.35+0.45*t)
}

func cubehelixDefault(t float64) color.Color {
	return cubehelix(300-540*t, 0.5, t)
}

func sinebow(t float64) color.Color {
	t = 0.5 - t
	ch := func(off float64) float64 {
		x := math.Sin(math.Pi * (t + off))
		return x * x
	}
	return color.RGB(ch(0), ch(1.0/3), ch(2.0/3))
}

// polynomial fits, channels in 0..255
func from255(r, g, b float64) color.Color {
	ch := func(v float64) float64 {
		return math.Max(0, math.Min(255, math.Round(v))) / 255
	}
	return color.RGB(ch(r), ch(g), ch(b))
}

func turbo(t float64) color.Color {
	return from255(
		34.61+t*(1172.33-t*(10793.56-t*(33300.12-t*(38394.49-t*14825.05)))),
		23.31+t*(557.33+t*(1225.33-t*(3574.96-t*(1073.77+t*707.56)))),
		27.2+t*(3211.1-t*(15327.97-t*(27814-t*(22569.18-t*6838.66)))),
	)
}

func cividis(t float64) color.Color {
	return from255(
		-4.54-t*(35.34-t*(2381.73-t*(6402.7-t*(7024.72-t*2710.57)))),
		32.49+t*(170.73+t*(52.82-t*(131.46-t*(176.58-t*67.37)))),
		81.24+t*(442.36-t*(2482.43-t*(6167.24-t*(6614.94-t*2475.67)))),
	)
}
