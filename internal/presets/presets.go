// Package presets holds the built in gradients: ColorBrewer schemes, the
// matplotlib perceptual maps and a few formula based ones.
package presets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danwakefield/fnmatch"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/csscolor"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

var ErrUnknownPreset = errors.New("unknown preset gradient")

// formula presets are sampled on this many intervals; t = i/100 lands
// exactly on a stop
const formulaSteps = 100

// Preset is a named, ready to sample gradient.
type Preset struct {
	Name     string
	Gradient *gradient.Gradient
}

var (
	registry = map[string]*Preset{}
	names    []string
)

func register(name string, stops []gradient.Stop, mode gradient.BlendMode, interp gradient.Interpolation) {
	g, err := gradient.New(stops, mode, interp, 0, 1)
	if err != nil {
		panic(fmt.Sprintf("preset %s: %v", name, err))
	}
	registry[name] = &Preset{Name: name, Gradient: g}
	names = append(names, name)
}

func spread(colors []color.Color) []gradient.Stop {
	stops := make([]gradient.Stop, len(colors))
	for i, c := range colors {
		stops[i] = gradient.Stop{Pos: float64(i) / float64(len(colors)-1), Color: c}
	}
	return stops
}

func sampled(f func(float64) color.Color) []gradient.Stop {
	stops := make([]gradient.Stop, formulaSteps+1)
	for i := range stops {
		t := float64(i) / formulaSteps
		stops[i] = gradient.Stop{Pos: t, Color: f(t)}
	}
	return stops
}

func keypoints(rgb [][3]uint8) []gradient.Stop {
	colors := make([]color.Color, len(rgb))
	for i, c := range rgb {
		colors[i] = color.FromRGBA8(c[0], c[1], c[2], 255)
	}
	return spread(colors)
}

func init() {
	for name, hex := range brewer {
		colors := make([]color.Color, len(hex))
		for i, h := range hex {
			colors[i] = csscolor.MustParse("#" + h)
		}
		register(name, spread(colors), gradient.BlendRGB, gradient.InterpBasis)
	}

	register("viridis", keypoints(viridis), gradient.BlendRGB, gradient.InterpCatmullRom)
	register("plasma", keypoints(plasma), gradient.BlendRGB, gradient.InterpCatmullRom)
	register("inferno", keypoints(inferno), gradient.BlendRGB, gradient.InterpCatmullRom)
	register("magma", keypoints(magma), gradient.BlendRGB, gradient.InterpCatmullRom)

	for name, f := range map[string]func(float64) color.Color{
		"rainbow":   rainbow,
		"sinebow":   sinebow,
		"cubehelix": cubehelixDefault,
		"warm":      warm,
		"cool":      cool,
		"turbo":     turbo,
		"cividis":   cividis,
	} {
		register(name, sampled(f), gradient.BlendRGB, gradient.InterpCatmullRom)
	}

	sort.Strings(names)
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Lookup finds a preset by name, case insensitive, '_' or '-'.
func Lookup(name string) (*Preset, error) {
	p, ok := registry[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownPreset, name)
	}
	return p, nil
}

// Get is Lookup returning just the gradient.
func Get(name string) (*gradient.Gradient, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Gradient, nil
}

// Names returns all preset names, sorted.
func Names() []string {
	return append([]string(nil), names...)
}

// Match returns the sorted names matching a shell glob. An empty pattern
// matches everything.
func Match(pattern string) []string {
	if pattern == "" {
		return Names()
	}

	var out []string
	for _, n := range names {
		if fnmatch.Match(pattern, n, fnmatch.FNM_CASEFOLD) {
			out = append(out, n)
		}
	}
	return out
}
