// Package csscolor parses CSS color strings: hex, named colors and the
// rgb(), hsl(), hsv() and hwb() functional notations.
package csscolor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/maxb-odessa/gradient/internal/color"
)

// InvalidColorError is returned for any string that is not a color.
type InvalidColorError struct {
	Input  string
	Reason string
}

func (e *InvalidColorError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid color '%s': %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid color '%s'", e.Input)
}

// CSS4 names missing from the SVG 1.1 table
var extraNames = map[string]color.Color{
	"rebeccapurple": color.FromRGBA8(102, 51, 153, 255),
	"transparent":   color.RGBA(0, 0, 0, 0),
}

// Names returns every known color name, sorted.
func Names() []string {
	all := make([]string, 0, len(colornames.Names)+len(extraNames))
	all = append(all, colornames.Names...)
	for n := range extraNames {
		all = append(all, n)
	}
	sort.Strings(all)
	return all
}

// Named looks a color name up.
func Named(name string) (color.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := extraNames[name]; ok {
		return c, true
	}
	if c, ok := colornames.Map[name]; ok {
		return color.FromRGBA8(c.R, c.G, c.B, c.A), true
	}
	return color.Color{}, false
}

// Parse converts a CSS color string to a Color. Hex colors may omit the
// leading '#'.
func Parse(s string) (color.Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return color.Color{}, &InvalidColorError{Input: s, Reason: "empty"}
	}

	if c, ok := Named(in); ok {
		return c, nil
	}

	if strings.HasPrefix(in, "#") {
		return parseHex(s, in[1:])
	}

	if open := strings.IndexByte(in, '('); open > 0 {
		if !strings.HasSuffix(in, ")") {
			return color.Color{}, &InvalidColorError{Input: s, Reason: "missing ')'"}
		}
		return parseFunc(s, in[:open], in[open+1:len(in)-1])
	}

	if c, err := parseHex(s, in); err == nil {
		return c, nil
	}

	return color.Color{}, &InvalidColorError{Input: s}
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) color.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(orig, h string) (color.Color, error) {
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return color.Color{}, &InvalidColorError{Input: orig, Reason: "hex color needs 3, 4, 6 or 8 digits"}
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.Color{}, &InvalidColorError{Input: orig, Reason: "bad hex digit"}
	}

	// short forms repeat every digit: f -> ff
	nib := func(shift uint) uint8 {
		return uint8((v >> shift) & 0xf * 0x11)
	}

	switch len(h) {
	case 3:
		return color.FromRGBA8(nib(8), nib(4), nib(0), 255), nil
	case 4:
		return color.FromRGBA8(nib(12), nib(8), nib(4), nib(0)), nil
	case 6:
		return color.FromRGBA8(uint8(v>>16), uint8(v>>8), uint8(v), 255), nil
	}
	return color.FromRGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// splitArgs accepts "a, b, c", "a b c" and "a b c / alpha"
func splitArgs(body string) []string {
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	return strings.Fields(body)
}

func parseFunc(orig, name, body string) (color.Color, error) {
	args := splitArgs(body)
	if len(args) != 3 && len(args) != 4 {
		return color.Color{}, &InvalidColorError{Input: orig, Reason: fmt.Sprintf("%s() takes 3 or 4 arguments", name)}
	}

	alpha := 1.0
	if len(args) == 4 {
		a, ok := percentOrFloat(args[3])
		if !ok {
			return color.Color{}, &InvalidColorError{Input: orig, Reason: "bad alpha"}
		}
		alpha = clamp01(a)
	}

	bad := func(what string) (color.Color, error) {
		return color.Color{}, &InvalidColorError{Input: orig, Reason: "bad " + what}
	}

	switch name {
	case "rgb", "rgba":
		var ch [3]float64
		for i := 0; i < 3; i++ {
			v, ok := channel255(args[i])
			if !ok {
				return bad("channel")
			}
			ch[i] = v
		}
		return color.RGBA(ch[0], ch[1], ch[2], alpha), nil

	case "hsl", "hsla", "hsv", "hsva", "hwb", "hwba":
		h, ok := hue(args[0])
		if !ok {
			return bad("hue")
		}
		x, ok1 := percentOrFloat(args[1])
		y, ok2 := percentOrFloat(args[2])
		if !ok1 || !ok2 {
			return bad("channel")
		}
		x, y = clamp01(x), clamp01(y)

		var c color.Color
		switch name[:3] {
		case "hsl":
			c = color.HSL{H: h, S: x, L: y, A: alpha}.Color()
		case "hsv":
			c = color.HSV{H: h, S: x, V: y, A: alpha}.Color()
		default:
			c = color.HWB{H: h, W: x, B: y, A: alpha}.Color()
		}
		return c.Clamp(), nil
	}

	return color.Color{}, &InvalidColorError{Input: orig, Reason: "unknown function " + name + "()"}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// "50%" -> 0.5, "0.5" -> 0.5
func percentOrFloat(s string) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		return v / 100, err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// "128" -> 128/255, "50%" -> 0.5
func channel255(s string) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		return clamp01(v / 100), err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return clamp01(v / 255), err == nil
}

func hue(s string) (float64, bool) {
	units := []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 360.0 / 400},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	}
	for _, u := range units {
		if p, ok := strings.CutSuffix(s, u.suffix); ok {
			v, err := strconv.ParseFloat(p, 64)
			return v * u.scale, err == nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
