// Package format renders colors as text.
package format

import (
	"fmt"
	"strings"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

type Format int

const (
	Hex Format = iota
	RGB
	RGB255
	HSL
	HSV
	HWB
)

var names = []string{"hex", "rgb", "rgb255", "hsl", "hsv", "hwb"}

func Names() []string {
	return append([]string(nil), names...)
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(names) {
		return "unknown"
	}
	return names[f]
}

// Parse maps an output format keyword to a Format.
func Parse(s string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if key == n {
			return Format(i), nil
		}
	}
	return Hex, &gradient.UnsupportedModeError{Kind: "format", Value: s, Valid: names}
}

// percent alpha, empty when it would print as 100%
func alphaPercent(a float64) string {
	s := fmt.Sprintf(",%.2f%%", a*100)
	if strings.HasPrefix(s, ",100") {
		return ""
	}
	return s
}

func alphaFloat(a float64) string {
	s := fmt.Sprintf(",%.3f", a)
	if s == ",1.000" {
		return ""
	}
	return s
}

// Color renders c in format f. Never fails.
func (f Format) Color(c color.Color) string {
	c = c.Clamp()

	switch f {
	case RGB:
		return fmt.Sprintf("rgb(%.3f,%.3f,%.3f%s)", c.R, c.G, c.B, alphaFloat(c.A))

	case RGB255:
		r, g, b, _ := c.RGBA8()
		return fmt.Sprintf("rgb(%d,%d,%d%s)", r, g, b, alphaPercent(c.A))

	case HSL:
		v := c.HSL()
		return fmt.Sprintf("hsl(%.2f,%.2f%%,%.2f%%%s)", v.H, v.S*100, v.L*100, alphaPercent(c.A))

	case HSV:
		v := c.HSV()
		return fmt.Sprintf("hsv(%.2f,%.2f%%,%.2f%%%s)", v.H, v.S*100, v.V*100, alphaPercent(c.A))

	case HWB:
		v := c.HWB()
		return fmt.Sprintf("hwb(%.2f,%.2f%%,%.2f%%%s)", v.H, v.W*100, v.B*100, alphaPercent(c.A))
	}

	return c.Hex()
}

// Colors formats every color.
func (f Format) Colors(colors []color.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = f.Color(c)
	}
	return out
}

// Array renders strings as ["a", "b"].
func Array(items []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('"')
		sb.WriteString(s)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return sb.String()
}
