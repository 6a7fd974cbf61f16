package csscolor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

// ParseGradient reads a CSS gradient stop list such as
// "red, gold 30%, 60% seagreen 80%, blue". A stop has a color and up to two
// positions (percent or plain number) in either order. Missing positions
// are spread evenly between their known neighbours; the first defaults to
// 0 and the last to 1. A position smaller than an earlier one is raised to
// it.
func ParseGradient(css string) ([]gradient.Stop, error) {
	items := splitTopLevel(css, ',')
	if len(items) == 0 || (len(items) == 1 && strings.TrimSpace(items[0]) == "") {
		return nil, gradient.ErrEmptyStops
	}

	type entry struct {
		color color.Color
		pos   float64
		set   bool
	}
	var entries []entry

	for _, item := range items {
		var (
			col       color.Color
			hasColor  bool
			positions []float64
		)

		for _, tok := range splitTopLevel(strings.TrimSpace(item), ' ') {
			if tok == "" {
				continue
			}
			if p, ok := position(tok); ok {
				positions = append(positions, p)
				continue
			}
			if hasColor {
				return nil, &InvalidColorError{Input: item, Reason: "more than one color in a stop"}
			}
			c, err := Parse(tok)
			if err != nil {
				return nil, err
			}
			col, hasColor = c, true
		}

		if !hasColor {
			return nil, &InvalidColorError{Input: item, Reason: "stop without a color"}
		}
		if len(positions) > 2 {
			return nil, &InvalidColorError{Input: item, Reason: fmt.Sprintf("%d positions in a stop, at most 2", len(positions))}
		}

		if len(positions) == 0 {
			entries = append(entries, entry{color: col})
		}
		for _, p := range positions {
			entries = append(entries, entry{color: col, pos: p, set: true})
		}
	}

	last := len(entries) - 1
	if !entries[0].set {
		entries[0].pos, entries[0].set = 0, true
	}
	if !entries[last].set {
		entries[last].pos, entries[last].set = 1, true
	}

	// monotonic positions
	for i := 1; i <= last; i++ {
		if entries[i].set && entries[i].pos < entries[i-1].pos && entries[i-1].set {
			entries[i].pos = entries[i-1].pos
		}
		if entries[i].set {
			continue
		}
		// run of unset entries between i-1 and j
		j := i
		for !entries[j].set {
			j++
		}
		from := entries[i-1].pos
		to := entries[j].pos
		if to < from {
			to = from
			entries[j].pos = from
		}
		n := float64(j - i + 1)
		for k := i; k < j; k++ {
			entries[k].pos = from + (to-from)*float64(k-i+1)/n
			entries[k].set = true
		}
		i = j - 1
	}

	stops := make([]gradient.Stop, len(entries))
	for i, e := range entries {
		stops[i] = gradient.Stop{Pos: e.pos, Color: e.color}
	}
	return stops, nil
}

// position reads a finite percent or plain number; "nan" and "inf" are not
// positions.
func position(tok string) (float64, bool) {
	scale := 1.0
	if p, ok := strings.CutSuffix(tok, "%"); ok {
		tok, scale = p, 100
	} else if strings.ContainsAny(tok, "eE") {
		// plain numbers only, "1e3" style hex colors stay colors
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v / scale, true
}

// splitTopLevel splits s on sep outside parentheses.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
