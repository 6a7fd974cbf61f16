// Package svggrad reads the color stops of <linearGradient> and
// <radialGradient> elements from SVG documents. Geometry is ignored.
package svggrad

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/danwakefield/fnmatch"
	"github.com/maxb-odessa/slog"
	"golang.org/x/net/html/charset"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/csscolor"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

// ErrorMode decides what happens to a stop that can not be parsed. In
// every mode the enclosing gradient is marked invalid.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

var ErrNoSVG = errors.New("no xml elements found")

// Gradient is one gradient element. Pos is never decreasing.
type Gradient struct {
	ID     string
	HasID  bool
	Colors []color.Color
	Pos    []float64
	Valid  bool
}

// Options select gradients and the error handling.
type Options struct {
	FilterID  bool
	IDPattern string // fnmatch pattern, used when FilterID is set
	ErrorMode ErrorMode
}

// Stops returns the stops padded with copies of the end colors at 0 and 1.
// It returns nil for an invalid or empty gradient.
func (g *Gradient) Stops() []gradient.Stop {
	if !g.Valid || len(g.Colors) == 0 {
		return nil
	}

	stops := make([]gradient.Stop, 0, len(g.Colors)+2)
	if g.Pos[0] > 0 {
		stops = append(stops, gradient.Stop{Pos: 0, Color: g.Colors[0]})
	}
	for i, c := range g.Colors {
		stops = append(stops, gradient.Stop{Pos: g.Pos[i], Color: c})
	}
	if last := len(g.Colors) - 1; g.Pos[last] < 1 {
		stops = append(stops, gradient.Stop{Pos: 1, Color: g.Colors[last]})
	}

	return stops
}

// Build makes a gradient over the stops' span, [0,1] for padded stops.
func (g *Gradient) Build(mode gradient.BlendMode, interp gradient.Interpolation) (*gradient.Gradient, error) {
	stops := g.Stops()
	if stops == nil {
		if !g.Valid {
			return nil, fmt.Errorf("svg gradient '%s' has malformed stops", g.ID)
		}
		return nil, gradient.ErrEmptyStops
	}

	dmin, dmax := stops[0].Pos, stops[len(stops)-1].Pos
	if !(dmin < dmax) {
		dmin, dmax = 0, 1
	}
	return gradient.New(stops, mode, interp, dmin, dmax)
}

type cursor struct {
	opts   Options
	res    []*Gradient
	cur    *Gradient
	prev   float64
	skip   bool
	inside bool
}

func (c *cursor) startGradient(attrs []xml.Attr) {
	id, hasID := attr(attrs, "id")

	c.skip = c.opts.FilterID && (!hasID || !fnmatch.Match(c.opts.IDPattern, id, 0))
	c.prev = math.Inf(-1)
	c.inside = !c.skip
	c.cur = nil

	if c.skip {
		return
	}

	c.cur = &Gradient{ID: id, HasID: hasID, Valid: true}
	c.res = append(c.res, c.cur)
}

func (c *cursor) endGradient() {
	c.inside = false
	c.cur = nil
	c.prev = math.Inf(-1)
}

func (c *cursor) invalid(format string, args ...any) error {
	c.cur.Valid = false
	msg := fmt.Sprintf("gradient '%s': ", c.cur.ID) + fmt.Sprintf(format, args...)
	switch c.opts.ErrorMode {
	case StrictErrorMode:
		return errors.New(msg)
	case WarnErrorMode:
		slog.Warn("svg: %s", msg)
	}
	return nil
}

func (c *cursor) readStop(attrs []xml.Attr) error {
	if !c.inside || c.cur == nil {
		return nil
	}

	var (
		col     = color.RGB(0, 0, 0)
		opacity = math.NaN()
		colStr  string
		opStr   string
		hasCol  bool
		hasOp   bool
	)

	colStr, hasCol = attr(attrs, "stop-color")
	opStr, hasOp = attr(attrs, "stop-opacity")
	if style, ok := attr(attrs, "style"); ok {
		if s, ok := styleProp(style, "stop-color"); ok {
			colStr, hasCol = s, true
		}
		if s, ok := styleProp(style, "stop-opacity"); ok {
			opStr, hasOp = s, true
		}
	}

	if hasCol {
		parsed, err := csscolor.Parse(colStr)
		if err != nil {
			return c.invalid("%v", err)
		}
		col = parsed
	}

	if hasOp {
		v, ok := percentOrFloat(opStr)
		if !ok {
			return c.invalid("bad stop-opacity '%s'", opStr)
		}
		opacity = v
	}

	offset := c.prev
	if s, ok := attr(attrs, "offset"); ok {
		v, ok := percentOrFloat(s)
		if !ok {
			return c.invalid("bad offset '%s'", s)
		}
		offset = v
	}

	if !math.IsNaN(opacity) {
		col.A = math.Max(0, math.Min(1, opacity))
	}

	if math.IsInf(offset, 0) || math.IsNaN(offset) {
		c.prev = 0
	} else {
		c.prev = math.Max(offset, c.prev)
	}

	c.cur.Colors = append(c.cur.Colors, col)
	c.cur.Pos = append(c.cur.Pos, c.prev)

	return nil
}

// ReadStream collects the gradients of an SVG document in document order.
// On a syntax error the gradients read so far are returned with the error.
func ReadStream(stream io.Reader, opts Options) ([]*Gradient, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	c := &cursor{opts: opts, prev: math.Inf(-1)}
	seenTag := false

	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, ErrNoSVG
				}
				break
			}
			return c.res, err
		}

		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			switch se.Name.Local {
			case "linearGradient", "radialGradient":
				c.startGradient(se.Attr)
			case "stop":
				if err := c.readStop(se.Attr); err != nil {
					return c.res, err
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "linearGradient", "radialGradient":
				c.endGradient()
			}
		}
	}

	return c.res, nil
}

// Read is ReadStream on a named file.
func Read(file string, opts Options) ([]*Gradient, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadStream(fin, opts)
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// styleProp picks one property out of a style="a:b; c:d" attribute
func styleProp(style, name string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, decl := range strings.Split(style, ";") {
		kv := strings.Split(decl, ":")
		if len(kv) != 2 {
			continue
		}
		if strings.ToLower(strings.TrimSpace(kv[0])) == name {
			val, found = kv[1], true
		}
	}
	return val, found
}

func percentOrFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		return v / 100, err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
