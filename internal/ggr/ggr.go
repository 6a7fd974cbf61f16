// Package ggr reads GIMP gradient (.ggr) files and turns their segments
// into color stops.
package ggr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maxb-odessa/gradient/internal/color"
)

var ErrBadHeader = errors.New("not a GIMP gradient: bad header")

// SegmentError points at the offending line, counted from 1.
type SegmentError struct {
	Line   int
	Reason string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("ggr line %d: %s", e.Line, e.Reason)
}

type BlendType int

const (
	BlendLinear BlendType = iota
	BlendCurved
	BlendSine
	BlendSphereIncreasing
	BlendSphereDecreasing
	BlendStep
)

type ColorType int

const (
	ColorRGB ColorType = iota
	ColorHSVCCW
	ColorHSVCW
)

type EndpointType int

const (
	EndpointFixed EndpointType = iota
	EndpointForeground
	EndpointForegroundTransparent
	EndpointBackground
	EndpointBackgroundTransparent
)

type Segment struct {
	Left, Middle, Right   float64
	LeftColor, RightColor color.Color
	Blend                 BlendType
	Coloring              ColorType
	LeftType, RightType   EndpointType
}

type Gradient struct {
	Name     string
	Segments []Segment
}

// Parse reads a .ggr document.
func Parse(r io.Reader) (*Gradient, error) {
	sc := bufio.NewScanner(r)
	line := 0

	next := func() (string, bool) {
		for sc.Scan() {
			line++
			if s := strings.TrimSpace(sc.Text()); s != "" {
				return s, true
			}
		}
		return "", false
	}

	if s, ok := next(); !ok || s != "GIMP Gradient" {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrBadHeader
	}

	g := &Gradient{}

	s, ok := next()
	if !ok {
		return nil, &SegmentError{Line: line, Reason: "missing segment count"}
	}
	if name, found := strings.CutPrefix(s, "Name:"); found {
		g.Name = strings.TrimSpace(name)
		if s, ok = next(); !ok {
			return nil, &SegmentError{Line: line, Reason: "missing segment count"}
		}
	}

	count, err := strconv.Atoi(s)
	if err != nil || count < 1 {
		return nil, &SegmentError{Line: line, Reason: fmt.Sprintf("bad segment count '%s'", s)}
	}

	for i := 0; i < count; i++ {
		s, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, &SegmentError{Line: line, Reason: fmt.Sprintf("expected %d segments, got %d", count, i)}
		}
		seg, err := parseSegment(s)
		if err != nil {
			return nil, &SegmentError{Line: line, Reason: err.Error()}
		}
		g.Segments = append(g.Segments, seg)
	}

	return g, nil
}

// ReadFile is Parse on a named file.
func ReadFile(file string) (*Gradient, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Parse(fin)
}

func parseSegment(s string) (Segment, error) {
	fields := strings.Fields(s)
	if len(fields) != 13 && len(fields) != 15 {
		return Segment{}, fmt.Errorf("%d fields, expected 13 or 15", len(fields))
	}

	var v [11]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Segment{}, fmt.Errorf("bad number '%s'", fields[i])
		}
		v[i] = f
	}

	var t [4]int
	for i := 11; i < len(fields); i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return Segment{}, fmt.Errorf("bad type '%s'", fields[i])
		}
		t[i-11] = n
	}

	seg := Segment{
		Left:       v[0],
		Middle:     v[1],
		Right:      v[2],
		LeftColor:  color.RGBA(v[3], v[4], v[5], v[6]).Clamp(),
		RightColor: color.RGBA(v[7], v[8], v[9], v[10]).Clamp(),
		Blend:      BlendType(t[0]),
		Coloring:   ColorType(t[1]),
		LeftType:   EndpointType(t[2]),
		RightType:  EndpointType(t[3]),
	}

	switch {
	case seg.Blend < BlendLinear || seg.Blend > BlendStep:
		return Segment{}, fmt.Errorf("unknown blend type %d", t[0])
	case seg.Coloring < ColorRGB || seg.Coloring > ColorHSVCW:
		return Segment{}, fmt.Errorf("unknown color type %d", t[1])
	case seg.LeftType < EndpointFixed || seg.LeftType > EndpointBackgroundTransparent,
		seg.RightType < EndpointFixed || seg.RightType > EndpointBackgroundTransparent:
		return Segment{}, fmt.Errorf("unknown endpoint type")
	case !(seg.Left <= seg.Middle && seg.Middle <= seg.Right):
		return Segment{}, fmt.Errorf("positions out of order")
	}

	return seg, nil
}
