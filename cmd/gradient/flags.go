package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pborman/getopt/v2"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/csscolor"
)

// colorList collects one color per occurrence. Colors may contain commas
// themselves, so values are not split.
type colorList struct {
	raw    []string
	colors []color.Color
}

func (l *colorList) Set(value string, opt getopt.Option) error {
	if value == "" {
		return nil
	}
	c, err := csscolor.Parse(value)
	if err != nil {
		return err
	}
	l.raw = append(l.raw, value)
	l.colors = append(l.colors, c)
	return nil
}

func (l *colorList) String() string {
	return strings.Join(l.raw, " ")
}

// floatList takes comma separated finite numbers, repeated occurrences
// append.
type floatList []float64

func (l *floatList) Set(value string, opt getopt.Option) error {
	if value == "" {
		return nil
	}
	for _, s := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bad number '%s'", s)
		}
		*l = append(*l, v)
	}
	return nil
}

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// fileList keeps file names as given, one per occurrence.
type fileList []string

func (l *fileList) Set(value string, opt getopt.Option) error {
	if value != "" {
		*l = append(*l, value)
	}
	return nil
}

func (l *fileList) String() string {
	return strings.Join(*l, " ")
}
