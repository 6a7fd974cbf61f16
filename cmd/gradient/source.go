package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/maxb-odessa/slog"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/csscolor"
	"github.com/maxb-odessa/gradient/internal/ggr"
	"github.com/maxb-odessa/gradient/internal/gradient"
	"github.com/maxb-odessa/gradient/internal/presets"
	"github.com/maxb-odessa/gradient/internal/svggrad"
)

var errNoSource = errors.New("no gradient given, use --preset, --custom, --css or --file")

type named struct {
	Name     string
	Gradient *gradient.Gradient
}

// source is where gradients come from; exactly one kind is used, in the
// order preset, css, custom, files.
type source struct {
	preset    string
	css       string
	custom    bool
	colors    []string // positional args with --custom
	positions []float64
	files     []string
	svgID     string
	mode      gradient.BlendMode
	interp    gradient.Interpolation
	ggrFG     color.Color
	ggrBG     color.Color
}

func (s *source) load() ([]named, error) {
	switch {
	case s.preset != "":
		g, err := presets.Get(s.preset)
		if err != nil {
			return nil, err
		}
		return []named{{Name: s.preset, Gradient: g}}, nil

	case s.css != "":
		stops, err := csscolor.ParseGradient(s.css)
		if err != nil {
			return nil, err
		}
		g, err := gradient.New(stops, s.mode, s.interp, 0, 1)
		if err != nil {
			return nil, err
		}
		return []named{{Name: "css", Gradient: g}}, nil

	case s.custom:
		colors := make([]color.Color, len(s.colors))
		for i, arg := range s.colors {
			c, err := csscolor.Parse(arg)
			if err != nil {
				return nil, err
			}
			colors[i] = c
		}
		g, err := gradient.NewBuilder().
			Colors(colors...).
			Positions(s.positions...).
			Mode(s.mode).
			Interpolation(s.interp).
			Build()
		if err != nil {
			return nil, fmt.Errorf("custom gradient: %w", err)
		}
		return []named{{Name: "custom", Gradient: g}}, nil

	case len(s.files) > 0:
		return s.loadFiles()
	}

	return nil, errNoSource
}

func (s *source) loadFiles() ([]named, error) {
	var res []named

	for _, file := range s.files {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".ggr":
			gg, err := ggr.ReadFile(file)
			if err != nil {
				return nil, err
			}
			g, err := gg.Build(s.ggrFG, s.ggrBG)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			name := gg.Name
			if name == "" {
				name = file
			}
			res = append(res, named{Name: name, Gradient: g})

		case ".svg":
			gs, err := svggrad.Read(file, svggrad.Options{
				FilterID:  s.svgID != "",
				IDPattern: s.svgID,
				ErrorMode: svggrad.WarnErrorMode,
			})
			if err != nil {
				return nil, err
			}
			for _, sg := range gs {
				if !sg.Valid {
					slog.Warn("%s: skipping malformed gradient '%s'", file, sg.ID)
					continue
				}
				g, err := sg.Build(s.mode, s.interp)
				if err != nil {
					slog.Warn("%s: skipping gradient '%s': %s", file, sg.ID, err)
					continue
				}
				name := file
				if sg.HasID {
					name += "#" + sg.ID
				}
				res = append(res, named{Name: name, Gradient: g})
			}

		default:
			return nil, fmt.Errorf("%s: unknown gradient file type, expected .svg or .ggr", file)
		}
	}

	if len(res) == 0 {
		return nil, fmt.Errorf("no usable gradient in %s", strings.Join(s.files, ", "))
	}

	return res, nil
}

// first is the server's view: one gradient, rebuilt on every call.
func (s *source) first() (*gradient.Gradient, error) {
	gs, err := s.load()
	if err != nil {
		return nil, err
	}
	return gs[0].Gradient, nil
}
