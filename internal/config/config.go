package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/maxb-odessa/slog"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/csscolor"
	"github.com/maxb-odessa/gradient/internal/format"
	"github.com/maxb-odessa/gradient/internal/gradient"
	"github.com/maxb-odessa/gradient/internal/render"
)

const DefaultPath = "$HOME/.config/gradient/config.toml"

type Server struct {
	Listen    string `toml:"listen"`
	Templates string `toml:"templates"` // dir with *.tmpl overrides, optional
	Watch     bool   `toml:"watch"`     // reload gradient files on change
}

type Config struct {
	BlendMode     string   `toml:"blend_mode"`
	Interpolation string   `toml:"interpolation"`
	Format        string   `toml:"format"`
	Width         int      `toml:"width"` // 0: terminal width
	Height        int      `toml:"height"`
	Background    string   `toml:"background"` // empty: checkerboard
	Checkerboard  []string `toml:"checkerboard"`
	GGRForeground string   `toml:"ggr_fg"`
	GGRBackground string   `toml:"ggr_bg"`

	Server Server `toml:"server"`
}

func Default() *Config {
	return &Config{
		BlendMode:     gradient.DefaultBlendMode.String(),
		Interpolation: gradient.DefaultInterpolation.String(),
		Format:        format.Hex.String(),
		Height:        2,
		GGRForeground: "black",
		GGRBackground: "white",
		Server: Server{
			Listen: "localhost:12345",
			Watch:  true,
		},
	}
}

// Load overlays the TOML file at path on c. A missing file is not an
// error, c keeps its values.
func (c *Config) Load(path string) error {
	path = os.ExpandEnv(path)

	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug(1, "config file '%s' not found, using defaults", path)
		return nil
	} else if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		slog.Warn("config %s: unknown key '%s'", path, key)
	}

	return c.Validate()
}

// Validate checks that every keyword and color in c parses.
func (c *Config) Validate() error {
	if _, _, err := c.Modes(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if _, err := c.Backdrop(); err != nil {
		return err
	}
	if _, _, err := c.GGRColors(); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: negative swatch size %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c *Config) Modes() (gradient.BlendMode, gradient.Interpolation, error) {
	mode, err := gradient.ParseBlendMode(c.BlendMode)
	if err != nil {
		return 0, 0, err
	}
	interp, err := gradient.ParseInterpolation(c.Interpolation)
	if err != nil {
		return 0, 0, err
	}
	return mode, interp, nil
}

func (c *Config) OutputFormat() (format.Format, error) {
	return format.Parse(c.Format)
}

// Backdrop is the solid background if one is set, the checkerboard
// otherwise.
func (c *Config) Backdrop() (render.Background, error) {
	if c.Background != "" {
		bg, err := csscolor.Parse(c.Background)
		if err != nil {
			return nil, err
		}
		return render.Solid(bg), nil
	}

	cb := render.DefaultCheckerboard()
	switch len(c.Checkerboard) {
	case 0:
	case 2:
		for i, s := range c.Checkerboard {
			col, err := csscolor.Parse(s)
			if err != nil {
				return nil, err
			}
			cb.Colors[i] = col
		}
	default:
		return nil, fmt.Errorf("config: checkerboard needs 2 colors, got %d", len(c.Checkerboard))
	}

	return cb, nil
}

func (c *Config) GGRColors() (fg, bg color.Color, err error) {
	if fg, err = csscolor.Parse(c.GGRForeground); err != nil {
		return
	}
	bg, err = csscolor.Parse(c.GGRBackground)
	return
}
