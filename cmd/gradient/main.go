package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maxb-odessa/slog"
	"github.com/pborman/getopt/v2"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/config"
	"github.com/maxb-odessa/gradient/internal/csscolor"
	"github.com/maxb-odessa/gradient/internal/format"
	"github.com/maxb-odessa/gradient/internal/presets"
	"github.com/maxb-odessa/gradient/internal/render"
	"github.com/maxb-odessa/gradient/internal/server"
	"github.com/maxb-odessa/gradient/internal/term"
)

func die(args ...interface{}) {
	slog.Err(args...)
	os.Exit(1)
}

func main() {

	// get cmdline args and parse them
	var (
		help        bool
		debug       int
		configFile  = config.DefaultPath
		listPresets bool
		namedColors bool
		preset      string
		custom      bool
		css         string
		positions   floatList
		blendMode   string
		interp      string
		files       fileList
		svgID       string
		ggrFG       string
		ggrBG       string
		width       int
		height      int
		background  string
		cbColors    colorList
		take        int
		samples     floatList
		outFormat   string
		array       bool
		sharp       int
		serve       string
	)

	getopt.HelpColumn = 0
	getopt.SetParameters("[COLOR...|PATTERN]")
	getopt.FlagLong(&help, "help", 'h', "Show this help")
	getopt.FlagLong(&debug, "debug", 'd', "Set debug log level")
	getopt.FlagLong(&configFile, "config", 0, "Path to config file")
	getopt.FlagLong(&listPresets, "list-presets", 'l', "List preset gradients, optionally matching PATTERN")
	getopt.FlagLong(&namedColors, "named-colors", 0, "List CSS color names")
	getopt.FlagLong(&preset, "preset", 'p', "Preset gradient")
	getopt.FlagLong(&custom, "custom", 'c', "Custom gradient from the COLOR arguments")
	getopt.FlagLong(&css, "css", 0, "CSS gradient stop list, e.g. \"red, 30% gold, blue\"")
	getopt.FlagLong(&positions, "position", 'P', "Custom gradient positions, comma separated")
	optMode := getopt.FlagLong(&blendMode, "blend-mode", 'm', "Blend mode: rgb, linear-rgb, hsv, oklab")
	optInterp := getopt.FlagLong(&interp, "interpolation", 'i', "Interpolation: linear, basis, catmull-rom")
	getopt.FlagLong(&files, "file", 'f', "SVG or GGR gradient file (repeatable)")
	getopt.FlagLong(&svgID, "svg-id", 0, "Pick SVG gradients by id (glob pattern)")
	optGGRFG := getopt.FlagLong(&ggrFG, "ggr-fg", 0, "GGR foreground color")
	optGGRBG := getopt.FlagLong(&ggrBG, "ggr-bg", 0, "GGR background color")
	optWidth := getopt.FlagLong(&width, "width", 'W', "Gradient width (default terminal width)")
	optHeight := getopt.FlagLong(&height, "height", 'H', "Gradient height")
	optBackground := getopt.FlagLong(&background, "background", 'b', "Background color (default checkerboard)")
	optCB := getopt.FlagLong(&cbColors, "cb-color", 0, "Checkerboard color (give twice)")
	optTake := getopt.FlagLong(&take, "take", 't', "Get N colors evenly spaced across the gradient")
	optSample := getopt.FlagLong(&samples, "sample", 's', "Get colors at positions, comma separated")
	optFormat := getopt.FlagLong(&outFormat, "format", 'o', "Output color format: "+strings.Join(format.Names(), ", "))
	getopt.FlagLong(&array, "array", 'a', "Print colors as an array")
	getopt.FlagLong(&sharp, "sharp", 0, "Sharp gradient with N segments")
	getopt.FlagLong(&serve, "serve", 0, "Run the preview server at ADDR (\"-\" uses the config)")
	getopt.Parse()

	// help-only requested
	if help {
		getopt.Usage()
		return
	}

	// setup logger
	slog.Init("", debug, "")

	if namedColors {
		if err := term.Stdout().Lines(csscolor.Names()); err != nil {
			die("%s", err)
		}
		return
	}

	if listPresets {
		pattern := ""
		if args := getopt.Args(); len(args) > 0 {
			pattern = args[0]
		}
		if err := term.Stdout().Lines(presets.Match(pattern)); err != nil {
			die("%s", err)
		}
		return
	}

	conf := config.Default()
	if err := conf.Load(configFile); err != nil {
		die("Failed to load config file '%s': %s", configFile, err)
	}

	// command line wins over the config file
	if optMode.Seen() {
		conf.BlendMode = blendMode
	}
	if optInterp.Seen() {
		conf.Interpolation = interp
	}
	if optFormat.Seen() {
		conf.Format = outFormat
	}
	if optWidth.Seen() {
		conf.Width = width
	}
	if optHeight.Seen() {
		conf.Height = height
	}
	if optBackground.Seen() {
		conf.Background = background
	}
	if optCB.Seen() {
		conf.Checkerboard = cbColors.raw
	}
	if optGGRFG.Seen() {
		conf.GGRForeground = ggrFG
	}
	if optGGRBG.Seen() {
		conf.GGRBackground = ggrBG
	}
	if serve != "" && serve != "-" {
		conf.Server.Listen = serve
	}
	if err := conf.Validate(); err != nil {
		die("%s", err)
	}

	mode, in, err := conf.Modes()
	if err != nil {
		die("%s", err)
	}
	fg, bg, err := conf.GGRColors()
	if err != nil {
		die("%s", err)
	}
	src := &source{
		preset:    preset,
		css:       css,
		custom:    custom,
		positions: positions,
		files:     files,
		svgID:     svgID,
		mode:      mode,
		interp:    in,
		ggrFG:     fg,
		ggrBG:     bg,
	}
	if custom {
		src.colors = getopt.Args()
	}

	if serve != "" {
		runServer(conf, src)
		return
	}

	if optSample.Seen() && optTake.Seen() {
		die("--take and --sample can not be used together")
	}

	gradients, err := src.load()
	if err != nil {
		die("%s", err)
	}

	out := &output{
		term:    term.Stdout(),
		conf:    conf,
		take:    -1,
		samples: samples,
		array:   array,
		sharp:   sharp,
	}
	if optTake.Seen() {
		out.take = take
	}

	for _, g := range gradients {
		if len(gradients) > 1 {
			if err := out.term.Lines([]string{g.Name}); err != nil {
				die("%s", err)
			}
		}
		if err := out.show(g); err != nil {
			die("%s", err)
		}
	}
}

func runServer(conf *config.Config, src *source) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(conf, src.first)
	if err != nil {
		die("Failed to start HTTP server: %s", err)
	}

	slog.Info("Started")
	defer slog.Info("Exited")

	if err := srv.Start(ctx, src.files); err != nil {
		die("HTTP server failed: %s", err)
	}
}

type output struct {
	term    *term.Terminal
	conf    *config.Config
	take    int // -1: not asked
	samples floatList
	array   bool
	sharp   int
}

// show prints colors when they were asked for, a swatch otherwise. Swatches
// only go to terminals.
func (o *output) show(g named) error {
	grad := g.Gradient
	if o.sharp > 0 {
		grad = grad.Sharp(o.sharp)
	}

	var colors []color.Color
	switch {
	case o.take >= 0:
		colors = grad.Colors(o.take)
	case len(o.samples) > 0:
		colors = grad.SampleMany(o.samples)
	default:
		if !o.term.IsTTY {
			return nil
		}
		bg, err := o.conf.Backdrop()
		if err != nil {
			return err
		}
		w := o.conf.Width
		if w <= 0 {
			w = o.term.Width
		}
		return o.term.Swatch(render.Swatch(grad, w, o.conf.Height, bg))
	}

	f, err := o.conf.OutputFormat()
	if err != nil {
		return err
	}
	labels := f.Colors(colors)

	if o.array {
		return o.term.Lines([]string{format.Array(labels)})
	}
	if !o.term.IsTTY {
		return o.term.Lines(labels)
	}

	base := color.RGB(0, 0, 0)
	if o.conf.Background != "" {
		if base, err = csscolor.Parse(o.conf.Background); err != nil {
			return err
		}
	}
	return o.term.Labels(colors, labels, base)
}
