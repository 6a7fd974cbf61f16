// Package term writes gradients and color lists to a terminal, or plain
// text when the output is not one.
package term

import (
	"bufio"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/maxb-odessa/gradient/internal/color"
)

const DefaultWidth = 80

// labels darker than this get white text
const darkLuminance = 0.3

type Terminal struct {
	Out     io.Writer
	IsTTY   bool
	Width   int
	Profile termenv.Profile
}

// Stdout inspects os.Stdout. NO_COLOR turns colors off.
func Stdout() *Terminal {
	fd := int(os.Stdout.Fd())
	t := &Terminal{
		Out:     os.Stdout,
		IsTTY:   term.IsTerminal(fd),
		Width:   DefaultWidth,
		Profile: termenv.Ascii,
	}

	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		t.Width = w
	}
	if t.IsTTY {
		t.Profile = termenv.NewOutput(os.Stdout).EnvColorProfile()
	}

	return t
}

// Swatch prints one space per cell on the cell's color.
func (t *Terminal) Swatch(grid [][]color.Color) error {
	out := termenv.NewOutput(t.Out, termenv.WithProfile(t.Profile))
	w := bufio.NewWriter(out)

	for _, row := range grid {
		for _, c := range row {
			cell := out.String(" ").Background(out.Color(c.Hex()))
			if _, err := w.WriteString(cell.String()); err != nil {
				return err
			}
		}
		w.WriteByte('\n')
	}

	return w.Flush()
}

// Labels prints every label on its color, composited over base, wrapped at
// the terminal width. Text is white on dark colors and black otherwise.
func (t *Terminal) Labels(colors []color.Color, labels []string, base color.Color) error {
	r := lipgloss.NewRenderer(t.Out)
	r.SetColorProfile(t.Profile)

	w := bufio.NewWriter(t.Out)
	left := t.Width

	for i, s := range labels {
		width := runewidth.StringWidth(s)
		if left < width {
			w.WriteByte('\n')
			left = t.Width
		}

		bg := base
		if i < len(colors) {
			bg = colors[i].Over(base)
		}
		fg := "#000000"
		if bg.Luminance() < darkLuminance {
			fg = "#ffffff"
		}

		style := r.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg.Hex()))
		w.WriteString(style.Render(s))
		left -= width

		if left >= 1 {
			w.WriteByte(' ')
			left--
		}
	}
	w.WriteByte('\n')

	return w.Flush()
}

// Lines prints one string per line.
func (t *Terminal) Lines(lines []string) error {
	w := bufio.NewWriter(t.Out)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	return w.Flush()
}
