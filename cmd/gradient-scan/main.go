package main

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/danwakefield/fnmatch"
	"github.com/maxb-odessa/slog"
	"github.com/pborman/getopt/v2"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/ggr"
	"github.com/maxb-odessa/gradient/internal/svggrad"
)

// Summary describes one gradient found on disk.
type Summary struct {
	File  string `json:"file"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Stops int    `json:"stops"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var patterns = []string{"*.svg", "*.ggr"}

func matches(name string) bool {
	for _, p := range patterns {
		if fnmatch.Match(p, name, fnmatch.FNM_CASEFOLD) {
			return true
		}
	}
	return false
}

func scanFile(path string) []Summary {
	if strings.EqualFold(filepath.Ext(path), ".ggr") {
		gg, err := ggr.ReadFile(path)
		if err != nil {
			return []Summary{{File: path, Error: err.Error()}}
		}
		stops := gg.Stops(color.RGB(0, 0, 0), color.RGB(1, 1, 1))
		return []Summary{{File: path, Name: gg.Name, Stops: len(stops), Valid: true}}
	}

	gs, err := svggrad.Read(path, svggrad.Options{ErrorMode: svggrad.IgnoreErrorMode})
	if err != nil {
		return []Summary{{File: path, Error: err.Error()}}
	}

	res := make([]Summary, 0, len(gs))
	for _, g := range gs {
		res = append(res, Summary{
			File:  path,
			ID:    g.ID,
			Stops: len(g.Colors),
			Valid: g.Valid,
		})
	}
	return res
}

// scan walks every dir and summarizes the gradient files in it. Unreadable
// subtrees are logged and skipped.
func scan(dirs []string) []Summary {
	res := make([]Summary, 0)

	for _, dir := range dirs {
		slog.Info("Scanning %s ...", dir)

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Warn("%s: %s", path, err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !matches(d.Name()) {
				return nil
			}
			res = append(res, scanFile(path)...)
			return nil
		})
		if err != nil {
			slog.Warn("%s: %s", dir, err)
		}
	}

	return res
}

func main() {
	help := false
	debug := 0
	getopt.HelpColumn = 0
	getopt.SetParameters("DIR...")
	getopt.FlagLong(&help, "help", 'h', "Show this help")
	getopt.FlagLong(&debug, "debug", 'd', "Set debug log level")
	getopt.Parse()

	if help {
		getopt.Usage()
		return
	}

	slog.Init("", debug, "")

	dirs := getopt.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	data, err := json.MarshalIndent(scan(dirs), "", "  ")
	if err != nil {
		slog.Err("%s", err)
		os.Exit(1)
	}

	os.Stdout.Write(data)
	os.Stdout.Write([]byte("\n"))
}
