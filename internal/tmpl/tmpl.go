package tmpl

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/danwakefield/fnmatch"
	"github.com/maxb-odessa/slog"
)

//go:embed templates/*.tmpl
var builtin embed.FS

const (
	maxFiles    = 32
	maxFileSize = 65536
)

type Tmpl *template.Template
type Tmpls map[string]Tmpl

// Load parses the built in templates, then any *.tmpl file in dir on top
// of them. An empty dir loads the built in set only.
func Load(dir string) (Tmpls, error) {
	files := make(map[string][]byte)

	if err := loadFS(files, builtin, "templates"); err != nil {
		return nil, err
	}

	if dir != "" {
		// precaution: load no more than 32 files max 64k bytes each
		if err := loadFS(files, os.DirFS(os.ExpandEnv(dir)), "."); err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, errors.New("No HTML templates loaded")
	}

	templates := make(Tmpls)

	for n, t := range files {
		if tmpl, err := template.New(n).Parse(string(t)); err != nil {
			return nil, err
		} else {
			templates[n] = tmpl
			slog.Debug(9, "added template '%s'", n)
		}
	}

	return templates, nil
}

func loadFS(files map[string][]byte, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || !fnmatch.Match("*.tmpl", e.Name(), fnmatch.FNM_PATHNAME) {
			continue
		}

		if count++; count > maxFiles {
			return fmt.Errorf("too many templates in '%s', max %d", dir, maxFiles)
		}

		info, err := e.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxFileSize {
			return fmt.Errorf("template '%s' is too big: %d bytes", e.Name(), info.Size())
		}

		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, e.Name())))
		if err != nil {
			return err
		}
		files[e.Name()] = data
	}

	return nil
}

func Apply(tm Tmpl, data interface{}) (string, error) {
	var buf bytes.Buffer

	t := (*template.Template)(tm)
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	result := buf.String()
	slog.Debug(9, "string after templating: '%s'", result)

	return result, nil
}

func ApplyByName(target string, tms Tmpls, data interface{}) (string, error) {
	if tm, ok := tms[target]; ok {
		return Apply(tm, data)
	}
	return "", fmt.Errorf("Template '%s' is not loaded", target)
}
