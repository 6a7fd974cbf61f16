package tmpl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Title   string
	Preset  string
	Presets []string
	CSS     string
	Colors  []string
	Take    int
}

func TestLoad_Builtin(t *testing.T) {
	tms, err := Load("")
	require.NoError(t, err)
	require.Contains(t, tms, "index.tmpl")

	out, err := ApplyByName("index.tmpl", tms, page{
		Title:   "magma",
		Preset:  "magma",
		Presets: []string{"inferno", "magma"},
		CSS:     "linear-gradient(to right, #000004, #fcfdbf)",
		Colors:  []string{"#000004", "#fcfdbf"},
		Take:    2,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<title>magma</title>")
	assert.Contains(t, out, `<option value="magma" selected>magma</option>`)
	assert.Contains(t, out, `<span style="background: #fcfdbf">#fcfdbf</span>`)
	assert.Contains(t, out, "linear-gradient(to right, #000004, #fcfdbf)")
}

func TestLoad_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.tmpl"), []byte("{{.Title}}!"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.tmpl"), []byte("{{len .Colors}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	tms, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, tms, 2)

	out, err := ApplyByName("index.tmpl", tms, page{Title: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)

	out, err = ApplyByName("extra.tmpl", tms, page{Colors: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.tmpl"), []byte("{{.Title"), 0o644))
	_, err = Load(dir)
	assert.Error(t, err)

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.tmpl"), []byte(strings.Repeat("x", maxFileSize+1)), 0o644))
	_, err = Load(dir)
	assert.Error(t, err)

	tms, err := Load("")
	require.NoError(t, err)
	_, err = ApplyByName("nope.tmpl", tms, nil)
	assert.Error(t, err)
}
