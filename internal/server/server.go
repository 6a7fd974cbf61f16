// Package server serves a live preview of the current gradient: an HTML
// page, a small JSON API and a websocket that pushes reloads.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	ws "github.com/gorilla/websocket"
	"github.com/maxb-odessa/slog"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/config"
	"github.com/maxb-odessa/gradient/internal/format"
	"github.com/maxb-odessa/gradient/internal/gradient"
	"github.com/maxb-odessa/gradient/internal/presets"
	"github.com/maxb-odessa/gradient/internal/tmpl"
)

const (
	defaultTake = 10
	maxTake     = 4096
)

// Source builds the gradient being previewed; it is called again when a
// watched file changes.
type Source func() (*gradient.Gradient, error)

type Server struct {
	conf      *config.Config
	source    Source
	format    format.Format
	templates tmpl.Tmpls
	current   atomic.Pointer[gradient.Gradient]
	hub       *hub
	upgrader  ws.Upgrader
}

func New(conf *config.Config, source Source) (*Server, error) {
	f, err := conf.OutputFormat()
	if err != nil {
		return nil, err
	}

	templates, err := tmpl.Load(conf.Server.Templates)
	if err != nil {
		return nil, err
	}

	s := &Server{
		conf:      conf,
		source:    source,
		format:    f,
		templates: templates,
		hub:       newHub(),
		upgrader: ws.Upgrader{
			ReadBufferSize:  8192,
			WriteBufferSize: 8192,
		},
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload rebuilds the gradient from the source and tells every client.
// On error the previous gradient stays in place.
func (s *Server) Reload() error {
	g, err := s.source()
	if err != nil {
		return err
	}
	s.current.Store(g)

	data, _ := json.Marshal(&Reply{Action: "reload"})
	s.hub.broadcast(data)

	return nil
}

func (s *Server) Current() *gradient.Gradient {
	return s.current.Load()
}

// pick returns the named preset, or the current gradient for an empty name
func (s *Server) pick(preset string) (*gradient.Gradient, error) {
	if preset == "" {
		return s.Current(), nil
	}
	return presets.Get(preset)
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.getIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.wsHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/presets", s.getPresets).Methods(http.MethodGet)
	api.HandleFunc("/gradient", s.getGradient).Methods(http.MethodGet)
	api.HandleFunc("/sample", s.getSample).Methods(http.MethodGet)

	return r
}

// Start serves until ctx is done, then shuts down gracefully. Watched files
// trigger Reload.
func (s *Server) Start(ctx context.Context, watch []string) error {
	listen := s.conf.Server.Listen
	if listen == "" {
		listen = ":12345"
	}

	if s.conf.Server.Watch && len(watch) > 0 {
		w, err := newWatcher(watch, s.Reload)
		if err != nil {
			return err
		}
		go w.run(ctx)
	}

	srv := &http.Server{
		Addr:              listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening at %s", listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.hub.closeAll()

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Page feeds the index template.
type Page struct {
	Title   string
	Preset  string
	Presets []string
	CSS     string
	Colors  []string
	Take    int
}

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	preset := q.Get("preset")

	g, err := s.pick(preset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	take, err := intParam(q.Get("take"), defaultTake)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	colors := g.Colors(take)
	title := preset
	if title == "" {
		title = "gradient"
	}

	page, err := tmpl.ApplyByName("index.tmpl", s.templates, &Page{
		Title:   title,
		Preset:  preset,
		Presets: presets.Names(),
		CSS:     cssGradient(g.Colors(maxCSSStops)),
		Colors:  format.Hex.Colors(colors),
		Take:    take,
	})
	if err != nil {
		slog.Err("index template failed: %s", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, page)
}

func (s *Server) getPresets(w http.ResponseWriter, r *http.Request) {
	names := presets.Match(r.URL.Query().Get("match"))
	if names == nil {
		names = []string{}
	}
	writeJSON(w, names)
}

// outputFormat reads ?format=, falling back to the configured one
func (s *Server) outputFormat(r *http.Request) (format.Format, error) {
	if key := r.URL.Query().Get("format"); key != "" {
		return format.Parse(key)
	}
	return s.format, nil
}

func (s *Server) getGradient(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	g, err := s.pick(q.Get("preset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	f, err := s.outputFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	take, err := intParam(q.Get("take"), defaultTake)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, takeReply(g, f, take))
}

func (s *Server) getSample(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	g, err := s.pick(q.Get("preset"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	f, err := s.outputFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	positions, err := floatList(q.Get("t"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, sampleReply(g, f, positions))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json encode failed: %s", err)
	}
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > maxTake {
		return 0, fmt.Errorf("bad count '%s', expected 0..%d", s, maxTake)
	}
	return n, nil
}

func floatList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("no positions given")
	}
	var out []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("bad position '%s'", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// stops in the CSS preview; enough to hide the linear steps between them
const maxCSSStops = 32

// cssGradient renders colors as an evenly spaced CSS linear-gradient.
func cssGradient(colors []color.Color) string {
	var sb strings.Builder
	sb.WriteString("linear-gradient(to right")
	for i, c := range colors {
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) * 100 / float64(len(colors)-1)
		}
		r, g, b, _ := c.RGBA8()
		fmt.Fprintf(&sb, ", rgba(%d,%d,%d,%.3f) %.2f%%", r, g, b, c.A, pos)
	}
	sb.WriteString(")")
	return sb.String()
}
