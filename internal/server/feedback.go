package server

import (
	"encoding/json"
	"fmt"

	"github.com/maxb-odessa/slog"

	"github.com/maxb-odessa/gradient/internal/format"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

// FeedbackMsg is what a websocket client sends.
type FeedbackMsg struct {
	Action    string    `json:"action"` // take, sample, reload
	Count     int       `json:"count"`
	Positions []float64 `json:"positions"`
	Format    string    `json:"format"`
	Preset    string    `json:"preset"`
}

// Reply goes back to the client, and Action "reload" is pushed to all
// clients when the gradient changes.
type Reply struct {
	Action string   `json:"action"`
	Colors []string `json:"colors,omitempty"`
	CSS    string   `json:"css,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func takeReply(g *gradient.Gradient, f format.Format, n int) *Reply {
	return &Reply{
		Action: "take",
		Colors: f.Colors(g.Colors(n)),
		CSS:    cssGradient(g.Colors(maxCSSStops)),
	}
}

func sampleReply(g *gradient.Gradient, f format.Format, positions []float64) *Reply {
	return &Reply{
		Action: "sample",
		Colors: f.Colors(g.SampleMany(positions)),
	}
}

// processFeedback answers one client message. preset is the one the client
// connected with; the message may override it.
func (s *Server) processFeedback(data []byte, preset string) []byte {
	var msg FeedbackMsg
	var reply *Reply

	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Err("failed to unmarshal feedback json: %s", err)
		reply = &Reply{Action: "error", Error: err.Error()}
	} else {
		reply = s.handleFeedback(&msg, preset)
	}

	out, _ := json.Marshal(reply)
	return out
}

func (s *Server) handleFeedback(msg *FeedbackMsg, preset string) *Reply {
	fail := func(err error) *Reply {
		return &Reply{Action: msg.Action, Error: err.Error()}
	}

	if msg.Preset != "" {
		preset = msg.Preset
	}

	f := s.format
	if msg.Format != "" {
		var err error
		if f, err = format.Parse(msg.Format); err != nil {
			return fail(err)
		}
	}

	switch msg.Action {
	case "take":
		g, err := s.pick(preset)
		if err != nil {
			return fail(err)
		}
		if msg.Count < 0 || msg.Count > maxTake {
			return fail(fmt.Errorf("bad count %d, expected 0..%d", msg.Count, maxTake))
		}
		return takeReply(g, f, msg.Count)

	case "sample":
		g, err := s.pick(preset)
		if err != nil {
			return fail(err)
		}
		return sampleReply(g, f, msg.Positions)

	case "reload":
		if err := s.Reload(); err != nil {
			slog.Warn("reload failed: %s", err)
			return fail(err)
		}
		// clients learn about it from the broadcast
		return &Reply{Action: "reloaded"}
	}

	slog.Err("undefined feedback action '%s'", msg.Action)
	return fail(fmt.Errorf("undefined action '%s'", msg.Action))
}
