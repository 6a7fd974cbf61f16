package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/maxb-odessa/slog"
)

type client struct {
	id     string
	sendCh chan []byte
}

// hub tracks connected websocket clients for broadcasts.
type hub struct {
	sync.Mutex
	clients map[string]*client
}

func newHub() *hub {
	return &hub{clients: make(map[string]*client)}
}

func (h *hub) add() *client {
	c := &client{
		id:     uuid.New().String(),
		sendCh: make(chan []byte, 8),
	}
	h.Lock()
	h.clients[c.id] = c
	h.Unlock()
	return c
}

func (h *hub) remove(c *client) {
	h.Lock()
	defer h.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.sendCh)
	}
}

func (h *hub) broadcast(msg []byte) {
	h.Lock()
	defer h.Unlock()
	for _, c := range h.clients {
		select {
		case c.sendCh <- msg:
		default:
			slog.Debug(5, "client %s queue is full, discarding message", c.id)
		}
	}
}

func (h *hub) closeAll() {
	h.Lock()
	defer h.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.sendCh)
	}
}

func (h *hub) count() int {
	h.Lock()
	defer h.Unlock()
	return len(h.clients)
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Err("Websocket upgrade failed: %s", err)
		return
	}

	preset := r.URL.Query().Get("preset")
	cl := s.hub.add()

	slog.Info("Websocket connected: %s (%s)", conn.RemoteAddr(), cl.id)

	defer func() {
		slog.Info("Websocket connection closed: %s (%s)", conn.RemoteAddr(), cl.id)
		s.hub.remove(cl)
		conn.Close()
	}()

	// replies are owned by this handler, sendCh by the hub
	replies := make(chan []byte, 8)
	done := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)

	reader := func() {
		defer close(done)
		for {
			// catch remote connection close
			mtype, msg, err := conn.ReadMessage()
			if err != nil || mtype == ws.CloseMessage {
				return
			}
			if mtype != ws.TextMessage {
				continue
			}
			slog.Debug(1, "Got from remote: %+v", string(msg))

			select {
			case replies <- s.processFeedback(msg, preset):
			case <-stop:
				return
			}
		}
	}

	go reader()

	send := func(msg []byte) bool {
		slog.Debug(9, "will send to ws: %s", msg)
		if err := conn.WriteMessage(ws.TextMessage, msg); err != nil {
			slog.Err("Websocket send() failed: %s", err)
			return false
		}
		return true
	}

	for {
		select {
		case <-done:
			return
		case msg := <-replies:
			if !send(msg) {
				return
			}
		case msg, ok := <-cl.sendCh:
			if !ok || !send(msg) {
				return
			}
		}
	}
}
