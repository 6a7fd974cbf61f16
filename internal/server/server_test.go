package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxb-odessa/gradient/internal/color"
	"github.com/maxb-odessa/gradient/internal/config"
	"github.com/maxb-odessa/gradient/internal/gradient"
)

func redBlue() (*gradient.Gradient, error) {
	return gradient.New([]gradient.Stop{
		{Pos: 0, Color: color.RGB(1, 0, 0)},
		{Pos: 1, Color: color.RGB(0, 0, 1)},
	}, gradient.BlendRGB, gradient.InterpLinear, 0, 1)
}

func newTestServer(t *testing.T, source Source) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(config.Default(), source)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestNew_SourceError(t *testing.T) {
	_, err := New(config.Default(), func() (*gradient.Gradient, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")

	conf := config.Default()
	conf.Format = "cmyk"
	_, err = New(conf, redBlue)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t, redBlue)

	code, body := get(t, ts.URL+"/?take=2")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>gradient</title>")
	assert.Contains(t, body, "#ff0000")
	assert.Contains(t, body, "#0000ff")
	assert.Contains(t, body, "linear-gradient(to right")
	assert.Contains(t, body, `<option value="viridis">`)

	code, body = get(t, ts.URL+"/?preset=viridis")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>viridis</title>")
	assert.Contains(t, body, `<option value="viridis" selected>`)

	code, _ = get(t, ts.URL+"/?preset=nope")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, ts.URL+"/?take=-1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_Presets(t *testing.T) {
	_, ts := newTestServer(t, redBlue)

	code, body := get(t, ts.URL+"/api/presets?match=pu-*")
	require.Equal(t, http.StatusOK, code)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(body), &names))
	assert.Contains(t, names, "pu-bu")
	assert.Contains(t, names, "pu-bu-gn")
	for _, n := range names {
		assert.True(t, strings.HasPrefix(n, "pu-"), n)
	}

	_, body = get(t, ts.URL+"/api/presets?match=nothing-like-this")
	assert.Equal(t, "[]\n", body)
}

func TestAPI_Gradient(t *testing.T) {
	_, ts := newTestServer(t, redBlue)

	code, body := get(t, ts.URL+"/api/gradient?take=2")
	require.Equal(t, http.StatusOK, code)

	var reply Reply
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, "take", reply.Action)
	assert.Equal(t, []string{"#ff0000", "#0000ff"}, reply.Colors)
	assert.True(t, strings.HasPrefix(reply.CSS, "linear-gradient(to right, rgba(255,0,0,1.000) 0.00%"))

	_, body = get(t, ts.URL+"/api/gradient?take=2&format=rgb255")
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, []string{"rgb(255,0,0)", "rgb(0,0,255)"}, reply.Colors)

	_, body = get(t, ts.URL+"/api/gradient?take=1&preset=rainbow")
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	require.Len(t, reply.Colors, 1)

	for _, bad := range []string{"take=x", "take=5000", "format=cmyk"} {
		code, _ = get(t, ts.URL+"/api/gradient?"+bad)
		assert.Equal(t, http.StatusBadRequest, code, bad)
	}
	code, _ = get(t, ts.URL+"/api/gradient?preset=nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_Sample(t *testing.T) {
	_, ts := newTestServer(t, redBlue)

	code, body := get(t, ts.URL+"/api/sample?t=1,0,-3")
	require.Equal(t, http.StatusOK, code)

	var reply Reply
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, "sample", reply.Action)
	assert.Equal(t, []string{"#0000ff", "#ff0000", "#ff0000"}, reply.Colors)

	_, body = get(t, ts.URL+"/api/sample?t=0&preset=rainbow")
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, []string{"#6e40aa"}, reply.Colors)

	for _, bad := range []string{"", "t=", "t=a", "t=nan", "t=0&format=x"} {
		code, _ = get(t, ts.URL+"/api/sample?"+bad)
		assert.Equal(t, http.StatusBadRequest, code, bad)
	}
}

func dial(t *testing.T, ts *httptest.Server, query string) *ws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *ws.Conn, msg string) Reply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(msg)))
	return readReply(t, conn)
}

func readReply(t *testing.T, conn *ws.Conn) Reply {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var reply Reply
	require.NoError(t, json.Unmarshal(data, &reply))
	return reply
}

func TestWebsocket_Feedback(t *testing.T) {
	_, ts := newTestServer(t, redBlue)
	conn := dial(t, ts, "")

	reply := roundTrip(t, conn, `{"action":"take","count":2}`)
	assert.Equal(t, "take", reply.Action)
	assert.Equal(t, []string{"#ff0000", "#0000ff"}, reply.Colors)
	assert.NotEmpty(t, reply.CSS)

	reply = roundTrip(t, conn, `{"action":"sample","positions":[1],"format":"rgb"}`)
	assert.Equal(t, []string{"rgb(0.000,0.000,1.000)"}, reply.Colors)

	reply = roundTrip(t, conn, `{"action":"take","count":-1}`)
	assert.NotEmpty(t, reply.Error)

	reply = roundTrip(t, conn, `{"action":"take","count":1,"format":"nope"}`)
	assert.NotEmpty(t, reply.Error)

	reply = roundTrip(t, conn, `{"action":"dance"}`)
	assert.Equal(t, "dance", reply.Action)
	assert.Contains(t, reply.Error, "undefined action")

	reply = roundTrip(t, conn, `not json`)
	assert.Equal(t, "error", reply.Action)
}

func TestWebsocket_PresetFromQuery(t *testing.T) {
	_, ts := newTestServer(t, redBlue)
	conn := dial(t, ts, "?preset=rainbow")

	reply := roundTrip(t, conn, `{"action":"sample","positions":[0]}`)
	assert.Equal(t, []string{"#6e40aa"}, reply.Colors)

	// the message wins over the query
	reply = roundTrip(t, conn, `{"action":"sample","positions":[0],"preset":"viridis"}`)
	assert.Equal(t, []string{"#440154"}, reply.Colors)
}

func TestReload_Broadcast(t *testing.T) {
	var calls atomic.Int32
	source := func() (*gradient.Gradient, error) {
		if calls.Add(1) == 3 {
			return nil, errors.New("broken file")
		}
		return redBlue()
	}

	s, ts := newTestServer(t, source)
	first := s.Current()
	require.NotNil(t, first)

	conn := dial(t, ts, "")
	require.Eventually(t, func() bool { return s.hub.count() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Reload())
	assert.Equal(t, "reload", readReply(t, conn).Action)
	assert.NotSame(t, first, s.Current())

	// a failing source keeps the previous gradient and broadcasts nothing
	kept := s.Current()
	require.Error(t, s.Reload())
	assert.Same(t, kept, s.Current())

	// a client asked reload: its own reply plus the broadcast, in any order
	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(`{"action":"reload"}`)))
	got := []string{readReply(t, conn).Action, readReply(t, conn).Action}
	assert.ElementsMatch(t, []string{"reload", "reloaded"}, got)
}

func TestHub(t *testing.T) {
	h := newHub()
	a := h.add()
	b := h.add()
	assert.NotEqual(t, a.id, b.id)
	assert.Equal(t, 2, h.count())

	h.broadcast([]byte("x"))
	assert.Equal(t, []byte("x"), <-a.sendCh)
	assert.Equal(t, []byte("x"), <-b.sendCh)

	// a full queue drops instead of blocking
	for i := 0; i < cap(a.sendCh)+3; i++ {
		h.broadcast([]byte("y"))
	}
	assert.Len(t, a.sendCh, cap(a.sendCh))

	h.remove(a)
	h.remove(a)
	assert.Equal(t, 1, h.count())

	h.closeAll()
	assert.Equal(t, 0, h.count())
	for range b.sendCh {
	}
	_, ok := <-b.sendCh
	assert.False(t, ok)
}

func TestCSSGradient(t *testing.T) {
	css := cssGradient([]color.Color{color.RGB(1, 0, 0), color.RGBA(0, 0, 1, 0.5)})
	assert.Equal(t, "linear-gradient(to right, rgba(255,0,0,1.000) 0.00%, rgba(0,0,255,0.500) 100.00%)", css)

	assert.Equal(t, "linear-gradient(to right, rgba(0,255,0,1.000) 0.00%)", cssGradient([]color.Color{color.RGB(0, 1, 0)}))
}

func TestParams(t *testing.T) {
	n, err := intParam("", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = intParam("4096", 7)
	require.NoError(t, err)
	assert.Equal(t, 4096, n)

	_, err = intParam("4097", 7)
	assert.Error(t, err)

	f, err := floatList(" 0.5, 1 ,0")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 0}, f)

	_, err = floatList("0.5,,1")
	assert.Error(t, err)

	_, err = floatList("0,NaN")
	assert.Error(t, err)
}
