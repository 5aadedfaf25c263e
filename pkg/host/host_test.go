package host

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glintkit/glint/pkg/element"
	"github.com/glintkit/glint/pkg/titlebar"
)

func newTestHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	registry := element.NewRegistry()
	if err := registry.Define(titlebar.Tag, titlebar.Factory); err != nil {
		t.Fatal(err)
	}
	return New(registry, opts...)
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(newTestHost(t).Router())
	defer srv.Close()

	status, body := get(t, srv, "/healthz")
	if status != http.StatusOK || body != "ok\n" {
		t.Errorf("unexpected response %d %q", status, body)
	}
}

func TestIndexListsTags(t *testing.T) {
	srv := httptest.NewServer(newTestHost(t).Router())
	defer srv.Close()

	status, body := get(t, srv, "/")
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if !strings.Contains(body, titlebar.Tag) {
		t.Errorf("index missing tag, got:\n%s", body)
	}
	if !strings.Contains(body, "/e/"+titlebar.Tag) {
		t.Error("index missing element link")
	}
}

func TestElementPage(t *testing.T) {
	srv := httptest.NewServer(newTestHost(t).Router())
	defer srv.Close()

	status, body := get(t, srv, "/e/"+titlebar.Tag)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Error("expected a full document")
	}
	if !strings.Contains(body, "<"+titlebar.Tag) {
		t.Error("page missing the rendered element")
	}
	if !strings.Contains(body, "You are awesome") {
		t.Error("page missing the default title")
	}
	if !strings.Contains(body, "data-nid=") {
		t.Error("page missing node identities for the live client")
	}
}

func TestElementPageUnknownTag(t *testing.T) {
	srv := httptest.NewServer(newTestHost(t).Router())
	defer srv.Close()

	status, _ := get(t, srv, "/e/not-defined")
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

type countingObserver struct {
	started, closed, patches atomic.Int32
}

func (o *countingObserver) SessionStarted(string) { o.started.Add(1) }
func (o *countingObserver) SessionClosed(string)  { o.closed.Add(1) }

func (o *countingObserver) PatchesSent(_ string, count int) { o.patches.Add(int32(count)) }

func TestLiveSession(t *testing.T) {
	obs := &countingObserver{}
	h := newTestHost(t, WithObserver(obs))
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live?tag=" + titlebar.Tag
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Registration finishes just after the upgrade handshake; poll.
	waitFor(t, func() bool { return h.SessionCount() == 1 })
	waitFor(t, func() bool { return obs.started.Load() == 1 })

	// An inbound attribute write must come back as a patch frame.
	err = conn.WriteJSON(Frame{Type: EventSetAttr, Name: titlebar.AttrDarkMode, Value: ""})
	if err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != FramePatches || frame.Seq != 1 {
		t.Fatalf("unexpected frame %+v", frame)
	}

	found := false
	for _, p := range frame.Patches {
		if p.Op == "set-attr" && p.Key == titlebar.AttrDarkMode {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a dark-mode set-attr patch, got %+v", frame.Patches)
	}

	// The session reports delivered patch counts to the observer.
	waitFor(t, func() bool { return obs.patches.Load() >= 1 })

	conn.Close()
	// Session teardown is asynchronous; poll.
	waitFor(t, func() bool { return h.SessionCount() == 0 })
	waitFor(t, func() bool { return obs.closed.Load() == 1 })
}

// waitFor polls a condition until it holds or the test times out.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHeartbeatPongRoundTrip(t *testing.T) {
	config := DefaultSessionConfig()
	config.HeartbeatInterval = 50 * time.Millisecond
	h := newTestHost(t, WithSessionConfig(config))
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live?tag=" + titlebar.Tag
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// The first frame is the server heartbeat.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != FramePing {
		t.Fatalf("expected a ping frame, got %+v", frame)
	}

	// Answer it the way the live client does, then trigger an event.
	// The pong must be accepted silently: the next non-ping frame is
	// the event's patches, never an error.
	if err := conn.WriteJSON(Frame{Type: FramePong}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Frame{Type: EventSetAttr, Name: titlebar.AttrDarkMode}); err != nil {
		t.Fatal(err)
	}

	for {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			t.Fatal(err)
		}
		switch frame.Type {
		case FramePing:
			continue
		case FramePatches:
			return
		default:
			t.Fatalf("pong was rejected: %+v", frame)
		}
	}
}

func TestLiveUnknownTag(t *testing.T) {
	srv := httptest.NewServer(newTestHost(t).Router())
	defer srv.Close()

	status, _ := get(t, srv, "/live?tag=not-defined")
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestMalformedFrameKeepsSessionAlive(t *testing.T) {
	h := newTestHost(t)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live?tag=" + titlebar.Tag
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != FrameError || frame.Code != "E040" {
		t.Errorf("expected E040 error frame, got %+v", frame)
	}

	// The connection survives a bad frame.
	if err := conn.WriteJSON(Frame{Type: EventSetAttr, Name: titlebar.AttrDarkMode}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("session died after bad frame: %v", err)
	}
}
