package webview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/logger"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewClientGetsCurrentState(t *testing.T) {
	h := NewHub(logger.Discard)
	h.SetTimerText("Detonation in:\n15", display.StyleCountdownSafe)
	h.SetStatusText("Monitoring chat...", display.StyleStatus)

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()
	conn := dial(t, srv)

	timer := readMessage(t, conn)
	if timer.Region != display.RegionTimer || timer.Content != "Detonation in:\n15" || timer.Style != "countdown_safe" {
		t.Errorf("timer = %+v", timer)
	}
	status := readMessage(t, conn)
	if status.Region != display.RegionStatus || status.Content != "Monitoring chat..." {
		t.Errorf("status = %+v", status)
	}
}

func TestUpdatesAreStreamed(t *testing.T) {
	h := NewHub(logger.Discard)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitClients(t, h, 2)
	for _, c := range []*websocket.Conn{a, b} {
		readMessage(t, c)
		readMessage(t, c)
	}

	h.SetStatusText("Pray Magic!", display.StylePrayerMagic)
	for _, c := range []*websocket.Conn{a, b} {
		msg := readMessage(t, c)
		if msg.Region != display.RegionStatus || msg.Content != "Pray Magic!" || msg.Style != "prayer_magic" {
			t.Errorf("got %+v", msg)
		}
	}
}

func TestClientDisconnectIsRemoved(t *testing.T) {
	h := NewHub(logger.Discard)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, h, 1)
	conn.Close()
	waitClients(t, h, 0)

	// Publishing with no clients must not block.
	h.SetTimerText("", display.StyleReady)
}

func TestServesPage(t *testing.T) {
	h := NewHub(logger.Discard)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/ws") {
		t.Error("page does not open the stream")
	}

	resp, err = http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
