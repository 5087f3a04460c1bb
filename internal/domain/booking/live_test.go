package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type liveFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialLive(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	server := httptest.NewServer(newTestRouter())
	id := startSession(t, server.Config.Handler)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/bookings/sessions/" + id + "/live"
	dialer := websocket.Dialer{}
	conn, resp, err := dialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func sendFrame(t *testing.T, conn *websocket.Conn, msg string) liveFrame {
	t.Helper()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var frame liveFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	return frame
}

func TestLive_PatchReturnsRecomputedView(t *testing.T) {
	conn, cleanup := dialLive(t)
	defer cleanup()

	frame := sendFrame(t, conn, `{"type":"service","data":{"booking_type":"home","apartment_type":"2br"}}`)
	if frame.Type != LiveView {
		t.Fatalf("expected view frame, got %s: %s", frame.Type, frame.Data)
	}

	var view View
	if err := json.Unmarshal(frame.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Draft.BookingHours != 3 || !view.Breakdown.Total.Equal(dec("158")) {
		t.Fatalf("expected 3 hours at 158, got %d at %s", view.Draft.BookingHours, view.Breakdown.Total)
	}

	frame = sendFrame(t, conn, `{"type":"hours_increment"}`)
	if err := json.Unmarshal(frame.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Draft.BookingHours != 4 {
		t.Fatalf("expected 4 hours, got %d", view.Draft.BookingHours)
	}
}

func TestLive_ErrorFrames(t *testing.T) {
	conn, cleanup := dialLive(t)
	defer cleanup()

	tests := []struct {
		msg  string
		code string
	}{
		{`{"type":"back"}`, "CONFLICT"},
		{`{"type":"teleport"}`, "BAD_REQUEST"},
		{`{"type":"next"}`, "VALIDATION_ERROR"},
		{`{"type":"service","data":{"booking_hours":40}}`, "VALIDATION_ERROR"},
		{`not json`, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		frame := sendFrame(t, conn, tt.msg)
		if frame.Type != LiveError {
			t.Fatalf("%s: expected error frame, got %s", tt.msg, frame.Type)
		}

		var info struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(frame.Data, &info); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if info.Code != tt.code {
			t.Fatalf("%s: expected %s, got %s", tt.msg, tt.code, info.Code)
		}
	}
}

func TestLive_UnknownSession(t *testing.T) {
	server := httptest.NewServer(newTestRouter())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/bookings/sessions/missing/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}
