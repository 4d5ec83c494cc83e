package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ejgsdc/corujita/server"
	"github.com/ejgsdc/corujita/telemetry"
)

type fakeConn struct {
	connected bool
	start     time.Time
	live      bool
}

func (f *fakeConn) Connected() bool                { return f.connected }
func (f *fakeConn) StreamStart() (time.Time, bool) { return f.start, f.live }

type fakeUsers struct{ n int }

func (f *fakeUsers) TotalUsers() int { return f.n }

type fakeWaiting struct{ active bool }

func (f *fakeWaiting) Active() bool { return f.active }

func newTestServer(t *testing.T, deps server.Deps) *httptest.Server {
	t.Helper()
	telemetry.Init()
	srv := httptest.NewServer(server.NewMux(deps))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, server.Deps{})
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want \"ok\"", body)
	}
}

func TestStatus(t *testing.T) {
	deps := server.Deps{
		Channel:     "fantonlord",
		BotUsername: "corujita",
		Conn: &fakeConn{
			connected: true,
			start:     time.Now().Add(-90 * time.Second),
			live:      true,
		},
		Users:   &fakeUsers{n: 7},
		Waiting: &fakeWaiting{active: true},
	}
	srv := newTestServer(t, deps)

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var body struct {
		Channel      string `json:"channel"`
		BotUsername  string `json:"bot_username"`
		Connected    bool   `json:"connected"`
		WaitingMode  bool   `json:"waiting_mode"`
		TrackedUsers int    `json:"tracked_users"`
		StreamUptime string `json:"stream_uptime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if body.Channel != "fantonlord" || body.BotUsername != "corujita" {
		t.Errorf("identity = %q/%q", body.Channel, body.BotUsername)
	}
	if !body.Connected || !body.WaitingMode {
		t.Errorf("connected=%v waiting=%v, want both true", body.Connected, body.WaitingMode)
	}
	if body.TrackedUsers != 7 {
		t.Errorf("tracked_users = %d, want 7", body.TrackedUsers)
	}
	if body.StreamUptime == "" {
		t.Error("stream_uptime empty while live")
	}
}

func TestStatusOmitsUptimeWhenOffline(t *testing.T) {
	srv := newTestServer(t, server.Deps{
		Channel: "fantonlord",
		Conn:    &fakeConn{},
	})
	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if _, present := body["stream_uptime"]; present {
		t.Error("stream_uptime present for an offline stream")
	}
}

func TestCorrelationIDHeader(t *testing.T) {
	srv := newTestServer(t, server.Deps{})

	t.Run("generated", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/healthz")
		if err != nil {
			t.Fatalf("GET /healthz: %v", err)
		}
		resp.Body.Close()
		if resp.Header.Get("X-Correlation-ID") == "" {
			t.Error("no X-Correlation-ID generated")
		}
	})

	t.Run("echoed", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
		req.Header.Set("X-Correlation-ID", "abc-123")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("GET /healthz: %v", err)
		}
		resp.Body.Close()
		if got := resp.Header.Get("X-Correlation-ID"); got != "abc-123" {
			t.Errorf("X-Correlation-ID = %q, want echoed abc-123", got)
		}
	})
}

func TestMetricsExposed(t *testing.T) {
	srv := newTestServer(t, server.Deps{})
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
