package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ejgsdc/corujita/messages"
)

type handlers struct {
	deps Deps
}

// handleHealthz responds to liveness probes. The bot has no hard external
// dependency to check; a running process is a live process.
func (h *handlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusResponse struct {
	Channel      string `json:"channel"`
	BotUsername  string `json:"bot_username"`
	Connected    bool   `json:"connected"`
	WaitingMode  bool   `json:"waiting_mode"`
	TrackedUsers int    `json:"tracked_users"`
	StreamUptime string `json:"stream_uptime,omitempty"`
}

// handleStatus reports the live view an operator cares about.
func (h *handlers) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{
		Channel:     h.deps.Channel,
		BotUsername: h.deps.BotUsername,
	}
	if h.deps.Conn != nil {
		resp.Connected = h.deps.Conn.Connected()
		if start, ok := h.deps.Conn.StreamStart(); ok {
			resp.StreamUptime = messages.FormatUptime(time.Since(start))
		}
	}
	if h.deps.Users != nil {
		resp.TrackedUsers = h.deps.Users.TotalUsers()
	}
	if h.deps.Waiting != nil {
		resp.WaitingMode = h.deps.Waiting.Active()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
