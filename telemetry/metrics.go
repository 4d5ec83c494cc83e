// Package telemetry provides Prometheus metrics, correlation-id aware logging
// helpers, and OpenTelemetry tracing setup.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	MessagesReceived  prometheus.Counter
	MessagesDropped   prometheus.Counter
	ResponsesSent     *prometheus.CounterVec // by kind: command, game, onboarding, wait, welcome
	DispatchPanics    prometheus.Counter
	ReconnectAttempts prometheus.Counter
	Reconnects        prometheus.Counter

	// Histograms (seconds)
	DispatchDuration prometheus.Observer

	// Gauges
	ConnectedGauge    prometheus.Gauge // 1=connected,0=disconnected
	TrackedUsersGauge prometheus.Gauge
	WaitingModeGauge  prometheus.Gauge // 1=active,0=inactive
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{Name: "corujita_messages_received_total", Help: "Chat messages received"})
		MessagesDropped = promauto.NewCounter(prometheus.CounterOpts{Name: "corujita_messages_dropped_total", Help: "Chat messages dropped before dispatch (self, service bots, no display name)"})
		ResponsesSent = promauto.NewCounterVec(prometheus.CounterOpts{Name: "corujita_responses_sent_total", Help: "Responses sent to chat"}, []string{"kind"})
		DispatchPanics = promauto.NewCounter(prometheus.CounterOpts{Name: "corujita_dispatch_panics_total", Help: "Recovered panics while handling a message"})
		ReconnectAttempts = promauto.NewCounter(prometheus.CounterOpts{Name: "corujita_reconnect_attempts_total", Help: "Reconnect attempts after involuntary disconnects"})
		Reconnects = promauto.NewCounter(prometheus.CounterOpts{Name: "corujita_reconnects_total", Help: "Successful reconnections"})
		DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "corujita_dispatch_duration_seconds", Help: "Message dispatch duration seconds", Buckets: prometheus.DefBuckets})
		ConnectedGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "corujita_connected", Help: "Chat connection up=1 down=0"})
		TrackedUsersGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "corujita_tracked_users", Help: "Users currently tracked by the onboarding store"})
		WaitingModeGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "corujita_waiting_mode", Help: "Waiting mode active=1 inactive=0"})
	})
}

// UpdateConnectedGauge sets the gauge to 1 if up else 0.
func UpdateConnectedGauge(up bool) {
	if ConnectedGauge != nil {
		if up {
			ConnectedGauge.Set(1)
		} else {
			ConnectedGauge.Set(0)
		}
	}
}

// UpdateWaitingGauge sets the gauge to 1 if waiting mode is active else 0.
func UpdateWaitingGauge(active bool) {
	if WaitingModeGauge != nil {
		if active {
			WaitingModeGauge.Set(1)
		} else {
			WaitingModeGauge.Set(0)
		}
	}
}

// SetTrackedUsers records the current onboarding store size.
func SetTrackedUsers(n int) {
	if TrackedUsersGauge != nil {
		TrackedUsersGauge.Set(float64(n))
	}
}

// CountResponse increments the sent counter for a response kind.
func CountResponse(kind string) {
	if ResponsesSent != nil {
		ResponsesSent.WithLabelValues(kind).Inc()
	}
}

// TimeFunc measures the duration of fn and records it in obs if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------

type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns the correlation id or an empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with a corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
