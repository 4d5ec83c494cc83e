// Package bot owns the chat connection lifecycle: connect, detect drops,
// tell manual from involuntary disconnects, and retry with at most one
// pending reconnect timer. It is the only component that touches the
// transport handle.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ejgsdc/corujita/messages"
	"github.com/ejgsdc/corujita/telemetry"
)

// State of the chat connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// MessageHandler consumes inbound chat lines; the dispatch pipeline's Handle
// method bound to its message type satisfies it after adaptation in main.
type MessageHandler func(ctx context.Context, msg IncomingMessage)

// Manager is the connection state machine over a Transport.
type Manager struct {
	transport Transport
	channel   string

	welcomeDelay   time.Duration
	reconnectDelay time.Duration // after an involuntary drop
	retryDelay     time.Duration // after a failed reconnect attempt (longer)

	mu           sync.Mutex
	state        State
	manual       bool
	retryCount   int
	retryTimer   *time.Timer
	welcomeTimer *time.Timer
	attemptCh    chan error // open while an initial Connect call awaits the session
	reconnecting bool
	streamStart  time.Time
	streamLive   bool
	handler      MessageHandler
	ctx          context.Context
}

// NewManager wires the transport events and joins the channel. Call
// SetHandler before Connect so inbound messages have somewhere to go.
func NewManager(ctx context.Context, transport Transport, channel string, welcomeDelay, reconnectDelay, retryDelay time.Duration) *Manager {
	m := &Manager{
		transport:      transport,
		channel:        channel,
		welcomeDelay:   welcomeDelay,
		reconnectDelay: reconnectDelay,
		retryDelay:     retryDelay,
		ctx:            ctx,
	}
	transport.OnConnect(m.handleConnected)
	transport.OnMessage(m.handleMessage)
	transport.Join(channel)
	return m
}

// SetHandler installs the inbound message consumer.
func (m *Manager) SetHandler(h MessageHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

// Connect runs one connection attempt and blocks until the session is
// established or the attempt fails. Failures propagate to the caller; the
// supervisor owns the initial-connect retry policy. Once established, later
// involuntary drops are retried internally.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateDisconnected {
		m.mu.Unlock()
		return nil
	}
	if m.manual {
		m.mu.Unlock()
		return errors.New("connection manager is terminally disconnected")
	}
	m.state = StateConnecting
	attempt := make(chan error, 1)
	m.attemptCh = attempt
	m.mu.Unlock()

	slog.Info("connecting to chat", slog.String("channel", m.channel))
	go m.runSession()

	select {
	case err := <-attempt:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runSession drives one transport session; Connect blocks until disconnect.
func (m *Manager) runSession() {
	err := m.transport.Connect()
	m.sessionEnded(err)
}

// handleConnected fires on transport session establishment, for both the
// initial connect and reconnects.
func (m *Manager) handleConnected() {
	m.mu.Lock()
	m.state = StateConnected
	wasReconnect := m.reconnecting
	m.reconnecting = false
	m.retryCount = 0
	m.streamStart = time.Now()
	m.streamLive = true
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	m.welcomeTimer = time.AfterFunc(m.welcomeDelay, m.sayWelcome)
	ch := m.attemptCh
	m.attemptCh = nil
	m.mu.Unlock()

	telemetry.UpdateConnectedGauge(true)
	if wasReconnect {
		telemetry.Reconnects.Inc()
		slog.Info("reconnected to chat", slog.String("channel", m.channel))
	} else {
		slog.Info("connected to chat", slog.String("channel", m.channel))
	}
	if ch != nil {
		ch <- nil
	}
}

func (m *Manager) sayWelcome() {
	m.Say(messages.Welcome)
	telemetry.CountResponse("welcome")
}

// sessionEnded fires when transport.Connect returns, whatever the reason.
func (m *Manager) sessionEnded(err error) {
	m.mu.Lock()
	wasConnected := m.state == StateConnected
	m.state = StateDisconnected
	manual := m.manual
	if m.welcomeTimer != nil {
		m.welcomeTimer.Stop()
		m.welcomeTimer = nil
	}
	ch := m.attemptCh
	m.attemptCh = nil
	m.mu.Unlock()

	telemetry.UpdateConnectedGauge(false)

	if errors.Is(err, ErrAuthFailed) {
		m.logAuthFailure(err)
	}

	if ch != nil {
		// The session never came up: this was a failed connect attempt.
		if err == nil {
			err = errors.New("connection closed before session was established")
		}
		ch <- err
		return
	}

	if manual {
		slog.Info("disconnected from chat (manual)", slog.String("channel", m.channel))
		return
	}

	if errors.Is(err, ErrAuthFailed) {
		// Not recoverable by retrying the same credential.
		return
	}

	if wasConnected {
		slog.Warn("disconnected from chat; scheduling reconnect",
			slog.String("channel", m.channel), slog.Any("err", err),
			slog.Duration("delay", m.reconnectDelay))
		m.scheduleReconnect(m.reconnectDelay)
		return
	}

	// A reconnect attempt failed: try again after the longer delay,
	// indefinitely. The attempt cap lives in the supervisor's
	// initial-connect path only.
	slog.Warn("reconnect attempt failed; will retry",
		slog.String("channel", m.channel), slog.Any("err", err),
		slog.Duration("delay", m.retryDelay))
	m.scheduleReconnect(m.retryDelay)
}

// scheduleReconnect arms the retry timer unless one is already pending.
func (m *Manager) scheduleReconnect(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.manual || m.retryTimer != nil {
		return
	}
	m.retryTimer = time.AfterFunc(delay, m.attemptReconnect)
}

func (m *Manager) attemptReconnect() {
	m.mu.Lock()
	m.retryTimer = nil
	if m.state == StateConnected {
		// The transport recovered on its own while the timer was pending.
		m.mu.Unlock()
		return
	}
	if m.manual {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.reconnecting = true
	m.retryCount++
	count := m.retryCount
	m.mu.Unlock()

	telemetry.ReconnectAttempts.Inc()
	slog.Info("attempting reconnect", slog.String("channel", m.channel), slog.Int("attempt", count))
	go m.runSession()
}

// Disconnect tears the connection down for good: pending retries are
// cancelled and no new ones are scheduled.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	m.manual = true
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	if m.welcomeTimer != nil {
		m.welcomeTimer.Stop()
		m.welcomeTimer = nil
	}
	m.state = StateDisconnected
	m.mu.Unlock()

	slog.Info("disconnecting from chat", slog.String("channel", m.channel))
	return m.transport.Disconnect()
}

// Say sends a line to the channel.
func (m *Manager) Say(text string) {
	m.transport.Say(m.channel, text)
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connected reports whether the session is up.
func (m *Manager) Connected() bool {
	return m.State() == StateConnected
}

// StreamStart returns the instant the current session came up, used as the
// !tempo reference. ok is false before the first successful connect.
func (m *Manager) StreamStart() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streamStart, m.streamLive
}

func (m *Manager) handleMessage(msg IncomingMessage) {
	m.mu.Lock()
	h := m.handler
	ctx := m.ctx
	m.mu.Unlock()
	if h == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	h(ctx, msg)
}

// logAuthFailure surfaces credential rejections with remediation steps. These
// are never retried automatically; the process stays up awaiting a corrected
// token.
func (m *Manager) logAuthFailure(err error) {
	slog.Error("chat authentication failed", slog.Any("err", err))
	slog.Error("to fix: generate a fresh user access token with chat:read and chat:edit scopes " +
		"(e.g. https://twitchtokengenerator.com/), set TWITCH_OAUTH_TOKEN in .env, and restart " +
		"or wait for the supervisor to reconnect. App access tokens do not work for chat.")
}
