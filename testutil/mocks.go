// Package testutil holds shared test doubles: a scripted chat transport for
// connection-lifecycle tests and a mock Twitch Helix server.
package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ejgsdc/corujita/bot"
)

// FakeTransport is a scripted bot.Transport. Each queued item answers one
// Connect call: either an immediate failure or a live session that stays up
// until End is called.
type FakeTransport struct {
	mu        sync.Mutex
	onConnect func()
	onMessage func(bot.IncomingMessage)
	joined    []string
	said      []string
	script    []scriptItem
}

type scriptItem struct {
	err     error
	session *FakeSession
}

// FakeSession represents one established connection. End unblocks the
// transport's Connect call with the given session-terminating error.
type FakeSession struct {
	done chan error
	once sync.Once
}

// End terminates the session; Connect returns err (nil means clean close).
func (s *FakeSession) End(err error) {
	s.once.Do(func() { s.done <- err })
}

// NewFakeTransport returns an empty-scripted transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// QueueFailure scripts the next Connect call to fail immediately.
func (f *FakeTransport) QueueFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, scriptItem{err: err})
}

// QueueSession scripts the next Connect call to establish a session. The
// returned session stays up until End is called.
func (f *FakeTransport) QueueSession() *FakeSession {
	s := &FakeSession{done: make(chan error, 1)}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, scriptItem{session: s})
	return s
}

func (f *FakeTransport) OnConnect(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onConnect = fn
}

func (f *FakeTransport) OnMessage(fn func(bot.IncomingMessage)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onMessage = fn
}

func (f *FakeTransport) Join(channel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joined = append(f.joined, channel)
}

func (f *FakeTransport) Say(channel, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, text)
}

func (f *FakeTransport) Connect() error {
	f.mu.Lock()
	if len(f.script) == 0 {
		f.mu.Unlock()
		return errors.New("fake transport: no scripted session")
	}
	item := f.script[0]
	f.script = f.script[1:]
	onConnect := f.onConnect
	f.mu.Unlock()

	if item.err != nil {
		return item.err
	}
	if onConnect != nil {
		onConnect()
	}
	return <-item.session.done
}

func (f *FakeTransport) Disconnect() error {
	return nil
}

// Deliver feeds one inbound message through the registered handler.
func (f *FakeTransport) Deliver(msg bot.IncomingMessage) {
	f.mu.Lock()
	fn := f.onMessage
	f.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

// Said snapshots the lines sent so far.
func (f *FakeTransport) Said() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.said))
	copy(out, f.said)
	return out
}

// Joined snapshots the joined channels.
func (f *FakeTransport) Joined() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.joined))
	copy(out, f.joined)
	return out
}

// MockTwitchServer mocks Twitch Helix API responses.
type MockTwitchServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockTwitchServer creates a new mock Twitch API server.
func NewMockTwitchServer(t *testing.T) *MockTwitchServer {
	t.Helper()
	m := &MockTwitchServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockStreamsResponse adds a handler for the /helix/streams endpoint.
func (m *MockTwitchServer) MockStreamsResponse(streams []map[string]interface{}) {
	m.Handlers["/helix/streams"] = func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{"data": streams}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}

// MockOAuthTokenResponse adds a handler for the OAuth token endpoint.
func (m *MockTwitchServer) MockOAuthTokenResponse(accessToken string, expiresIn int) {
	m.Handlers["/oauth2/token"] = func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"access_token": accessToken,
			"expires_in":   expiresIn,
			"token_type":   "bearer",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}
