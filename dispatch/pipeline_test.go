package dispatch_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ejgsdc/corujita/dispatch"
	"github.com/ejgsdc/corujita/messages"
	"github.com/ejgsdc/corujita/telemetry"
	"github.com/ejgsdc/corujita/userstate"
)

// stubGames scripts the current-game lookup.
type stubGames struct {
	game string
	err  error
}

func (s *stubGames) CurrentGame(context.Context, string) (string, error) {
	return s.game, s.err
}

// stubNotifier records recommendations and scripts the delivery result.
type stubNotifier struct {
	delivered bool
	calls     []string
}

func (s *stubNotifier) Notify(_ context.Context, displayName, game string) bool {
	s.calls = append(s.calls, displayName+"|"+game)
	return s.delivered
}

type harness struct {
	pipeline *dispatch.Pipeline
	store    *userstate.Store
	waiting  *dispatch.WaitingMode
	games    *stubGames
	notifier *stubNotifier

	mu   sync.Mutex
	said []string

	streamStart time.Time
	streamLive  bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	telemetry.Init()
	h := &harness{
		store:    userstate.NewStore(),
		waiting:  dispatch.NewWaitingMode(),
		games:    &stubGames{},
		notifier: &stubNotifier{delivered: true},
	}
	h.pipeline = dispatch.NewPipeline(dispatch.Options{
		Store:      h.store,
		Waiting:    h.waiting,
		BotLogin:   "corujita",
		OwnerLogin: "fantonlord",
		Say: func(text string) {
			h.mu.Lock()
			h.said = append(h.said, text)
			h.mu.Unlock()
		},
		Channel:     "fantonlord",
		BotAliases:  []string{"heycorujita", "@heycorujita", "corujita", "@corujita"},
		Games:       h.games,
		Notifier:    h.notifier,
		StreamStart: func() (time.Time, bool) { return h.streamStart, h.streamLive },
		// Zero pacing keeps delivery synchronous in tests.
	})
	return h
}

func (h *harness) send(login, display, text string) {
	h.pipeline.Handle(context.Background(), dispatch.Message{
		Login:       login,
		DisplayName: display,
		Text:        text,
	})
}

func (h *harness) responses() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.said))
	copy(out, h.said)
	return out
}

func (h *harness) lastResponse(t *testing.T) string {
	t.Helper()
	rs := h.responses()
	if len(rs) == 0 {
		t.Fatal("no response sent")
	}
	return rs[len(rs)-1]
}

func TestOnboardingFlow(t *testing.T) {
	h := newHarness(t)

	h.send("novata", "Novata", "oi gente")
	if got := len(h.responses()); got != 1 {
		t.Fatalf("responses after first message = %d, want 1", got)
	}
	if !strings.Contains(h.lastResponse(t), "@Novata") {
		t.Errorf("greeting = %q, want it to address @Novata", h.lastResponse(t))
	}
	if got := h.store.Stage("novata"); got != userstate.StageGreeted {
		t.Errorf("stage after greeting = %d, want %d", got, userstate.StageGreeted)
	}

	h.send("novata", "Novata", "tudo bem e com vocês?")
	if got := len(h.responses()); got != 2 {
		t.Fatalf("responses after second message = %d, want 2", got)
	}
	if !strings.Contains(h.lastResponse(t), "@Novata") {
		t.Errorf("question = %q, want it to address @Novata", h.lastResponse(t))
	}
	if got := h.store.Stage("novata"); got != userstate.StageOnboarded {
		t.Errorf("stage after question = %d, want %d", got, userstate.StageOnboarded)
	}

	h.send("novata", "Novata", "terceira mensagem")
	if got := len(h.responses()); got != 2 {
		t.Errorf("responses after third message = %d, want 2 (no more onboarding)", got)
	}
}

func TestCommandShortCircuitsMiniGames(t *testing.T) {
	h := newHarness(t)

	// Matches both the command vocabulary and the jokenpo pattern; only the
	// command's response may be produced.
	h.send("ana", "Ana", "!recomendar corujita jokenpo pedra")
	rs := h.responses()
	if len(rs) != 1 {
		t.Fatalf("responses = %d, want exactly 1", len(rs))
	}
	for _, bad := range []string{"Ganhei", "Perdi", "Empate"} {
		if strings.Contains(rs[0], bad) {
			t.Errorf("response = %q, looks like a jokenpo result", rs[0])
		}
	}
	if len(h.notifier.calls) != 1 {
		t.Errorf("notifier calls = %d, want 1", len(h.notifier.calls))
	}
}

func TestCommandsDoNotAdvanceStage(t *testing.T) {
	h := newHarness(t)
	h.send("ana", "Ana", "!social")
	if got := h.store.Stage("ana"); got != userstate.StageNew {
		t.Errorf("stage after command = %d, want %d", got, userstate.StageNew)
	}
	// The next plain message still gets the greeting.
	h.send("ana", "Ana", "opa")
	if got := len(h.responses()); got != 2 {
		t.Fatalf("responses = %d, want 2", got)
	}
	if !strings.Contains(h.lastResponse(t), "@Ana") {
		t.Errorf("greeting = %q, want it addressed to @Ana", h.lastResponse(t))
	}
}

func TestOwnerOnboardingBypass(t *testing.T) {
	h := newHarness(t)

	h.send("fantonlord", "FantonLord", "bom dia chat")
	h.send("fantonlord", "FantonLord", "preparando a live")
	if got := len(h.responses()); got != 0 {
		t.Fatalf("responses to owner = %d, want 0", got)
	}
	if got := h.store.Stage("fantonlord"); got != userstate.StageOnboarded {
		t.Errorf("owner stage = %d, want %d", got, userstate.StageOnboarded)
	}
}

func TestDropRules(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name           string
		login, display string
	}{
		{"own message", "corujita", "Corujita"},
		{"service bot exact", "nightbot", "Nightbot"},
		{"service bot substring", "streamelements", "StreamElements"},
		{"no display name", "ghost", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(h.responses())
			h.send(tt.login, tt.display, "oi!")
			if got := len(h.responses()); got != before {
				t.Errorf("dropped sender produced a response")
			}
		})
	}
}

func TestJokenpoEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.store.RegisterFirstMessage("Gamer")
	h.store.AdvanceStage("Gamer")
	h.store.AdvanceStage("Gamer") // fully onboarded, so only the game can answer

	h.send("gamer", "Gamer", "corujita jokenpo pedra")
	got := h.lastResponse(t)
	if !strings.Contains(got, "@Gamer") {
		t.Errorf("jokenpo response = %q, want it addressed to @Gamer", got)
	}
	hasOutcome := strings.Contains(got, "Ganhei") || strings.Contains(got, "Perdi") || strings.Contains(got, "Empate")
	if !hasOutcome {
		t.Errorf("jokenpo response = %q, want an outcome declaration", got)
	}
}

func TestJokenpoRequiresMentionAndMove(t *testing.T) {
	h := newHarness(t)
	h.store.RegisterFirstMessage("Gamer")
	h.store.AdvanceStage("Gamer")
	h.store.AdvanceStage("Gamer")

	tests := []struct {
		name, text string
	}{
		{"no mention", "jokenpo pedra"},
		{"no move", "corujita jokenpo"},
		{"invalid move", "corujita jokenpo lagarto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(h.responses())
			h.send("gamer", "Gamer", tt.text)
			if got := len(h.responses()); got != before {
				t.Errorf("unexpected response to %q: %q", tt.text, h.lastResponse(t))
			}
		})
	}
}

func TestCoinFlipEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.store.RegisterFirstMessage("Gamer")
	h.store.AdvanceStage("Gamer")
	h.store.AdvanceStage("Gamer")

	h.send("gamer", "Gamer", "@corujita eu escolho coroa")
	got := h.lastResponse(t)
	if !strings.Contains(got, "Acertou") && !strings.Contains(got, "Não foi dessa vez") {
		t.Errorf("coin flip response = %q, want a verdict", got)
	}
}

func TestGameLookupErrorDoesNotEscape(t *testing.T) {
	h := newHarness(t)
	h.games.err = errors.New("boom")

	// A lookup error degrades to the fallback text; next messages keep working.
	h.send("ana", "Ana", "!game")
	if got := h.lastResponse(t); got != messages.GameUnknown {
		t.Errorf("!game with failing lookup = %q, want %q", got, messages.GameUnknown)
	}
	h.send("ana", "Ana", "oi")
	if got := len(h.responses()); got != 2 {
		t.Errorf("responses = %d, want 2 (fallback + greeting)", got)
	}
}
