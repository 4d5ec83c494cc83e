package dispatch

import (
	"context"
	"strings"
	"sync"

	"github.com/ejgsdc/corujita/messages"
	"github.com/ejgsdc/corujita/telemetry"
)

// WaitingMode is the broadcast-wide "streamer stepped away" state. While
// active, new arrivals get a one-time wait notice instead of onboarding.
// The notified set is cleared on every activation/deactivation transition.
type WaitingMode struct {
	mu       sync.Mutex
	active   bool
	notified map[string]struct{}
}

// NewWaitingMode returns an inactive waiting mode.
func NewWaitingMode() *WaitingMode {
	return &WaitingMode{notified: make(map[string]struct{})}
}

// Active reports whether waiting mode is on.
func (w *WaitingMode) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Activate turns waiting mode on, clearing the notified set on transition.
func (w *WaitingMode) Activate() {
	w.setActive(true)
}

// Deactivate turns waiting mode off, clearing the notified set on transition.
func (w *WaitingMode) Deactivate() {
	w.setActive(false)
}

func (w *WaitingMode) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != active {
		w.notified = make(map[string]struct{})
	}
	w.active = active
	telemetry.UpdateWaitingGauge(active)
}

// MarkNotified records the user as notified and reports whether this was the
// first time. Keys are case-insensitive.
func (w *WaitingMode) MarkNotified(username string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := strings.ToLower(username)
	if _, seen := w.notified[key]; seen {
		return false
	}
	w.notified[key] = struct{}{}
	return true
}

// Trigger phrases for the owner's waiting-mode toggle. The away variants are
// checked before the back phrase.
var (
	awayPhrases = []string{"ja volto", "já volto"}
	backPhrase  = "voltei"
)

// waitingToggleClassifier lets the channel owner flip waiting mode by
// mentioning the bot with a trigger phrase.
type waitingToggleClassifier struct {
	mention    *mentionMatcher
	ownerLogin string
	waiting    *WaitingMode
}

func (c *waitingToggleClassifier) Name() string { return "waiting-toggle" }

func (c *waitingToggleClassifier) TryHandle(_ context.Context, msg Message) (Outcome, bool) {
	if strings.ToLower(msg.Login) != c.ownerLogin {
		return Outcome{}, false
	}
	lower := strings.ToLower(msg.Text)
	if !c.mention.matches(lower) {
		return Outcome{}, false
	}
	for _, phrase := range awayPhrases {
		if strings.Contains(lower, phrase) {
			c.waiting.Activate()
			return Outcome{Response: messages.AwayAck, Kind: "command"}, true
		}
	}
	if strings.Contains(lower, backPhrase) {
		c.waiting.Deactivate()
		return Outcome{Response: messages.BackAck, Kind: "command"}, true
	}
	return Outcome{}, false
}
