package dispatch_test

import (
	"strings"
	"testing"

	"github.com/ejgsdc/corujita/messages"
)

func TestOwnerTogglesWaitingMode(t *testing.T) {
	h := newHarness(t)

	h.send("fantonlord", "FantonLord", "corujita ja volto pessoal")
	if got := h.lastResponse(t); got != messages.AwayAck {
		t.Fatalf("away toggle response = %q, want %q", got, messages.AwayAck)
	}
	if !h.waiting.Active() {
		t.Fatal("waiting mode not active after away phrase")
	}

	h.send("fantonlord", "FantonLord", "@corujita voltei!")
	if got := h.lastResponse(t); got != messages.BackAck {
		t.Fatalf("back toggle response = %q, want %q", got, messages.BackAck)
	}
	if h.waiting.Active() {
		t.Fatal("waiting mode still active after back phrase")
	}
}

func TestAwayPhraseAccentVariant(t *testing.T) {
	h := newHarness(t)
	h.send("fantonlord", "FantonLord", "corujita já volto")
	if !h.waiting.Active() {
		t.Error("accented away phrase did not activate waiting mode")
	}
}

func TestToggleRequiresMention(t *testing.T) {
	h := newHarness(t)
	h.send("fantonlord", "FantonLord", "ja volto pessoal")
	if h.waiting.Active() {
		t.Error("away phrase without bot mention toggled waiting mode")
	}
}

func TestNonOwnerCannotToggle(t *testing.T) {
	h := newHarness(t)
	h.send("ana", "Ana", "corujita ja volto")
	if h.waiting.Active() {
		t.Error("non-owner toggled waiting mode")
	}
}

func TestWaitNoticeOncePerUser(t *testing.T) {
	h := newHarness(t)
	h.waiting.Activate()

	h.send("ana", "Ana", "oi gente")
	rs := h.responses()
	if len(rs) != 1 || !strings.Contains(rs[0], "@Ana") {
		t.Fatalf("responses = %v, want one wait notice for @Ana", rs)
	}

	// Repeats from the same user stay silent.
	h.send("ana", "Ana", "cadê todo mundo?")
	if got := len(h.responses()); got != 1 {
		t.Errorf("responses after repeat = %d, want still 1", got)
	}

	// A different new arrival gets their own notice.
	h.send("bia", "Bia", "boa noite")
	rs = h.responses()
	if len(rs) != 2 || !strings.Contains(rs[1], "@Bia") {
		t.Fatalf("responses = %v, want a second notice for @Bia", rs)
	}
}

func TestWaitingSuppressesOnboardedUsers(t *testing.T) {
	h := newHarness(t)
	h.send("ana", "Ana", "oi") // greeted before waiting mode starts
	h.waiting.Activate()

	before := len(h.responses())
	h.send("ana", "Ana", "e aí")
	if got := len(h.responses()); got != before {
		t.Errorf("non-new user got a response during waiting mode")
	}
}

func TestDeactivateClearsNotifiedSet(t *testing.T) {
	h := newHarness(t)
	h.waiting.Activate()
	if !h.waiting.MarkNotified("Ana") {
		t.Fatal("first MarkNotified = false, want true")
	}
	if h.waiting.MarkNotified("ana") {
		t.Fatal("MarkNotified is not case-insensitive")
	}
	h.waiting.Deactivate()
	h.waiting.Activate()
	if !h.waiting.MarkNotified("Ana") {
		t.Error("notified set survived a deactivate/activate cycle")
	}
}

func TestCommandsStillAnswerDuringWaiting(t *testing.T) {
	h := newHarness(t)
	h.waiting.Activate()
	h.send("ana", "Ana", "!social")
	if got := h.lastResponse(t); got != messages.Social {
		t.Errorf("!social during waiting = %q, want %q", got, messages.Social)
	}
}
