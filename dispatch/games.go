package dispatch

import (
	"context"
	"regexp"
	"strings"

	"github.com/ejgsdc/corujita/messages"
)

// mentionMatcher checks whether a message addresses the bot by any of its
// aliases (case-insensitive substring match).
type mentionMatcher struct {
	aliases []string
}

func newMentionMatcher(aliases []string) *mentionMatcher {
	lowered := make([]string, 0, len(aliases))
	for _, a := range aliases {
		lowered = append(lowered, strings.ToLower(a))
	}
	return &mentionMatcher{aliases: lowered}
}

func (m *mentionMatcher) matches(lowerText string) bool {
	for _, a := range m.aliases {
		if strings.Contains(lowerText, a) {
			return true
		}
	}
	return false
}

var jokenpoPattern = regexp.MustCompile(`jokenpo\s+(\w+)`)

// jokenpoClassifier plays rock-paper-scissors when the bot is mentioned
// together with "jokenpo <move>". Unrecognized moves are silently ignored.
type jokenpoClassifier struct {
	mention *mentionMatcher
}

func (c *jokenpoClassifier) Name() string { return "jokenpo" }

func (c *jokenpoClassifier) TryHandle(_ context.Context, msg Message) (Outcome, bool) {
	lower := strings.ToLower(msg.Text)
	if !c.mention.matches(lower) || !strings.Contains(lower, "jokenpo") {
		return Outcome{}, false
	}
	m := jokenpoPattern.FindStringSubmatch(lower)
	if m == nil {
		return Outcome{}, false
	}
	userMove, ok := messages.NormalizeMove(m[1])
	if !ok {
		return Outcome{}, false
	}
	botMove := messages.BotMove()
	result := messages.DetermineWinner(userMove, botMove)
	return Outcome{
		Response: messages.JokenpoResponse(msg.DisplayName, botMove, result),
		Kind:     "game",
	}, true
}

// coinFlipClassifier plays cara ou coroa when the bot is mentioned together
// with any word naming a side; the first matching token is the user's call.
type coinFlipClassifier struct {
	mention *mentionMatcher
}

func (c *coinFlipClassifier) Name() string { return "coinflip" }

func (c *coinFlipClassifier) TryHandle(_ context.Context, msg Message) (Outcome, bool) {
	lower := strings.ToLower(msg.Text)
	if !c.mention.matches(lower) {
		return Outcome{}, false
	}
	var call messages.Side
	found := false
	for _, word := range strings.Fields(lower) {
		if side, ok := messages.NormalizeSide(word); ok {
			call = side
			found = true
			break
		}
	}
	if !found {
		return Outcome{}, false
	}
	drawn := messages.FlipCoin()
	return Outcome{
		Response: messages.CoinFlipResponse(msg.DisplayName, drawn, messages.UserWon(call, drawn)),
		Kind:     "game",
	}, true
}
