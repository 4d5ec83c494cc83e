package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/ejgsdc/corujita/messages"
	"github.com/ejgsdc/corujita/telemetry"
)

// GameLookup resolves what the channel is currently streaming.
// *twitchapi.HelixClient satisfies it.
type GameLookup interface {
	CurrentGame(ctx context.Context, channel string) (string, error)
}

// RecommendationNotifier forwards a !recomendar submission to the streamer.
// It reports delivery rather than failing; see notify.Notifier.
type RecommendationNotifier interface {
	Notify(ctx context.Context, displayName, game string) bool
}

const recomendarPrefix = "!recomendar"

// commandClassifier answers the fixed command vocabulary. Matching is
// case-insensitive and tolerant of surrounding whitespace.
type commandClassifier struct {
	channel     string
	games       GameLookup
	notifier    RecommendationNotifier
	streamStart func() (time.Time, bool)
	now         func() time.Time
}

func (c *commandClassifier) Name() string { return "commands" }

func (c *commandClassifier) TryHandle(ctx context.Context, msg Message) (Outcome, bool) {
	trimmed := strings.TrimSpace(msg.Text)
	first, rest, _ := strings.Cut(trimmed, " ")

	// The command is the first token so trailing chatter never hides it;
	// matching is case-insensitive and whitespace-trim-tolerant.
	switch strings.ToLower(first) {
	case "!comandos":
		return Outcome{Response: messages.Comandos, Kind: "command"}, true
	case "!social":
		return Outcome{Response: messages.Social, Kind: "command"}, true
	case "!discord":
		return Outcome{Response: messages.Discord, Kind: "command"}, true
	case "!holy":
		return Outcome{Response: messages.Holy, Kind: "command"}, true
	case "!tempo":
		return Outcome{Response: c.uptime(), Kind: "command"}, true
	case "!game":
		return Outcome{Response: c.currentGame(ctx), Kind: "command"}, true
	case recomendarPrefix:
		return Outcome{Response: c.recommend(ctx, msg.DisplayName, strings.TrimSpace(rest)), Kind: "command"}, true
	}

	return Outcome{}, false
}

func (c *commandClassifier) uptime() string {
	start, ok := c.streamStart()
	if !ok {
		return messages.LiveNotStarted
	}
	return messages.UptimeResponse(c.now().Sub(start))
}

// currentGame degrades lookup failure and offline-channel absence to the same
// fixed response; collaborator errors never escape the classifier.
func (c *commandClassifier) currentGame(ctx context.Context) string {
	if c.games == nil {
		return messages.GameUnknown
	}
	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	game, err := c.games.CurrentGame(lookupCtx, c.channel)
	if err != nil {
		telemetry.LoggerWithCorr(ctx).Warn("current game lookup failed", "err", err)
		return messages.GameUnknown
	}
	if game == "" {
		return messages.GameUnknown
	}
	return messages.CurrentGameResponse(game)
}

func (c *commandClassifier) recommend(ctx context.Context, displayName, game string) string {
	if game == "" {
		return messages.RecomendarUsage
	}
	delivered := false
	if c.notifier != nil {
		delivered = c.notifier.Notify(ctx, displayName, game)
	}
	return messages.RecommendationAck(displayName, game, delivered)
}
