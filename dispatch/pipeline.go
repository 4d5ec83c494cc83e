// Package dispatch turns one inbound chat line into at most one outbound
// response. Classifiers run in a fixed order and the first hit wins; whatever
// falls through lands in the stage-based onboarding flow.
package dispatch

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ejgsdc/corujita/messages"
	"github.com/ejgsdc/corujita/telemetry"
	"github.com/ejgsdc/corujita/userstate"
)

// Message is one inbound chat line plus sender identity.
type Message struct {
	Login       string // IRC login, already lowercase on the wire
	DisplayName string
	Text        string
}

// Outcome is a classifier decision. An empty Response with ok=true means the
// message was claimed but deliberately answered with silence.
type Outcome struct {
	Response string
	Kind     string // telemetry label: command, game, wait, onboarding
	Paced    bool   // deliver after the human-pacing delay
}

// Classifier inspects a message and either claims it or declines.
type Classifier interface {
	Name() string
	TryHandle(ctx context.Context, msg Message) (Outcome, bool)
}

// serviceBots are known chat automations whose messages never enter the
// pipeline. Matched by substring against normalized login and display name.
var serviceBots = []string{"streamelements", "nightbot", "moobot", "fossabot"}

// Pipeline owns the classifier chain and the onboarding flow.
type Pipeline struct {
	store       *userstate.Store
	waiting     *WaitingMode
	classifiers []Classifier

	botLogin   string
	ownerLogin string

	say        func(text string)
	pacingMin  time.Duration
	pacingMax  time.Duration
	schedule   func(d time.Duration, f func())
	now        func() time.Time
}

// Options wires the pipeline's collaborators.
type Options struct {
	Store      *userstate.Store
	Waiting    *WaitingMode
	BotLogin   string // the bot's own login, for self-message filtering
	OwnerLogin string // privileged identity
	Say        func(text string)

	// Classifier dependencies
	Channel     string
	BotAliases  []string
	Games       GameLookup
	Notifier    RecommendationNotifier
	StreamStart func() (time.Time, bool)

	// Pacing delay bounds for onboarding/wait responses. Zero means no delay.
	PacingMin time.Duration
	PacingMax time.Duration
}

// NewPipeline builds the pipeline with the spec'd classifier order:
// command vocabulary, then bot-mention interactions, then the stage flow.
func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		store:      opts.Store,
		waiting:    opts.Waiting,
		botLogin:   strings.ToLower(opts.BotLogin),
		ownerLogin: strings.ToLower(opts.OwnerLogin),
		say:        opts.Say,
		pacingMin:  opts.PacingMin,
		pacingMax:  opts.PacingMax,
		schedule:   func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		now:        time.Now,
	}
	if p.waiting == nil {
		p.waiting = NewWaitingMode()
	}
	mention := newMentionMatcher(opts.BotAliases)
	p.classifiers = []Classifier{
		&commandClassifier{
			channel:     opts.Channel,
			games:       opts.Games,
			notifier:    opts.Notifier,
			streamStart: opts.StreamStart,
			now:         func() time.Time { return p.now() },
		},
		&waitingToggleClassifier{mention: mention, ownerLogin: p.ownerLogin, waiting: p.waiting},
		&jokenpoClassifier{mention: mention},
		&coinFlipClassifier{mention: mention},
	}
	return p
}

// Waiting exposes the broadcast-wide waiting mode (for /status).
func (p *Pipeline) Waiting() *WaitingMode { return p.waiting }

// Handle processes one inbound message end to end. It never panics: a bad
// message is logged and dropped so the next one is unaffected.
func (p *Pipeline) Handle(ctx context.Context, msg Message) {
	telemetry.MessagesReceived.Inc()
	if p.shouldDrop(msg) {
		telemetry.MessagesDropped.Inc()
		return
	}

	corr := uuid.New().String()
	ctx = telemetry.WithCorrelation(ctx, corr)
	log := telemetry.LoggerWithCorr(ctx)

	defer func() {
		if r := recover(); r != nil {
			telemetry.DispatchPanics.Inc()
			log.Error("dispatch panic recovered",
				slog.Any("panic", r), slog.String("sender", msg.Login))
		}
	}()

	ctx, span := telemetry.StartSpan(ctx, "dispatch", "handle-message")
	defer span.End()

	telemetry.TimeFunc(telemetry.DispatchDuration, func() {
		p.dispatch(ctx, log, msg)
	})
	telemetry.SetTrackedUsers(p.store.TotalUsers())
}

func (p *Pipeline) dispatch(ctx context.Context, log *slog.Logger, msg Message) {
	// Registration happens before any classification.
	p.store.RegisterFirstMessage(msg.DisplayName)

	for _, c := range p.classifiers {
		out, ok := c.TryHandle(ctx, msg)
		if !ok {
			continue
		}
		if out.Response != "" {
			p.deliver(out)
			log.Debug("classifier response",
				slog.String("classifier", c.Name()), slog.String("sender", msg.Login))
		}
		return
	}

	p.stageFlow(log, msg)
}

// stageFlow covers the owner bypass, waiting-mode suppression, and default
// onboarding. Exactly one stage advance per message that reaches it.
func (p *Pipeline) stageFlow(log *slog.Logger, msg Message) {
	stage := p.store.Stage(msg.DisplayName)
	defer p.store.AdvanceStage(msg.DisplayName)

	if p.isOwner(msg) && stage < userstate.StageOnboarded {
		return
	}

	if p.waiting.Active() {
		if stage == userstate.StageNew && p.waiting.MarkNotified(msg.DisplayName) {
			p.deliver(Outcome{
				Response: messages.WaitNotice(msg.DisplayName),
				Kind:     "wait",
				Paced:    true,
			})
			log.Debug("wait notice", slog.String("sender", msg.Login))
		}
		return
	}

	switch stage {
	case userstate.StageNew:
		p.deliver(Outcome{Response: messages.RandomGreeting(msg.DisplayName), Kind: "onboarding", Paced: true})
	case userstate.StageGreeted:
		p.deliver(Outcome{Response: messages.RandomQuestion(msg.DisplayName), Kind: "onboarding", Paced: true})
	}
}

// deliver sends a response now, or after the pacing delay for responses that
// should read as human. Delayed sends never block the next message and their
// relative order across messages is not guaranteed.
func (p *Pipeline) deliver(out Outcome) {
	send := func() {
		p.say(out.Response)
		telemetry.CountResponse(out.Kind)
	}
	if !out.Paced {
		send()
		return
	}
	d := p.pacingDelay()
	if d <= 0 {
		send()
		return
	}
	p.schedule(d, send)
}

func (p *Pipeline) pacingDelay() time.Duration {
	if p.pacingMax <= p.pacingMin {
		return p.pacingMin
	}
	return p.pacingMin + time.Duration(rand.Int63n(int64(p.pacingMax-p.pacingMin)))
}

func (p *Pipeline) isOwner(msg Message) bool {
	return strings.ToLower(msg.Login) == p.ownerLogin
}

// shouldDrop filters the bot's own messages, known service bots, and senders
// without a resolvable display name.
func (p *Pipeline) shouldDrop(msg Message) bool {
	login := strings.ToLower(msg.Login)
	display := strings.ToLower(msg.DisplayName)
	if display == "" {
		return true
	}
	if login == p.botLogin || display == p.botLogin {
		return true
	}
	for _, b := range serviceBots {
		if strings.Contains(login, b) || strings.Contains(display, b) {
			return true
		}
	}
	return false
}
