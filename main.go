// Command corujita runs the chat companion for a single Twitch channel. It:
//   - Loads configuration and initializes structured logging.
//   - Connects to Twitch IRC with a bounded retry policy and keeps the
//     session alive across involuntary drops.
//   - Dispatches every chat message through the classifier pipeline.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ejgsdc/corujita/bot"
	"github.com/ejgsdc/corujita/config"
	"github.com/ejgsdc/corujita/dispatch"
	"github.com/ejgsdc/corujita/notify"
	"github.com/ejgsdc/corujita/server"
	"github.com/ejgsdc/corujita/telemetry"
	"github.com/ejgsdc/corujita/twitchapi"
	"github.com/ejgsdc/corujita/userstate"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT")) // text | json
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.ValidateChatReady(); err != nil {
		slog.Error("chat credentials missing", slog.Any("err", err))
		slog.Error("set TWITCH_OAUTH_TOKEN to a user access token with chat:read/chat:edit scopes " +
			"(e.g. from https://twitchtokengenerator.com/)")
		os.Exit(1)
	}

	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("corujita", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := userstate.NewStore()
	waiting := dispatch.NewWaitingMode()

	transport := bot.NewTwitchTransport(cfg.TwitchBotUsername, cfg.TwitchOAuthToken)
	mgr := bot.NewManager(ctx, transport, cfg.TwitchChannel,
		cfg.WelcomeDelay, cfg.ReconnectDelay, cfg.RetryDelay)

	var games dispatch.GameLookup
	if cfg.HelixEnabled() {
		games = &twitchapi.HelixClient{
			AppTokenSource: twitchapi.NewAppTokenSource(ctx, cfg.TwitchClientID, cfg.TwitchClientSecret, ""),
			ClientID:       cfg.TwitchClientID,
		}
	} else {
		slog.Info("helix client id/secret not set; !game will answer with the fallback")
	}

	notifier := notify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailTo)

	pipeline := dispatch.NewPipeline(dispatch.Options{
		Store:       store,
		Waiting:     waiting,
		BotLogin:    cfg.TwitchBotUsername,
		OwnerLogin:  cfg.OwnerLogin,
		Say:         mgr.Say,
		Channel:     cfg.TwitchChannel,
		BotAliases:  cfg.BotAliases,
		Games:       games,
		Notifier:    notifier,
		StreamStart: mgr.StreamStart,
		PacingMin:   cfg.PacingMin,
		PacingMax:   cfg.PacingMax,
	})
	mgr.SetHandler(func(ctx context.Context, msg bot.IncomingMessage) {
		pipeline.Handle(ctx, dispatch.Message{
			Login:       msg.Login,
			DisplayName: msg.DisplayName,
			Text:        msg.Text,
		})
	})

	// HTTP server (health/status/metrics)
	go func() {
		deps := server.Deps{
			Channel:     cfg.TwitchChannel,
			BotUsername: cfg.TwitchBotUsername,
			Conn:        mgr,
			Users:       store,
			Waiting:     waiting,
		}
		if err := server.Start(ctx, deps, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Periodic eviction of idle user records to bound memory
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.EvictStale(cfg.UserMaxAge); n > 0 {
					slog.Info("evicted idle user records", slog.Int("count", n))
				}
				telemetry.SetTrackedUsers(store.TotalUsers())
			}
		}
	}()

	// Liveness heartbeat
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				slog.Debug("heartbeat",
					slog.String("state", mgr.State().String()),
					slog.Int("tracked_users", store.TotalUsers()))
			}
		}
	}()

	// Initial connect with bounded attempts and an escalating cool-down.
	// Once the session is up, drops are retried inside the manager.
	go superviseConnect(ctx, cfg, mgr)

	// Block until shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")
	if err := mgr.Disconnect(); err != nil {
		slog.Error("disconnect error", slog.Any("err", err))
	}
}

// superviseConnect retries the initial connection up to the configured
// attempt cap, then cools down and starts a fresh attempt cycle. Auth
// failures skip straight to the cool-down: retrying a rejected token is
// pointless, but the process stays up so a corrected one can take over.
func superviseConnect(ctx context.Context, cfg *config.Config, mgr *bot.Manager) {
	attempts := 0
	for ctx.Err() == nil {
		err := mgr.Connect(ctx)
		if err == nil {
			return
		}
		if errors.Is(err, bot.ErrAuthFailed) {
			slog.Warn("waiting for corrected credentials",
				slog.Duration("cooldown", cfg.ConnectCooldown))
			attempts = 0
			if !sleepCtx(ctx, cfg.ConnectCooldown) {
				return
			}
			continue
		}
		attempts++
		slog.Warn("connect attempt failed", slog.Any("err", err),
			slog.Int("attempt", attempts), slog.Int("cap", cfg.ConnectAttempts))
		if attempts >= cfg.ConnectAttempts {
			slog.Warn("connect attempts exhausted; cooling down",
				slog.Duration("cooldown", cfg.ConnectCooldown))
			attempts = 0
			if !sleepCtx(ctx, cfg.ConnectCooldown) {
				return
			}
			continue
		}
		if !sleepCtx(ctx, cfg.ConnectInterval) {
			return
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
