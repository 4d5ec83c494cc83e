// Package config loads environment variables and provides a typed Config used
// across the service. It applies sensible defaults so the binary can run
// locally with minimal setup. For required chat credentials, use
// ValidateChatReady.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Twitch chat
	TwitchChannel     string
	TwitchBotUsername string
	TwitchOAuthToken  string
	OwnerLogin        string
	BotAliases        []string

	// Twitch Helix (current-game lookup); optional
	TwitchClientID     string
	TwitchClientSecret string

	// Recommendation email; optional
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string

	// Pacing and timers
	PacingMin      time.Duration
	PacingMax      time.Duration
	WelcomeDelay   time.Duration
	ReconnectDelay time.Duration
	RetryDelay     time.Duration

	// Supervisor initial-connect policy
	ConnectAttempts int
	ConnectInterval time.Duration
	ConnectCooldown time.Duration

	// User-record eviction
	UserMaxAge    time.Duration
	SweepInterval time.Duration

	// HTTP
	HTTPAddr string
}

// Load reads environment variables and applies defaults. Missing chat
// credentials don't fail here; ValidateChatReady guards the connect path.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchChannel = getenv("TWITCH_CHANNEL", "fantonlord")
	cfg.TwitchBotUsername = getenv("TWITCH_BOT_USERNAME", "corujita")
	cfg.TwitchOAuthToken = os.Getenv("TWITCH_OAUTH_TOKEN")
	cfg.OwnerLogin = strings.ToLower(getenv("OWNER_LOGIN", "fantonlord"))

	aliases := getenv("BOT_ALIASES", "heycorujita,@heycorujita,corujita,@corujita")
	for _, a := range strings.Split(aliases, ",") {
		if a = strings.TrimSpace(a); a != "" {
			cfg.BotAliases = append(cfg.BotAliases, a)
		}
	}

	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	cfg.TwitchClientSecret = os.Getenv("TWITCH_CLIENT_SECRET")

	cfg.SMTPHost = getenv("SMTP_HOST", "smtp.gmail.com")
	port, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port
	cfg.SMTPUsername = getenv("SMTP_USERNAME", "ejgsdc@gmail.com")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.MailFrom = getenv("MAIL_FROM", cfg.SMTPUsername)
	cfg.MailTo = getenv("MAIL_TO", cfg.SMTPUsername)

	if cfg.PacingMin, err = getdur("PACING_MIN", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.PacingMax, err = getdur("PACING_MAX", 4*time.Second); err != nil {
		return nil, err
	}
	if cfg.PacingMax < cfg.PacingMin {
		return nil, fmt.Errorf("PACING_MAX (%s) below PACING_MIN (%s)", cfg.PacingMax, cfg.PacingMin)
	}
	if cfg.WelcomeDelay, err = getdur("WELCOME_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReconnectDelay, err = getdur("RECONNECT_DELAY", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = getdur("RETRY_DELAY", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.ConnectAttempts, err = strconv.Atoi(getenv("CONNECT_ATTEMPTS", "5"))
	if err != nil || cfg.ConnectAttempts < 1 {
		return nil, fmt.Errorf("invalid CONNECT_ATTEMPTS: %q", getenv("CONNECT_ATTEMPTS", "5"))
	}
	if cfg.ConnectInterval, err = getdur("CONNECT_INTERVAL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ConnectCooldown, err = getdur("CONNECT_COOLDOWN", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.UserMaxAge, err = getdur("USER_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getdur("SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")

	return cfg, nil
}

// ValidateChatReady checks required fields for connecting to chat.
func (c *Config) ValidateChatReady() error {
	if c.TwitchChannel == "" || c.TwitchBotUsername == "" || c.TwitchOAuthToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_CHANNEL, TWITCH_BOT_USERNAME, TWITCH_OAUTH_TOKEN")
	}
	return nil
}

// HelixEnabled reports whether the current-game lookup can be used.
func (c *Config) HelixEnabled() bool {
	return c.TwitchClientID != "" && c.TwitchClientSecret != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
