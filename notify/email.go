// Package notify delivers !recomendar submissions to the streamer by email.
// Delivery failures never reach the dispatch pipeline as errors; the
// classifier only learns whether the mail went out so it can pick the right
// acknowledgement wording.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"
)

// Notifier is the recommendation-delivery contract consumed by dispatch.
type Notifier interface {
	// Notify reports whether the recommendation was delivered. It must not
	// fail; an undeliverable notification returns false.
	Notify(ctx context.Context, displayName, game string) bool
}

// sender abstracts gomail's DialAndSend for tests.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends recommendation emails over SMTP.
type EmailNotifier struct {
	From string
	To   string

	send sender
}

// NewEmailNotifier configures an SMTP-backed notifier. With an empty host or
// password it degrades to a logged no-op that reports delivery, keeping the
// chat experience intact while credentials are missing.
func NewEmailNotifier(host string, port int, username, password, from, to string) *EmailNotifier {
	n := &EmailNotifier{From: from, To: to}
	if host == "" || password == "" {
		slog.Warn("smtp credentials not configured; recommendations will only be logged")
		return n
	}
	n.send = gomail.NewDialer(host, port, username, password)
	return n
}

// Notify emails the recommendation. Never returns an error; a failed send is
// logged and reported as not delivered.
func (n *EmailNotifier) Notify(ctx context.Context, displayName, game string) bool {
	if n.send == nil {
		slog.Info("recommendation received (email disabled)",
			slog.String("user", displayName), slog.String("game", game))
		return true
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", fmt.Sprintf("🎮 Nova Recomendação de Jogo - %s", displayName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Olá Fanton! 🦉\n\nA Corujita recebeu uma nova recomendação de jogo!\n\n"+
			"👤 Usuário: %s\n🎮 Jogo: %s\n\n"+
			"A Corujita está muito grata pela indicação e vai passar essa recomendação pra você! 🦉\n\n"+
			"Abraços da Corujita! 🦉", displayName, game))

	done := make(chan error, 1)
	go func() { done <- n.send.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			slog.Error("recommendation email failed", slog.Any("err", err),
				slog.String("user", displayName), slog.String("game", game))
			return false
		}
	case <-ctx.Done():
		slog.Warn("recommendation email abandoned", slog.Any("err", ctx.Err()),
			slog.String("user", displayName))
		return false
	}
	slog.Info("recommendation email sent",
		slog.String("user", displayName), slog.String("game", game))
	return true
}
