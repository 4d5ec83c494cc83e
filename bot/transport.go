package bot

import (
	"errors"
	"fmt"
	"strings"

	twitch "github.com/gempir/go-twitch-irc/v4"
)

// ErrAuthFailed marks credential rejections. The connection manager never
// retries these; retrying the same token cannot succeed.
var ErrAuthFailed = errors.New("chat authentication failed")

// IncomingMessage is one chat line as delivered by the transport.
type IncomingMessage struct {
	Login       string
	DisplayName string
	Text        string
}

// Transport is the chat-client surface the connection manager drives. The
// production implementation wraps the Twitch IRC client; tests substitute a
// scripted fake.
type Transport interface {
	OnConnect(func())
	OnMessage(func(IncomingMessage))
	Join(channel string)
	Say(channel, text string)
	// Connect blocks until the session ends. A clean close after Disconnect
	// returns nil; credential rejections wrap ErrAuthFailed.
	Connect() error
	Disconnect() error
}

// TwitchTransport adapts the gempir IRC client to the Transport interface.
type TwitchTransport struct {
	client *twitch.Client
}

// NewTwitchTransport builds the IRC-backed transport. The OAuth token is
// normalized to carry the "oauth:" prefix the IRC handshake expects.
func NewTwitchTransport(username, oauthToken string) *TwitchTransport {
	if !strings.HasPrefix(oauthToken, "oauth:") {
		oauthToken = "oauth:" + oauthToken
	}
	return &TwitchTransport{client: twitch.NewClient(username, oauthToken)}
}

func (t *TwitchTransport) OnConnect(f func()) {
	t.client.OnConnect(f)
}

func (t *TwitchTransport) OnMessage(f func(IncomingMessage)) {
	t.client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		f(IncomingMessage{
			Login:       msg.User.Name,
			DisplayName: msg.User.DisplayName,
			Text:        msg.Message,
		})
	})
}

func (t *TwitchTransport) Join(channel string) {
	t.client.Join(channel)
}

func (t *TwitchTransport) Say(channel, text string) {
	t.client.Say(channel, text)
}

func (t *TwitchTransport) Connect() error {
	err := t.client.Connect()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, twitch.ErrClientDisconnected):
		// Clean close after Disconnect().
		return nil
	case errors.Is(err, twitch.ErrLoginAuthenticationFailed):
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	default:
		return err
	}
}

func (t *TwitchTransport) Disconnect() error {
	return t.client.Disconnect()
}
