// Package twitchapi contains a minimal Helix client used to look up what the
// channel is currently streaming, using an app access token.
package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

// HelixClient provides the single lookup the bot needs.
type HelixClient struct {
	AppTokenSource oauth2.TokenSource
	ClientID       string
	HTTPClient     *http.Client
}

func (hc *HelixClient) http() *http.Client {
	if hc.HTTPClient != nil {
		return hc.HTTPClient
	}
	return http.DefaultClient
}

// CurrentGame returns the name of the game the channel is streaming, or an
// empty string when the channel is offline or has no category set. Callers
// treat absence and lookup failure the same way.
func (hc *HelixClient) CurrentGame(ctx context.Context, channel string) (string, error) {
	if channel == "" {
		return "", fmt.Errorf("channel empty")
	}
	tok, err := hc.AppTokenSource.Token()
	if err != nil {
		return "", err
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.twitch.tv/helix/streams", nil)
	q := req.URL.Query()
	q.Set("user_login", channel)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Client-Id", hc.ClientID)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp, err := hc.http().Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("helix streams request failed: %s", resp.Status)
	}
	var body struct {
		Data []struct {
			GameName string `json:"game_name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Data) == 0 {
		// Offline; not an error.
		return "", nil
	}
	return body.Data[0].GameName, nil
}
