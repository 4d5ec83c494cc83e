package twitchapi

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the Twitch OAuth2 client-credentials endpoint.
const DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

// NewAppTokenSource returns a cached, auto-refreshing app access token source.
// NOTE: app tokens cannot be used for IRC chat; chat needs a user token with
// chat:read/chat:edit scopes.
func NewAppTokenSource(ctx context.Context, clientID, clientSecret, tokenURL string) oauth2.TokenSource {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return cfg.TokenSource(ctx)
}
