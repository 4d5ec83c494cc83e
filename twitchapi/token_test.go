package twitchapi_test

import (
	"context"
	"testing"

	"github.com/ejgsdc/corujita/testutil"
	"github.com/ejgsdc/corujita/twitchapi"
)

func TestAppTokenSource(t *testing.T) {
	srv := testutil.NewMockTwitchServer(t)
	srv.MockOAuthTokenResponse("app-token-abc", 3600)

	ts := twitchapi.NewAppTokenSource(context.Background(), "id", "secret", srv.URL+"/oauth2/token")
	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "app-token-abc" {
		t.Errorf("AccessToken = %q, want app-token-abc", tok.AccessToken)
	}

	// The source caches; a second call must not need another round trip.
	again, err := ts.Token()
	if err != nil {
		t.Fatalf("second Token() error = %v", err)
	}
	if again.AccessToken != tok.AccessToken {
		t.Errorf("cached AccessToken = %q, want %q", again.AccessToken, tok.AccessToken)
	}
}
