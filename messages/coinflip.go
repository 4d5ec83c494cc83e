package messages

import (
	"math/rand"
	"strings"
)

// Side of a coin flip. Canonical names are the Portuguese ones.
type Side string

const (
	Cara  Side = "cara"
	Coroa Side = "coroa"
)

// NormalizeSide maps a user token to a coin side. Unknown tokens return false.
func NormalizeSide(input string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "cara", "heads":
		return Cara, true
	case "coroa", "tails":
		return Coroa, true
	}
	return "", false
}

// FlipCoin draws a uniformly random side.
func FlipCoin() Side {
	if rand.Intn(2) == 0 {
		return Cara
	}
	return Coroa
}

// UserWon reports whether the user's call matched the draw.
func UserWon(call, drawn Side) bool {
	return call == drawn
}

// CoinFlipResponse builds the chat reply naming the drawn side and whether
// the caller got it right.
func CoinFlipResponse(username string, drawn Side, userWon bool) string {
	drawnText := capitalize(string(drawn))
	if userWon {
		return Fill("@{username} "+drawnText+"! Acertou fanton7LUL", username)
	}
	return Fill("@{username} "+drawnText+"! Não foi dessa vez fanton7Hey", username)
}
