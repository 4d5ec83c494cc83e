package messages

import (
	"math/rand"
	"strings"
)

// Move is a jokenpo (rock-paper-scissors) move. The canonical names are the
// Portuguese ones; English synonyms normalize to them.
type Move string

const (
	Pedra   Move = "pedra"
	Papel   Move = "papel"
	Tesoura Move = "tesoura"
)

var moves = []Move{Pedra, Papel, Tesoura}

// Result of a jokenpo round, from the bot's perspective.
type Result int

const (
	Tie     Result = 0
	BotWins Result = 1
	BotLoses Result = -1
)

// NormalizeMove maps a user token to a move. Unknown tokens return false.
func NormalizeMove(input string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "pedra", "rock":
		return Pedra, true
	case "papel", "paper":
		return Papel, true
	case "tesoura", "scissors":
		return Tesoura, true
	}
	return "", false
}

// BotMove draws a uniformly random move.
func BotMove() Move {
	return moves[rand.Intn(len(moves))]
}

// beats maps each move to the move it defeats.
var beats = map[Move]Move{
	Pedra:   Tesoura,
	Papel:   Pedra,
	Tesoura: Papel,
}

// DetermineWinner applies the cyclic dominance rule: pedra beats tesoura,
// papel beats pedra, tesoura beats papel.
func DetermineWinner(user, bot Move) Result {
	switch {
	case user == bot:
		return Tie
	case beats[bot] == user:
		return BotWins
	default:
		return BotLoses
	}
}

// JokenpoResponse builds the chat reply naming the bot's move and the
// outcome from the bot's perspective.
func JokenpoResponse(username string, bot Move, result Result) string {
	botText := capitalize(string(bot))
	switch result {
	case BotWins:
		return Fill("@{username} "+botText+"! Ganhei fanton7LUL", username)
	case BotLoses:
		return Fill("@{username} "+botText+"! Perdi fanton7Hey", username)
	default:
		return Fill("@{username} "+botText+"! Empate fanton7Hey", username)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
