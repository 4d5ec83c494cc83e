package messages

import (
	"strings"
	"testing"
)

func TestNormalizeMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
		ok    bool
	}{
		{"pedra", Pedra, true},
		{"rock", Pedra, true},
		{"PEDRA", Pedra, true},
		{" papel ", Papel, true},
		{"paper", Papel, true},
		{"tesoura", Tesoura, true},
		{"scissors", Tesoura, true},
		{"lagarto", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeMove(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeMove(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDetermineWinnerAllPairs(t *testing.T) {
	tests := []struct {
		user, bot Move
		want      Result
	}{
		{Pedra, Pedra, Tie},
		{Papel, Papel, Tie},
		{Tesoura, Tesoura, Tie},
		{Pedra, Tesoura, BotLoses},
		{Papel, Pedra, BotLoses},
		{Tesoura, Papel, BotLoses},
		{Pedra, Papel, BotWins},
		{Papel, Tesoura, BotWins},
		{Tesoura, Pedra, BotWins},
	}
	for _, tt := range tests {
		if got := DetermineWinner(tt.user, tt.bot); got != tt.want {
			t.Errorf("DetermineWinner(%s, %s) = %d, want %d", tt.user, tt.bot, got, tt.want)
		}
		// Deterministic given both moves.
		if again := DetermineWinner(tt.user, tt.bot); again != tt.want {
			t.Errorf("DetermineWinner(%s, %s) not deterministic", tt.user, tt.bot)
		}
	}
}

func TestBotMoveIsValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		if _, ok := NormalizeMove(string(BotMove())); !ok {
			t.Fatalf("BotMove() produced an invalid move")
		}
	}
}

func TestJokenpoResponse(t *testing.T) {
	tests := []struct {
		result Result
		want   string
	}{
		{BotWins, "@ana Pedra! Ganhei fanton7LUL"},
		{BotLoses, "@ana Pedra! Perdi fanton7Hey"},
		{Tie, "@ana Pedra! Empate fanton7Hey"},
	}
	for _, tt := range tests {
		if got := JokenpoResponse("ana", Pedra, tt.result); got != tt.want {
			t.Errorf("JokenpoResponse(result=%d) = %q, want %q", tt.result, got, tt.want)
		}
	}
	// Bot's move is named capitalized.
	if got := JokenpoResponse("ana", Tesoura, Tie); !strings.Contains(got, "Tesoura!") {
		t.Errorf("JokenpoResponse() = %q, want bot move capitalized", got)
	}
}
