// Package messages holds the static response catalogs and the pure game
// logic (jokenpo, cara ou coroa) used by the dispatch pipeline. Templates
// carry a single {username} placeholder resolved by literal replacement.
package messages

import (
	"math/rand"
	"strings"
)

// greetings are sent on a user's first tracked message.
var greetings = []string{
	"Olá @{username}, tudo bem? fanton7Hey",
	"Oi @{username}, como vai? fanton7Hey",
	"E aí @{username}, beleza? fanton7Hey",
	"Fala @{username}, tranquilo? fanton7Hey",
	"Opa @{username}, tudo certo? fanton7Hey",
	"Salve @{username}, como está? fanton7Hey",
	"Hey @{username}, tudo joia? fanton7Hey",
	"Eae @{username}, de boa? fanton7Hey",
	"Oi @{username}, como está aí? fanton7Hey",
	"Olá @{username}, tudo tranquilo? fanton7Hey",
	"Fala aí @{username}, beleza? fanton7Hey",
	"Opa @{username}, tudo bem contigo? fanton7Hey",
	"E aí @{username}, como vai a vida? fanton7Hey",
	"Salve @{username}, tudo certo por aí? fanton7Hey",
	"Hey @{username}, como está? fanton7Hey",
	"Oi @{username}, tudo bem? fanton7Hey",
	"Olá @{username}, como vai? fanton7Hey",
	"Fala @{username}, tranquilo por aí? fanton7Hey",
	"Opa @{username}, beleza? fanton7Hey",
	"Salve @{username}, beleza? fanton7Hey",
	"Hey @{username}, como está aí? fanton7Hey",
	"Oi @{username}, tudo joia? fanton7Hey",
	"E aí @{username}, tudo bem? fanton7Hey",
	"Fala aí @{username}, tranquilo? fanton7Hey",
	"Opa @{username}, como está? fanton7Hey",
	"Salve @{username}, tranquilo? fanton7Hey",
	"Hey @{username}, tudo certo? fanton7Hey",
	"Oi @{username}, de boa? fanton7Hey",
	"Olá @{username}, como vai a vida? fanton7Hey",
	"Eae @{username}, tudo bem contigo? fanton7Hey",
	"Opa @{username}, como está por aí? fanton7Hey",
	"Hey @{username}, tudo bem? fanton7Hey",
	"Oi @{username}, como vai aí? fanton7Hey",
	"Olá @{username}, de boa? fanton7Hey",
	"Eae @{username}, tudo certo? fanton7Hey",
	"Fala @{username}, beleza? fanton7Hey",
}

// Fill resolves the {username} placeholder in a template.
func Fill(template, username string) string {
	return strings.Replace(template, "{username}", username, 1)
}

// RandomGreeting returns a random greeting addressed to username.
func RandomGreeting(username string) string {
	return Fill(greetings[rand.Intn(len(greetings))], username)
}

// GreetingCount reports the size of the greeting catalog.
func GreetingCount() int { return len(greetings) }
