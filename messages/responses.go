package messages

import (
	"fmt"
	"strings"
	"time"
)

// Welcome is broadcast a few seconds after the bot joins the channel.
const Welcome = "Ae mais uma live, bora que vai começar pessoal! fanton7Hey"

// Fixed command replies.
const (
	Comandos = "Comandos: !comandos !social !tempo !discord !holy !game !recomendar <jogo> fanton7Hey"
	Social   = "Segue o Fanton nas redes: twitter.com/fantonlord | instagram.com/fantonlord | youtube.com/@fantonlord fanton7Hey"
	Discord  = "Cola no Discord da galera: discord.gg/fantonlord fanton7Hey"
	Holy     = "Bora de Holy! Usa o cupom FANTON pra apoiar a live fanton7Hey"
)

// Stream uptime replies.
const (
	LiveNotStarted = "A live ainda não começou! Segura aí que já vai fanton7Hey"
	liveUptime     = "Estamos ao vivo há {uptime}! fanton7Hey"
)

// Current-game replies.
const (
	gameCurrent = "Agora o Fanton está jogando {game}! fanton7Hey"
	GameUnknown = "Não consegui descobrir o jogo de agora... me ajuda com um !recomendar <jogo>? fanton7Hey"
)

// Recommendation replies.
const (
	RecomendarUsage        = "Pra recomendar um jogo use: !recomendar <nome do jogo> fanton7Hey"
	recomendarDelivered    = "Valeu @{username}! Recomendação de \"{game}\" anotada e enviada pro Fanton fanton7Hey"
	recomendarNotDelivered = "Valeu @{username}! Anotei \"{game}\" aqui e passo pro Fanton assim que der fanton7Hey"
)

// Waiting-mode replies.
const (
	AwayAck    = "Beleza, vou avisar o pessoal que você já volta! fanton7Hey"
	BackAck    = "Bora! Avisando a galera que você voltou fanton7Hey"
	waitNotice = "Opa @{username}, o Fanton deu uma saidinha mas já volta! Aguenta aí fanton7Hey"
)

// UptimeResponse formats the elapsed live time for !tempo.
func UptimeResponse(elapsed time.Duration) string {
	return strings.Replace(liveUptime, "{uptime}", FormatUptime(elapsed), 1)
}

// FormatUptime renders a duration as "<H>h <M>m <S>s", omitting the hour and
// minute segments when they are zero. The seconds segment is always present.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// CurrentGameResponse names the game currently being streamed.
func CurrentGameResponse(game string) string {
	return strings.Replace(gameCurrent, "{game}", game, 1)
}

// RecommendationAck acknowledges a !recomendar submission. The wording
// differs depending on whether the notification was delivered, but both
// variants thank the sender and repeat the recommended text.
func RecommendationAck(username, game string, delivered bool) string {
	tpl := recomendarNotDelivered
	if delivered {
		tpl = recomendarDelivered
	}
	return strings.Replace(Fill(tpl, username), "{game}", game, 1)
}

// WaitNotice tells a newly arrived user the streamer is briefly away.
func WaitNotice(username string) string {
	return Fill(waitNotice, username)
}
