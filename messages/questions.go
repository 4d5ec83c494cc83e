package messages

import "math/rand"

// questions are sent on a user's second tracked message. They are meant to
// hand the streamer an easy conversation starter, so they stay light.
var questions = []string{
	// Jogos / gameplay
	"fala @{username}, que tipo de jogo você curte jogar mais? fanton7Hey",
	"@{username}, você anda jogando mais pra se divertir ou pra competir mesmo? fanton7Hey",
	"@{username}, tem algum jogo que sempre acaba voltando a jogar? fanton7Hey",
	"@{username}, qual foi o último jogo que te prendeu de verdade?",
	"@{username}, você é mais de jogar sozinho ou com a galera?",
	"@{username}, prefere jogo mais calmo ou aquele que já começa no caos? fanton7LUL",
	"@{username}, tem algum jogo que você ama mas passa raiva ao mesmo tempo? fanton7Hey",
	"@{username}, já teve jogo que você largou e depois voltou?",
	"@{username}, costuma zerar jogo ou vai jogando até cansar?",
	"@{username}, qual tipo de jogo mais te prende por horas?",

	// Experiência assistindo lives
	"@{username}, você costuma assistir live fazendo outra coisa ou focado mesmo?",
	"@{username}, prefere live mais conversa ou mais gameplay?",
	"@{username}, o que mais te faz ficar numa live até o fim?",
	"@{username}, você curte chat mais caótico ou mais tranquilo? fanton7Hey",
	"@{username}, normalmente você fala no chat ou fica mais de boa?",
	"@{username}, já aconteceu de você entrar numa live e perder a noção do tempo?",
	"@{username}, o que mais te incomoda numa live?",
	"@{username}, você prefere lives longas ou algo mais direto?",
	"@{username}, costuma assistir live todo dia ou só quando dá?",

	// Resenha / cotidiano leve
	"@{username}, hoje foi um dia mais tranquilo ou puxado?",
	"@{username}, você tá mais cansado ou de boa agora?",
	"@{username}, hoje sua paciência tá alta ou já foi de base? fanton7LUL",
	"@{username}, teve algo hoje que te deixou de bom humor?",
	"@{username}, quando o dia é ruim, você prefere descansar ou se distrair?",
	"@{username}, você costuma desligar a cabeça como?",
	"@{username}, hoje é mais dia de rir ou só existir mesmo? fanton7Hey",

	// Humor / personalidade
	"@{username}, você é mais calmo ou estressa fácil jogando?",
	"@{username}, costuma rir de coisa besta ou nem tanto?",
	"@{username}, você é do tipo competitivo até em jogo bobo?",
	"@{username}, costuma levar jogo muito a sério ou só curtir?",
	"@{username}, já tiltou feio em algum jogo? fanton7Hey",
	"@{username}, você é mais persistente ou larga quando enche?",
	"@{username}, prefere aprender tudo ou ir descobrindo jogando?",

	// Conteúdo / gosto geral
	"@{username}, além de jogar, o que você curte fazer pra passar o tempo?",
	"@{username}, você costuma consumir mais vídeo curto ou live longa?",
	"@{username}, prefere coisa mais tranquila ou sempre algo animado?",
	"@{username}, quando sobra tempo, você vai mais pra jogo, série ou vídeo?",
	"@{username}, você costuma repetir conteúdo que gosta ou sempre buscar coisa nova?",

	// Emoção / conexão
	"@{username}, o que normalmente te anima quando o dia tá meio meh? fanton7Hey",
	"@{username}, você é do tipo que guarda as coisas ou fala tudo logo?",
	"@{username}, quando algo dá errado, você ri ou se irrita? fanton7Hey",
	"@{username}, hoje você tá mais de boa ou meio no limite?",
	"@{username}, costuma se cobrar muito ou deixa fluir?",

	// Papo mais solto
	"@{username}, você curte mais rotina ou gosta quando tudo muda?",
	"@{username}, costuma planejar as coisas ou decide na hora?",
	"@{username}, você é mais noturno ou funciona melhor de dia?",
	"@{username}, hoje você tá mais falante ou só acompanhando?",
	"@{username}, prefere papo mais sério ou zoeira?",

	// Meta / interação
	"@{username}, o que mais te chama atenção numa live?",
	"@{username}, você costuma interagir quando o streamer puxa papo?",
	"@{username}, prefere quando o streamer lê o chat toda hora ou só às vezes?",
	"@{username}, você gosta mais quando a live flui ou quando tem muita interação?",

	// Variações finais
	"@{username}, se fosse escolher agora, jogo difícil ou relax?",
	"@{username}, você curte desafio ou prefere algo mais de boa?",
	"@{username}, hoje tá mais pra focar ou só desligar a mente?",
	"@{username}, você costuma jogar até cansar ou sabe a hora de parar?",
	"@{username}, já teve jogo que te surpreendeu de verdade? fanton7Hey",
}

// RandomQuestion returns a random question addressed to username.
func RandomQuestion(username string) string {
	return Fill(questions[rand.Intn(len(questions))], username)
}

// QuestionCount reports the size of the question catalog.
func QuestionCount() int { return len(questions) }
