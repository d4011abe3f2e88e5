// Package catalog holds the static life-wheel category data: display
// metadata and the question set used for quiz-based scoring.
package catalog

import "math"

type Category struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Questions   []string `json:"questions"`
}

// Categories returns the catalog in display order.
func Categories() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

// Lookup returns the category with the given name.
func Lookup(name string) (Category, bool) {
	for _, c := range ordered {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// QuizAverage computes a 0-10 base score from quiz answers, rounded to one
// decimal. Answers outside [0,10] are clamped. Empty input yields 0.
func QuizAverage(answers []float64) float64 {
	if len(answers) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range answers {
		if a < 0 {
			a = 0
		} else if a > 10 {
			a = 10
		}
		sum += a
	}
	return math.Round(sum/float64(len(answers))*10) / 10
}

var ordered = []Category{
	{
		Name:        "Carreira & Trabalho",
		Description: "Satisfação no trabalho e crescimento profissional",
		Color:       "#ef4444",
		Questions: []string{
			"De 1 a 10, quão satisfeito você está com suas responsabilidades atuais?",
			"Qual nota você dá para as suas chances reais de crescimento hoje?",
			"O quanto você sente que seu trabalho está alinhado ao seu propósito?",
			"Como você avalia o equilíbrio entre seu trabalho e sua vida pessoal?",
			"Quão valorizado e reconhecido você se sente no seu ambiente profissional?",
		},
	},
	{
		Name:        "Finanças & Dinheiro",
		Description: "Segurança financeira e gestão do dinheiro",
		Color:       "#f97316",
		Questions: []string{
			"Qual nota você dá para o quanto sua renda atual supre suas necessidades?",
			"De 1 a 10, quão sob controle estão suas dívidas e gastos mensais?",
			"O quanto você se sente seguro financeiramente para lidar com imprevistos?",
			"Qual nota você dá para a clareza do seu plano de investimentos ou poupança?",
			"Quão alta é a sua sensação de paz e tranquilidade em relação ao dinheiro?",
		},
	},
	{
		Name:        "Saúde & Fitness",
		Description: "Saúde física e nível de condicionamento",
		Color:       "#eab308",
		Questions: []string{
			"De 1 a 10, qual nota você dá para a sua disposição física diária?",
			"Como você avalia a qualidade do seu sono atualmente?",
			"Qual nota você dá para a qualidade da sua alimentação no dia a dia?",
			"Quão satisfeito você está com a sua frequência de exercícios físicos?",
			"De 1 a 10, o quanto você está feliz com a sua imagem corporal e saúde?",
		},
	},
	{
		Name:        "Família",
		Description: "Relacionamentos com membros da família",
		Color:       "#22c55e",
		Questions: []string{
			"Qual nota você dá para a qualidade do tempo que passa com sua família?",
			"De 1 a 10, quão harmônico e leve é o ambiente nas suas relações familiares?",
			"O quanto você se sente presente e conectado com as pessoas que ama?",
			"Qual nota você dá para a sua habilidade de resolver conflitos em família?",
			"Quão satisfeito você está com o apoio que recebe dos seus familiares?",
		},
	},
	{
		Name:        "Amor & Romance",
		Description: "Relacionamentos românticos e intimidade",
		Color:       "#10b981",
		Questions: []string{
			"De 1 a 10, quão realizado você se sente em sua vida afetiva/romântica?",
			"Qual nota você dá para o nível de cumplicidade e respeito na relação?",
			"O quanto você se sente amado e desejado pelo seu parceiro(a)?",
			"Como você avalia a qualidade da comunicação e intimidade entre vocês?",
			"De 1 a 10, quão satisfeito você está com o tempo dedicado ao romance?",
		},
	},
	{
		Name:        "Vida Social & Amizades",
		Description: "Amizades e conexões sociais",
		Color:       "#06b6d4",
		Questions: []string{
			"Qual nota você dá para o nível de confiança que tem em seus amigos?",
			"De 1 a 10, quão satisfeito você está com a sua vida social atual?",
			"O quanto você sente que pertence e é aceito nos seus grupos sociais?",
			"Qual nota você dá para a alegria e inspiração que suas amizades te trazem?",
			"Quão livre e autêntico você se sente quando está com seus amigos?",
		},
	},
	{
		Name:        "Crescimento Pessoal",
		Description: "Aprendizado e desenvolvimento pessoal",
		Color:       "#3b82f6",
		Questions: []string{
			"De 1 a 10, o quanto você sente que está aprendendo coisas novas?",
			"Qual nota você dá para o seu nível de desenvolvimento intelectual hoje?",
			"Quão satisfeito você está com o tempo que dedica aos seus estudos e leituras?",
			"O quanto você sente que evoluiu como pessoa no último ano?",
			"De 1 a 10, qual nota você dá para a clareza das suas metas de vida?",
		},
	},
	{
		Name:        "Recreação & Diversão",
		Description: "Hobbies e atividades de lazer",
		Color:       "#6366f1",
		Questions: []string{
			"Qual nota você dá para a qualidade dos seus momentos de lazer?",
			"De 1 a 10, o quanto você se permite relaxar e brincar sem sentir culpa?",
			"Quão satisfeito você está com as suas opções de entretenimento e hobbies?",
			"O quanto você sente que seus momentos de diversão recarregam suas baterias?",
			"De 1 a 10, qual nota você dá para a leveza da sua rotina fora do trabalho?",
		},
	},
	{
		Name:        "Ambiente Físico",
		Description: "Satisfação com casa e espaço de vida",
		Color:       "#8b5cf6",
		Questions: []string{
			"Qual nota você dá para o conforto e acolhimento da sua casa hoje?",
			"De 1 a 10, quão satisfeito você está com a organização dos seus espaços?",
			"O quanto seu ambiente atual te ajuda a ser produtivo e focado?",
			"Qual nota você dá para a segurança e localização de onde você vive?",
			"De 1 a 10, o quanto o seu ambiente físico reflete quem você é?",
		},
	},
	{
		Name:        "Contribuição & Impacto",
		Description: "Retribuir e fazer a diferença",
		Color:       "#a855f7",
		Questions: []string{
			"De 1 a 10, o quanto você sente que suas ações ajudam outras pessoas?",
			"Qual nota você dá para o seu nível de envolvimento em causas sociais?",
			"Quão satisfeito você está com o impacto que deixa no mundo hoje?",
			"O quanto você se sente realizado ao praticar atos de generosidade?",
			"De 1 a 10, qual nota você dá para a sua utilidade para a sociedade?",
		},
	},
	{
		Name:        "Espiritualidade",
		Description: "Práticas espirituais e crenças",
		Color:       "#d946ef",
		Questions: []string{
			"Qual nota você dá para o seu nível de paz interior e conexão espiritual?",
			"De 1 a 10, quão satisfeito você está com sua prática meditativa ou de fé?",
			"O quanto você sente que sua vida possui um significado profundo?",
			"Qual nota você dá para a sua resiliência baseada em suas crenças?",
			"De 1 a 10, o quanto você vive de acordo com seus valores espirituais?",
		},
	},
	{
		Name:        "Saúde Mental & Emocional",
		Description: "Bem-estar emocional e saúde mental",
		Color:       "#ec4899",
		Questions: []string{
			"Qual nota você dá para a sua habilidade de lidar com o estresse?",
			"De 1 a 10, o quanto você se sente no controle das suas emoções?",
			"Quão satisfeito você está com o seu nível de autoestima atual?",
			"Qual nota você dá para o tempo que dedica ao seu autoconhecimento?",
			"De 1 a 10, quão alta é a sua sensação frequente de paz de espírito?",
		},
	},
}
