package engine

import (
	"strings"
	"time"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// SeasonInfo is the ambient stat block shown on the survival dashboard:
// day of the planner year, season name, and flavour temperature.
type SeasonInfo struct {
	Day      int     `json:"day"`
	Season   string  `json:"season"`
	Temp     int     `json:"temp"`
	Rotation float64 `json:"rotation"`
}

// CurrentSeason maps a date onto the planner's seasonal calendar. Days are
// counted from January 1 of the given date's year; the bands follow the
// original southern-hemisphere flavour (the year opens in summer).
func CurrentSeason(at time.Time) SeasonInfo {
	start := time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, at.Location())
	day := int(at.Sub(start).Hours()/24) + 1
	if day < 1 {
		day = 1
	}

	info := SeasonInfo{Day: day, Season: "Verão", Temp: 32}
	switch {
	case day >= 79 && day < 172:
		info.Season, info.Temp = "Outono", 22
	case day >= 172 && day < 265:
		info.Season, info.Temp = "Inverno", 14
	case day >= 265 && day < 355:
		info.Season, info.Temp = "Primavera", 26
	}
	info.Rotation = float64(day) / 365 * 360
	return info
}

// MacroStat aggregates related categories into one of the six dashboard
// areas, averaging their current scores.
type MacroStat struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	Value     float64      `json:"value"`
	Breakdown []MacroEntry `json:"breakdown"`
}

type MacroEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

var macroGroups = []struct {
	key   string
	label string
	keys  []string
}{
	{"finance", "Carreira & Finanças", []string{"Carreira", "Trabalho", "Finanças", "Dinheiro", "Negócios", "Provisão"}},
	{"social", "Relacionamentos", []string{"Amor", "Romance", "Família", "Social", "Amizades", "Relacionamentos", "Vínculos"}},
	{"health", "Saúde & Autocuidado", []string{"Saúde", "Fitness", "Exercícios", "Mental", "Emocional", "Sono", "Autocuidado"}},
	{"environment", "Ambiente & Estrutura", []string{"Ambiente", "Casa", "Organização", "Segurança", "Estrutura"}},
	{"growth", "Crescimento & Interno", []string{"Crescimento", "Pessoal", "Espiritualidade", "Valores", "Estudos", "Aprendizado"}},
	{"leisure", "Lazer & Prazer", []string{"Recreação", "Diversão", "Lazer", "Prazer", "Expressão", "Hobby"}},
}

// MacroStats groups evolved categories by keyword match and averages each
// group's current score. Categories may contribute to multiple groups.
func MacroStats(evolved []internal.CategoryRecord) []MacroStat {
	out := make([]MacroStat, 0, len(macroGroups))
	for _, g := range macroGroups {
		stat := MacroStat{Key: g.key, Label: g.label}
		sum := 0.0
		for _, c := range evolved {
			if !matchesGroup(c.Category, g.keys) {
				continue
			}
			score := c.CurrentScore
			if score == 0 {
				score = c.Score
			}
			stat.Breakdown = append(stat.Breakdown, MacroEntry{Name: c.Category, Score: score})
			sum += score
		}
		if len(stat.Breakdown) > 0 {
			stat.Value = round1(sum / float64(len(stat.Breakdown)))
		}
		out = append(out, stat)
	}
	return out
}

func matchesGroup(category string, keys []string) bool {
	lc := strings.ToLower(category)
	for _, k := range keys {
		if strings.Contains(lc, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
