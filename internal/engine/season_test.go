package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

func TestCurrentSeason_Bands(t *testing.T) {
	year := 2026
	cases := []struct {
		date   time.Time
		season string
		temp   int
	}{
		{time.Date(year, 1, 15, 12, 0, 0, 0, time.UTC), "Verão", 32},
		{time.Date(year, 4, 10, 12, 0, 0, 0, time.UTC), "Outono", 22},
		{time.Date(year, 7, 15, 12, 0, 0, 0, time.UTC), "Inverno", 14},
		{time.Date(year, 10, 20, 12, 0, 0, 0, time.UTC), "Primavera", 26},
		{time.Date(year, 12, 28, 12, 0, 0, 0, time.UTC), "Verão", 32},
	}
	for _, tc := range cases {
		info := CurrentSeason(tc.date)
		assert.Equal(t, tc.season, info.Season, tc.date.String())
		assert.Equal(t, tc.temp, info.Temp, tc.date.String())
	}
}

func TestCurrentSeason_DayCountStartsAtOne(t *testing.T) {
	info := CurrentSeason(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, info.Day)
}

func TestMacroStats_GroupsAndAverages(t *testing.T) {
	evolved := Evolve([]internal.CategoryRecord{
		{Category: "Carreira & Trabalho", Score: 6},
		{Category: "Finanças & Dinheiro", Score: 8},
		{Category: "Saúde & Fitness", Score: 5},
	})
	stats := MacroStats(evolved)
	assert.Len(t, stats, 6)

	byKey := map[string]MacroStat{}
	for _, s := range stats {
		byKey[s.Key] = s
	}

	finance := byKey["finance"]
	assert.Len(t, finance.Breakdown, 2)
	assert.Equal(t, 7.0, finance.Value)

	health := byKey["health"]
	assert.Len(t, health.Breakdown, 1)
	assert.Equal(t, 5.0, health.Value)

	// groups with no matching category stay at zero
	assert.Empty(t, byKey["leisure"].Breakdown)
	assert.Zero(t, byKey["leisure"].Value)
}
