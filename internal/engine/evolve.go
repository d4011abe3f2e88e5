// Package engine derives display scores and gamification metrics from a
// run's base scores and goal-completion state. All derivations are pure;
// nothing here touches storage.
package engine

import (
	"math"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

const (
	// BaseXPRate converts each base score point into XP.
	BaseXPRate = 10

	// GoalXP is awarded per completed goal.
	GoalXP = 150

	// EvolutionXPRate converts each point of score growth into XP.
	EvolutionXPRate = 100

	// MaxScore is the ceiling for base and current scores.
	MaxScore = 10.0
)

// Evolve returns a copy of categories with CurrentScore populated.
//
// A category with no goals keeps its base score. Otherwise the completion
// ratio of its goals closes a fraction of the gap to 10:
//
//	currentScore = round1(score + (completed/total) * (10 - score))
//
// CurrentScore is therefore bounded by [score, 10] and non-decreasing in
// the number of completed goals.
func Evolve(categories []internal.CategoryRecord) []internal.CategoryRecord {
	out := make([]internal.CategoryRecord, len(categories))
	for i, c := range categories {
		total := len(c.Goals)
		if total == 0 {
			c.CurrentScore = c.Score
			out[i] = c
			continue
		}
		ratio := float64(internal.CompletedCount(c.Goals)) / float64(total)
		bonus := ratio * (MaxScore - c.Score)
		c.CurrentScore = round1(c.Score + bonus)
		out[i] = c
	}
	return out
}

// TotalXP aggregates the three XP sources over evolved categories: base
// standing, discrete goal completions, and positive score evolution.
// Regression never reduces XP below the base+goals floor.
func TotalXP(evolved []internal.CategoryRecord) int {
	baseXP := 0.0
	goalsXP := 0.0
	evolutionXP := 0.0
	for _, c := range evolved {
		baseXP += c.Score * BaseXPRate
		goalsXP += float64(internal.CompletedCount(c.Goals) * GoalXP)
		if diff := c.CurrentScore - c.Score; diff > 0 {
			evolutionXP += diff * EvolutionXPRate
		}
	}
	return int(math.Floor(baseXP + goalsXP + evolutionXP))
}

// Level is the integer level for a score: floor(currentScore).
func Level(score float64) int {
	return int(math.Floor(score))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
