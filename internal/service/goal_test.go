package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

func TestNewGoal_Defaults(t *testing.T) {
	g := NewGoal(&GoalRequest{Intention: "Ler mais", SuccessCriteria: "12 livros no ano"})
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, internal.GoalStatusActive, g.Status)
	assert.False(t, g.Completed)
	assert.Empty(t, g.Milestones)
	assert.Empty(t, g.Reflections)
}

func TestUpdateGoal_ShallowMergeAndPassthrough(t *testing.T) {
	goals := []internal.Goal{
		NewGoal(&GoalRequest{Intention: "a"}),
		NewGoal(&GoalRequest{Intention: "b"}),
	}
	newIntention := "a2"
	out, err := UpdateGoal(goals, goals[0].ID, &GoalUpdate{Intention: &newIntention})
	require.NoError(t, err)
	assert.Equal(t, "a2", out[0].Intention)
	assert.Equal(t, "b", out[1].Intention)
	// input untouched
	assert.Equal(t, "a", goals[0].Intention)
}

func TestUpdateGoal_CompletionPairsStatus(t *testing.T) {
	goals := []internal.Goal{NewGoal(&GoalRequest{Intention: "a"})}
	done := true
	out, err := UpdateGoal(goals, goals[0].ID, &GoalUpdate{Completed: &done})
	require.NoError(t, err)
	assert.True(t, out[0].Completed)
	assert.Equal(t, internal.GoalStatusConcluded, out[0].Status)

	undone := false
	out, err = UpdateGoal(out, goals[0].ID, &GoalUpdate{Completed: &undone})
	require.NoError(t, err)
	assert.False(t, out[0].Completed)
	assert.Equal(t, internal.GoalStatusActive, out[0].Status)
}

func TestRemoveGoal(t *testing.T) {
	goals := []internal.Goal{
		NewGoal(&GoalRequest{Intention: "a"}),
		NewGoal(&GoalRequest{Intention: "b"}),
	}
	out, err := RemoveGoal(goals, goals[0].ID)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].Intention)

	_, err = RemoveGoal(out, "missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestMilestoneAndStrategyTree(t *testing.T) {
	goals := []internal.Goal{NewGoal(&GoalRequest{Intention: "a"})}
	goalID := goals[0].ID

	out, err := AddMilestone(goals, goalID, &MilestoneRequest{Description: "primeiro marco"})
	require.NoError(t, err)
	require.Len(t, out[0].Milestones, 1)
	milestoneID := out[0].Milestones[0].ID

	out, err = AddStrategy(out, goalID, milestoneID, &StrategyRequest{Text: "estudar 30min/dia"})
	require.NoError(t, err)
	require.Len(t, out[0].Milestones[0].Strategies, 1)
	strategyID := out[0].Milestones[0].Strategies[0].ID

	done := true
	out, err = UpdateStrategy(out, goalID, milestoneID, strategyID, &StrategyUpdate{Completed: &done})
	require.NoError(t, err)
	assert.True(t, out[0].Milestones[0].Strategies[0].Completed)

	out, err = RemoveStrategy(out, goalID, milestoneID, strategyID)
	require.NoError(t, err)
	assert.Empty(t, out[0].Milestones[0].Strategies)

	out, err = RemoveMilestone(out, goalID, milestoneID)
	require.NoError(t, err)
	assert.Empty(t, out[0].Milestones)

	_, err = AddStrategy(out, goalID, "missing", &StrategyRequest{Text: "x"})
	assert.ErrorIs(t, err, ErrMilestoneNotFound)
}

func TestCommitReflection_RequiresWhatWorkedAndAdjustments(t *testing.T) {
	goals := []internal.Goal{NewGoal(&GoalRequest{Intention: "a"})}

	_, err := CommitReflection(goals, goals[0].ID, &ReflectionRequest{
		WhatWorked: "", Adjustments: "mudar abordagem", Type: internal.ReflectionConclusion,
	}, time.Now())
	assert.Error(t, err)

	_, err = CommitReflection(goals, goals[0].ID, &ReflectionRequest{
		WhatWorked: "rotina", Adjustments: "", Type: internal.ReflectionConclusion,
	}, time.Now())
	assert.Error(t, err)

	// nothing was appended by the refused commits
	assert.Empty(t, goals[0].Reflections)
}

func TestCommitReflection_ConclusionCompletesAtomically(t *testing.T) {
	goals := []internal.Goal{NewGoal(&GoalRequest{Intention: "a"})}

	out, err := CommitReflection(goals, goals[0].ID, &ReflectionRequest{
		WhatWorked:  "consistência",
		Adjustments: "manter ritmo",
		Type:        internal.ReflectionConclusion,
	}, time.Now())
	require.NoError(t, err)

	g := out[0]
	assert.True(t, g.Completed)
	assert.Equal(t, internal.GoalStatusConcluded, g.Status)
	assert.Len(t, g.Reflections, 1)
	assert.Equal(t, internal.ReflectionConclusion, g.Reflections[0].Type)
}

func TestCommitReflection_ExtensionReactivates(t *testing.T) {
	g := NewGoal(&GoalRequest{Intention: "a"})
	g.Status = internal.GoalStatusReflectionPending

	out, err := CommitReflection([]internal.Goal{g}, g.ID, &ReflectionRequest{
		WhatWorked:  "parcial",
		Adjustments: "novo prazo",
		Type:        internal.ReflectionExtension,
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, internal.GoalStatusActive, out[0].Status)
	assert.False(t, out[0].Completed)
	assert.Len(t, out[0].Reflections, 1)
}

func TestCommitReflection_RejectsUnknownType(t *testing.T) {
	goals := []internal.Goal{NewGoal(&GoalRequest{Intention: "a"})}
	_, err := CommitReflection(goals, goals[0].ID, &ReflectionRequest{
		WhatWorked: "x", Adjustments: "y", Type: "banana",
	}, time.Now())
	assert.Error(t, err)
}

func TestIsOverdue_PurePredicate(t *testing.T) {
	today := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	g := NewGoal(&GoalRequest{Intention: "a", DueDate: "2026-06-14"})
	assert.True(t, IsOverdue(g, today))

	// due today is not overdue
	g.DueDate = "2026-06-15"
	assert.False(t, IsOverdue(g, today))

	// leaving the active status clears the flag with no stored change
	g.DueDate = "2026-06-14"
	g.Status = internal.GoalStatusConcluded
	assert.False(t, IsOverdue(g, today))

	// empty due date never flags
	g.Status = internal.GoalStatusActive
	g.DueDate = ""
	assert.False(t, IsOverdue(g, today))
}
