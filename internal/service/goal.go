package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

var validate = validator.New()

var (
	ErrGoalNotFound      = errors.New("service: goal not found")
	ErrMilestoneNotFound = errors.New("service: milestone not found")
	ErrStrategyNotFound  = errors.New("service: strategy not found")
)

// --- Request DTOs ---

type GoalRequest struct {
	Intention       string `json:"intention" validate:"required"`
	SuccessCriteria string `json:"successCriteria"`
	DueDate         string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type GoalUpdate struct {
	Intention       *string `json:"intention"`
	SuccessCriteria *string `json:"successCriteria"`
	DueDate         *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Completed       *bool   `json:"completed"`
}

type MilestoneRequest struct {
	Description string `json:"description" validate:"required"`
	TargetDate  string `json:"targetDate" validate:"omitempty,datetime=2006-01-02"`
}

type MilestoneUpdate struct {
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate" validate:"omitempty,datetime=2006-01-02"`
	Completed   *bool   `json:"completed"`
}

type StrategyRequest struct {
	Text string `json:"text" validate:"required"`
}

type StrategyUpdate struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// ReflectionRequest is the commit payload for extending, pivoting, or
// concluding a goal. WhatWorked and Adjustments are mandatory; a commit
// with either empty is refused before anything is persisted.
type ReflectionRequest struct {
	WhatWorked  string `json:"whatWorked" validate:"required"`
	WhatDidnt   string `json:"whatDidnt"`
	Adjustments string `json:"adjustments" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=prorrogacao ajuste conclusao"`
}

func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

// --- Goal tree mutations ---
//
// All mutations are replace-in-place on copies keyed by id; the input
// slices are never modified.

func NewGoal(req *GoalRequest) internal.Goal {
	return internal.Goal{
		ID:              uuid.NewString(),
		Intention:       req.Intention,
		SuccessCriteria: req.SuccessCriteria,
		DueDate:         req.DueDate,
		Status:          internal.GoalStatusActive,
		Milestones:      []internal.Milestone{},
		Reflections:     []internal.Reflection{},
	}
}

func AddGoal(goals []internal.Goal, goal internal.Goal) []internal.Goal {
	out := make([]internal.Goal, 0, len(goals)+1)
	out = append(out, goals...)
	return append(out, goal)
}

func UpdateGoal(goals []internal.Goal, goalID string, upd *GoalUpdate) ([]internal.Goal, error) {
	out := make([]internal.Goal, len(goals))
	found := false
	for i, g := range goals {
		if g.ID == goalID {
			if upd.Intention != nil {
				g.Intention = *upd.Intention
			}
			if upd.SuccessCriteria != nil {
				g.SuccessCriteria = *upd.SuccessCriteria
			}
			if upd.DueDate != nil {
				g.DueDate = *upd.DueDate
			}
			if upd.Completed != nil {
				g.Completed = *upd.Completed
				if g.Completed {
					g.Status = internal.GoalStatusConcluded
				} else {
					g.Status = internal.GoalStatusActive
				}
			}
			found = true
		}
		out[i] = g
	}
	if !found {
		return nil, ErrGoalNotFound
	}
	return out, nil
}

func RemoveGoal(goals []internal.Goal, goalID string) ([]internal.Goal, error) {
	out := make([]internal.Goal, 0, len(goals))
	found := false
	for _, g := range goals {
		if g.ID == goalID {
			found = true
			continue
		}
		out = append(out, g)
	}
	if !found {
		return nil, ErrGoalNotFound
	}
	return out, nil
}

func AddMilestone(goals []internal.Goal, goalID string, req *MilestoneRequest) ([]internal.Goal, error) {
	m := internal.Milestone{
		ID:          uuid.NewString(),
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Strategies:  []internal.Strategy{},
	}
	return mutateGoal(goals, goalID, func(g internal.Goal) (internal.Goal, error) {
		ms := make([]internal.Milestone, 0, len(g.Milestones)+1)
		ms = append(ms, g.Milestones...)
		g.Milestones = append(ms, m)
		return g, nil
	})
}

func UpdateMilestone(goals []internal.Goal, goalID, milestoneID string, upd *MilestoneUpdate) ([]internal.Goal, error) {
	return mutateGoal(goals, goalID, func(g internal.Goal) (internal.Goal, error) {
		ms := make([]internal.Milestone, len(g.Milestones))
		found := false
		for i, m := range g.Milestones {
			if m.ID == milestoneID {
				if upd.Description != nil {
					m.Description = *upd.Description
				}
				if upd.TargetDate != nil {
					m.TargetDate = *upd.TargetDate
				}
				if upd.Completed != nil {
					m.Completed = *upd.Completed
				}
				found = true
			}
			ms[i] = m
		}
		if !found {
			return g, ErrMilestoneNotFound
		}
		g.Milestones = ms
		return g, nil
	})
}

func RemoveMilestone(goals []internal.Goal, goalID, milestoneID string) ([]internal.Goal, error) {
	return mutateGoal(goals, goalID, func(g internal.Goal) (internal.Goal, error) {
		ms := make([]internal.Milestone, 0, len(g.Milestones))
		found := false
		for _, m := range g.Milestones {
			if m.ID == milestoneID {
				found = true
				continue
			}
			ms = append(ms, m)
		}
		if !found {
			return g, ErrMilestoneNotFound
		}
		g.Milestones = ms
		return g, nil
	})
}

func AddStrategy(goals []internal.Goal, goalID, milestoneID string, req *StrategyRequest) ([]internal.Goal, error) {
	st := internal.Strategy{ID: uuid.NewString(), Text: req.Text}
	return mutateMilestone(goals, goalID, milestoneID, func(m internal.Milestone) (internal.Milestone, error) {
		ss := make([]internal.Strategy, 0, len(m.Strategies)+1)
		ss = append(ss, m.Strategies...)
		m.Strategies = append(ss, st)
		return m, nil
	})
}

func UpdateStrategy(goals []internal.Goal, goalID, milestoneID, strategyID string, upd *StrategyUpdate) ([]internal.Goal, error) {
	return mutateMilestone(goals, goalID, milestoneID, func(m internal.Milestone) (internal.Milestone, error) {
		ss := make([]internal.Strategy, len(m.Strategies))
		found := false
		for i, st := range m.Strategies {
			if st.ID == strategyID {
				if upd.Text != nil {
					st.Text = *upd.Text
				}
				if upd.Completed != nil {
					st.Completed = *upd.Completed
				}
				found = true
			}
			ss[i] = st
		}
		if !found {
			return m, ErrStrategyNotFound
		}
		m.Strategies = ss
		return m, nil
	})
}

func RemoveStrategy(goals []internal.Goal, goalID, milestoneID, strategyID string) ([]internal.Goal, error) {
	return mutateMilestone(goals, goalID, milestoneID, func(m internal.Milestone) (internal.Milestone, error) {
		ss := make([]internal.Strategy, 0, len(m.Strategies))
		found := false
		for _, st := range m.Strategies {
			if st.ID == strategyID {
				found = true
				continue
			}
			ss = append(ss, st)
		}
		if !found {
			return m, ErrStrategyNotFound
		}
		m.Strategies = ss
		return m, nil
	})
}

// CommitReflection appends a reflection to the goal's journal. For the
// conclusion type the goal is completed atomically in the same commit;
// extensions reactivate an overdue goal.
func CommitReflection(goals []internal.Goal, goalID string, req *ReflectionRequest, at time.Time) ([]internal.Goal, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return mutateGoal(goals, goalID, func(g internal.Goal) (internal.Goal, error) {
		refs := make([]internal.Reflection, 0, len(g.Reflections)+1)
		refs = append(refs, g.Reflections...)
		g.Reflections = append(refs, internal.Reflection{
			Date:        at,
			WhatWorked:  req.WhatWorked,
			WhatDidnt:   req.WhatDidnt,
			Adjustments: req.Adjustments,
			Type:        req.Type,
		})
		switch req.Type {
		case internal.ReflectionConclusion:
			g.Completed = true
			g.Status = internal.GoalStatusConcluded
		case internal.ReflectionExtension, internal.ReflectionAdjustment:
			g.Status = internal.GoalStatusActive
		}
		return g, nil
	})
}

// IsOverdue reports whether a goal needs reassessment: due date in the
// past while still active. This is a read-time predicate, never stored.
func IsOverdue(g internal.Goal, today time.Time) bool {
	if g.DueDate == "" || g.Status != internal.GoalStatusActive {
		return false
	}
	due, err := time.ParseInLocation("2006-01-02", g.DueDate, today.Location())
	if err != nil {
		return false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return due.Before(day)
}

func mutateGoal(goals []internal.Goal, goalID string, fn func(internal.Goal) (internal.Goal, error)) ([]internal.Goal, error) {
	out := make([]internal.Goal, len(goals))
	found := false
	for i, g := range goals {
		if g.ID == goalID {
			ng, err := fn(g)
			if err != nil {
				return nil, err
			}
			out[i] = ng
			found = true
			continue
		}
		out[i] = g
	}
	if !found {
		return nil, ErrGoalNotFound
	}
	return out, nil
}

func mutateMilestone(goals []internal.Goal, goalID, milestoneID string, fn func(internal.Milestone) (internal.Milestone, error)) ([]internal.Goal, error) {
	return mutateGoal(goals, goalID, func(g internal.Goal) (internal.Goal, error) {
		ms := make([]internal.Milestone, len(g.Milestones))
		found := false
		for i, m := range g.Milestones {
			if m.ID == milestoneID {
				nm, err := fn(m)
				if err != nil {
					return g, err
				}
				ms[i] = nm
				found = true
				continue
			}
			ms[i] = m
		}
		if !found {
			return g, ErrMilestoneNotFound
		}
		g.Milestones = ms
		return g, nil
	})
}
