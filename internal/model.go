package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Token string `json:"token,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Goal lifecycle states. Wire values are kept in pt-BR for compatibility
// with snapshots written by earlier versions of the planner.
const (
	GoalStatusActive            = "ativo"
	GoalStatusReflectionPending = "reflexao_pendente"
	GoalStatusConcluded         = "concluido"
)

// Reflection types.
const (
	ReflectionExtension  = "prorrogacao"
	ReflectionAdjustment = "ajuste"
	ReflectionConclusion = "conclusao"
)

type Strategy struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Milestone struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	TargetDate  string     `json:"targetDate"`
	Strategies  []Strategy `json:"strategies"`
	Completed   bool       `json:"completed"`
}

// Reflection is an append-only journal entry recorded when a goal is
// extended, pivoted, or concluded. Entries are never mutated.
type Reflection struct {
	Date        time.Time `json:"date"`
	WhatWorked  string    `json:"whatWorked"`
	WhatDidnt   string    `json:"whatDidnt"`
	Adjustments string    `json:"adjustments"`
	Type        string    `json:"type"`
}

type Goal struct {
	ID              string       `json:"id"`
	Intention       string       `json:"intention"`
	SuccessCriteria string       `json:"successCriteria"`
	DueDate         string       `json:"dueDate"` // ISO date (YYYY-MM-DD) or empty
	Status          string       `json:"status"`
	Milestones      []Milestone  `json:"milestones"`
	Reflections     []Reflection `json:"reflections"`
	Completed       bool         `json:"completed"`
}

// CompletedCount returns how many of the goals are completed.
func CompletedCount(goals []Goal) int {
	n := 0
	for _, g := range goals {
		if g.Completed {
			n++
		}
	}
	return n
}

// CategoryRecord is one life area inside a run. Score is the base score
// (manual, quiz-averaged, or AI-extracted); CurrentScore is always derived
// and never treated as authoritative input.
type CategoryRecord struct {
	Category     string  `json:"category"`
	Score        float64 `json:"score"`
	CurrentScore float64 `json:"currentScore,omitempty"`
	Goals        []Goal  `json:"goals"`
}

// Run is one full immutable snapshot of a user's category and goal state.
// Every save inserts a new row; the latest by CreatedAt is the active state.
type Run struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	UserData  []CategoryRecord `json:"user_data"`
	TotalXP   int              `json:"total_xp"`
	CreatedAt time.Time        `json:"created_at"`
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
