package internal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GoalSchemaVersion is the current on-wire goal shape. Older snapshots
// carried two earlier shapes; UnmarshalCategories upgrades both
// deterministically on read so the rest of the code only ever sees the
// current one.
//
//	v1: {description, measurable}
//	v2: {intention, smartGoal, successIndicator, horizon, *Evidences}
//	v3: {intention, successCriteria, status, milestones, reflections}
const GoalSchemaVersion = 3

type rawEvidence struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// rawGoal is the superset of every known goal shape. Version detection is
// field-presence based, per goal.
type rawGoal struct {
	ID string `json:"id"`

	// v1
	Description *string `json:"description"`
	Measurable  *string `json:"measurable"`

	// v2
	SmartGoal           *string       `json:"smartGoal"`
	SuccessIndicator    *string       `json:"successIndicator"`
	Horizon             *string       `json:"horizon"`
	PracticeEvidences   []rawEvidence `json:"practiceEvidences"`
	SocialEvidences     []rawEvidence `json:"socialEvidences"`
	ConceptualEvidences []rawEvidence `json:"conceptualEvidences"`

	// v3 (current) and shared fields
	Intention       *string      `json:"intention"`
	SuccessCriteria *string      `json:"successCriteria"`
	DueDate         string       `json:"dueDate"`
	Status          string       `json:"status"`
	Milestones      []Milestone  `json:"milestones"`
	Reflections     []Reflection `json:"reflections"`
	Completed       bool         `json:"completed"`
}

type rawCategory struct {
	Category     string    `json:"category"`
	Score        float64   `json:"score"`
	CurrentScore float64   `json:"currentScore"`
	Goals        []rawGoal `json:"goals"`
}

func (g *rawGoal) version() int {
	switch {
	case g.Status != "" || g.SuccessCriteria != nil || g.Milestones != nil || g.Reflections != nil:
		return 3
	case g.SmartGoal != nil || g.SuccessIndicator != nil ||
		g.PracticeEvidences != nil || g.SocialEvidences != nil || g.ConceptualEvidences != nil:
		return 2
	default:
		return 1
	}
}

func (g *rawGoal) migrate() Goal {
	out := Goal{
		ID:          g.ID,
		DueDate:     g.DueDate,
		Completed:   g.Completed,
		Milestones:  []Milestone{},
		Reflections: []Reflection{},
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}

	switch g.version() {
	case 3:
		if g.Intention != nil {
			out.Intention = *g.Intention
		}
		if g.SuccessCriteria != nil {
			out.SuccessCriteria = *g.SuccessCriteria
		}
		out.Status = g.Status
		if g.Milestones != nil {
			out.Milestones = g.Milestones
		}
		if g.Reflections != nil {
			out.Reflections = g.Reflections
		}
	case 2:
		if g.Intention != nil {
			out.Intention = *g.Intention
		}
		if g.SuccessIndicator != nil {
			out.SuccessCriteria = *g.SuccessIndicator
		}
		out.Milestones = evidenceMilestones(g)
	default: // v1
		if g.Description != nil {
			out.Intention = *g.Description
		}
		if g.Measurable != nil {
			out.SuccessCriteria = *g.Measurable
		}
	}

	// Reconcile the completion pair: completed=true and status=concluido
	// always travel together.
	switch {
	case out.Completed:
		out.Status = GoalStatusConcluded
	case out.Status == GoalStatusConcluded:
		out.Completed = true
	case out.Status == "":
		out.Status = GoalStatusActive
	}
	return out
}

// evidenceMilestones folds the v2 70/20/10 evidence lists into milestones,
// one per non-empty list, with the evidence items as strategies.
func evidenceMilestones(g *rawGoal) []Milestone {
	lists := []struct {
		label string
		items []rawEvidence
	}{
		{"Aplicação real (70%)", g.PracticeEvidences},
		{"Feedbacks e trocas (20%)", g.SocialEvidences},
		{"Teoria e cursos (10%)", g.ConceptualEvidences},
	}
	out := []Milestone{}
	for _, l := range lists {
		if len(l.items) == 0 {
			continue
		}
		m := Milestone{
			ID:          uuid.NewString(),
			Description: l.label,
			Strategies:  make([]Strategy, 0, len(l.items)),
			Completed:   true,
		}
		for _, e := range l.items {
			id := e.ID
			if id == "" {
				id = uuid.NewString()
			}
			m.Strategies = append(m.Strategies, Strategy{ID: id, Text: e.Text, Completed: e.Completed})
			if !e.Completed {
				m.Completed = false
			}
		}
		out = append(out, m)
	}
	return out
}

// UnmarshalCategories decodes user_data JSON of any known schema version
// into current-shape category records.
func UnmarshalCategories(data []byte) ([]CategoryRecord, error) {
	if len(data) == 0 {
		return []CategoryRecord{}, nil
	}
	var raw []rawCategory
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]CategoryRecord, len(raw))
	for i, rc := range raw {
		cat := CategoryRecord{
			Category:     rc.Category,
			Score:        rc.Score,
			CurrentScore: rc.CurrentScore,
			Goals:        make([]Goal, len(rc.Goals)),
		}
		for j := range rc.Goals {
			cat.Goals[j] = rc.Goals[j].migrate()
		}
		out[i] = cat
	}
	return out, nil
}

// UnmarshalJSON upgrades user_data through the schema migration so every
// storage backend reads legacy snapshots the same way.
func (r *Run) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string          `json:"id"`
		UserID    string          `json:"user_id"`
		UserData  json.RawMessage `json:"user_data"`
		TotalXP   int             `json:"total_xp"`
		CreatedAt time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	cats, err := UnmarshalCategories(aux.UserData)
	if err != nil {
		return err
	}
	r.ID = aux.ID
	r.UserID = aux.UserID
	r.UserData = cats
	r.TotalXP = aux.TotalXP
	r.CreatedAt = aux.CreatedAt
	return nil
}
