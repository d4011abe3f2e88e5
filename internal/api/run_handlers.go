package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giovanaluizapereira/planner-2026/internal/catalog"
	"github.com/giovanaluizapereira/planner-2026/internal/engine"
	"github.com/giovanaluizapereira/planner-2026/internal/service"
)

// RunEntry confirms one category's base score, either directly or as the
// average of quiz answers.
type RunEntry struct {
	Category string    `json:"category" binding:"required"`
	Score    *float64  `json:"score"`
	Answers  []float64 `json:"answers"`
}

type StartRunRequest struct {
	Entries []RunEntry `json:"entries" binding:"required,min=1"`
}

func StartRun(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)

		var req StartRunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: at least one category entry required")
			return
		}

		entries := make([]service.ScoreEntry, 0, len(req.Entries))
		for _, e := range req.Entries {
			score := 0.0
			switch {
			case len(e.Answers) > 0:
				score = catalog.QuizAverage(e.Answers)
			case e.Score != nil:
				score = *e.Score
			default:
				HandleError(c, app.Logger(), errors.New("entry needs score or answers"), 400, "Invalid entry for "+e.Category)
				return
			}
			if score < 0 || score > 10 {
				HandleError(c, app.Logger(), errors.New("score out of range"), 400, "Invalid score for "+e.Category)
				return
			}
			entries = append(entries, service.ScoreEntry{Category: e.Category, Score: score})
		}

		view, err := app.Runs().StartRun(c.Request.Context(), user.ID, entries)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to start run")
			return
		}
		c.JSON(201, gin.H{"data": view})
	}
}

func GetLatestRun(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		view, err := app.Runs().Load(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, service.ErrNoActiveRun) {
				HandleError(c, app.Logger(), err, 404, "No run for user")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to load run")
			return
		}
		HandleSuccess(c, app.Logger(), view, nil)
	}
}

// ResetRun deletes every snapshot of the user's run ("New Run").
func ResetRun(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if err := app.Runs().Reset(c.Request.Context(), user.ID); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to reset run")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"reset": true}, nil)
	}
}

// GetStats returns the survival dashboard: evolved categories, total XP,
// seasonal ambient stats, overdue flags, and macro-area aggregation.
func GetStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		view, err := app.Runs().Load(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, service.ErrNoActiveRun) {
				HandleError(c, app.Logger(), err, 404, "No run for user")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to load run")
			return
		}

		now := time.Now()
		overdue := map[string][]string{}
		for _, cat := range view.Categories {
			for _, g := range cat.Goals {
				if service.IsOverdue(g, now) {
					overdue[cat.Category] = append(overdue[cat.Category], g.ID)
				}
			}
		}

		HandleSuccess(c, app.Logger(), gin.H{
			"categories": view.Categories,
			"total_xp":   view.TotalXP,
			"season":     engine.CurrentSeason(now),
			"macros":     engine.MacroStats(view.Categories),
			"overdue":    overdue,
			"started_at": view.StartedAt,
		}, nil)
	}
}

// GetCatalog exposes the static category metadata and quiz questions.
func GetCatalog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), catalog.Categories(), nil)
	}
}
