package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/giovanaluizapereira/planner-2026/internal"
	"github.com/giovanaluizapereira/planner-2026/internal/service"
)

func PostGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid goal payload")
			return
		}
		if err := service.ValidateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Goal validation failed")
			return
		}
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.AddGoal(goals, service.NewGoal(&req)), nil
		})
	}
}

func PatchGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd service.GoalUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid goal update")
			return
		}
		if err := service.ValidateRequest(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Goal validation failed")
			return
		}
		goalID := c.Param("goalId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.UpdateGoal(goals, goalID, &upd)
		})
	}
}

func DeleteGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID := c.Param("goalId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.RemoveGoal(goals, goalID)
		})
	}
}

func PostMilestone(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MilestoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid milestone payload")
			return
		}
		if err := service.ValidateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Milestone validation failed")
			return
		}
		goalID := c.Param("goalId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.AddMilestone(goals, goalID, &req)
		})
	}
}

func PatchMilestone(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd service.MilestoneUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid milestone update")
			return
		}
		if err := service.ValidateRequest(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Milestone validation failed")
			return
		}
		goalID, milestoneID := c.Param("goalId"), c.Param("milestoneId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.UpdateMilestone(goals, goalID, milestoneID, &upd)
		})
	}
}

func DeleteMilestone(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, milestoneID := c.Param("goalId"), c.Param("milestoneId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.RemoveMilestone(goals, goalID, milestoneID)
		})
	}
}

func PostStrategy(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.StrategyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid strategy payload")
			return
		}
		if err := service.ValidateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Strategy validation failed")
			return
		}
		goalID, milestoneID := c.Param("goalId"), c.Param("milestoneId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.AddStrategy(goals, goalID, milestoneID, &req)
		})
	}
}

func PatchStrategy(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd service.StrategyUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid strategy update")
			return
		}
		goalID, milestoneID, strategyID := c.Param("goalId"), c.Param("milestoneId"), c.Param("strategyId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.UpdateStrategy(goals, goalID, milestoneID, strategyID, &upd)
		})
	}
}

func DeleteStrategy(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, milestoneID, strategyID := c.Param("goalId"), c.Param("milestoneId"), c.Param("strategyId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.RemoveStrategy(goals, goalID, milestoneID, strategyID)
		})
	}
}

// PostReflection commits a reflection against a goal. The conclusion type
// completes the goal in the same commit; the response carries any level-up
// events produced by the resulting score change.
func PostReflection(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ReflectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid reflection payload")
			return
		}
		goalID := c.Param("goalId")
		mutateGoals(c, app, func(goals []internal.Goal) ([]internal.Goal, error) {
			return service.CommitReflection(goals, goalID, &req, time.Now())
		})
	}
}

// mutateGoals runs a goal-list mutation against the authenticated user's
// run and writes the resulting state view (or a mapped error) out.
func mutateGoals(c *gin.Context, app App, fn func([]internal.Goal) ([]internal.Goal, error)) {
	user := CurrentUser(c)
	category := c.Param("category")

	view, err := app.Runs().UpdateGoals(c.Request.Context(), user.ID, category, fn)
	if err != nil {
		var vErr validator.ValidationErrors
		switch {
		case errors.As(err, &vErr):
			HandleError(c, app.Logger(), err, 400, "Validation failed")
		case errors.Is(err, service.ErrNoActiveRun),
			errors.Is(err, service.ErrCategoryNotFound),
			errors.Is(err, service.ErrGoalNotFound),
			errors.Is(err, service.ErrMilestoneNotFound),
			errors.Is(err, service.ErrStrategyNotFound):
			HandleError(c, app.Logger(), err, 404, "Not found")
		default:
			HandleError(c, app.Logger(), err, 500, "Failed to update goals")
		}
		return
	}
	HandleSuccess(c, app.Logger(), view, nil)
}
