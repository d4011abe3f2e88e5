package api

import (
	"github.com/gin-gonic/gin"

	"github.com/giovanaluizapereira/planner-2026/internal/auth"
)

// RegisterRoutes wires every handler onto the router. Auth endpoints stay
// public; everything else sits behind the session middleware.
func RegisterRoutes(r *gin.Engine, app App) {
	r.Use(RequestIDMiddleware())

	r.POST("/auth/signup", SignUp(app))
	r.POST("/auth/signin", SignIn(app))

	protected := r.Group("/")
	protected.Use(auth.Middleware(app.Auth()))
	{
		protected.POST("/auth/signout", SignOut(app))

		protected.GET("/api/catalog", GetCatalog(app))
		protected.POST("/api/runs", StartRun(app))
		protected.GET("/api/runs/latest", GetLatestRun(app))
		protected.DELETE("/api/runs", ResetRun(app))
		protected.GET("/api/stats", GetStats(app))
		protected.POST("/api/wheel/analyze", AnalyzeWheel(app))

		goals := protected.Group("/api/categories/:category/goals")
		{
			goals.POST("", PostGoal(app))
			goals.PATCH("/:goalId", PatchGoal(app))
			goals.DELETE("/:goalId", DeleteGoal(app))
			goals.POST("/:goalId/reflections", PostReflection(app))

			goals.POST("/:goalId/milestones", PostMilestone(app))
			goals.PATCH("/:goalId/milestones/:milestoneId", PatchMilestone(app))
			goals.DELETE("/:goalId/milestones/:milestoneId", DeleteMilestone(app))

			goals.POST("/:goalId/milestones/:milestoneId/strategies", PostStrategy(app))
			goals.PATCH("/:goalId/milestones/:milestoneId/strategies/:strategyId", PatchStrategy(app))
			goals.DELETE("/:goalId/milestones/:milestoneId/strategies/:strategyId", DeleteStrategy(app))
		}
	}
}
