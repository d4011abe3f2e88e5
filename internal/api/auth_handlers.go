package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/giovanaluizapereira/planner-2026/internal/auth"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func SignUp(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: email and password required")
			return
		}
		session, err := app.Auth().SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			status := 500
			if errors.Is(err, auth.ErrEmailTaken) {
				status = 409
			}
			HandleError(c, app.Logger(), err, status, "Sign-up failed")
			return
		}
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

func SignIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: email and password required")
			return
		}
		session, err := app.Auth().SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			status := 500
			if errors.Is(err, auth.ErrInvalidCredentials) {
				status = 401
			}
			HandleError(c, app.Logger(), err, status, "Sign-in failed")
			return
		}
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

// SignOut ends the session and drops the user's in-memory run state, so a
// later session for a different identity can never see or save stale data.
func SignOut(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		token := c.GetString("token")
		app.Runs().Invalidate(user.ID)
		if err := app.Auth().SignOut(c.Request.Context(), token); err != nil {
			HandleError(c, app.Logger(), err, 500, "Sign-out failed")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"signed_out": true}, nil)
	}
}
