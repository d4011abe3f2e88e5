package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giovanaluizapereira/planner-2026/internal/vision"
)

// Wheel images above this size are rejected before hitting the AI service.
const maxWheelImageBytes = 8 << 20

// AnalyzeWheel accepts a multipart "image" upload, runs AI extraction, and
// returns category/score pairs in the same shape the manual entry flow
// consumes. Extraction failure is non-fatal: the client falls back to
// manual entry.
func AnalyzeWheel(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.Vision() == nil || !app.Vision().Enabled() {
			HandleError(c, app.Logger(), vision.ErrNotConfigured, 503, "Image analysis unavailable")
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Missing 'image' upload")
			return
		}
		if fileHeader.Size > maxWheelImageBytes {
			HandleError(c, app.Logger(), errors.New("image too large"), 400, "Image exceeds size limit")
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Unreadable image upload")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Unreadable image upload")
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		results, err := app.Vision().AnalyzeWheel(c.Request.Context(), data, mimeType)
		if err != nil {
			if errors.Is(err, vision.ErrBadResponse) {
				HandleError(c, app.Logger(), err, http.StatusBadGateway, "AI returned unusable data")
				return
			}
			HandleError(c, app.Logger(), err, 502, "Image analysis failed")
			return
		}
		HandleSuccess(c, app.Logger(), results, nil)
	}
}
