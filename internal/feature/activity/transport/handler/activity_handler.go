// Package handler provides the HTTP handlers for the activity feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pkgdir/internal/api"
	"pkgdir/internal/feature/activity/domain/entity"
)

// ActivityUsecase defines the feed reads the handler needs.
type ActivityUsecase interface {
	Recent(ctx context.Context, limit int) ([]*entity.Activity, error)
}

// ActivityHandler handles the public activity feed.
type ActivityHandler struct {
	activities ActivityUsecase
}

// NewActivityHandler creates a new ActivityHandler instance.
func NewActivityHandler(activities ActivityUsecase) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// Recent handles GET /activity with an optional ?limit parameter.
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.activities.Recent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("activity feed failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "activity feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": items})
}
