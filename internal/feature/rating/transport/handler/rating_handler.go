// Package handler provides the HTTP handlers for the rating feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pkgdir/internal/api"
	"pkgdir/internal/feature/rating/domain/entity"
	"pkgdir/internal/feature/rating/transport/http/dto"
	"pkgdir/internal/feature/rating/usecase"
	jwtmw "pkgdir/internal/platform/jwt"
)

// RatingUsecase defines the rating operations the handler needs.
// Following Go convention, the interface is defined by the consumer
// (handler) rather than the provider (usecase).
type RatingUsecase interface {
	Rate(ctx context.Context, userID, packageID uint, value int, aspect string) (*entity.Rating, error)
	RatingFor(ctx context.Context, userID, packageID uint, aspect string) (*entity.Rating, error)
}

// RatingHandler handles the per-package rating endpoints.
type RatingHandler struct {
	ratings RatingUsecase
}

// NewRatingHandler creates a new RatingHandler instance.
func NewRatingHandler(ratings RatingUsecase) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

func packageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid package id"})
		return 0, false
	}
	return uint(id), true
}

// Rate handles PUT /packages/:id/rating. A repeat vote for the same
// aspect replaces the earlier one.
func (h *RatingHandler) Rate(c *gin.Context) {
	pkgID, ok := packageID(c)
	if !ok {
		return
	}
	var req dto.RateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	rating, err := h.ratings.Rate(c.Request.Context(), userID, pkgID, req.Rating, req.Aspect)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRatingOutOfRange),
			errors.Is(err, usecase.ErrUnknownAspect):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrPackageNotFound),
			errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("rating failed", "error", err, "user_id", userID, "package_id", pkgID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "rating failed"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewRatingResp(rating))
}

// RatingFor handles GET /packages/:id/rating, returning the
// authenticated user's vote for the aspect in the ?aspect query
// parameter ("overall" when omitted).
func (h *RatingHandler) RatingFor(c *gin.Context) {
	pkgID, ok := packageID(c)
	if !ok {
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	rating, err := h.ratings.RatingFor(c.Request.Context(), userID, pkgID, c.Query("aspect"))
	if err != nil {
		if errors.Is(err, usecase.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "rating not found"})
			return
		}
		slog.Error("rating lookup failed", "error", err, "user_id", userID, "package_id", pkgID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "rating lookup failed"})
		return
	}
	c.JSON(http.StatusOK, dto.NewRatingResp(rating))
}
