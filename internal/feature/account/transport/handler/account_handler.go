package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pkgdir/internal/api"
	"pkgdir/internal/feature/account/usecase"
	jwtmw "pkgdir/internal/platform/jwt"
)

// AccountUsecase defines the package-facing account operations the
// handler needs.
type AccountUsecase interface {
	ToggleUsage(ctx context.Context, userID, packageID uint) (bool, error)
	Uses(ctx context.Context, userID, packageID uint) (bool, error)
	AuthorOf(ctx context.Context, userID, packageID uint) (bool, error)
}

// AccountHandler handles package usage and authorship endpoints.
type AccountHandler struct {
	account AccountUsecase
}

// NewAccountHandler creates a new AccountHandler instance.
func NewAccountHandler(account AccountUsecase) *AccountHandler {
	return &AccountHandler{account: account}
}

// packageID parses the :id path parameter.
func packageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid package id"})
		return 0, false
	}
	return uint(id), true
}

// ToggleUsage handles POST /packages/:id/usage, flipping whether the
// authenticated user is marked as using the package.
func (h *AccountHandler) ToggleUsage(c *gin.Context) {
	pkgID, ok := packageID(c)
	if !ok {
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	active, err := h.account.ToggleUsage(c.Request.Context(), userID, pkgID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "package not found"})
		case errors.Is(err, usecase.ErrUsageConflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "usage already recorded"})
		default:
			slog.Error("usage toggle failed", "error", err, "user_id", userID, "package_id", pkgID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "usage toggle failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

// Usage handles GET /packages/:id/usage, reporting whether the
// authenticated user currently uses the package.
func (h *AccountHandler) Usage(c *gin.Context) {
	pkgID, ok := packageID(c)
	if !ok {
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	active, err := h.account.Uses(c.Request.Context(), userID, pkgID)
	if err != nil {
		slog.Error("usage lookup failed", "error", err, "user_id", userID, "package_id", pkgID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "usage lookup failed"})
		return
	}
	authored, err := h.account.AuthorOf(c.Request.Context(), userID, pkgID)
	if err != nil {
		slog.Error("authorship lookup failed", "error", err, "user_id", userID, "package_id", pkgID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "usage lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "author": authored})
}
