// Package handler provides the HTTP handlers for the catalog feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pkgdir/internal/api"
	"pkgdir/internal/feature/catalog/domain/entity"
	"pkgdir/internal/feature/catalog/usecase"
)

// CatalogUsecase defines the catalog reads the handler needs.
type CatalogUsecase interface {
	List(ctx context.Context) ([]*entity.Package, error)
	Get(ctx context.Context, id uint) (*usecase.PackageDetail, error)
}

// PackageHandler handles the package listing endpoints.
type PackageHandler struct {
	catalog CatalogUsecase
}

// NewPackageHandler creates a new PackageHandler instance.
func NewPackageHandler(catalog CatalogUsecase) *PackageHandler {
	return &PackageHandler{catalog: catalog}
}

// List handles GET /packages.
func (h *PackageHandler) List(c *gin.Context) {
	pkgs, err := h.catalog.List(c.Request.Context())
	if err != nil {
		slog.Error("package list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "package list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

// Get handles GET /packages/:id, returning the package with its cached
// score and live per-aspect averages.
func (h *PackageHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid package id"})
		return
	}

	detail, err := h.catalog.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "package not found"})
			return
		}
		slog.Error("package lookup failed", "error", err, "package_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "package lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"package":               detail.Package,
		"overall_average":       detail.OverallAverage,
		"documentation_average": detail.DocumentationAverage,
	})
}
