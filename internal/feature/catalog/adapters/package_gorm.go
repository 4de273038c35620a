// Package adapters provides the repository implementations for the catalog feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pkgdir/internal/feature/catalog/domain/entity"
	"pkgdir/internal/feature/catalog/usecase"
)

// packageGorm is the GORM implementation of the PackageRepository interface.
type packageGorm struct {
	db *gorm.DB
}

// Compile-time check that packageGorm implements PackageRepository.
var _ usecase.PackageRepository = (*packageGorm)(nil)

// NewPackageGorm creates a new packageGorm instance on the given connection.
func NewPackageGorm(db *gorm.DB) *packageGorm {
	return &packageGorm{db: db}
}

// List returns all packages ordered case-insensitively by name.
func (r *packageGorm) List(ctx context.Context) ([]*entity.Package, error) {
	var pkgs []*entity.Package
	if err := r.db.WithContext(ctx).Order("LOWER(name) ASC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// FindByID retrieves a package by id.
func (r *packageGorm) FindByID(ctx context.Context, id uint) (*entity.Package, error) {
	var pkg entity.Package
	if err := r.db.WithContext(ctx).First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}
