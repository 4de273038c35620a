// Package adapters provides the repository implementations for the activity feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"pkgdir/internal/feature/activity/domain/entity"
	"pkgdir/internal/feature/activity/usecase"
)

// activityGorm is the GORM implementation of the ActivityRepository interface.
type activityGorm struct {
	db *gorm.DB
}

// Compile-time check that activityGorm implements ActivityRepository.
var _ usecase.ActivityRepository = (*activityGorm)(nil)

// NewActivityGorm creates a new activityGorm instance on the given connection.
func NewActivityGorm(db *gorm.DB) *activityGorm {
	return &activityGorm{db: db}
}

// Record appends one feed entry.
func (r *activityGorm) Record(ctx context.Context, a *entity.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListRecent returns the newest entries first.
func (r *activityGorm) ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	var items []*entity.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
