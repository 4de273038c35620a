// Package usecase implements the business logic for the activity feature.
package usecase

import (
	"context"

	"pkgdir/internal/feature/activity/domain/entity"
)

const defaultFeedLimit = 50

// ActivityRepository abstracts the persistence layer for activity
// records.
type ActivityRepository interface {
	Record(ctx context.Context, a *entity.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error)
}

// activityUsecase implements the activity feed.
type activityUsecase struct {
	activities ActivityRepository
}

// NewActivityUsecase creates a new activityUsecase instance.
func NewActivityUsecase(activities ActivityRepository) *activityUsecase {
	return &activityUsecase{activities: activities}
}

// Record stores one feed entry. Called by the background worker when a
// notification task is processed.
func (u *activityUsecase) Record(ctx context.Context, a *entity.Activity) error {
	return u.activities.Record(ctx, a)
}

// Recent returns the newest feed entries, capped at defaultFeedLimit
// when limit is zero or negative.
func (u *activityUsecase) Recent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}
	return u.activities.ListRecent(ctx, limit)
}
