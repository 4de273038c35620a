package usecase

import (
	"context"
	"fmt"

	"pkgdir/internal/feature/rating/domain/entity"
)

// RatingRepository abstracts the persistence layer for rating votes.
// Following Go convention, the interface is defined by the consumer
// (usecase) rather than the provider (adapters).
type RatingRepository interface {
	// Upsert stores a vote. When the (user, package, aspect) triple
	// already has a row the existing row is updated in place, so a
	// user never holds two votes for the same pair. The write and the
	// package score recomputation happen in a single transaction.
	Upsert(ctx context.Context, r *entity.Rating) error

	// Find returns the user's vote for (package, aspect), or
	// ErrRatingNotFound when none exists.
	Find(ctx context.Context, userID, packageID uint, aspect string) (*entity.Rating, error)

	// Average returns the mean vote for a package. An empty aspect
	// averages across all aspects. Zero, not an error, when no votes
	// exist.
	Average(ctx context.Context, packageID uint, aspect string) (float64, error)
}

// Notifier publishes activity events for rating writes. Dispatch is
// fire-and-forget; implementations must not block on delivery.
type Notifier interface {
	RatingPosted(ctx context.Context, actorID, ratingID, packageID uint)
}

// ratingUsecase implements the rating business logic.
type ratingUsecase struct {
	ratings  RatingRepository
	notifier Notifier
}

// NewRatingUsecase creates a new ratingUsecase instance.
func NewRatingUsecase(ratings RatingRepository, notifier Notifier) *ratingUsecase {
	return &ratingUsecase{ratings: ratings, notifier: notifier}
}

// Rate records a user's vote for a package, replacing any previous
// vote for the same aspect. The aspect defaults to "overall" when
// empty. On success the package's cached score has been recomputed and
// an activity event is published.
func (u *ratingUsecase) Rate(ctx context.Context, userID, packageID uint, value int, aspect string) (*entity.Rating, error) {
	if aspect == "" {
		aspect = entity.AspectOverall
	}
	if value < 1 || value > 5 {
		return nil, ErrRatingOutOfRange
	}
	if !entity.ValidAspect(aspect) {
		return nil, ErrUnknownAspect
	}

	r := &entity.Rating{
		PackageID: packageID,
		UserID:    &userID,
		Rating:    value,
		Aspect:    aspect,
	}
	if err := u.ratings.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("store rating: %w", err)
	}

	// Post-commit, fire-and-forget.
	u.notifier.RatingPosted(ctx, userID, r.ID, packageID)

	return r, nil
}

// RatingFor returns the user's current vote for (package, aspect).
func (u *ratingUsecase) RatingFor(ctx context.Context, userID, packageID uint, aspect string) (*entity.Rating, error) {
	if aspect == "" {
		aspect = entity.AspectOverall
	}
	return u.ratings.Find(ctx, userID, packageID, aspect)
}

// Average returns the live mean vote for a package, across all aspects
// when aspect is empty.
func (u *ratingUsecase) Average(ctx context.Context, packageID uint, aspect string) (float64, error) {
	if aspect != "" && !entity.ValidAspect(aspect) {
		return 0, ErrUnknownAspect
	}
	return u.ratings.Average(ctx, packageID, aspect)
}
