package usecase

import (
	"context"

	ratingentity "pkgdir/internal/feature/rating/domain/entity"
)

// UsageRepository abstracts the persistence layer for package usage
// memberships.
type UsageRepository interface {
	// Toggle flips the user's usage state for a package, creating an
	// active membership on first use, and returns the resulting state.
	// The flip and the package counter move share one transaction.
	Toggle(ctx context.Context, userID, packageID uint) (bool, error)

	// CountActive returns the number of active membership rows for the
	// (user, package) pair. The unique index keeps it at 0 or 1.
	CountActive(ctx context.Context, userID, packageID uint) (int64, error)
}

// AuthorshipRepository answers whether a user is linked, through an
// author identity, to a package's authors.
type AuthorshipRepository interface {
	IsAuthor(ctx context.Context, userID, packageID uint) (bool, error)
}

// RatingService is the slice of the rating feature the account feature
// delegates to for its convenience methods.
type RatingService interface {
	Rate(ctx context.Context, userID, packageID uint, value int, aspect string) (*ratingentity.Rating, error)
	RatingFor(ctx context.Context, userID, packageID uint, aspect string) (*ratingentity.Rating, error)
}

// accountUsecase implements the package-facing account operations:
// usage toggling, authorship checks and rating convenience methods.
type accountUsecase struct {
	usages  UsageRepository
	authors AuthorshipRepository
	ratings RatingService
}

// NewAccountUsecase creates a new accountUsecase instance.
func NewAccountUsecase(usages UsageRepository, authors AuthorshipRepository, ratings RatingService) *accountUsecase {
	return &accountUsecase{usages: usages, authors: authors, ratings: ratings}
}

// Rate records the user's vote for a package, replacing any previous
// vote for the same aspect.
func (u *accountUsecase) Rate(ctx context.Context, userID, packageID uint, value int, aspect string) (*ratingentity.Rating, error) {
	return u.ratings.Rate(ctx, userID, packageID, value, aspect)
}

// RatingFor returns the user's current vote for (package, aspect).
func (u *accountUsecase) RatingFor(ctx context.Context, userID, packageID uint, aspect string) (*ratingentity.Rating, error) {
	return u.ratings.RatingFor(ctx, userID, packageID, aspect)
}

// ToggleUsage flips whether the user is marked as using the package
// and returns the resulting state. Safe to call repeatedly; the
// membership row is reused, never duplicated.
func (u *accountUsecase) ToggleUsage(ctx context.Context, userID, packageID uint) (bool, error) {
	return u.usages.Toggle(ctx, userID, packageID)
}

// Uses reports whether the user currently uses the package.
func (u *accountUsecase) Uses(ctx context.Context, userID, packageID uint) (bool, error) {
	n, err := u.usages.CountActive(ctx, userID, packageID)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// AuthorOf reports whether the user is linked to one of the package's
// authors.
func (u *accountUsecase) AuthorOf(ctx context.Context, userID, packageID uint) (bool, error) {
	return u.authors.IsAuthor(ctx, userID, packageID)
}
