// Package adapters provides the repository implementations for the rating feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountentity "pkgdir/internal/feature/account/domain/entity"
	catalogentity "pkgdir/internal/feature/catalog/domain/entity"
	"pkgdir/internal/feature/rating/domain/entity"
	"pkgdir/internal/feature/rating/usecase"
)

// ratingGorm is the GORM implementation of the RatingRepository interface.
type ratingGorm struct {
	db *gorm.DB
}

// Compile-time check that ratingGorm implements RatingRepository.
var _ usecase.RatingRepository = (*ratingGorm)(nil)

// NewRatingGorm creates a new ratingGorm instance on the given connection.
func NewRatingGorm(db *gorm.DB) *ratingGorm {
	return &ratingGorm{db: db}
}

// Upsert stores a vote and recomputes the package's cached score in
// one transaction. The unique index on (user_id, package_id, aspect)
// turns a concurrent double-write into an update of the same row, so
// at most one vote per triple survives.
func (r *ratingGorm) Upsert(ctx context.Context, rating *entity.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg catalogentity.Package
		if err := tx.First(&pkg, rating.PackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrPackageNotFound
			}
			return err
		}
		if rating.UserID == nil {
			return usecase.ErrUserNotFound
		}
		if err := tx.First(&accountentity.User{}, *rating.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrUserNotFound
			}
			return err
		}

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "package_id"}, {Name: "aspect"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).Create(rating).Error
		if err != nil {
			return err
		}

		// The conflict path updates the pre-existing row, so reload to
		// expose its ID and timestamps to the caller.
		if err := tx.Where("user_id = ? AND package_id = ? AND aspect = ?",
			rating.UserID, rating.PackageID, rating.Aspect).First(rating).Error; err != nil {
			return err
		}

		return updateScore(tx, rating.PackageID)
	})
}

// updateScore recomputes a package's cached score as the mean vote
// across all aspects and persists it.
func updateScore(tx *gorm.DB, packageID uint) error {
	var score float64
	err := tx.Model(&entity.Rating{}).
		Where("package_id = ?", packageID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&score).Error
	if err != nil {
		return err
	}
	return tx.Model(&catalogentity.Package{}).
		Where("id = ?", packageID).
		Update("score", score).Error
}

// Find returns the user's vote for (package, aspect).
func (r *ratingGorm) Find(ctx context.Context, userID, packageID uint, aspect string) (*entity.Rating, error) {
	var rating entity.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND package_id = ? AND aspect = ?", userID, packageID, aspect).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// Average returns the mean vote for a package, optionally restricted
// to one aspect. Packages without votes average to zero.
func (r *ratingGorm) Average(ctx context.Context, packageID uint, aspect string) (float64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Rating{}).Where("package_id = ?", packageID)
	if aspect != "" {
		q = q.Where("aspect = ?", aspect)
	}
	var avg float64
	if err := q.Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}
