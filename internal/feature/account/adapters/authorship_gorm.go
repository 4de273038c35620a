package adapters

import (
	"context"

	"gorm.io/gorm"

	"pkgdir/internal/feature/account/usecase"
	catalogentity "pkgdir/internal/feature/catalog/domain/entity"
)

// authorshipGorm answers authorship queries by joining the user's
// author identities against the package's author links.
type authorshipGorm struct {
	db *gorm.DB
}

// Compile-time check that authorshipGorm implements AuthorshipRepository.
var _ usecase.AuthorshipRepository = (*authorshipGorm)(nil)

// NewAuthorshipGorm creates a new authorshipGorm instance on the given connection.
func NewAuthorshipGorm(db *gorm.DB) *authorshipGorm {
	return &authorshipGorm{db: db}
}

// IsAuthor reports whether any author linked to the user maintains the
// package. One join query; author fan-out per user is small.
func (r *authorshipGorm) IsAuthor(ctx context.Context, userID, packageID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalogentity.AuthorIdentity{}).
		Joins("JOIN author_packages ON author_packages.author_id = author_identities.author_id").
		Where("author_identities.user_id = ? AND author_packages.package_id = ?", userID, packageID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
