package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pkgdir/internal/feature/account/domain/entity"
	catalogentity "pkgdir/internal/feature/catalog/domain/entity"
)

// seedAuthorship links a user to a package through an author record.
func seedAuthorship(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	user := &entity.User{Login: "hadley", Email: "hadley@example.com"}
	require.NoError(t, db.Create(user).Error)

	pkg := &catalogentity.Package{Name: "ggplot2"}
	require.NoError(t, db.Create(pkg).Error)

	author := &catalogentity.Author{Name: "Hadley Wickham"}
	require.NoError(t, db.Create(author).Error)

	require.NoError(t, db.Create(&catalogentity.AuthorPackage{
		AuthorID: author.ID, PackageID: pkg.ID,
	}).Error)
	require.NoError(t, db.Create(&catalogentity.AuthorIdentity{
		AuthorID: author.ID, UserID: user.ID,
	}).Error)

	return user.ID, pkg.ID
}

func TestAuthorshipGorm_IsAuthor(t *testing.T) {
	t.Run("linked user is an author", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAuthorshipGorm(db)
		userID, pkgID := seedAuthorship(t, db)

		ok, err := repo.IsAuthor(context.Background(), userID, pkgID)

		assert.NoError(t, err, "failed to query authorship")
		assert.True(t, ok, "linked user should be an author")
	})

	t.Run("unlinked user is not an author", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAuthorshipGorm(db)
		_, pkgID := seedAuthorship(t, db)

		other := &entity.User{Login: "jenny", Email: "jenny@example.com"}
		require.NoError(t, db.Create(other).Error)

		ok, err := repo.IsAuthor(context.Background(), other.ID, pkgID)

		assert.NoError(t, err, "failed to query authorship")
		assert.False(t, ok, "unlinked user must not be an author")
	})

	t.Run("identity without a package link does not count", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAuthorshipGorm(db)
		userID, _ := seedAuthorship(t, db)

		otherPkg := &catalogentity.Package{Name: "tidyr"}
		require.NoError(t, db.Create(otherPkg).Error)

		ok, err := repo.IsAuthor(context.Background(), userID, otherPkg.ID)

		assert.NoError(t, err, "failed to query authorship")
		assert.False(t, ok, "author of one package is not author of all")
	})
}
