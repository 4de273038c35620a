package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"pkgdir/internal/feature/account/domain/entity"
	"pkgdir/internal/feature/account/usecase"
	catalogentity "pkgdir/internal/feature/catalog/domain/entity"
)

// usageGorm is the GORM implementation of the UsageRepository interface.
type usageGorm struct {
	db *gorm.DB
}

// Compile-time check that usageGorm implements UsageRepository.
var _ usecase.UsageRepository = (*usageGorm)(nil)

// NewUsageGorm creates a new usageGorm instance on the given connection.
func NewUsageGorm(db *gorm.DB) *usageGorm {
	return &usageGorm{db: db}
}

// Toggle flips the user's usage membership for a package inside one
// transaction. An existing row has its Active flag inverted and the
// package's usage counter moved by one in the matching direction. A
// missing row is created active; the initial row does not move the
// counter, only subsequent toggles do.
func (r *usageGorm) Toggle(ctx context.Context, userID, packageID uint) (bool, error) {
	var active bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&catalogentity.Package{}, packageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrPackageNotFound
			}
			return err
		}

		var usage entity.PackageUsage
		err := tx.Where("user_id = ? AND package_id = ?", userID, packageID).First(&usage).Error
		if err == nil {
			usage.Active = !usage.Active
			if err := tx.Save(&usage).Error; err != nil {
				return err
			}
			delta := -1
			if usage.Active {
				delta = 1
			}
			if err := tx.Model(&catalogentity.Package{}).
				Where("id = ?", packageID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error; err != nil {
				return err
			}
			active = usage.Active
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		usage = entity.PackageUsage{UserID: &userID, PackageID: packageID, Active: true}
		if err := tx.Create(&usage).Error; err != nil {
			// A concurrent toggle won the insert; the unique index on
			// (user_id, package_id) makes this a hard conflict.
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				return usecase.ErrUsageConflict
			}
			return err
		}
		active = true
		return nil
	})
	return active, err
}

// CountActive returns how many active membership rows exist for the
// (user, package) pair.
func (r *usageGorm) CountActive(ctx context.Context, userID, packageID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.PackageUsage{}).
		Where("user_id = ? AND package_id = ? AND active = ?", userID, packageID, true).
		Count(&n).Error
	return n, err
}
