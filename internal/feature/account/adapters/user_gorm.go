// Package adapters provides the repository implementations for the account feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"pkgdir/internal/feature/account/domain/entity"
	"pkgdir/internal/feature/account/usecase"
)

// userGorm is the GORM implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new userGorm instance on the given connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create persists a new account. Returns ErrLoginTaken when the login
// collides with an existing row.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// MySQL error 1062: duplicate entry for a unique key.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrLoginTaken
		}
		return err
	}
	return nil
}

// Update persists changes to an existing account.
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// FindByID retrieves an account by id.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByLogin retrieves an account by its unique login.
func (r *userGorm) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.findOne(ctx, "login = ?", login)
}

// FindByEmail retrieves the first account with the given email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByIdentity retrieves the account linked to a provider identity.
func (r *userGorm) FindByIdentity(ctx context.Context, provider, providerUserID string) (*entity.User, error) {
	return r.findOne(ctx, "provider = ? AND provider_user_id = ?", provider, providerUserID)
}

func (r *userGorm) findOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
