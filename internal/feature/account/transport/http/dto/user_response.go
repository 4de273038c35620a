package dto

import (
	"time"

	"pkgdir/internal/feature/account/domain/entity"
)

// UserResp is the public representation of an account.
type UserResp struct {
	ID        uint       `json:"id"`
	Login     string     `json:"login"`
	Email     string     `json:"email"`
	Homepage  string     `json:"homepage,omitempty"`
	Profile   string     `json:"profile,omitempty"`
	Federated bool       `json:"federated"`
	Active    bool       `json:"active"`
	Admin     bool       `json:"admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login_at,omitempty"`
}

// NewUserResp maps an account entity to its public representation.
func NewUserResp(u *entity.User) UserResp {
	return UserResp{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		Homepage:  u.Homepage,
		Profile:   u.Profile,
		Federated: u.Federated(),
		Active:    u.Active(),
		Admin:     u.Admin(),
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLoginAt,
	}
}
