// Package entity defines the domain entities for the account feature.
package entity

import "time"

// RoleAdministrator is the role name that grants administrative access.
const RoleAdministrator = "administrator"

// User represents a directory account. Accounts are created either by
// local signup (login, email, password, terms acceptance) or through a
// federated identity provider, in which case Provider and
// ProviderUserID are set and no credential material is stored.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Login is the unique account name.
	Login string `gorm:"uniqueIndex;size:255;not null"`

	// Email is the account's contact address.
	Email string `gorm:"size:255;not null"`

	// CryptedPassword is the bcrypt hash of the password. Empty for
	// federated accounts and for accounts that never set one.
	CryptedPassword string `gorm:"size:255"`

	// Provider names the identity provider a federated account came
	// from ("google", ...). Empty for local accounts.
	Provider string `gorm:"size:40;index:idx_users_identity"`

	// ProviderUserID is the provider's stable identifier for the
	// account. Paired with Provider for federated lookup.
	ProviderUserID string `gorm:"size:255;index:idx_users_identity"`

	// ActivatedAt is set once the account confirmed its email address.
	// Federated accounts are activated at creation.
	ActivatedAt *time.Time

	// TOS records acceptance of the terms of service. Required for
	// local signups only.
	TOS bool `gorm:"not null;default:false"`

	// RoleName holds the account's role ("administrator" grants admin).
	RoleName string `gorm:"size:40"`

	Homepage string `gorm:"size:255"`
	Profile  string `gorm:"type:text"`

	// Login bookkeeping, bumped on each successful authentication.
	LoginCount     int `gorm:"not null;default:0"`
	LastLoginAt    *time.Time
	CurrentLoginAt *time.Time
	LastLoginIP    string `gorm:"size:255"`
	CurrentLoginIP string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// Federated reports whether the account came from an identity provider.
func (u *User) Federated() bool {
	return u.Provider != ""
}

// Active reports whether the account has been activated.
func (u *User) Active() bool {
	return u.ActivatedAt != nil
}

// Admin reports whether the account holds the administrator role.
func (u *User) Admin() bool {
	return u.RoleName == RoleAdministrator
}

// PackageUsage records whether a user currently uses a package. The
// row is created on the first toggle and flipped afterwards, never
// deleted, so (UserID, PackageID) stays unique for the account's life.
type PackageUsage struct {
	ID uint `gorm:"primaryKey"`

	// UserID is nullable so that deleting an account orphans its usage
	// rows instead of cascading.
	UserID    *uint `gorm:"uniqueIndex:idx_package_usages_pair"`
	PackageID uint  `gorm:"not null;uniqueIndex:idx_package_usages_pair"`

	// Active is the current usage state.
	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PackageUsage) TableName() string {
	return "package_usages"
}
