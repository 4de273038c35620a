// Package entity defines the domain entities for the catalog feature.
package entity

import "time"

// Package represents an entry in the package directory.
type Package struct {
	// ID is the unique identifier for the package.
	ID uint `gorm:"primaryKey"`

	// Name is the package's directory name. It must be unique.
	Name string `gorm:"uniqueIndex;size:255;not null"`

	// Description is a short summary shown on listing pages.
	Description string `gorm:"type:text"`

	// Score is the cached aggregate rating, recomputed on every
	// rating write. Read Average on the rating store for a live value.
	Score float64 `gorm:"not null;default:0"`

	// UsageCount is the denormalized count of users marked as using
	// this package, maintained by the usage toggle.
	UsageCount int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Package) TableName() string {
	return "packages"
}

// Author represents a package author as listed in release metadata.
// Authors are not users; a user claims authorship through an
// AuthorIdentity link.
type Author struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Author) TableName() string {
	return "authors"
}

// AuthorPackage links an author to a package they maintain.
type AuthorPackage struct {
	ID        uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"not null;uniqueIndex:idx_author_packages_pair"`
	PackageID uint `gorm:"not null;uniqueIndex:idx_author_packages_pair"`

	CreatedAt time.Time
}

func (AuthorPackage) TableName() string {
	return "author_packages"
}

// AuthorIdentity links a user account to an author record, letting the
// user act as that author in the directory.
type AuthorIdentity struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_author_identities_pair"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_author_identities_pair"`

	CreatedAt time.Time
}

func (AuthorIdentity) TableName() string {
	return "author_identities"
}
