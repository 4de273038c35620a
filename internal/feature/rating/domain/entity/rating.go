// Package entity defines the domain entities for the rating feature.
package entity

import "time"

// Rating aspects. A user holds at most one active vote per package and
// aspect; rating the same pair again replaces the previous value.
const (
	AspectOverall       = "overall"
	AspectDocumentation = "documentation"
)

// Aspects lists the dimensions a package can be rated on.
var Aspects = []string{AspectOverall, AspectDocumentation}

// ValidAspect reports whether s names a known rating aspect.
func ValidAspect(s string) bool {
	for _, a := range Aspects {
		if a == s {
			return true
		}
	}
	return false
}

// Rating represents one user's vote for a package on a single aspect.
type Rating struct {
	// ID is the unique identifier for the rating.
	ID uint `gorm:"primaryKey"`

	// PackageID references the rated package.
	PackageID uint `gorm:"not null;uniqueIndex:idx_ratings_vote"`

	// UserID references the voting user. Nullable so that deleting an
	// account orphans its ratings instead of cascading.
	UserID *uint `gorm:"uniqueIndex:idx_ratings_vote"`

	// Rating is the vote value, 1 through 5.
	Rating int `gorm:"not null;check:rating >= 1 AND rating <= 5"`

	// Aspect is the rated dimension, "overall" or "documentation".
	Aspect string `gorm:"size:25;not null;default:'overall';uniqueIndex:idx_ratings_vote"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Rating) TableName() string {
	return "ratings"
}
