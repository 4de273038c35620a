// Package entity defines the domain entities for the activity feature.
package entity

import "time"

// Event kinds recorded in the activity feed.
const (
	EventNewPackageRating = "new_package_rating"
)

// Subject type names used in activity records.
const (
	SubjectRating  = "rating"
	SubjectPackage = "package"
)

// Activity is one entry in the site activity feed: an actor did
// something to a subject, optionally in the context of a secondary
// subject (a rating on a package, for instance).
type Activity struct {
	ID uint `gorm:"primaryKey"`

	// Event is the event kind, e.g. "new_package_rating".
	Event string `gorm:"size:64;not null;index"`

	// ActorID is the user who performed the action.
	ActorID uint `gorm:"not null;index"`

	SubjectType string `gorm:"size:32;not null"`
	SubjectID   uint   `gorm:"not null"`

	SecondarySubjectType string `gorm:"size:32"`
	SecondarySubjectID   uint

	CreatedAt time.Time `gorm:"index"`
}

func (Activity) TableName() string {
	return "activities"
}
