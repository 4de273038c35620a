// Package usecase implements the business logic for the rating feature.
package usecase

import "errors"

var (
	// ErrRatingOutOfRange is returned when a vote value is not between 1 and 5.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	// ErrUnknownAspect is returned when the rated aspect is not a known dimension.
	ErrUnknownAspect = errors.New("unknown rating aspect")

	// ErrRatingNotFound is returned when no rating exists for the requested vote.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrPackageNotFound is returned when the referenced package does not exist.
	ErrPackageNotFound = errors.New("package not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)
