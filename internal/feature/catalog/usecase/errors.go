// Package usecase implements the business logic for the catalog feature.
package usecase

import "errors"

var (
	// ErrPackageNotFound is returned when a package cannot be found by id or name.
	ErrPackageNotFound = errors.New("package not found")
)
