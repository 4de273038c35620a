// Package usecase implements the business logic for the account feature.
package usecase

import "errors"

var (
	// ErrLoginTaken is returned when the requested login already exists.
	ErrLoginTaken = errors.New("login already taken")

	// ErrMalformedLogin is returned when a login fails format validation.
	ErrMalformedLogin = errors.New("login may only use letters, numbers, and .-_@")

	// ErrMalformedEmail is returned when an email fails format validation.
	ErrMalformedEmail = errors.New("not a valid email address")

	// ErrTermsNotAccepted is returned when a local signup has not accepted the terms of service.
	ErrTermsNotAccepted = errors.New("terms of service must be accepted")

	// ErrPasswordRequired is returned when a local signup supplies no password.
	ErrPasswordRequired = errors.New("password is required")

	// ErrInvalidCredentials is returned when login or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrNotActivated is returned when an unactivated account attempts to log in.
	ErrNotActivated = errors.New("account is not activated")

	// ErrUserNotFound is returned when a user cannot be found by id, login or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrPackageNotFound is returned when the referenced package does not exist.
	ErrPackageNotFound = errors.New("package not found")

	// ErrUsageConflict is returned when a concurrent toggle already
	// created the usage row for the same (user, package) pair.
	ErrUsageConflict = errors.New("usage membership already exists")

	// ErrTokenInvalid is returned when a perishable token is unknown,
	// already redeemed, or expired.
	ErrTokenInvalid = errors.New("invalid or expired token")
)
