package usecase

import (
	"regexp"

	"pkgdir/internal/feature/account/domain/entity"
)

var (
	loginPattern = regexp.MustCompile(`^\w[\w.\-_@]+$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// accountPolicy captures the validation rules that differ between a
// locally created account and one provisioned through an identity
// provider. The variant is selected from the account itself instead of
// branching on a flag at every call site.
type accountPolicy interface {
	// Validate checks the account's fields before it is persisted.
	Validate(u *entity.User) error

	// RequirePassword reports whether authentication for this account
	// must go through a local password.
	RequirePassword(u *entity.User) bool
}

// policyFor returns the policy matching the account's origin.
func policyFor(u *entity.User) accountPolicy {
	if u.Federated() {
		return federatedPolicy{}
	}
	return localPolicy{}
}

// localPolicy enforces the full signup rules: login and email formats
// plus terms-of-service acceptance.
type localPolicy struct{}

func (localPolicy) Validate(u *entity.User) error {
	if !loginPattern.MatchString(u.Login) {
		return ErrMalformedLogin
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrMalformedEmail
	}
	if !u.TOS {
		return ErrTermsNotAccepted
	}
	return nil
}

func (localPolicy) RequirePassword(u *entity.User) bool {
	// Existing accounts without credential material signed up through
	// a provider before linking and have nothing to check locally.
	return u.ID == 0 || u.CryptedPassword != ""
}

// federatedPolicy trusts the identity provider: no format or terms
// checks, and never a password.
type federatedPolicy struct{}

func (federatedPolicy) Validate(u *entity.User) error { return nil }

func (federatedPolicy) RequirePassword(u *entity.User) bool { return false }
