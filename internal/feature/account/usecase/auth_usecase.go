package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pkgdir/internal/feature/account/domain/entity"
)

// Perishable token purposes and their shared lifetime.
const (
	TokenPurposeActivation    = "activation"
	TokenPurposePasswordReset = "password_reset"

	perishableTokenTTL = 24 * time.Hour

	minPasswordLength = 8
)

// UserRepository abstracts the persistence layer for user accounts.
// Following Go convention, the interface is defined by the consumer
// (usecase) rather than the provider (adapters).
type UserRepository interface {
	// Create persists a new account. Returns ErrLoginTaken when the
	// login already exists.
	Create(ctx context.Context, u *entity.User) error

	// Update persists changes to an existing account.
	Update(ctx context.Context, u *entity.User) error

	// FindByID returns the account with the given id, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByLogin returns the account with the given login, or ErrUserNotFound.
	FindByLogin(ctx context.Context, login string) (*entity.User, error)

	// FindByEmail returns the first account with the given email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByIdentity returns the account linked to the given provider
	// identity, or ErrUserNotFound.
	FindByIdentity(ctx context.Context, provider, providerUserID string) (*entity.User, error)
}

// TokenStore issues and redeems one-shot perishable tokens for
// activation and password-reset links.
type TokenStore interface {
	Issue(ctx context.Context, purpose string, userID uint, ttl time.Duration) (string, error)
	Consume(ctx context.Context, purpose, token string) (uint, error)
}

// Mailer dispatches transactional mail. Delivery is fire-and-forget:
// implementations queue or log, they never surface transport failures
// to the caller.
type Mailer interface {
	ActivationInstructions(ctx context.Context, u *entity.User, token string)
	ActivationConfirmation(ctx context.Context, u *entity.User)
	PasswordResetInstructions(ctx context.Context, u *entity.User, token string)
}

// JWTGenerator creates signed tokens for authenticated sessions.
type JWTGenerator interface {
	GenerateToken(userID uint, login string) (string, error)
}

// SignupInput carries the fields a local signup may set.
type SignupInput struct {
	Login    string
	Email    string
	Password string
	TOS      bool
	Homepage string
	Profile  string
}

// authUsecase implements signup, login, activation and the mail flows
// around them.
type authUsecase struct {
	users  UserRepository
	tokens TokenStore
	mailer Mailer
	jwtGen JWTGenerator
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, tokens TokenStore, mailer Mailer, jwtGen JWTGenerator) *authUsecase {
	return &authUsecase{users: users, tokens: tokens, mailer: mailer, jwtGen: jwtGen}
}

// Signup registers a local account and sends activation instructions.
// The account stays unactivated until the emailed token is redeemed.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	user := &entity.User{
		Login:    in.Login,
		Email:    in.Email,
		TOS:      in.TOS,
		Homepage: in.Homepage,
		Profile:  in.Profile,
	}
	if err := policyFor(user).Validate(user); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		if in.Password == "" {
			return nil, ErrPasswordRequired
		}
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.CryptedPassword = string(hashed)

	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	u.DeliverActivationInstructions(ctx, user)
	return user, nil
}

// FindOrCreateFromIdentity resolves an identity-provider callback to an
// account, creating one on first sight. Provider-sourced accounts are
// activated immediately and carry no credential material.
func (u *authUsecase) FindOrCreateFromIdentity(ctx context.Context, provider, providerUserID, email, login string) (*entity.User, error) {
	user, err := u.users.FindByIdentity(ctx, provider, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user = &entity.User{
		Login:          login,
		Email:          email,
		Provider:       provider,
		ProviderUserID: providerUserID,
		ActivatedAt:    &now,
	}
	if err := policyFor(user).Validate(user); err != nil {
		return nil, err
	}
	if err := u.users.Create(ctx, user); err != nil {
		// Provider logins may collide on a login name already taken by
		// a local account; disambiguate with the provider user id.
		if errors.Is(err, ErrLoginTaken) {
			user.Login = fmt.Sprintf("%s-%s", login, providerUserID)
			if err := u.users.Create(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a local account and returns a signed JWT. A
// bcrypt comparison runs even for unknown logins to keep response
// timing uniform.
func (u *authUsecase) Login(ctx context.Context, login, password, ip string) (string, *entity.User, error) {
	user, err := u.users.FindByLogin(ctx, login)

	// Dummy hash so CompareHashAndPassword always runs.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil && user.CryptedPassword != "" {
		passwordHash = user.CryptedPassword
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !policyFor(user).RequirePassword(user) {
		// Password-less accounts (provider-sourced) cannot use the
		// local login path.
		return "", nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return "", nil, ErrNotActivated
	}

	// Shift current login metadata into the "last" slots.
	now := time.Now().UTC()
	user.LoginCount++
	user.LastLoginAt = user.CurrentLoginAt
	user.LastLoginIP = user.CurrentLoginIP
	user.CurrentLoginAt = &now
	user.CurrentLoginIP = ip
	if err := u.users.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := u.jwtGen.GenerateToken(user.ID, user.Login)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Activate redeems an activation token, stamps the account and sends
// the confirmation mail.
func (u *authUsecase) Activate(ctx context.Context, token string) (*entity.User, error) {
	userID, err := u.tokens.Consume(ctx, TokenPurposeActivation, token)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.ActivatedAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}

	u.DeliverActivationConfirmation(ctx, user)
	return user, nil
}

// RequestPasswordReset sends reset instructions to the account with
// the given email.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	u.DeliverPasswordResetInstructions(ctx, user)
	return nil
}

// ResetPassword redeems a reset token and replaces the account's
// password.
func (u *authUsecase) ResetPassword(ctx context.Context, token, password string) error {
	userID, err := u.tokens.Consume(ctx, TokenPurposePasswordReset, token)
	if err != nil {
		return err
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.CryptedPassword = string(hashed)
	return u.users.Update(ctx, user)
}

// User returns the account with the given id.
func (u *authUsecase) User(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// IssueToken signs a JWT for an already-authenticated account, e.g.
// after a provider callback.
func (u *authUsecase) IssueToken(user *entity.User) (string, error) {
	return u.jwtGen.GenerateToken(user.ID, user.Login)
}

// RequirePassword reports whether the account authenticates with a
// local password. Always false for provider-sourced accounts.
func (u *authUsecase) RequirePassword(user *entity.User) bool {
	return policyFor(user).RequirePassword(user)
}

// DeliverActivationInstructions issues a fresh activation token and
// queues the instruction mail.
func (u *authUsecase) DeliverActivationInstructions(ctx context.Context, user *entity.User) {
	token, err := u.tokens.Issue(ctx, TokenPurposeActivation, user.ID, perishableTokenTTL)
	if err != nil {
		return
	}
	u.mailer.ActivationInstructions(ctx, user, token)
}

// DeliverActivationConfirmation queues the confirmation mail. No token
// is involved.
func (u *authUsecase) DeliverActivationConfirmation(ctx context.Context, user *entity.User) {
	u.mailer.ActivationConfirmation(ctx, user)
}

// DeliverPasswordResetInstructions issues a fresh reset token and
// queues the instruction mail.
func (u *authUsecase) DeliverPasswordResetInstructions(ctx context.Context, user *entity.User) {
	token, err := u.tokens.Issue(ctx, TokenPurposePasswordReset, user.ID, perishableTokenTTL)
	if err != nil {
		return
	}
	u.mailer.PasswordResetInstructions(ctx, user, token)
}
