package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pkgdir/internal/feature/account/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(u *entity.User) error
	// UpdateFunc is called when the Update method is invoked.
	UpdateFunc func(u *entity.User) error
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(id uint) (*entity.User, error)
	// FindByLoginFunc is called when the FindByLogin method is invoked.
	FindByLoginFunc func(login string) (*entity.User, error)
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(email string) (*entity.User, error)
	// FindByIdentityFunc is called when the FindByIdentity method is invoked.
	FindByIdentityFunc func(provider, providerUserID string) (*entity.User, error)
}

func (m *mockUserRepository) Create(_ context.Context, u *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(u)
	}
	return nil
}

func (m *mockUserRepository) Update(_ context.Context, u *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(u)
	}
	return nil
}

func (m *mockUserRepository) FindByID(_ context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	if m.FindByLoginFunc != nil {
		return m.FindByLoginFunc(login)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByIdentity(_ context.Context, provider, providerUserID string) (*entity.User, error) {
	if m.FindByIdentityFunc != nil {
		return m.FindByIdentityFunc(provider, providerUserID)
	}
	return nil, ErrUserNotFound
}

// mockTokenStore is a mock implementation of the TokenStore interface.
type mockTokenStore struct {
	// IssueFunc is called when the Issue method is invoked.
	IssueFunc func(purpose string, userID uint, ttl time.Duration) (string, error)
	// ConsumeFunc is called when the Consume method is invoked.
	ConsumeFunc func(purpose, token string) (uint, error)
}

func (m *mockTokenStore) Issue(_ context.Context, purpose string, userID uint, ttl time.Duration) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(purpose, userID, ttl)
	}
	return "mock-token", nil
}

func (m *mockTokenStore) Consume(_ context.Context, purpose, token string) (uint, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(purpose, token)
	}
	return 0, ErrTokenInvalid
}

// mockMailer records which mails were dispatched.
type mockMailer struct {
	activationInstructions int
	activationConfirmation int
	passwordInstructions   int
	lastToken              string
}

func (m *mockMailer) ActivationInstructions(_ context.Context, _ *entity.User, token string) {
	m.activationInstructions++
	m.lastToken = token
}

func (m *mockMailer) ActivationConfirmation(_ context.Context, _ *entity.User) {
	m.activationConfirmation++
}

func (m *mockMailer) PasswordResetInstructions(_ context.Context, _ *entity.User, token string) {
	m.passwordInstructions++
	m.lastToken = token
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(userID uint, login string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, login string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, login)
	}
	return "mock-jwt-token", nil
}

func newTestAuthUsecase(repo *mockUserRepository, tokens *mockTokenStore, mailer *mockMailer, jwtGen *mockJWTGenerator) *authUsecase {
	if repo == nil {
		repo = &mockUserRepository{}
	}
	if tokens == nil {
		tokens = &mockTokenStore{}
	}
	if mailer == nil {
		mailer = &mockMailer{}
	}
	if jwtGen == nil {
		jwtGen = &mockJWTGenerator{}
	}
	return NewAuthUsecase(repo, tokens, mailer, jwtGen)
}

func validSignup() SignupInput {
	return SignupInput{
		Login:    "hadley",
		Email:    "hadley@example.com",
		Password: "password123",
		TOS:      true,
	}
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				// Verify that the password is hashed
				if user.CryptedPassword == "" || user.CryptedPassword == "password123" {
					t.Errorf("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.CryptedPassword), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if user.ActivatedAt != nil {
					t.Error("local signup must start unactivated")
				}
				user.ID = 1
				return nil
			},
		}
		mailer := &mockMailer{}

		uc := newTestAuthUsecase(mockRepo, nil, mailer, nil)
		user, err := uc.Signup(context.Background(), validSignup())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Login != "hadley" {
			t.Errorf("unexpected login: %s", user.Login)
		}
		if mailer.activationInstructions != 1 {
			t.Errorf("expected one activation mail, got %d", mailer.activationInstructions)
		}
		if mailer.lastToken == "" {
			t.Error("activation mail should carry a token")
		}
	})

	t.Run("malformed login", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		for _, login := range []string{"", "a", ".leading", "spa ces", "bad!char"} {
			in := validSignup()
			in.Login = login
			_, err := uc.Signup(context.Background(), in)
			if !errors.Is(err, ErrMalformedLogin) {
				t.Errorf("login %q: expected ErrMalformedLogin, got %v", login, err)
			}
		}
	})

	t.Run("accepted login shapes", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		for _, login := range []string{"ab", "hadley", "user.name", "user-name", "user_name", "user@host"} {
			in := validSignup()
			in.Login = login
			if _, err := uc.Signup(context.Background(), in); err != nil {
				t.Errorf("login %q: unexpected error: %v", login, err)
			}
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		for _, email := range []string{"", "plain", "no@dot", "two@@example.com", "spa ce@example.com"} {
			in := validSignup()
			in.Email = email
			_, err := uc.Signup(context.Background(), in)
			if !errors.Is(err, ErrMalformedEmail) {
				t.Errorf("email %q: expected ErrMalformedEmail, got %v", email, err)
			}
		}
	})

	t.Run("terms not accepted", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		in := validSignup()
		in.TOS = false
		_, err := uc.Signup(context.Background(), in)

		if !errors.Is(err, ErrTermsNotAccepted) {
			t.Errorf("expected ErrTermsNotAccepted, got %v", err)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		in := validSignup()
		in.Password = ""
		_, err := uc.Signup(context.Background(), in)

		if !errors.Is(err, ErrPasswordRequired) {
			t.Errorf("expected ErrPasswordRequired, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		in := validSignup()
		in.Password = "short"
		_, err := uc.Signup(context.Background(), in)

		if err == nil || !strings.Contains(err.Error(), "at least") {
			t.Errorf("expected length error, got %v", err)
		}
	})

	t.Run("login taken", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error { return ErrLoginTaken },
		}
		mailer := &mockMailer{}

		uc := newTestAuthUsecase(mockRepo, nil, mailer, nil)
		_, err := uc.Signup(context.Background(), validSignup())

		if !errors.Is(err, ErrLoginTaken) {
			t.Errorf("expected ErrLoginTaken, got %v", err)
		}
		if mailer.activationInstructions != 0 {
			t.Error("no mail should go out on a failed signup")
		}
	})
}

func TestAuthUsecase_FindOrCreateFromIdentity(t *testing.T) {
	t.Run("existing identity is returned as-is", func(t *testing.T) {
		existing := &entity.User{ID: 5, Login: "hadley", Provider: "google", ProviderUserID: "uid-1"}
		mockRepo := &mockUserRepository{
			FindByIdentityFunc: func(provider, providerUserID string) (*entity.User, error) {
				if provider != "google" || providerUserID != "uid-1" {
					t.Errorf("unexpected lookup: %s/%s", provider, providerUserID)
				}
				return existing, nil
			},
			CreateFunc: func(user *entity.User) error {
				t.Error("no account should be created for a known identity")
				return nil
			},
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		user, err := uc.FindOrCreateFromIdentity(context.Background(), "google", "uid-1", "h@example.com", "hadley")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 5 {
			t.Errorf("expected existing account, got ID %d", user.ID)
		}
	})

	t.Run("first sight creates an activated account", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				created = user
				user.ID = 7
				return nil
			},
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		user, err := uc.FindOrCreateFromIdentity(context.Background(), "google", "uid-1", "h@example.com", "hadley")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("expected an account to be created")
		}
		if !user.Active() {
			t.Error("provider-sourced accounts must be activated at creation")
		}
		if user.CryptedPassword != "" {
			t.Error("provider-sourced accounts must not hold credentials")
		}
		if user.Provider != "google" || user.ProviderUserID != "uid-1" {
			t.Errorf("identity not recorded: %s/%s", user.Provider, user.ProviderUserID)
		}
	})

	t.Run("login collision retries with provider suffix", func(t *testing.T) {
		attempts := 0
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				attempts++
				if attempts == 1 {
					return ErrLoginTaken
				}
				return nil
			},
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		user, err := uc.FindOrCreateFromIdentity(context.Background(), "google", "uid-1", "h@example.com", "hadley")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if attempts != 2 {
			t.Errorf("expected two create attempts, got %d", attempts)
		}
		if user.Login != "hadley-uid-1" {
			t.Errorf("expected disambiguated login, got %q", user.Login)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	activatedAt := time.Now().Add(-time.Hour)

	activeUser := func() *entity.User {
		return &entity.User{
			ID:              1,
			Login:           "hadley",
			Email:           "hadley@example.com",
			CryptedPassword: string(hashedPassword),
			ActivatedAt:     &activatedAt,
		}
	}

	t.Run("successful login", func(t *testing.T) {
		user := activeUser()
		var updated *entity.User
		mockRepo := &mockUserRepository{
			FindByLoginFunc: func(login string) (*entity.User, error) { return user, nil },
			UpdateFunc:      func(u *entity.User) error { updated = u; return nil },
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, login string) (string, error) {
				if userID != 1 || login != "hadley" {
					t.Errorf("unexpected claims: userID=%d login=%s", userID, login)
				}
				return "mock-jwt-token", nil
			},
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, mockJWT)
		token, got, err := uc.Login(context.Background(), "hadley", password, "203.0.113.9")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-jwt-token" {
			t.Errorf("expected token 'mock-jwt-token', got: '%s'", token)
		}
		if got.LoginCount != 1 {
			t.Errorf("expected login count 1, got %d", got.LoginCount)
		}
		if got.CurrentLoginIP != "203.0.113.9" {
			t.Errorf("current login IP not recorded: %q", got.CurrentLoginIP)
		}
		if updated == nil {
			t.Error("login bookkeeping was not persisted")
		}
	})

	t.Run("login metadata shifts into the last slots", func(t *testing.T) {
		prev := time.Now().Add(-24 * time.Hour)
		user := activeUser()
		user.LoginCount = 4
		user.CurrentLoginAt = &prev
		user.CurrentLoginIP = "198.51.100.1"

		mockRepo := &mockUserRepository{
			FindByLoginFunc: func(login string) (*entity.User, error) { return user, nil },
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		_, got, err := uc.Login(context.Background(), "hadley", password, "203.0.113.9")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.LoginCount != 5 {
			t.Errorf("expected login count 5, got %d", got.LoginCount)
		}
		if got.LastLoginIP != "198.51.100.1" {
			t.Errorf("previous IP should shift to last slot, got %q", got.LastLoginIP)
		}
		if got.LastLoginAt == nil || !got.LastLoginAt.Equal(prev) {
			t.Error("previous login time should shift to last slot")
		}
	})

	t.Run("unknown login", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		_, _, err := uc.Login(context.Background(), "nobody", password, "")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByLoginFunc: func(login string) (*entity.User, error) { return activeUser(), nil },
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		_, _, err := uc.Login(context.Background(), "hadley", "wrong-password", "")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("provider-sourced account cannot use local login", func(t *testing.T) {
		user := activeUser()
		user.Provider = "google"
		user.ProviderUserID = "uid-1"
		mockRepo := &mockUserRepository{
			FindByLoginFunc: func(login string) (*entity.User, error) { return user, nil },
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		_, _, err := uc.Login(context.Background(), "hadley", password, "")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unactivated account", func(t *testing.T) {
		user := activeUser()
		user.ActivatedAt = nil
		mockRepo := &mockUserRepository{
			FindByLoginFunc: func(login string) (*entity.User, error) { return user, nil },
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, nil)
		_, _, err := uc.Login(context.Background(), "hadley", password, "")

		if !errors.Is(err, ErrNotActivated) {
			t.Errorf("expected ErrNotActivated, got %v", err)
		}
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByLoginFunc: func(login string) (*entity.User, error) { return activeUser(), nil },
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, login string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := newTestAuthUsecase(mockRepo, nil, nil, mockJWT)
		_, _, err := uc.Login(context.Background(), "hadley", password, "")

		if err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}

func TestAuthUsecase_Activate(t *testing.T) {
	t.Run("successful activation", func(t *testing.T) {
		user := &entity.User{ID: 3, Login: "hadley", Email: "hadley@example.com"}
		var updated *entity.User
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(id uint) (*entity.User, error) {
				if id != 3 {
					t.Errorf("unexpected id: %d", id)
				}
				return user, nil
			},
			UpdateFunc: func(u *entity.User) error { updated = u; return nil },
		}
		tokens := &mockTokenStore{
			ConsumeFunc: func(purpose, token string) (uint, error) {
				if purpose != TokenPurposeActivation {
					t.Errorf("unexpected purpose: %s", purpose)
				}
				if token != "tok-1" {
					t.Errorf("unexpected token: %s", token)
				}
				return 3, nil
			},
		}
		mailer := &mockMailer{}

		uc := newTestAuthUsecase(mockRepo, tokens, mailer, nil)
		got, err := uc.Activate(context.Background(), "tok-1")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Active() {
			t.Error("account should be activated")
		}
		if updated == nil {
			t.Error("activation was not persisted")
		}
		if mailer.activationConfirmation != 1 {
			t.Errorf("expected one confirmation mail, got %d", mailer.activationConfirmation)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		_, err := uc.Activate(context.Background(), "bogus")

		if !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestAuthUsecase_PasswordReset(t *testing.T) {
	t.Run("request sends instructions with a token", func(t *testing.T) {
		user := &entity.User{ID: 3, Login: "hadley", Email: "hadley@example.com"}
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) { return user, nil },
		}
		tokens := &mockTokenStore{
			IssueFunc: func(purpose string, userID uint, ttl time.Duration) (string, error) {
				if purpose != TokenPurposePasswordReset {
					t.Errorf("unexpected purpose: %s", purpose)
				}
				if userID != 3 {
					t.Errorf("unexpected user id: %d", userID)
				}
				return "reset-token", nil
			},
		}
		mailer := &mockMailer{}

		uc := newTestAuthUsecase(mockRepo, tokens, mailer, nil)
		err := uc.RequestPasswordReset(context.Background(), "hadley@example.com")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mailer.passwordInstructions != 1 {
			t.Errorf("expected one reset mail, got %d", mailer.passwordInstructions)
		}
		if mailer.lastToken != "reset-token" {
			t.Errorf("mail should carry the issued token, got %q", mailer.lastToken)
		}
	})

	t.Run("request for unknown email", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		err := uc.RequestPasswordReset(context.Background(), "nobody@example.com")

		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("reset replaces the password", func(t *testing.T) {
		user := &entity.User{ID: 3, Login: "hadley", CryptedPassword: "old-hash"}
		var updated *entity.User
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(id uint) (*entity.User, error) { return user, nil },
			UpdateFunc:   func(u *entity.User) error { updated = u; return nil },
		}
		tokens := &mockTokenStore{
			ConsumeFunc: func(purpose, token string) (uint, error) { return 3, nil },
		}

		uc := newTestAuthUsecase(mockRepo, tokens, nil, nil)
		err := uc.ResetPassword(context.Background(), "reset-token", "brand-new-pass")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("password change was not persisted")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(updated.CryptedPassword), []byte("brand-new-pass")); err != nil {
			t.Errorf("new password does not verify: %v", err)
		}
	})

	t.Run("reset with a short password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(id uint) (*entity.User, error) {
				return &entity.User{ID: 3, Login: "hadley"}, nil
			},
		}
		tokens := &mockTokenStore{
			ConsumeFunc: func(purpose, token string) (uint, error) { return 3, nil },
		}

		uc := newTestAuthUsecase(mockRepo, tokens, nil, nil)
		err := uc.ResetPassword(context.Background(), "reset-token", "short")

		if err == nil || !strings.Contains(err.Error(), "at least") {
			t.Errorf("expected length error, got %v", err)
		}
	})

	t.Run("reset with an invalid token", func(t *testing.T) {
		uc := newTestAuthUsecase(nil, nil, nil, nil)

		err := uc.ResetPassword(context.Background(), "bogus", "brand-new-pass")

		if !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestAuthUsecase_RequirePassword(t *testing.T) {
	uc := newTestAuthUsecase(nil, nil, nil, nil)

	tests := []struct {
		name string
		user *entity.User
		want bool
	}{
		{"new local account", &entity.User{}, true},
		{"existing local account with password", &entity.User{ID: 1, CryptedPassword: "hash"}, true},
		{"existing account without password", &entity.User{ID: 1}, false},
		{"provider-sourced account", &entity.User{ID: 1, Provider: "google", ProviderUserID: "uid-1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uc.RequirePassword(tt.user); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
