package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"pkgdir/internal/api"
	"pkgdir/internal/config"
	"pkgdir/internal/feature/account/domain/entity"
)

// IdentityUsecase resolves identity-provider callbacks to accounts.
type IdentityUsecase interface {
	FindOrCreateFromIdentity(ctx context.Context, provider, providerUserID, email, login string) (*entity.User, error)
	IssueToken(user *entity.User) (string, error)
}

// InitProviders configures the Goth OAuth providers. Gothic keeps its
// own gorilla/sessions store, separate from the gin session store, so
// it is configured here with matching cookie settings.
func InitProviders(cfg *config.Config) {
	gothStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	gothStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = gothStore

	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set, provider login disabled")
		return
	}

	goth.UseProviders(
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleCallbackURL,
			"email",
			"profile",
		),
	)
	slog.Info("OAuth providers initialized", "providers", "google")
}

// OAuthHandler handles the identity-provider login flow.
type OAuthHandler struct {
	identities IdentityUsecase
}

// NewOAuthHandler creates a new OAuthHandler instance.
func NewOAuthHandler(identities IdentityUsecase) *OAuthHandler {
	return &OAuthHandler{identities: identities}
}

// withProvider injects the :provider path param as the query parameter
// gothic expects.
func withProvider(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()
}

// Begin handles GET /auth/:provider, starting the OAuth flow.
func (h *OAuthHandler) Begin(c *gin.Context) {
	withProvider(c)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// Callback handles GET /auth/:provider/callback. The provider identity
// is resolved to an account (created on first sight, already
// activated) and a JWT is returned.
func (h *OAuthHandler) Callback(c *gin.Context) {
	withProvider(c)
	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		slog.Warn("provider auth failed", "provider", c.Param("provider"), "error", err)
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication failed"})
		return
	}

	login := gothUser.NickName
	if login == "" {
		// Fall back to the mailbox part of the address.
		login = strings.SplitN(gothUser.Email, "@", 2)[0]
	}

	user, err := h.identities.FindOrCreateFromIdentity(c.Request.Context(),
		c.Param("provider"), gothUser.UserID, gothUser.Email, login)
	if err != nil {
		slog.Error("provider account resolution failed", "provider", c.Param("provider"), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "authentication failed"})
		return
	}

	token, err := h.identities.IssueToken(user)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "authentication failed"})
		return
	}

	slog.Info("provider login successful", "login", user.Login, "provider", user.Provider)
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
