// Package handler provides the HTTP handlers for the account feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pkgdir/internal/api"
	"pkgdir/internal/feature/account/domain/entity"
	"pkgdir/internal/feature/account/transport/http/dto"
	"pkgdir/internal/feature/account/usecase"
	jwtmw "pkgdir/internal/platform/jwt"
)

// AuthUsecase defines the account operations the auth handlers need.
// Following Go convention, the interface is defined by the consumer
// (handler) rather than the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	Login(ctx context.Context, login, password, ip string) (string, *entity.User, error)
	Activate(ctx context.Context, token string) (*entity.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	User(ctx context.Context, id uint) (*entity.User, error)
}

// AuthHandler handles signup, login, activation and password resets.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /signup.
// - 400 for malformed bodies or failed account validation
// - 409 when the login is taken
// - 201 with the new account on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Login:    req.Login,
		Email:    req.Email,
		Password: req.Password,
		TOS:      req.TOS,
		Homepage: req.Homepage,
		Profile:  req.Profile,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLoginTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		case errors.Is(err, usecase.ErrMalformedLogin),
			errors.Is(err, usecase.ErrMalformedEmail),
			errors.Is(err, usecase.ErrTermsNotAccepted),
			errors.Is(err, usecase.ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("signup failed", "error", err, "login", req.Login)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signup failed"})
		}
		return
	}
	slog.Info("user signup successful", "login", user.Login, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserResp(user))
}

// Login handles POST /login.
// - 401 for bad credentials (generic message, no account enumeration)
// - 403 for unactivated accounts
// - 200 with a JWT on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Login, req.Password, c.ClientIP())
	if err != nil {
		if errors.Is(err, usecase.ErrNotActivated) {
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "account is not activated"})
			return
		}
		slog.Warn("login failed", "error", err, "login", req.Login, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid login or password"})
		return
	}
	slog.Info("user login successful", "login", user.Login, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Activate handles POST /activate/:token, redeeming the emailed
// activation link.
func (h *AuthHandler) Activate(c *gin.Context) {
	user, err := h.auth.Activate(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, usecase.ErrTokenInvalid) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or expired token"})
			return
		}
		slog.Error("activation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "activation failed"})
		return
	}
	slog.Info("user activated", "login", user.Login)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "account activated"})
}

// RequestPasswordReset handles POST /password-resets. The response
// does not reveal whether the email exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil &&
		!errors.Is(err, usecase.ErrUserNotFound) {
		slog.Error("password reset request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "password reset failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "reset instructions sent if the address is known"})
}

// ResetPassword handles PUT /password-resets/:token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		if errors.Is(err, usecase.ErrTokenInvalid) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or expired token"})
			return
		}
		slog.Error("password reset failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "password reset failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
}

// Me handles GET /me for the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	user, err := h.auth.User(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResp(user))
}
