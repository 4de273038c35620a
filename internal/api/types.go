// Package api defines the response types shared across HTTP handlers.
package api

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for successful requests with no
// payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the body returned after successful authentication.
type TokenResponse struct {
	Token string `json:"token"`
}
