// Package dto defines data transfer objects for the account feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
// Format rules beyond these binding tags (login pattern, terms
// acceptance) are enforced by the usecase.
type SignupReq struct {
	Login    string `json:"login" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	TOS      bool   `json:"tos"`
	Homepage string `json:"homepage"`
	Profile  string `json:"profile"`
}
