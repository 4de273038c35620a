package dto

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
