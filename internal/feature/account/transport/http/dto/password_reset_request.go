package dto

// PasswordResetRequestReq asks for reset instructions to be mailed.
type PasswordResetRequestReq struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetReq sets a new password with a token from the reset mail.
type PasswordResetReq struct {
	Password string `json:"password" binding:"required,min=8"`
}
