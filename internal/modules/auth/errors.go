package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account is not activated")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrPhoneTaken          = errors.New("phone already exists")
	ErrInvalidActivation   = errors.New("Error activate code or email")
	ErrUserNotFound        = errors.New("User not found with this email.")
	ErrInvalidResetCode    = errors.New("Invalid activation code.")
	ErrPasswordMismatch    = errors.New("New password and confirm password do not match.")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenReused  = errors.New("refresh token reuse detected")
	ErrUnauthorized        = errors.New("unauthorized")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
