package errors

import "errors"

var (
	ErrNameRequired       = errors.New("expert name is required")
	ErrExpertNotFound     = errors.New("expert not found")
	ErrInvalidCredentials = errors.New("name or access code is incorrect")
	ErrTokenInvalid       = errors.New("session token is invalid or expired")
	ErrForbidden          = errors.New("insufficient role for this operation")
	ErrConflict           = errors.New("expert conflict")
)
