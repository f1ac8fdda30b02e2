package identity

import "errors"

// Domain errors for the identity module.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNotAdmin     = errors.New("caller is not an admin")
)
