package apperrors

import (
	"errors"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNoUsers         = errors.New("no users found")
	ErrUsernameInvalid = errors.New("invalid username")
)
