package models

import (
	"errors"
	"strings"
)

var (
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("not found")
	ErrAlreadySubscribed  = errors.New("already subscribed")
	ErrAdminExists        = errors.New("admin with this email or username already exists")
	ErrRateLimited        = errors.New("too many requests")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Details []string
}

func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
