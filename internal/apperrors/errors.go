package apperrors

import "errors"

// Sentinel errors for the auth and contact workflows. Handlers match these
// with errors.Is to pick a status code; services wrap them with context.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrEmptyShareCode     = errors.New("share code is required")
	ErrShareCodeNotFound  = errors.New("no user found with this share code")
	ErrSelfContact        = errors.New("cannot add yourself as a contact")
	ErrDuplicateContact   = errors.New("contact already added")
	ErrContactNotFound    = errors.New("contact not found")
	ErrProfileNotFound    = errors.New("profile not found")
)
