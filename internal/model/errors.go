package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrHandleNotFound  = errors.New("handle reservation not found")
	ErrHandleTaken     = errors.New("username is already taken")
	ErrUsernameMissing = errors.New("username is required")
	ErrUsernameTooLong = errors.New("username must be at most 15 characters")
	ErrEmailMissing    = errors.New("email is required")

	// Session errors
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrNoActiveGame      = errors.New("no active game")
	ErrSessionInvalid    = errors.New("active game has an unrecognized difficulty")
)
