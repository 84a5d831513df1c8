// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidPassword is returned when a registration password violates
	// the length rules. The caller's mistake, never an internal failure.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCredentials is returned on login when the email or password
	// is wrong. "No such user" and "wrong password" are intentionally
	// collapsed into this one error to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
