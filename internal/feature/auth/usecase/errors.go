package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when attempting to register a username that is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrMissingUsername is returned when the username field is empty.
	ErrMissingUsername = errors.New("must provide username")

	// ErrMissingPassword is returned when the password field is empty.
	ErrMissingPassword = errors.New("must provide password")

	// ErrPasswordMismatch is returned when password and confirmation do not match.
	ErrPasswordMismatch = errors.New("passwords don't match")

	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
