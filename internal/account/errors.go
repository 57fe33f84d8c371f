package account

import "errors"

var (
	// ErrNotFound indicates no account exists for the email.
	ErrNotFound = errors.New("account not found")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidEmail indicates the email failed validation.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword indicates the password does not meet the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrInvalidCredentials indicates the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
