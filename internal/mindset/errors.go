package mindset

import "errors"

var (
	// ErrNotFound indicates no profile document exists for the user.
	ErrNotFound = errors.New("profile not found")
	// ErrConflict indicates a profile already exists for the user.
	ErrConflict = errors.New("profile already exists")
	// ErrInvalidProgress indicates a belief score outside the 0-100 range.
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
)
