package services

import "errors"

var (
	// ErrNotAuthor is returned when a viewer tries to edit a post they do
	// not own.
	ErrNotAuthor = errors.New("viewer is not the post author")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserHasPosts is returned when deleting a user that still owns
	// posts. Removal of authored content must happen first.
	ErrUserHasPosts = errors.New("user still owns posts")
)
