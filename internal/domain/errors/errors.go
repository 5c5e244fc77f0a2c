package errors

import "errors"

var (
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotFound        = errors.New("not found")
	ErrDataUnavailable = errors.New("user data unavailable")
	ErrInvalidPeriod   = errors.New("invalid optimization period")
	ErrInvalidUser     = errors.New("invalid user identifier")
	ErrOrderTerminal   = errors.New("order already in terminal state")
)
