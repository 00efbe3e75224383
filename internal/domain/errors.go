package domain

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrNoActiveSession   = errors.New("no active session")
	ErrSessionConflict   = errors.New("active session already exists")
	ErrUnauthorized      = errors.New("api token rejected")
	ErrInvalidDayRange   = errors.New("invalid day range")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrUnsupportedFormat = errors.New("unsupported duration format")
)
