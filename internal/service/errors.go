package service

import "errors"

// Domain errors for session flows.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRowOutOfRange   = errors.New("row index out of range")
)
