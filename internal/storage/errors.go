package storage

import "errors"

var (
	ErrSessionNotFound = errors.New("saved session not found")
	ErrInvalidName     = errors.New("invalid save name")
)
