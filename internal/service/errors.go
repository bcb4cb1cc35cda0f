package service

import "errors"

var (
	// ErrInvalidInput marks validation failures; nothing has been mutated
	// when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks a failed credential check.
	ErrUnauthorized = errors.New("unauthorized")
)
