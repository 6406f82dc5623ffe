package domain

import "errors"

var (
	// ErrProviderFailure covers every way the completion provider can fail:
	// unreachable, erroring, timing out or returning nothing usable.
	ErrProviderFailure = errors.New("completion provider failure")

	// ErrPersistence wraps store failures raised while handling a message.
	ErrPersistence = errors.New("persistence failure")

	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)
