package domain

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotGroup      = errors.New("conversation is not a group")
	ErrPersistence   = errors.New("persistence failure")
)

// ValidationError carries every requirement a request failed, so clients can
// show them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "requirements not satisfied"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
