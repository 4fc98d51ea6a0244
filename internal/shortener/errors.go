package shortener

import "errors"

var (
	ErrNotFound        = errors.New("url not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIDExhausted     = errors.New("identifier range exhausted")
	ErrDuplicateID     = errors.New("identifier already registered")
)
