package models

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrValidation       = errors.New("validation error")
	ErrDuplicateEmail   = errors.New("duplicate email")
	ErrWrongCredentials = errors.New("wrong email or password")
)
