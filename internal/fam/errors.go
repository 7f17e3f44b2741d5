package fam

import "errors"

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidCount    = errors.New("counter reservation count must be positive")
	ErrCounterOverflow = errors.New("counter overflow")
	ErrEmptyName       = errors.New("name is empty")
)
