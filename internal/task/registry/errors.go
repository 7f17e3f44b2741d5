package registry

import "errors"

var (
	ErrEmptyTypeName = errors.New("task type name is empty")
	ErrDuplicateType = errors.New("task type already registered")
	ErrBadMagic      = errors.New("stream is not a task component")
)
