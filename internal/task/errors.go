package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrNotConfigured  = errors.New("task is not configured")
	ErrNotLicensed    = errors.New("component is not licensed")
	ErrNotInitialized = errors.New("task was not initialized")
	ErrTypeMismatch   = errors.New("cannot copy from a task of a different type")
	ErrUnknownType    = errors.New("unknown task type")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Invoker errors.
var (
	ErrRunNotFound    = errors.New("run not found")
	ErrRunExists      = errors.New("a run with this id is already in flight")
	ErrFilePathEmpty  = errors.New("file path is required")
	ErrTaskUnselected = errors.New("either a component or a type name is required")
)
