package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TaggedError is the uniform error raised at every public task entry point.
// Code is unique per throw site so support can locate the failing line from a
// log excerpt alone.
type TaggedError struct {
	Code    string
	Message string
	Debug   map[string]string
	Err     error
}

// New creates a tagged error without a cause.
func New(code, message string) *TaggedError {
	return &TaggedError{Code: code, Message: message}
}

// Wrap tags err. A nil err yields nil so call sites can wrap unconditionally.
func Wrap(code string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &TaggedError{Code: code, Message: message, Err: err}
}

// Tag is Wrap for call sites that attach debug values. Unlike Wrap it always
// returns a non-nil error, so only call it with a non-nil err.
func Tag(code string, err error, message string) *TaggedError {
	return &TaggedError{Code: code, Message: message, Err: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &TaggedError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// With attaches a debug value and returns the receiver for chaining.
func (e *TaggedError) With(key, value string) *TaggedError {
	if e.Debug == nil {
		e.Debug = make(map[string]string)
	}
	e.Debug[key] = value
	return e
}

func (e *TaggedError) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(e.Code)
	sb.WriteString("] ")
	sb.WriteString(e.Message)
	if len(e.Debug) > 0 {
		keys := make([]string, 0, len(e.Debug))
		for k := range e.Debug {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(e.Debug[k])
		}
		sb.WriteString(")")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *TaggedError) Unwrap() error { return e.Err }

// CodeOf returns the outermost tag in err's chain, or "" if untagged.
func CodeOf(err error) string {
	var te *TaggedError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// Public renders err for callers outside the process: the outermost tag's
// code and message, without debug values or causes. Untagged errors are
// returned as is.
func Public(err error) string {
	var te *TaggedError
	if errors.As(err, &te) {
		return "[" + te.Code + "] " + te.Message
	}
	return err.Error()
}

// Codes lists every tag in err's chain from outermost to innermost.
func Codes(err error) []string {
	var codes []string
	for err != nil {
		if te, ok := err.(*TaggedError); ok {
			codes = append(codes, te.Code)
		}
		err = errors.Unwrap(err)
	}
	return codes
}
