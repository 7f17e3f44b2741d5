package tags

import (
	"errors"
	"time"
)

const (
	TagSourceDocName = "<SourceDocName>"
	TagFPSFileDir    = "<FPSFileDir>"

	// DefaultNowLayout is used by $Now() when no layout argument is given.
	DefaultNowLayout = "2006-01-02-15-04-05"
)

var (
	ErrUnknownTag      = errors.New("unknown tag")
	ErrUnknownFunction = errors.New("unknown function")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrUnterminated    = errors.New("unterminated function call")
	ErrEnvNotSet       = errors.New("environment variable not set")
)

// Options configures an Expander.
type Options struct {
	FPSFileDir string
	Now        func() time.Time
	LookupEnv  func(string) (string, bool)
}
