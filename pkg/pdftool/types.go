package pdftool

import (
	"errors"
	"time"
)

const DefaultTimeout = 5 * time.Minute

var (
	ErrPathRequired = errors.New("pdftool: executable path is required")
	ErrToolFailed   = errors.New("pdftool: tool exited with an error")
)

// Config configures the executable runner.
type Config struct {
	Path    string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrPathRequired
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// Output is what the tool printed.
type Output struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}
