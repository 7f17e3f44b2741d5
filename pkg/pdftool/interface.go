package pdftool

import "context"

// Runner invokes the external PDF modification tool.
// Implementations are safe for concurrent use.
type Runner interface {
	Run(ctx context.Context, args ...string) (Output, error)
}

// New creates a Runner for the executable in cfg.
func New(cfg Config) (Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newExecRunner(cfg), nil
}
