package pdftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the tool was
// killed.
const waitDelay = 2 * time.Second

type execRunner struct {
	path    string
	timeout time.Duration
}

func newExecRunner(cfg Config) *execRunner {
	return &execRunner{path: cfg.Path, timeout: cfg.Timeout}
}

// Run executes the tool and waits for it. The tool and anything it started
// are killed when ctx is cancelled or the configured timeout elapses.
func (r *execRunner) Run(ctx context.Context, args ...string) (Output, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	start := time.Now()
	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String(), Duration: time.Since(start)}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("pdftool: %s: %w", r.path, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, fmt.Errorf("%w: exit code %d: %s", ErrToolFailed, exitErr.ExitCode(), strings.TrimSpace(out.Stderr))
	}
	return out, fmt.Errorf("pdftool: failed to start %s: %w", r.path, err)
}
