// Package base holds the lifecycle and persistence plumbing shared by every
// task: cancellation, dirty tracking, versioned load/save and JSON
// configuration.
package base

import (
	"context"
	"sync/atomic"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

// Core is embedded by tasks. The zero value is ready to use.
type Core struct {
	cancelled   atomic.Bool
	dirty       bool
	initialized bool
	actionID    int
}

// Cancel requests cancellation. Safe to call from any goroutine.
func (c *Core) Cancel() { c.cancelled.Store(true) }

// Standby never blocks; none of the tasks hold resources that need releasing
// while the host is idle.
func (c *Core) Standby() bool { return true }

// CancelRequested reports whether Cancel was called or ctx is done.
func (c *Core) CancelRequested(ctx context.Context) bool {
	return c.cancelled.Load() || ctx.Err() != nil
}

func (c *Core) IsDirty() bool { return c.dirty }
func (c *Core) MarkDirty()    { c.dirty = true }
func (c *Core) ClearDirty()   { c.dirty = false }

// Begin records the session started by Init and clears any stale cancel.
func (c *Core) Begin(actionID int) {
	c.cancelled.Store(false)
	c.initialized = true
	c.actionID = actionID
}

// End closes the session.
func (c *Core) End() { c.initialized = false }

func (c *Core) Initialized() bool { return c.initialized }
func (c *Core) ActionID() int     { return c.actionID }

// ValidateLicense returns a tagged ErrNotLicensed when component is disabled.
func ValidateLicense(checker fam.LicenseChecker, component, code string) error {
	if checker == nil || checker.IsLicensed(component) {
		return nil
	}
	return pkgErrors.Wrap(code, task.ErrNotLicensed, "license validation failed for "+component)
}
