//go:build !unix

package pdftool

import "os/exec"

// killProcessGroup leaves the default kill in place; WaitDelay still bounds
// the wait for orphaned pipes.
func killProcessGroup(cmd *exec.Cmd) {}
