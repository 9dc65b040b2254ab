// Package hostcmd abstracts the operating-system commands and filesystem
// probes the mount pipeline depends on, so the planning logic stays unit
// testable against a fake implementation.
package hostcmd

import "context"

// Runner is the capability to run host commands and perform the few
// filesystem operations mounting needs. Implementations must be safe for
// sequential use; the pipeline never calls a Runner concurrently.
type Runner interface {
	// Run executes a command and waits for it, returning an error on a
	// non-zero exit status.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its standard output, with an
	// error on a non-zero exit status.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// IsSymlink reports whether path is a symbolic link. A missing path
	// is not a symlink and not an error.
	IsSymlink(path string) (bool, error)

	// MkdirAll creates path and any missing ancestors.
	MkdirAll(path string) error
}
