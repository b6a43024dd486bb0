//go:build !linux

// Package fusefs exports the virtual filesystem read-only over FUSE.
package fusefs

import (
	"context"
	"runtime"

	"eyeterm/internal/errors"
	"eyeterm/internal/vfs"
)

// Mount is only available on Linux.
func Mount(_ context.Context, mountpoint string, _ *vfs.Dir) error {
	return errors.NewPathError("fuse is not supported on "+runtime.GOOS, mountpoint, errors.MountFailed, nil)
}

// Supported reports whether Mount can work on this platform.
func Supported() bool { return false }
