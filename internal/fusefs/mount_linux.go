//go:build linux

package fusefs

import (
	"context"

	"eyeterm/internal/errors"
	"eyeterm/internal/log"
	"eyeterm/internal/vfs"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

// Mount serves root at mountpoint until ctx ends, then unmounts.
func Mount(ctx context.Context, mountpoint string, root *vfs.Dir) error {
	logger := log.LogWithFields(log.F("mountpoint", mountpoint))

	c, err := fuse.Mount(mountpoint,
		fuse.FSName("eyeterm"),
		fuse.Subtype("eyeterm"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return errors.NewPathError("mount failed", mountpoint, errors.MountFailed, err)
	}
	defer c.Close()

	served := make(chan error, 1)
	go func() {
		served <- fusefs.Serve(c, New(root))
	}()
	logger.Info("filesystem mounted")

	select {
	case <-ctx.Done():
		logger.Info("unmounting")
		if err := fuse.Unmount(mountpoint); err != nil {
			return errors.NewPathError("unmount failed", mountpoint, errors.MountFailed, err)
		}
		if err := <-served; err != nil {
			return errors.NewPathError("fuse server error", mountpoint, errors.MountFailed, err)
		}
		return nil
	case err := <-served:
		if err != nil {
			return errors.NewPathError("fuse server error", mountpoint, errors.MountFailed, err)
		}
		return nil
	}
}

// Supported reports whether Mount can work on this platform.
func Supported() bool { return true }
