package fsaccess

import (
	"context"
	"os"
	"sync"

	"github.com/ilexum-group/osdetect/pkg/models"
)

// Mounter is the mount service seam. The system implementation performs a
// read-only kernel mount; tests substitute a recording fake.
type Mounter interface {
	// MountReadonly mounts device at target using the driver selected by kind.
	MountReadonly(device, target string, kind models.FilesystemKind) error
	// Unmount releases the mount at target. Unmounting an already-unmounted
	// target is not an error.
	Unmount(target string) error
}

// deviceAccessor owns a temporary read-only mount of a device.
type deviceAccessor struct {
	pathAccessor
	mounter Mounter
	once    sync.Once
}

// AcquireDevice mounts device read-only under a fresh temporary directory and
// returns an accessor that owns the mount. ctx bounds the mount call only:
// if the mount is still pending when ctx is done, AcquireDevice returns the
// context error and arranges for the mount to be torn down if it lands later,
// so a timed-out call never leaves the device mounted.
func AcquireDevice(ctx context.Context, mounter Mounter, device string, kind models.FilesystemKind, baseDir string) (Accessor, error) {
	target, err := os.MkdirTemp(baseDir, "osdetect-")
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- mounter.MountReadonly(device, target, kind)
	}()

	select {
	case err := <-done:
		if err != nil {
			_ = os.Remove(target)
			return nil, err
		}
	case <-ctx.Done():
		go func() {
			if err := <-done; err == nil {
				_ = mounter.Unmount(target)
			}
			_ = os.Remove(target)
		}()
		return nil, ctx.Err()
	}

	return &deviceAccessor{
		pathAccessor: pathAccessor{root: target},
		mounter:      mounter,
	}, nil
}

// Release unmounts the device and removes the temporary mountpoint. Only the
// first call does work; later calls return nil.
func (d *deviceAccessor) Release() error {
	var err error
	d.once.Do(func() {
		err = d.mounter.Unmount(d.root)
		_ = os.Remove(d.root)
	})
	return err
}
