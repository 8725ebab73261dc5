//go:build linux

package fsaccess

import (
	"fmt"

	"github.com/moby/sys/mount"
	"github.com/moby/sys/mountinfo"
	"golang.org/x/sys/unix"

	"github.com/ilexum-group/osdetect/pkg/models"
)

type sysMounter struct{}

// NewSystemMounter returns the kernel-backed mount service.
func NewSystemMounter() Mounter {
	return sysMounter{}
}

func (sysMounter) MountReadonly(device, target string, kind models.FilesystemKind) error {
	var stat unix.Stat_t
	if err := unix.Stat(device, &stat); err != nil {
		return fmt.Errorf("stat %s: %w", device, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFBLK {
		return fmt.Errorf("%s: not a block device", device)
	}
	return mount.Mount(device, target, string(kind), "ro")
}

func (sysMounter) Unmount(target string) error {
	if mounted, err := mountinfo.Mounted(target); err == nil && !mounted {
		return nil
	}
	return mount.Unmount(target)
}
