//go:build !linux

package fsaccess

import (
	"errors"

	"github.com/ilexum-group/osdetect/pkg/models"
)

// ErrMountUnsupported is returned on platforms without device mount support.
var ErrMountUnsupported = errors.New("device mounting is only supported on linux")

type sysMounter struct{}

// NewSystemMounter returns the kernel-backed mount service. On this platform
// mounting always fails; path-based detection remains available.
func NewSystemMounter() Mounter {
	return sysMounter{}
}

func (sysMounter) MountReadonly(_, _ string, _ models.FilesystemKind) error {
	return ErrMountUnsupported
}

func (sysMounter) Unmount(_ string) error {
	return nil
}
