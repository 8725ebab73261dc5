package detect

import (
	"errors"
	"fmt"

	"github.com/ilexum-group/osdetect/pkg/models"
)

// ErrUnsupportedFilesystem is returned when the requested filesystem kind has
// no registered mount driver. No mount is attempted.
var ErrUnsupportedFilesystem = errors.New("unsupported filesystem kind")

// ErrPermissionDenied is returned when the process lacks the rights to mount
// the device or read the target root.
var ErrPermissionDenied = errors.New("permission denied")

// MountError reports a failed or timed-out attempt to mount a device. The
// accessor was never acquired, so no release is owed.
type MountError struct {
	Device string
	Kind   models.FilesystemKind
	Err    error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("mount %s (%s): %v", e.Device, e.Kind, e.Err)
}

func (e *MountError) Unwrap() error {
	return e.Err
}

// MediaError reports an I/O failure while reading a marker file after the
// filesystem was successfully mounted. The accessor is still released.
type MediaError struct {
	Probe string
	Err   error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("probe %s: media read failure: %v", e.Probe, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}
