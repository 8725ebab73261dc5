// Package probes implements the per-family operating system signatures.
package probes

import (
	"errors"
	"io/fs"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// Probe inspects marker files under an accessor root and reports the OS it
// finds. A nil OSInfo with a nil error means the signature did not match.
// Errors are reserved for accessor-level read failures; a missing marker is
// never an error.
type Probe interface {
	// Name identifies the probe in logs and errors.
	Name() string
	// Priority orders probes in the default registry; lower runs first.
	// Structured signatures carry lower values than heuristics.
	Priority() int
	// Compatible reports whether the probe is meaningful for the given
	// filesystem kind. Advisory: OS files can legally sit on foreign
	// filesystems, so registries only honor this when filtering is enabled.
	Compatible(kind models.FilesystemKind) bool
	// Probe evaluates the signature against the accessor.
	Probe(acc fsaccess.Accessor) (*models.OSInfo, error)
}

// readMarker reads a marker file, absorbing absence: a missing marker means
// the signature element is not present, not that the filesystem is broken.
func readMarker(acc fsaccess.Accessor, rel string) ([]byte, bool, error) {
	data, err := acc.ReadFile(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// markerExists checks for a marker path without reading it.
func markerExists(acc fsaccess.Accessor, rel string) (bool, error) {
	if _, err := acc.Stat(rel); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// markerDirExists checks for a marker path that must be a directory.
func markerDirExists(acc fsaccess.Accessor, rel string) (bool, error) {
	info, err := acc.Stat(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
