// Package fsaccess provides read-only access to a filesystem root, whether
// that root is an already-mounted directory or a device mounted temporarily
// for the duration of a detection call.
package fsaccess

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Accessor grants read-only traversal of a filesystem root. An accessor that
// created a mount owns its lifecycle; one wrapping an existing directory owns
// nothing. Release is idempotent and must be called once acquisition
// succeeded, on every exit path. A released accessor must not be read again.
type Accessor interface {
	// Root returns the absolute path of the filesystem root.
	Root() string
	// ReadFile reads the file at the given root-relative path. Absence is
	// reported via fs.ErrNotExist, not as a hard failure.
	ReadFile(rel string) ([]byte, error)
	// Stat stats the entry at the given root-relative path.
	Stat(rel string) (fs.FileInfo, error)
	// ReadDir lists the directory at the given root-relative path.
	ReadDir(rel string) ([]fs.DirEntry, error)
	// Release tears down anything the accessor acquired. Safe to call
	// multiple times.
	Release() error
}

// pathAccessor borrows an existing directory; Release is a no-op.
type pathAccessor struct {
	root string
}

// NewPathAccessor wraps an already-mounted directory root. The caller asserts
// the path is a traversable filesystem root; no mount is created.
func NewPathAccessor(root string) (Accessor, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	return &pathAccessor{root: root}, nil
}

func (p *pathAccessor) Root() string {
	return p.root
}

//nolint:gosec // G304: paths are root-relative marker paths chosen by probes
func (p *pathAccessor) ReadFile(rel string) ([]byte, error) {
	return os.ReadFile(p.resolve(rel))
}

func (p *pathAccessor) Stat(rel string) (fs.FileInfo, error) {
	return os.Stat(p.resolve(rel))
}

func (p *pathAccessor) ReadDir(rel string) ([]fs.DirEntry, error) {
	return os.ReadDir(p.resolve(rel))
}

func (p *pathAccessor) Release() error {
	return nil
}

// resolve joins a root-relative marker path onto the accessor root. Leading
// separators are dropped so absolute-looking marker paths stay inside the
// root.
func (p *pathAccessor) resolve(rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	return filepath.Join(p.root, filepath.FromSlash(rel))
}
