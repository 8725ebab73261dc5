package fsaccess

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestPathAccessorRead(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "etc"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "etc", "os-release"), []byte("ID=ubuntu\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	acc, err := NewPathAccessor(root)
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}

	data, err := acc.ReadFile("etc/os-release")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "ID=ubuntu\n" {
		t.Errorf("content = %q", data)
	}

	// Marker paths may be written with a leading slash; both forms resolve
	// inside the root.
	if _, err := acc.ReadFile("/etc/os-release"); err != nil {
		t.Errorf("absolute-style read: %v", err)
	}
}

func TestPathAccessorNotFound(t *testing.T) {
	acc, err := NewPathAccessor(t.TempDir())
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}

	_, err = acc.ReadFile("etc/os-release")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
	_, err = acc.Stat("Windows/System32")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("stat err = %v, want fs.ErrNotExist", err)
	}
}

func TestPathAccessorReleaseIsNoOp(t *testing.T) {
	acc, err := NewPathAccessor(t.TempDir())
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}
	if err := acc.Release(); err != nil {
		t.Errorf("release: %v", err)
	}
	if err := acc.Release(); err != nil {
		t.Errorf("second release: %v", err)
	}
	// A borrowed root stays readable after release of the wrapper.
	if _, err := acc.ReadDir("."); err != nil {
		t.Errorf("readdir after release: %v", err)
	}
}

func TestPathAccessorRejectsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPathAccessor(file); err == nil {
		t.Error("expected an error for a non-directory root")
	}
}

func TestPathAccessorMissingRoot(t *testing.T) {
	if _, err := NewPathAccessor(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing root")
	}
}
