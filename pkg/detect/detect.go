// Package detect identifies which operating system, if any, is installed on
// a block device or directory tree, without requiring the device to be
// mounted by the host's normal mount machinery and without mutating it.
//
// Detection of a single device is synchronous: mount, a bounded sequence of
// small marker-file reads, unmount. Independent devices may be probed
// concurrently with one Engine shared across goroutines; each detection owns
// its accessor and mount exclusively.
package detect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/internal/utils"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// Options configures an Engine. The zero value selects the default registry,
// the system mounter and no mount timeout.
type Options struct {
	// Registry overrides the probe set. Nil means DefaultRegistry.
	Registry *Registry
	// Mounter overrides the mount service. Nil means the kernel mounter.
	Mounter fsaccess.Mounter
	// MountTimeout bounds the mount system call. Zero means no bound beyond
	// the caller's context.
	MountTimeout time.Duration
	// MountBase is the directory temporary mountpoints are created under.
	MountBase string
}

// Engine orchestrates accessor acquisition, probing and release. An Engine
// holds no mutable state and may be shared across concurrent detections.
type Engine struct {
	registry     *Registry
	mounter      fsaccess.Mounter
	mountTimeout time.Duration
	mountBase    string
}

// NewEngine builds an Engine from the given options.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		registry:     opts.Registry,
		mounter:      opts.Mounter,
		mountTimeout: opts.MountTimeout,
		mountBase:    opts.MountBase,
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.mounter == nil {
		e.mounter = fsaccess.NewSystemMounter()
	}
	return e
}

// Detect mounts the device read-only under a temporary directory, probes it,
// and unmounts. The returned OSInfo is nil when no OS was found; that is a
// successful outcome, not an error. Whatever happens after acquisition
// succeeds, the mount is released before Detect returns.
func (e *Engine) Detect(ctx context.Context, device string, kind models.FilesystemKind) (*models.OSInfo, error) {
	if !kind.Known() {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnsupportedFilesystem)
	}

	if e.mountTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.mountTimeout)
		defer cancel()
	}

	acc, err := fsaccess.AcquireDevice(ctx, e.mounter, device, kind, e.mountBase)
	if err != nil {
		utils.LogWarn("mount failed", map[string]string{
			"device": device,
			"kind":   string(kind),
			"error":  err.Error(),
		})
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("mount %s: %w", device, ErrPermissionDenied)
		}
		return nil, &MountError{Device: device, Kind: kind, Err: err}
	}
	defer func() {
		if err := acc.Release(); err != nil {
			utils.LogWarn("release failed", map[string]string{
				"device": device,
				"error":  err.Error(),
			})
		}
	}()

	return e.probe(acc, kind, device)
}

// DetectFromMountedPath probes a directory the caller asserts is an
// already-mounted filesystem root. No mount or unmount occurs. Callers that
// already have the filesystem mounted use this to avoid a second mount.
func (e *Engine) DetectFromMountedPath(path string) (*models.OSInfo, error) {
	acc, err := fsaccess.NewPathAccessor(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("open %s: %w", path, ErrPermissionDenied)
		}
		return nil, err
	}
	defer func() { _ = acc.Release() }()

	return e.probe(acc, "", path)
}

func (e *Engine) probe(acc fsaccess.Accessor, kind models.FilesystemKind, target string) (*models.OSInfo, error) {
	info, err := e.registry.Run(acc, kind)
	if err != nil {
		return nil, err
	}
	if info == nil {
		utils.LogDebug("no operating system detected", map[string]string{"target": target})
		return nil, nil
	}
	utils.LogDebug("operating system detected", map[string]string{
		"target":       target,
		"family":       string(info.Family),
		"distribution": info.Distribution,
		"version":      info.Version,
		"confidence":   string(info.Confidence),
	})
	return info, nil
}

// DetectOSFromDevice detects the OS installed on a raw device using the
// default engine. kind selects the mount driver; it is never inferred.
func DetectOSFromDevice(ctx context.Context, device string, kind models.FilesystemKind) (*models.OSInfo, error) {
	return NewEngine(Options{}).Detect(ctx, device, kind)
}

// DetectOSFromPath detects the OS installed under an already-mounted
// directory using the default engine.
func DetectOSFromPath(path string) (*models.OSInfo, error) {
	return NewEngine(Options{}).DetectFromMountedPath(path)
}
