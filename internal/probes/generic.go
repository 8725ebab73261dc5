package probes

import (
	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// GenericLinux is the last-resort Linux heuristic: a tree with /etc, /boot
// and a binary directory is taken to be an unidentifiable Linux install. It
// is a separate probe, registered after every structured signature, so the
// precedence between it and the release-descriptor probe stays explicit.
type GenericLinux struct{}

// NewGenericLinux returns the generic Linux layout heuristic.
func NewGenericLinux() Probe {
	return &GenericLinux{}
}

// Name implements Probe.
func (g *GenericLinux) Name() string { return "linux-generic" }

// Priority implements Probe. Runs after all structured signatures.
func (g *GenericLinux) Priority() int { return 90 }

// Compatible implements Probe.
func (g *GenericLinux) Compatible(kind models.FilesystemKind) bool {
	switch kind {
	case models.KindExt2, models.KindExt3, models.KindExt4, models.KindBtrfs, models.KindXFS:
		return true
	}
	return false
}

// Probe implements Probe.
func (g *GenericLinux) Probe(acc fsaccess.Accessor) (*models.OSInfo, error) {
	etc, err := markerDirExists(acc, "etc")
	if err != nil {
		return nil, err
	}
	boot, err := markerDirExists(acc, "boot")
	if err != nil {
		return nil, err
	}
	if !etc || !boot {
		return nil, nil
	}

	for _, bin := range []string{"bin", "usr/bin"} {
		ok, err := markerExists(acc, bin)
		if err != nil {
			return nil, err
		}
		if ok {
			return &models.OSInfo{
				Family:     models.FamilyLinux,
				Confidence: models.ConfidenceHeuristic,
			}, nil
		}
	}

	return nil, nil
}
