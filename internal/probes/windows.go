package probes

import (
	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// Windows identifies Windows installs. The signature requires the System32
// directory plus either the kernel image or the SYSTEM hive; edition and
// version come from the SOFTWARE hive when it is readable, degrading to a
// family-only heuristic match when it is not.
type Windows struct{}

// NewWindows returns the Windows probe.
func NewWindows() Probe {
	return &Windows{}
}

// Name implements Probe.
func (w *Windows) Name() string { return "windows" }

// Priority implements Probe.
func (w *Windows) Priority() int { return 20 }

// Compatible implements Probe.
func (w *Windows) Compatible(kind models.FilesystemKind) bool {
	switch kind {
	case models.KindNTFS, models.KindVFAT, models.KindExFAT:
		return true
	}
	return false
}

// bootMarkers is the set of paths any real Windows system volume carries.
// One of them alongside System32 is required for a match.
var bootMarkers = []string{
	"Windows/System32/ntoskrnl.exe",
	"Windows/System32/config/SYSTEM",
}

// Probe implements Probe.
func (w *Windows) Probe(acc fsaccess.Accessor) (*models.OSInfo, error) {
	system32, err := markerDirExists(acc, "Windows/System32")
	if err != nil {
		return nil, err
	}
	if !system32 {
		return nil, nil
	}

	found := false
	for _, marker := range bootMarkers {
		ok, err := markerExists(acc, marker)
		if err != nil {
			return nil, err
		}
		if ok {
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	if edition, version, ok := windowsVersionFromHive(acc); ok {
		return &models.OSInfo{
			Family:       models.FamilyWindows,
			Distribution: edition,
			Version:      version,
			Confidence:   models.ConfidenceExact,
		}, nil
	}

	return &models.OSInfo{
		Family:     models.FamilyWindows,
		Confidence: models.ConfidenceHeuristic,
	}, nil
}
