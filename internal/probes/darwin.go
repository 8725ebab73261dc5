package probes

import (
	"strings"

	"howett.net/plist"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// systemVersionPath is the structured macOS version descriptor.
const systemVersionPath = "System/Library/CoreServices/SystemVersion.plist"

type systemVersionPlist struct {
	ProductName               string `plist:"ProductName"`
	ProductVersion            string `plist:"ProductVersion"`
	ProductUserVisibleVersion string `plist:"ProductUserVisibleVersion"`
	ProductBuildVersion       string `plist:"ProductBuildVersion"`
}

// MacOS identifies macOS installs from the SystemVersion property list.
type MacOS struct{}

// NewMacOS returns the macOS probe.
func NewMacOS() Probe {
	return &MacOS{}
}

// Name implements Probe.
func (m *MacOS) Name() string { return "macos" }

// Priority implements Probe.
func (m *MacOS) Priority() int { return 30 }

// Compatible implements Probe.
func (m *MacOS) Compatible(kind models.FilesystemKind) bool {
	switch kind {
	case models.KindHFSPlus, models.KindAPFS:
		return true
	}
	return false
}

// Probe implements Probe. A present but unparseable descriptor still counts
// as macOS, at heuristic confidence: the path is macOS-specific regardless
// of the file's health.
func (m *MacOS) Probe(acc fsaccess.Accessor) (*models.OSInfo, error) {
	data, ok, err := readMarker(acc, systemVersionPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var parsed systemVersionPlist
	if _, err := plist.Unmarshal(data, &parsed); err != nil {
		return &models.OSInfo{
			Family:     models.FamilyMacOS,
			Confidence: models.ConfidenceHeuristic,
		}, nil
	}

	version := parsed.ProductUserVisibleVersion
	if version == "" {
		version = parsed.ProductVersion
	}

	name := strings.TrimSpace(parsed.ProductName)
	if name == "" && version == "" {
		return &models.OSInfo{
			Family:     models.FamilyMacOS,
			Confidence: models.ConfidenceHeuristic,
		}, nil
	}

	return &models.OSInfo{
		Family:       models.FamilyMacOS,
		Distribution: name,
		Version:      version,
		Confidence:   models.ConfidenceExact,
	}, nil
}
