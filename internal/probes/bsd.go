package probes

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// BSD identifies FreeBSD, OpenBSD and NetBSD installs from their
// version marker files and boot-loader directory.
type BSD struct{}

// NewBSD returns the BSD-family probe.
func NewBSD() Probe {
	return &BSD{}
}

// Name implements Probe.
func (b *BSD) Name() string { return "bsd" }

// Priority implements Probe.
func (b *BSD) Priority() int { return 40 }

// Compatible implements Probe.
func (b *BSD) Compatible(kind models.FilesystemKind) bool {
	return kind == models.KindUFS
}

// Probe implements Probe.
func (b *BSD) Probe(acc fsaccess.Accessor) (*models.OSInfo, error) {
	if info, err := b.probeFreeBSD(acc); info != nil || err != nil {
		return info, err
	}

	// OpenBSD and NetBSD carry a bare release marker whose first line is
	// the version.
	for _, marker := range []struct {
		path         string
		distribution string
	}{
		{"etc/openbsd-release", "openbsd"},
		{"etc/netbsd-release", "netbsd"},
	} {
		data, ok, err := readMarker(acc, marker.path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		version := firstLine(data)
		confidence := models.ConfidenceExact
		if version == "" {
			confidence = models.ConfidenceHeuristic
		}
		return &models.OSInfo{
			Family:       models.FamilyBSD,
			Distribution: marker.distribution,
			Version:      version,
			Confidence:   confidence,
		}, nil
	}

	return nil, nil
}

// probeFreeBSD requires the updater config plus the boot-loader directory,
// then pulls the release string out of the freebsd-version script.
func (b *BSD) probeFreeBSD(acc fsaccess.Accessor) (*models.OSInfo, error) {
	marker, err := markerExists(acc, "etc/freebsd-update.conf")
	if err != nil {
		return nil, err
	}
	if !marker {
		return nil, nil
	}
	boot, err := markerDirExists(acc, "boot")
	if err != nil {
		return nil, err
	}
	if !boot {
		return nil, nil
	}

	info := &models.OSInfo{
		Family:       models.FamilyBSD,
		Distribution: "freebsd",
		Confidence:   models.ConfidenceHeuristic,
	}

	data, ok, err := readMarker(acc, "bin/freebsd-version")
	if err != nil {
		return nil, err
	}
	if ok {
		if version := freebsdUserlandVersion(data); version != "" {
			info.Version = version
			info.Confidence = models.ConfidenceExact
		}
	}
	return info, nil
}

// freebsdUserlandVersion extracts USERLAND_VERSION from the freebsd-version
// shell script.
func freebsdUserlandVersion(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, found := strings.CutPrefix(line, "USERLAND_VERSION="); found {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}
