package probes

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// Linux identifies Linux installs from release descriptor files.
//
// Marker priority: /etc/os-release and /usr/lib/os-release (structured
// key=value descriptors) first, then the legacy lsb-release form, then
// distribution-specific single-line release files. The highest-priority file
// found wins outright; lower files are ignored even when they disagree.
type Linux struct{}

// NewLinux returns the Linux release-descriptor probe.
func NewLinux() Probe {
	return &Linux{}
}

// Name implements Probe.
func (l *Linux) Name() string { return "linux" }

// Priority implements Probe.
func (l *Linux) Priority() int { return 10 }

// Compatible implements Probe. Linux installs live on the ext family, btrfs
// and xfs.
func (l *Linux) Compatible(kind models.FilesystemKind) bool {
	switch kind {
	case models.KindExt2, models.KindExt3, models.KindExt4, models.KindBtrfs, models.KindXFS:
		return true
	}
	return false
}

// osReleasePaths in descending priority. /etc/os-release is a symlink to the
// /usr/lib copy on merged-usr systems; both are checked in case only one
// survives on a damaged tree.
var osReleasePaths = []string{
	"etc/os-release",
	"usr/lib/os-release",
}

// legacyReleaseFiles are single-purpose release markers that predate
// os-release. The version they carry is a bare line, so matches made from
// them are heuristic.
var legacyReleaseFiles = []struct {
	path         string
	distribution string
}{
	{"etc/debian_version", "debian"},
	{"etc/alpine-release", "alpine"},
	{"etc/redhat-release", ""},
	{"etc/SuSE-release", "suse"},
}

// Probe implements Probe.
func (l *Linux) Probe(acc fsaccess.Accessor) (*models.OSInfo, error) {
	for _, rel := range osReleasePaths {
		data, ok, err := readMarker(acc, rel)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if info := osInfoFromOSRelease(data); info != nil {
			info.Parts = findLinuxParts(acc)
			return info, nil
		}
	}

	data, ok, err := readMarker(acc, "etc/lsb-release")
	if err != nil {
		return nil, err
	}
	if ok {
		if info := osInfoFromLSBRelease(data); info != nil {
			info.Parts = findLinuxParts(acc)
			return info, nil
		}
	}

	for _, legacy := range legacyReleaseFiles {
		data, ok, err := readMarker(acc, legacy.path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if info := osInfoFromLegacyRelease(data, legacy.distribution); info != nil {
			info.Parts = findLinuxParts(acc)
			return info, nil
		}
	}

	return nil, nil
}

// osInfoFromOSRelease builds an identity from an os-release descriptor.
// ID and VERSION_ID are taken verbatim, falling back to NAME and VERSION.
func osInfoFromOSRelease(data []byte) *models.OSInfo {
	fields := parseKeyValueFile(data)
	id := fields["ID"]
	if id == "" {
		id = strings.ToLower(fields["NAME"])
	}
	if id == "" {
		return nil
	}
	version := fields["VERSION_ID"]
	if version == "" {
		version = fields["VERSION"]
	}
	return &models.OSInfo{
		Family:       models.FamilyLinux,
		Distribution: id,
		Version:      version,
		Confidence:   models.ConfidenceExact,
	}
}

// osInfoFromLSBRelease builds an identity from the DISTRIB_* lsb-release form.
func osInfoFromLSBRelease(data []byte) *models.OSInfo {
	fields := parseKeyValueFile(data)
	id := fields["DISTRIB_ID"]
	if id == "" {
		return nil
	}
	return &models.OSInfo{
		Family:       models.FamilyLinux,
		Distribution: strings.ToLower(id),
		Version:      fields["DISTRIB_RELEASE"],
		Confidence:   models.ConfidenceExact,
	}
}

// osInfoFromLegacyRelease handles bare single-line release files. When the
// file names its own distribution ("CentOS Linux release 7.9.2009 (Core)"),
// the first word is taken as the distribution.
func osInfoFromLegacyRelease(data []byte, distribution string) *models.OSInfo {
	line := firstLine(data)
	if line == "" {
		return nil
	}
	version := line
	if distribution == "" {
		fields := strings.Fields(line)
		distribution = strings.ToLower(fields[0])
		version = ""
		for _, f := range fields[1:] {
			if f != "" && f[0] >= '0' && f[0] <= '9' {
				version = f
				break
			}
		}
	}
	return &models.OSInfo{
		Family:       models.FamilyLinux,
		Distribution: distribution,
		Version:      version,
		Confidence:   models.ConfidenceHeuristic,
	}
}

// parseKeyValueFile parses KEY=value lines, stripping surrounding quotes.
// Comments and malformed lines are skipped.
func parseKeyValueFile(data []byte) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		fields[strings.TrimSpace(key)] = value
	}
	return fields
}

func firstLine(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line
		}
	}
	return ""
}
