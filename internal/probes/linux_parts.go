package probes

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// findLinuxParts scans the install's fstab for its home, EFI and recovery
// partitions. Returns nil when fstab is absent or names none of them. The
// fstab belongs to the probed tree, so failures here never fail the probe.
func findLinuxParts(acc fsaccess.Accessor) *models.LinuxParts {
	data, err := acc.ReadFile("etc/fstab")
	if err != nil {
		return nil
	}

	parts := &models.LinuxParts{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		source, target := fields[0], fields[1]

		switch target {
		case "/home":
			if parts.Home == "" {
				parts.Home = fstabSourceID(source)
			}
		case "/boot/efi":
			if parts.EFI == "" {
				parts.EFI = fstabSourceID(source)
			}
		case "/recovery":
			if parts.Recovery == "" {
				parts.Recovery = fstabSourceID(source)
			}
		}
	}

	if parts.Home == "" && parts.EFI == "" && parts.Recovery == "" {
		return nil
	}
	return parts
}

// fstabSourceID normalizes an fstab source field to a partition identifier.
// UUID= and PARTUUID= sources are used directly (canonicalized when they are
// RFC 4122 UUIDs; FAT volume IDs are shorter and kept verbatim). Device paths
// are resolved through /dev/disk/by-uuid when the host exposes it.
func fstabSourceID(source string) string {
	for _, prefix := range []string{"UUID=", "PARTUUID="} {
		if id, found := strings.CutPrefix(source, prefix); found {
			if parsed, err := uuid.Parse(id); err == nil {
				return parsed.String()
			}
			return id
		}
	}
	if strings.HasPrefix(source, "/") {
		return deviceUUID(source)
	}
	return ""
}

// deviceUUID looks the device path up in the host's /dev/disk/by-uuid
// symlink table. Empty when the device is not present on this host.
func deviceUUID(device string) string {
	entries, err := os.ReadDir("/dev/disk/by-uuid")
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		link := filepath.Join("/dev/disk/by-uuid", entry.Name())
		resolved, err := filepath.EvalSymlinks(link)
		if err != nil {
			continue
		}
		if resolved == device {
			return entry.Name()
		}
	}
	return ""
}
