package probes

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/osv-scalibr/common/windows/registry"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
)

// softwareHivePath is the registry hive carrying the installed Windows
// edition and version.
const softwareHivePath = "Windows/System32/config/SOFTWARE"

// currentVersionKey holds ProductName, DisplayVersion and CurrentBuildNumber.
const currentVersionKey = `Microsoft\Windows NT\CurrentVersion`

type offlineRegistry struct {
	hive    registry.Registry
	cleanup func()
}

// openOfflineRegistry stages the hive from the accessor into a temporary file
// and opens it with the offline registry parser. The target filesystem is
// never handed to the parser directly, so reads stay confined to the
// accessor contract.
func openOfflineRegistry(acc fsaccess.Accessor, hivePath string) (*offlineRegistry, error) {
	data, err := acc.ReadFile(hivePath)
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "osdetect_hive_*.dat")
	if err != nil {
		return nil, err
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return nil, err
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return nil, err
	}

	opener := registry.NewOfflineOpener(tmpFile.Name())
	hive, err := opener.Open()
	if err != nil {
		_ = os.Remove(tmpFile.Name())
		return nil, err
	}

	return &offlineRegistry{
		hive: hive,
		cleanup: func() {
			_ = os.Remove(tmpFile.Name())
		},
	}, nil
}

func (r *offlineRegistry) close() {
	if r == nil {
		return
	}
	_ = r.hive.Close()
	if r.cleanup != nil {
		r.cleanup()
	}
}

func registryValueString(key registry.Key, name string) (string, bool) {
	val, err := key.ValueString(name)
	if err != nil {
		return "", false
	}
	return strings.TrimRight(val, "\x00"), true
}

// windowsVersionFromHive extracts edition and version from the SOFTWARE hive.
// ok is false when the hive is absent, unreadable or missing the key, in
// which case the caller reports a family-only heuristic match.
func windowsVersionFromHive(acc fsaccess.Accessor) (edition, version string, ok bool) {
	reg, err := openOfflineRegistry(acc, softwareHivePath)
	if err != nil {
		return "", "", false
	}
	defer reg.close()

	key, err := reg.hive.OpenKey("", currentVersionKey)
	if err != nil {
		return "", "", false
	}

	edition, _ = registryValueString(key, "ProductName")

	// DisplayVersion (e.g. 22H2) exists from Windows 10 2009 on; older
	// installs carry ReleaseId instead.
	version, found := registryValueString(key, "DisplayVersion")
	if !found {
		version, _ = registryValueString(key, "ReleaseId")
	}
	if build, found := registryValueString(key, "CurrentBuildNumber"); found && build != "" {
		if version != "" {
			version = fmt.Sprintf("%s (build %s)", version, build)
		} else {
			version = fmt.Sprintf("build %s", build)
		}
	}

	if edition == "" && version == "" {
		return "", "", false
	}
	return edition, version, true
}
