package probes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// writeTree materializes a synthetic filesystem tree and returns an accessor
// rooted at it, which is exactly how the engine sees a mounted filesystem.
func writeTree(t *testing.T, files map[string]string) fsaccess.Accessor {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	acc, err := fsaccess.NewPathAccessor(root)
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}
	return acc
}

func mkdirs(t *testing.T, acc fsaccess.Accessor, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(acc.Root(), filepath.FromSlash(dir)), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
}

func TestLinuxProbeOSRelease(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"etc/os-release": "NAME=\"Ubuntu\"\nID=ubuntu\nVERSION_ID=\"22.04\"\nPRETTY_NAME=\"Ubuntu 22.04.3 LTS\"\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Family != models.FamilyLinux {
		t.Errorf("family = %q, want linux", info.Family)
	}
	if info.Distribution != "ubuntu" {
		t.Errorf("distribution = %q, want ubuntu", info.Distribution)
	}
	if info.Version != "22.04" {
		t.Errorf("version = %q, want 22.04", info.Version)
	}
	if info.Confidence != models.ConfidenceExact {
		t.Errorf("confidence = %q, want exact", info.Confidence)
	}
}

func TestLinuxProbeStructuredBeatsLegacy(t *testing.T) {
	// Conflicting versions: os-release must win and lsb-release be ignored.
	acc := writeTree(t, map[string]string{
		"etc/os-release":  "ID=ubuntu\nVERSION_ID=\"22.04\"\n",
		"etc/lsb-release": "DISTRIB_ID=Ubuntu\nDISTRIB_RELEASE=20.04\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Version != "22.04" {
		t.Errorf("version = %q, want the structured descriptor's 22.04", info.Version)
	}
}

func TestLinuxProbeUsrLibFallback(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"usr/lib/os-release": "ID=fedora\nVERSION_ID=39\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil || info.Distribution != "fedora" || info.Version != "39" {
		t.Fatalf("info = %+v, want fedora 39", info)
	}
}

func TestLinuxProbeLSBRelease(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"etc/lsb-release": "DISTRIB_ID=Ubuntu\nDISTRIB_RELEASE=20.04\nDISTRIB_CODENAME=focal\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Distribution != "ubuntu" || info.Version != "20.04" {
		t.Errorf("got %s %s, want ubuntu 20.04", info.Distribution, info.Version)
	}
	if info.Confidence != models.ConfidenceExact {
		t.Errorf("confidence = %q, want exact", info.Confidence)
	}
}

func TestLinuxProbeLegacyDebianVersion(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"etc/debian_version": "12.4\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Distribution != "debian" || info.Version != "12.4" {
		t.Errorf("got %s %s, want debian 12.4", info.Distribution, info.Version)
	}
	if info.Confidence != models.ConfidenceHeuristic {
		t.Errorf("confidence = %q, want heuristic", info.Confidence)
	}
}

func TestLinuxProbeLegacyRedhatRelease(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"etc/redhat-release": "CentOS Linux release 7.9.2009 (Core)\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Distribution != "centos" {
		t.Errorf("distribution = %q, want centos", info.Distribution)
	}
	if info.Version != "7.9.2009" {
		t.Errorf("version = %q, want 7.9.2009", info.Version)
	}
}

func TestLinuxProbeEmptyTree(t *testing.T) {
	acc := writeTree(t, nil)

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info != nil {
		t.Fatalf("expected no match, got %+v", info)
	}
}

func TestLinuxProbeParts(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"etc/os-release": "ID=pop\nVERSION_ID=\"22.04\"\n",
		"etc/fstab": "# /etc/fstab\n" +
			"UUID=2E68-A8EF  /boot/efi  vfat  umask=0077  0  0\n" +
			"UUID=6a2e32f8-a4cb-4fb4-9cf8-3c20aa2f9e10  /  ext4  noatime,errors=remount-ro  0  0\n" +
			"UUID=D0E0-FF11  /recovery  vfat  umask=0077  0  0\n" +
			"UUID=8C02E2B2-71A4-4DD1-A9A2-D491A9B224C3  /home  ext4  noatime  0  0\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil || info.Parts == nil {
		t.Fatalf("expected parts, got %+v", info)
	}
	if info.Parts.EFI != "2E68-A8EF" {
		t.Errorf("efi = %q, want 2E68-A8EF", info.Parts.EFI)
	}
	if info.Parts.Recovery != "D0E0-FF11" {
		t.Errorf("recovery = %q, want D0E0-FF11", info.Parts.Recovery)
	}
	// Full RFC 4122 UUIDs are canonicalized to lowercase.
	if info.Parts.Home != "8c02e2b2-71a4-4dd1-a9a2-d491a9b224c3" {
		t.Errorf("home = %q, want canonical lowercase uuid", info.Parts.Home)
	}
}

func TestLinuxProbePartsAbsent(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"etc/os-release": "ID=arch\n",
		"etc/fstab":      "# only root\nUUID=6a2e32f8-a4cb-4fb4-9cf8-3c20aa2f9e10 / ext4 defaults 0 1\n",
	})

	info, err := NewLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a match")
	}
	if info.Parts != nil {
		t.Errorf("parts = %+v, want nil when fstab names no companion partitions", info.Parts)
	}
}

func TestGenericLinuxProbe(t *testing.T) {
	acc := writeTree(t, map[string]string{
		"usr/bin/sh": "",
	})
	mkdirs(t, acc, "etc", "boot")

	info, err := NewGenericLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info == nil {
		t.Fatal("expected a heuristic match")
	}
	if info.Family != models.FamilyLinux || info.Confidence != models.ConfidenceHeuristic {
		t.Errorf("got %+v, want heuristic linux", info)
	}
	if info.Distribution != "" || info.Version != "" {
		t.Errorf("heuristic match must not fabricate distribution/version, got %+v", info)
	}
}

func TestGenericLinuxProbeNeedsAllMarkers(t *testing.T) {
	acc := writeTree(t, nil)
	mkdirs(t, acc, "etc")

	info, err := NewGenericLinux().Probe(acc)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info != nil {
		t.Fatalf("expected no match with only /etc, got %+v", info)
	}
}

func TestParseKeyValueFile(t *testing.T) {
	fields := parseKeyValueFile([]byte("# comment\nID=ubuntu\nNAME=\"Ubuntu Linux\"\nEMPTY=\nBROKEN\n"))
	if fields["ID"] != "ubuntu" {
		t.Errorf("ID = %q", fields["ID"])
	}
	if fields["NAME"] != "Ubuntu Linux" {
		t.Errorf("NAME = %q, quotes should be stripped", fields["NAME"])
	}
	if _, ok := fields["BROKEN"]; ok {
		t.Error("lines without = must be skipped")
	}
}
