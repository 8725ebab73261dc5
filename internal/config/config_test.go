package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.MountTimeout != 30*time.Second {
		t.Errorf("MountTimeout = %v, want 30s", cfg.MountTimeout)
	}
	if cfg.FilterProbes {
		t.Error("FilterProbes should default to false")
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OSDETECT_MOUNT_TIMEOUT", "5s")
	t.Setenv("OSDETECT_FILTER_PROBES", "true")
	t.Setenv("OSDETECT_CONCURRENCY", "8")
	t.Setenv("OSDETECT_MOUNT_BASE", "/var/tmp")

	cfg := Load()
	if cfg.MountTimeout != 5*time.Second {
		t.Errorf("MountTimeout = %v, want 5s", cfg.MountTimeout)
	}
	if !cfg.FilterProbes {
		t.Error("FilterProbes = false, want true")
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Concurrency)
	}
	if cfg.MountBase != "/var/tmp" {
		t.Errorf("MountBase = %q, want /var/tmp", cfg.MountBase)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("OSDETECT_MOUNT_TIMEOUT", "not-a-duration")
	t.Setenv("OSDETECT_CONCURRENCY", "-3")

	cfg := Load()
	if cfg.MountTimeout != 30*time.Second {
		t.Errorf("MountTimeout = %v, want the default on parse failure", cfg.MountTimeout)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want the default for non-positive values", cfg.Concurrency)
	}
}
