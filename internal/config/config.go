package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings for the osdetect CLI
type Config struct {
	// MountTimeout bounds the mount system call; a hung filesystem driver
	// is the dominant cause of indefinite blocking.
	MountTimeout time.Duration
	// MountBase is the directory temporary mountpoints are created under.
	// Empty means the system default temp directory.
	MountBase string
	// FilterProbes enables the advisory filesystem-kind compatibility filter.
	FilterProbes bool
	// Concurrency bounds parallel device scans.
	Concurrency int
}

// Load loads the configuration from environment variables or defaults
func Load() *Config {
	return &Config{
		MountTimeout: getDurationEnv("OSDETECT_MOUNT_TIMEOUT", 30*time.Second),
		MountBase:    getEnv("OSDETECT_MOUNT_BASE", ""),
		FilterProbes: getBoolEnv("OSDETECT_FILTER_PROBES", false),
		Concurrency:  getIntEnv("OSDETECT_CONCURRENCY", 4),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
