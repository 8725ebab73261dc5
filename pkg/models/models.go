// Package models defines the data structures produced by OS detection
package models

// Family identifies the top-level operating system category.
type Family string

const (
	// FamilyLinux covers Linux-like installs (any distribution).
	FamilyLinux Family = "linux"
	// FamilyWindows covers Windows installs.
	FamilyWindows Family = "windows"
	// FamilyMacOS covers macOS installs.
	FamilyMacOS Family = "macos"
	// FamilyBSD covers FreeBSD, OpenBSD and NetBSD installs.
	FamilyBSD Family = "bsd"
)

// Confidence reports whether a match came from a structured, authoritative
// descriptor or from an inferred heuristic.
type Confidence string

const (
	// ConfidenceExact indicates the identity was read from a structured descriptor.
	ConfidenceExact Confidence = "exact"
	// ConfidenceHeuristic indicates the identity was inferred from marker presence.
	ConfidenceHeuristic Confidence = "heuristic"
)

// FilesystemKind tags the filesystem driver a device should be mounted with.
// It is supplied by the caller; the engine never infers it from the device.
// The value doubles as the kernel filesystem type name.
type FilesystemKind string

const (
	// KindExt2 is the ext2 filesystem.
	KindExt2 FilesystemKind = "ext2"
	// KindExt3 is the ext3 filesystem.
	KindExt3 FilesystemKind = "ext3"
	// KindExt4 is the ext4 filesystem.
	KindExt4 FilesystemKind = "ext4"
	// KindBtrfs is the btrfs filesystem.
	KindBtrfs FilesystemKind = "btrfs"
	// KindXFS is the xfs filesystem.
	KindXFS FilesystemKind = "xfs"
	// KindNTFS is the ntfs filesystem.
	KindNTFS FilesystemKind = "ntfs"
	// KindVFAT is the vfat (FAT12/16/32) filesystem.
	KindVFAT FilesystemKind = "vfat"
	// KindExFAT is the exfat filesystem.
	KindExFAT FilesystemKind = "exfat"
	// KindHFSPlus is the hfsplus filesystem.
	KindHFSPlus FilesystemKind = "hfsplus"
	// KindAPFS is the apfs filesystem.
	KindAPFS FilesystemKind = "apfs"
	// KindUFS is the ufs filesystem.
	KindUFS FilesystemKind = "ufs"
)

var knownKinds = map[FilesystemKind]bool{
	KindExt2:    true,
	KindExt3:    true,
	KindExt4:    true,
	KindBtrfs:   true,
	KindXFS:     true,
	KindNTFS:    true,
	KindVFAT:    true,
	KindExFAT:   true,
	KindHFSPlus: true,
	KindAPFS:    true,
	KindUFS:     true,
}

// Known reports whether the kind has a registered mount driver.
func (k FilesystemKind) Known() bool {
	return knownKinds[k]
}

// OSInfo describes an operating system found on a filesystem. It is built
// only from a positive probe match and is immutable once constructed.
type OSInfo struct {
	Family       Family      `json:"family"`
	Distribution string      `json:"distribution,omitempty"` // distribution or edition
	Version      string      `json:"version,omitempty"`
	Confidence   Confidence  `json:"confidence"`
	Parts        *LinuxParts `json:"parts,omitempty"` // Linux installs only
}

// LinuxParts records companion partitions referenced by a Linux install's
// fstab, identified by UUID where one could be determined.
type LinuxParts struct {
	Home     string `json:"home,omitempty"`
	EFI      string `json:"efi,omitempty"`
	Recovery string `json:"recovery,omitempty"`
}
