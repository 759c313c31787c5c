// Package configfs holds the kernel-side contract of the device-tree overlay
// configfs interface: where it is mounted, which control files the kernel
// creates inside every overlay directory, and what their status values mean.
//
// Each overlay directory created under the mount point is populated by the
// kernel with three files:
//
//	dtbo    write-only, accepts the raw overlay blob; applied on close
//	path    write-only, accepts a firmware file name for the kernel loader
//	status  read-only, "applied" or "unapplied"
package configfs

const (
	// DefaultMount is where the overlay group lives when configfs is mounted
	// at its usual place.
	DefaultMount = "/sys/kernel/config/device-tree/overlays"

	// DefaultSearchPath is the firmware directory searched for overlay blobs.
	DefaultSearchPath = "/lib/firmware"

	BlobFile   = "dtbo"
	PathFile   = "path"
	StatusFile = "status"

	StatusApplied   = "applied"
	StatusUnapplied = "unapplied"

	// Magic is CONFIGFS_MAGIC from include/uapi/linux/magic.h.
	Magic = 0x62656570
)

// ControlFiles lists the files the kernel must create in every overlay directory.
var ControlFiles = []string{BlobFile, PathFile, StatusFile}
