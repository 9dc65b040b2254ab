// Package device provides pure helpers for reasoning about block device
// paths and their physical characteristics.
package device

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// NVMe and MMC partitions carry a `p<N>` suffix (/dev/nvme0n1p3),
	// everything else a bare numeric one (/dev/sda1).
	prefixedPartitionSuffix = regexp.MustCompile(`p[0-9]+$`)
	plainPartitionSuffix    = regexp.MustCompile(`[0-9]+$`)
)

// ParentBlockDevice strips the trailing partition-number suffix from a
// partition device path, yielding the whole-disk device. The transform is
// purely lexical; no filesystem access happens. Paths without a numeric
// suffix (mapper devices, whole disks) are returned unchanged.
func ParentBlockDevice(devicePath string) string {
	dir, name := filepath.Split(devicePath)
	if strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "mmcblk") {
		return dir + prefixedPartitionSuffix.ReplaceAllString(name, "")
	}
	if strings.HasPrefix(name, "mapper") || strings.Contains(dir, "/mapper/") {
		return devicePath
	}
	return dir + plainPartitionSuffix.ReplaceAllString(name, "")
}

// IsRotational reports whether the disk backing devicePath spins, from the
// kernel's queue/rotational flag. Any probe failure is treated as
// rotational so SSD-only mount options are never applied on doubt.
func IsRotational(devicePath string) bool {
	disk := filepath.Base(ParentBlockDevice(devicePath))
	data, err := os.ReadFile(filepath.Join("/sys/block", disk, "queue", "rotational"))
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(data)) != "0"
}
