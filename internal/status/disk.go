package status

import (
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// VolumeUsage is a point-in-time usage snapshot for one mounted volume.
type VolumeUsage struct {
	Mountpoint  string
	Fstype      string
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// pseudoFstypes are filesystem types that never hold reclaimable user data.
var pseudoFstypes = map[string]bool{
	"devfs":   true,
	"autofs":  true,
	"nullfs":  true,
	"overlay": true,
	"tmpfs":   true,
}

// CollectDiskUsage returns usage for every real mounted volume. Volumes that
// fail to stat are skipped, not errors — a detached network mount shouldn't
// kill a status report.
func CollectDiskUsage() ([]VolumeUsage, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	var volumes []VolumeUsage
	seen := make(map[string]bool)
	for _, p := range parts {
		if pseudoFstypes[p.Fstype] || seen[p.Mountpoint] {
			continue
		}
		// APFS system snapshots show up read-only under /System/Volumes.
		if strings.HasPrefix(p.Mountpoint, "/System/Volumes/") {
			continue
		}
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			continue
		}
		seen[p.Mountpoint] = true
		volumes = append(volumes, VolumeUsage{
			Mountpoint:  p.Mountpoint,
			Fstype:      p.Fstype,
			Total:       usage.Total,
			Used:        usage.Used,
			Free:        usage.Free,
			UsedPercent: usage.UsedPercent,
		})
	}
	return volumes, nil
}

// FreeOn returns the free bytes on the volume holding path, or -1 when the
// volume can't be queried.
func FreeOn(path string) int64 {
	usage, err := disk.Usage(path)
	if err != nil {
		return -1
	}
	return int64(usage.Free)
}
