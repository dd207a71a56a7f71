package collector

import (
	"sort"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

type diskKey struct {
	name  string
	fs    string
	total uint64
}

// dedupDisks collapses multi-mount entries (btrfs subvolumes, bind mounts)
// that share name, filesystem and size. The smallest available space wins so
// usage is never under-reported. Zero-sized entries are dropped.
func dedupDisks(disks []telemetry.Disk) []telemetry.Disk {
	byKey := make(map[diskKey]telemetry.Disk, len(disks))
	for _, d := range disks {
		if d.TotalSpace == 0 {
			continue
		}
		k := diskKey{name: d.Name, fs: d.FileSystem, total: d.TotalSpace}
		if cur, ok := byKey[k]; ok {
			if d.AvailableSpace < cur.AvailableSpace {
				cur.AvailableSpace = d.AvailableSpace
				byKey[k] = cur
			}
			continue
		}
		byKey[k] = d
	}

	out := make([]telemetry.Disk, 0, len(byKey))
	for _, d := range byKey {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].TotalSpace != out[j].TotalSpace {
			return out[i].TotalSpace > out[j].TotalSpace
		}
		return out[i].FileSystem < out[j].FileSystem
	})
	return out
}
