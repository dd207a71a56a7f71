package collector

import (
	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
)

// readMeminfo parses /proc/meminfo. Non-Linux hosts and read failures yield nil.
func readMeminfo(fs SysFS) map[string]uint64 {
	raw, err := fs.ReadString(fs.Path("/proc/meminfo"))
	if err != nil {
		return nil
	}
	values, err := parsers.ParseMeminfo(raw)
	if err != nil {
		return nil
	}
	return values
}

// cachedMemory returns the page cache size in bytes, 0 when unknown.
func cachedMemory(meminfo map[string]uint64) uint64 {
	return meminfo["Cached"]
}
