package collector

import (
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
)

const cpuSysfsDir = "/sys/devices/system/cpu"

// fillFrequencies overwrites freqs with the current clock of each core:
// cpufreq sysfs first, then /proc/cpuinfo "cpu MHz". The incoming values
// (gopsutil reports cpuinfo_max_freq on Linux) survive only when neither
// source has a reading for that core.
func fillFrequencies(fs SysFS, freqs []uint64) {
	var cpuinfo []uint64

	for i := range freqs {
		if mhz, ok := sysfsFrequency(fs, i); ok {
			freqs[i] = mhz
			continue
		}

		if cpuinfo == nil {
			raw, err := fs.ReadString(fs.Path("/proc/cpuinfo"))
			if err != nil {
				cpuinfo = make([]uint64, len(freqs))
			} else {
				cpuinfo = parsers.ParseCPUInfoMHz(raw, len(freqs))
			}
		}
		if cpuinfo[i] > 0 {
			freqs[i] = cpuinfo[i]
		}
	}
}

func sysfsFrequency(fs SysFS, cpu int) (uint64, bool) {
	dir := fs.Path(cpuSysfsDir, fmt.Sprintf("cpu%d", cpu), "cpufreq")
	for _, name := range []string{"scaling_cur_freq", "cpuinfo_cur_freq"} {
		raw, err := fs.ReadString(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if mhz, ok := parsers.ParseCPUFreq(raw); ok {
			return mhz, true
		}
	}
	return 0, false
}
