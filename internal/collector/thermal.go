package collector

import (
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const thermalDir = "/sys/class/thermal"

// CPU-like zone types used when no generic sensor looks like a CPU.
var cpuThermalZones = []string{"x86_pkg_temp", "tdie", "tctl", "tcpu", "cpu-thermal", "cpu"}

// Zone types used as an Intel iGPU temperature proxy.
var gpuThermalZones = []string{"x86_pkg_temp", "tcpu", "acpitz", "cpu"}

// Labels that mark a generic sensor as CPU-like.
var cpuSensorHints = []string{"cpu", "package", "x86_pkg_temp", "tdie", "tctl", "tcpu"}

// readThermalZone returns the first thermal zone whose type contains one of
// candidates, in zone order.
func readThermalZone(fs SysFS, candidates []string) (string, float32, bool) {
	base := fs.Path(thermalDir)
	for _, name := range fs.Entries(base) {
		if !strings.HasPrefix(name, "thermal_zone") {
			continue
		}
		zone := filepath.Join(base, name)

		zoneType, err := fs.ReadString(filepath.Join(zone, "type"))
		if err != nil {
			continue
		}
		zoneType = strings.ToLower(zoneType)
		if !containsAny(zoneType, candidates) {
			continue
		}

		raw, err := fs.ReadString(filepath.Join(zone, "temp"))
		if err != nil {
			continue
		}
		temp, err := parsers.ParseMilliCelsius(raw)
		if err != nil {
			continue
		}
		return zoneType, temp, true
	}
	return "", 0, false
}

// withThermalFallback appends a thermal-zone CPU reading when no sensor label
// looks like a CPU.
func withThermalFallback(fs SysFS, temps []telemetry.TemperatureInfo) []telemetry.TemperatureInfo {
	for _, t := range temps {
		if containsAny(strings.ToLower(t.Label), cpuSensorHints) {
			return temps
		}
	}

	if _, temp, ok := readThermalZone(fs, cpuThermalZones); ok {
		temps = append(temps, telemetry.TemperatureInfo{
			Label:       "x86_pkg_temp (thermal)",
			Temperature: temp,
		})
	}
	return temps
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
