package parsers

import (
	"strings"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// MaxNvidiaDevices caps how many devices are reported.
const MaxNvidiaDevices = 4

// NvidiaDeviceStats holds the raw NVML readings for one device. A nil field
// means the driver did not report it.
type NvidiaDeviceStats struct {
	Name            string
	TemperatureC    *uint32
	UtilizationPct  *uint32
	MemoryUsed      *uint64 // bytes
	MemoryTotal     *uint64 // bytes
	PowerMilliwatts *uint32
}

// NvidiaGPU converts NVML readings into a GPU entry. Power is reported by
// NVML in milliwatts and converted to watts.
func NvidiaGPU(s NvidiaDeviceStats) telemetry.GPU {
	gpu := telemetry.GPU{
		Name:   strings.TrimSpace(s.Name),
		Vendor: telemetry.VendorNVIDIA,
	}
	if gpu.Name == "" {
		gpu.Name = "Unknown NVIDIA GPU"
	}

	if s.TemperatureC != nil {
		gpu.Temp = telemetry.Ptr(float32(*s.TemperatureC))
	}
	if s.UtilizationPct != nil {
		gpu.Usage = telemetry.Ptr(float32(min(*s.UtilizationPct, 100)))
	}
	if s.MemoryUsed != nil {
		gpu.MemoryUsed = telemetry.Ptr(*s.MemoryUsed)
	}
	if s.MemoryTotal != nil {
		gpu.MemoryTotal = telemetry.Ptr(*s.MemoryTotal)
	}
	if s.PowerMilliwatts != nil {
		gpu.PowerUsage = telemetry.Ptr(float32(*s.PowerMilliwatts) / 1000)
	}
	return gpu
}
