package collector

import (
	"strings"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const (
	maxSensorComponents = 4
	maxGPUs             = 8
)

// gpuInputs is everything assembleGPUs needs from one tick.
type gpuInputs struct {
	nvidia       []telemetry.GPU
	components   []telemetry.TemperatureInfo
	pci          []parsers.PCIGPU
	intel        IntelSample
	intelPresent bool
}

// assembleGPUs merges NVIDIA devices, GPU-like temperature sensors, lspci
// entries and a synthetic Intel row into one de-duplicated list.
func assembleGPUs(in gpuInputs) []telemetry.GPU {
	gpus := make([]telemetry.GPU, 0, 4)
	gpus = append(gpus, in.nvidia...)

	components := in.components
	if len(components) > maxSensorComponents {
		components = components[:maxSensorComponents]
	}
	for _, c := range components {
		label := strings.ToLower(c.Label)
		if !isGPUSensor(label, c.Temperature) {
			continue
		}

		vendor := sensorVendor(label)
		if hasVendor(gpus, telemetry.VendorNVIDIA) && strings.Contains(label, "nvidia") {
			continue
		}
		if vendor == telemetry.VendorNVIDIA && hasNvidiaMemory(gpus) {
			continue
		}

		if vendor == telemetry.VendorIntel {
			var fallback *float32
			if c.Temperature > 0 {
				fallback = telemetry.Ptr(c.Temperature)
			}
			gpus = append(gpus, intelEntry(c.Label, in.intel, fallback))
			continue
		}

		gpus = append(gpus, telemetry.GPU{
			Name:   c.Label,
			Vendor: vendor,
			Temp:   telemetry.Ptr(c.Temperature),
		})
	}

	for _, p := range in.pci {
		if len(gpus) >= maxGPUs {
			break
		}
		if p.Vendor == telemetry.VendorNVIDIA && hasNvidiaMemory(gpus) {
			continue
		}
		if alreadyDetected(gpus, p.Name) {
			continue
		}

		if p.Vendor == telemetry.VendorIntel {
			gpus = append(gpus, intelEntry(p.Name, in.intel, nil))
			continue
		}
		gpus = append(gpus, telemetry.GPU{Name: p.Name, Vendor: p.Vendor})
	}

	if in.intelPresent && !hasVendor(gpus, telemetry.VendorIntel) {
		gpus = append(gpus, intelEntry("Intel Integrated Graphics", in.intel, nil))
	}

	return gpus
}

// intelEntry builds an Intel row. Notes are attached only to absent values,
// except the usage note which always names its source.
func intelEntry(name string, s IntelSample, fallbackTemp *float32) telemetry.GPU {
	g := telemetry.GPU{
		Name:        name,
		Vendor:      telemetry.VendorIntel,
		Usage:       s.Usage.Ptr(),
		UsageNote:   s.Usage.Note,
		Temp:        s.Temp.Ptr(),
		MemoryUsed:  s.MemUsed.Ptr(),
		MemoryTotal: s.MemTotal,
		PowerUsage:  s.Power.Ptr(),
	}
	if g.Temp == nil {
		g.Temp = fallbackTemp
	}
	if g.Temp == nil {
		g.TempNote = s.Temp.Note
	}
	if g.PowerUsage == nil {
		g.PowerNote = s.Power.Note
	}
	if g.MemoryUsed == nil {
		g.MemoryNote = s.MemUsed.Note
	}
	if g.MemoryTotal != nil {
		v := *g.MemoryTotal
		g.MemoryTotal = &v
	}
	return g
}

func isGPUSensor(label string, temp float32) bool {
	if containsAny(label, []string{"gpu", "vga", "graphics", "display"}) {
		return true
	}
	if strings.Contains(label, "amd") && !strings.Contains(label, "nvidia") {
		return true
	}
	if !strings.Contains(label, "intel") {
		return false
	}
	if containsAny(label, []string{"hd", "iris", "uhd", "xe"}) {
		return true
	}
	// Intel CPU packages with integrated graphics.
	return containsAny(label, []string{"core", "pentium", "celeron", "xeon", "arc"}) &&
		(containsAny(label, []string{"graphics", "gpu"}) || temp > 0)
}

func sensorVendor(label string) telemetry.Vendor {
	switch {
	case strings.Contains(label, "nvidia"):
		return telemetry.VendorNVIDIA
	case strings.Contains(label, "intel"):
		return telemetry.VendorIntel
	case containsAny(label, []string{"amd", "radeon", "ati"}):
		return telemetry.VendorAMD
	default:
		return telemetry.VendorUnknown
	}
}

func hasVendor(gpus []telemetry.GPU, v telemetry.Vendor) bool {
	for _, g := range gpus {
		if g.Vendor == v {
			return true
		}
	}
	return false
}

// hasNvidiaMemory reports whether NVML already supplied a full device.
func hasNvidiaMemory(gpus []telemetry.GPU) bool {
	for _, g := range gpus {
		if g.Vendor == telemetry.VendorNVIDIA && g.MemoryTotal != nil {
			return true
		}
	}
	return false
}

func alreadyDetected(gpus []telemetry.GPU, name string) bool {
	lower := strings.ToLower(name)
	for _, g := range gpus {
		if strings.EqualFold(g.Name, name) || strings.Contains(strings.ToLower(g.Name), lower) {
			return true
		}
	}
	return false
}
