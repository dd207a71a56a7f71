package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// ProbeResult describes whether one adapter produced data on this host.
type ProbeResult struct {
	Adapter string
	OK      bool
	Detail  string
}

// Probe collects once and reports what each adapter found. Rate-based
// readings (RAPL, network) are still warming up on a single pass and say so.
func (c *Collector) Probe(ctx context.Context) []ProbeResult {
	snap := c.Collect(ctx)

	results := []ProbeResult{
		cpuProbe(snap),
		{
			Adapter: "memory",
			OK:      snap.TotalMemory > 0,
			Detail:  fmt.Sprintf("%d MiB total, %d MiB swap", snap.TotalMemory>>20, snap.TotalSwap>>20),
		},
		temperatureProbe(snap.Temperatures),
		frequencyProbe(snap.CPUFrequencies),
		{
			Adapter: "disks",
			OK:      len(snap.Disks) > 0,
			Detail:  fmt.Sprintf("%d volumes", len(snap.Disks)),
		},
		{
			Adapter: "network",
			OK:      len(snap.Networks) > 0,
			Detail:  strings.Join(snap.InterfaceNames(), ", "),
		},
		{
			Adapter: "processes",
			OK:      len(snap.Processes) > 0,
			Detail:  fmt.Sprintf("%d running", len(snap.Processes)),
		},
		nvidiaProbe(snap.GPUs),
	}

	if c.linux() {
		results = append(results, c.linuxProbes(snap)...)
	}

	results = append(results, batteryProbe(snap.Battery))
	return results
}

func (c *Collector) linuxProbes(snap telemetry.Snapshot) []ProbeResult {
	var out []ProbeResult

	zone, temp, ok := readThermalZone(c.fs, cpuThermalZones)
	tz := ProbeResult{Adapter: "thermal zone", OK: ok, Detail: telemetry.NoteNA}
	if ok {
		tz.Detail = fmt.Sprintf("%s %.1f°C", zone, temp)
	}
	out = append(out, tz)

	power := ProbeResult{Adapter: "cpu rapl", Detail: c.cpuPowerNote()}
	if snap.CPUPower != nil {
		power.OK = true
		power.Detail = fmt.Sprintf("%.1fW", *snap.CPUPower)
	}
	out = append(out, power)

	out = append(out, ProbeResult{
		Adapter: "meminfo",
		OK:      snap.CachedMemory > 0,
		Detail:  fmt.Sprintf("%d MiB cached", snap.CachedMemory>>20),
	})

	names := make([]string, 0, len(c.pciGPUs))
	for _, p := range c.pciGPUs {
		names = append(names, p.Name)
	}
	pci := ProbeResult{Adapter: "lspci", OK: len(names) > 0, Detail: strings.Join(names, ", ")}
	if !pci.OK {
		pci.Detail = "no display controllers"
	}
	out = append(out, pci)

	intel := ProbeResult{Adapter: "intel gpu", Detail: "no i915/xe card"}
	for _, g := range snap.GPUs {
		if g.Vendor != telemetry.VendorIntel {
			continue
		}
		intel.OK = true
		intel.Detail = fmt.Sprintf("%s (usage: %s)", g.Name, g.UsageNote)
		break
	}
	return append(out, intel)
}

func (c *Collector) cpuPowerNote() string {
	if c.cpuPower == nil || c.cpuPower.path == "" {
		return telemetry.NoteNoRAPL
	}
	return telemetry.NoteWarmup
}

func cpuProbe(snap telemetry.Snapshot) ProbeResult {
	r := ProbeResult{Adapter: "cpu", OK: snap.CPUCount > 0}
	r.Detail = fmt.Sprintf("%d cores", snap.CPUCount)
	if snap.CPUName != "" {
		r.Detail = snap.CPUName + ", " + r.Detail
	}
	return r
}

func temperatureProbe(temps []telemetry.TemperatureInfo) ProbeResult {
	if len(temps) == 0 {
		return ProbeResult{Adapter: "temperatures", Detail: "no sensors"}
	}
	labels := make([]string, 0, len(temps))
	for _, t := range temps {
		labels = append(labels, fmt.Sprintf("%s=%.0f°C", t.Label, t.Temperature))
	}
	return ProbeResult{Adapter: "temperatures", OK: true, Detail: strings.Join(labels, ", ")}
}

func frequencyProbe(freqs []uint64) ProbeResult {
	var sum, n uint64
	for _, f := range freqs {
		if f > 0 {
			sum += f
			n++
		}
	}
	if n == 0 {
		return ProbeResult{Adapter: "cpu frequency", Detail: telemetry.NoteNA}
	}
	return ProbeResult{Adapter: "cpu frequency", OK: true, Detail: fmt.Sprintf("%d MHz avg", sum/n)}
}

func nvidiaProbe(gpus []telemetry.GPU) ProbeResult {
	var names []string
	for _, g := range gpus {
		if g.Vendor == telemetry.VendorNVIDIA && g.MemoryTotal != nil {
			names = append(names, g.Name)
		}
	}
	if len(names) == 0 {
		return ProbeResult{Adapter: "nvidia", Detail: "not available"}
	}
	return ProbeResult{Adapter: "nvidia", OK: true, Detail: strings.Join(names, ", ")}
}

func batteryProbe(b *telemetry.BatteryInfo) ProbeResult {
	if b == nil {
		return ProbeResult{Adapter: "battery", Detail: "none"}
	}
	level := telemetry.NoteNA
	if b.Level != nil {
		level = fmt.Sprintf("%.0f%%", *b.Level)
	}
	return ProbeResult{Adapter: "battery", OK: b.Level != nil, Detail: fmt.Sprintf("%s %s", level, b.Status)}
}
