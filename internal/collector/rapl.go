package collector

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const (
	powercapDir    = "/sys/class/powercap"
	maxRAPLWindow  = 10 * time.Second
	maxCPUWatts    = 500
	maxGPUWatts    = 150
	microjoulesPer = 1_000_000
)

// cpuRAPLCandidates are probed in order; the first readable one is used.
var cpuRAPLCandidates = []string{
	"intel-rapl/intel-rapl:0",
	"intel-rapl:0",
	"intel-rapl/intel-rapl:0/core:0",
	"intel-rapl/intel-rapl:1",
	"intel-rapl:1",
	"intel-rapl/intel-rapl:0/subzone0",
	"intel-rapl/intel-rapl:0/subzone1",
}

// gpuRAPLFallbacks are static layouts tried when no named zone matches.
var gpuRAPLFallbacks = []string{
	"intel-rapl/intel-rapl:0/gfx",
	"intel-rapl/intel-rapl:0:0",
	"intel-rapl/intel-rapl:1/gfx",
	"intel-rapl/intel-rapl:1:0",
}

// energyCounter turns a monotonically increasing energy_uj counter into
// watts. A decrease (wrap or reset) re-baselines; samples further apart than
// maxRAPLWindow are treated as a fresh start.
type energyCounter struct {
	prev float64
	at   time.Time
	ok   bool
}

func (c *energyCounter) reset() {
	*c = energyCounter{}
}

func (c *energyCounter) sample(energyUJ float64, now time.Time, maxWatts float64) telemetry.Reading[float32] {
	prev, at, had := c.prev, c.at, c.ok
	c.prev, c.at, c.ok = energyUJ, now, true

	if !had {
		return telemetry.Absent[float32](telemetry.NoteWarmup)
	}
	dt := now.Sub(at)
	if dt <= 0 || dt > maxRAPLWindow {
		return telemetry.Absent[float32](telemetry.NoteWarmup)
	}
	if energyUJ < prev {
		return telemetry.Absent[float32](telemetry.NoteReset)
	}

	watts := (energyUJ - prev) / dt.Seconds() / microjoulesPer
	if watts < 0 || watts > maxWatts {
		return telemetry.Absent[float32](telemetry.NoteOutlier)
	}
	return telemetry.Some(float32(watts), "")
}

// CPUPower reads package power from the RAPL powercap interface.
type CPUPower struct {
	fs      SysFS
	path    string
	counter energyCounter
}

// NewCPUPower creates a CPU RAPL reader.
func NewCPUPower(fs SysFS) *CPUPower {
	return &CPUPower{fs: fs}
}

// Read returns package watts. The first sample after start, a counter reset
// or a switch to another zone is absent.
func (p *CPUPower) Read(now time.Time) telemetry.Reading[float32] {
	for _, rel := range cpuRAPLCandidates {
		path := p.fs.Path(powercapDir, rel, "energy_uj")
		energy, err := p.fs.ReadFloat(path)
		if err != nil {
			continue
		}
		if path != p.path {
			p.path = path
			p.counter.reset()
		}
		return p.counter.sample(energy, now, maxCPUWatts)
	}

	p.path = ""
	p.counter.reset()
	return telemetry.Absent[float32](telemetry.NoteNoRAPL)
}

// GPUPower reads integrated GPU power from a RAPL zone named gpu, gfx,
// uncore or psys.
type GPUPower struct {
	fs      SysFS
	path    string
	counter energyCounter
}

// NewGPUPower creates a GPU RAPL reader.
func NewGPUPower(fs SysFS) *GPUPower {
	return &GPUPower{fs: fs}
}

// Read returns GPU watts, or a note describing why none is available.
func (p *GPUPower) Read(now time.Time) telemetry.Reading[float32] {
	if p.path == "" {
		p.path = p.discover()
		if p.path == "" {
			return telemetry.Absent[float32](telemetry.NoteNoRAPL)
		}
	}

	if !p.fs.Exists(p.path) {
		p.path = ""
		p.counter.reset()
		return telemetry.Absent[float32](telemetry.NoteNoRAPL)
	}

	raw, err := p.fs.ReadString(p.path)
	if err != nil {
		if isPermission(err) {
			return telemetry.Absent[float32](telemetry.NoteNoPerm)
		}
		return telemetry.Absent[float32](telemetry.NoteUnread)
	}
	energy, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return telemetry.Absent[float32](telemetry.NoteInvalid)
	}

	return p.counter.sample(energy, now, maxGPUWatts)
}

func (p *GPUPower) discover() string {
	base := p.fs.Path(powercapDir)
	for _, name := range p.fs.Entries(base) {
		dir := filepath.Join(base, name)
		if !p.fs.IsDir(dir) {
			continue
		}
		if e := p.zoneEnergy(dir); e != "" {
			return e
		}
		for _, sub := range p.fs.Entries(dir) {
			subDir := filepath.Join(dir, sub)
			if !p.fs.IsDir(subDir) {
				continue
			}
			if e := p.zoneEnergy(subDir); e != "" {
				return e
			}
		}
	}

	for _, rel := range gpuRAPLFallbacks {
		path := p.fs.Path(powercapDir, rel, "energy_uj")
		if p.fs.Exists(path) {
			return path
		}
	}
	return ""
}

func (p *GPUPower) zoneEnergy(dir string) string {
	name, err := p.fs.ReadString(filepath.Join(dir, "name"))
	if err != nil {
		return ""
	}
	name = strings.ToLower(name)
	if !strings.Contains(name, "gpu") &&
		!strings.Contains(name, "gfx") &&
		!strings.Contains(name, "uncore") &&
		!strings.Contains(name, "psys") {
		return ""
	}
	energy := filepath.Join(dir, "energy_uj")
	if !p.fs.Exists(energy) {
		return ""
	}
	return energy
}
