package collector

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// NetCounter is a cumulative per-interface byte counter.
type NetCounter struct {
	Name string
	RX   uint64
	TX   uint64
}

// RawProcess is a process as reported by the OS, before CPU normalization.
type RawProcess struct {
	PID        int32
	ParentPID  *int32
	Name       string
	Memory     uint64
	CPU        float64
	WriteBytes uint64
	Cmd        []string
	Exe        string
	Status     string
}

// LoadAvg holds the 1, 5 and 15 minute load averages.
type LoadAvg struct {
	Load1, Load5, Load15 float64
}

// GenericSample is one refresh of the cross-platform OS view.
// Optional values are nil when the platform could not supply them.
type GenericSample struct {
	PerCore      []float32
	CoreMHz      []uint64
	CPUName      string
	MemUsed      uint64
	MemTotal     uint64
	SwapUsed     uint64
	SwapTotal    uint64
	Disks        []telemetry.Disk
	Networks     []NetCounter
	Processes    []RawProcess
	Temperatures []telemetry.TemperatureInfo
	Uptime       *uint64
	Load         *LoadAvg
}

// GenericSource supplies the cross-platform part of a snapshot.
type GenericSource interface {
	Sample(ctx context.Context) GenericSample
}

// GopsutilSource implements GenericSource on top of gopsutil.
// It is not safe for concurrent use; the sampler goroutine owns it.
type GopsutilSource struct {
	procs map[int32]*process.Process
}

// NewGopsutilSource creates a source with an empty process cache.
func NewGopsutilSource() *GopsutilSource {
	return &GopsutilSource{procs: make(map[int32]*process.Process)}
}

// Sample refreshes every gopsutil view. Individual failures leave the
// corresponding fields empty.
func (g *GopsutilSource) Sample(ctx context.Context) GenericSample {
	var s GenericSample

	if pct, err := cpu.PercentWithContext(ctx, 0, true); err == nil {
		s.PerCore = make([]float32, len(pct))
		for i, p := range pct {
			s.PerCore[i] = float32(p)
		}
	}

	// On Linux gopsutil fills Mhz from cpuinfo_max_freq. Collect replaces it
	// with the current clock from sysfs when it can.
	s.CoreMHz = make([]uint64, len(s.PerCore))
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		s.CPUName = strings.TrimSpace(infos[0].ModelName)
		for i, info := range infos {
			if i < len(s.CoreMHz) && info.Mhz > 0 {
				s.CoreMHz[i] = uint64(info.Mhz)
			}
		}
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.MemUsed = vm.Used
		s.MemTotal = vm.Total
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		s.SwapUsed = sw.Used
		s.SwapTotal = sw.Total
	}

	s.Disks = g.disks(ctx)

	if counters, err := net.IOCountersWithContext(ctx, true); err == nil {
		s.Networks = make([]NetCounter, 0, len(counters))
		for _, c := range counters {
			s.Networks = append(s.Networks, NetCounter{Name: c.Name, RX: c.BytesRecv, TX: c.BytesSent})
		}
	}

	s.Processes = g.processes(ctx)

	// SensorsTemperatures can return partial results alongside a warning error.
	temps, _ := host.SensorsTemperaturesWithContext(ctx)
	for _, t := range temps {
		s.Temperatures = append(s.Temperatures, telemetry.TemperatureInfo{
			Label:       t.SensorKey,
			Temperature: float32(t.Temperature),
		})
	}

	if up, err := host.UptimeWithContext(ctx); err == nil {
		s.Uptime = &up
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		s.Load = &LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}

	return s
}

func (g *GopsutilSource) disks(ctx context.Context) []telemetry.Disk {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil
	}

	out := make([]telemetry.Disk, 0, len(parts))
	for _, p := range parts {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		out = append(out, telemetry.Disk{
			Name:           p.Device,
			FileSystem:     p.Fstype,
			TotalSpace:     usage.Total,
			AvailableSpace: usage.Free,
		})
	}
	return out
}

// processes reuses process handles across ticks so Percent(0) reports the
// delta since the previous refresh.
func (g *GopsutilSource) processes(ctx context.Context) []RawProcess {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil
	}

	alive := make(map[int32]*process.Process, len(pids))
	out := make([]RawProcess, 0, len(pids))

	for _, pid := range pids {
		p, ok := g.procs[pid]
		if !ok {
			p, err = process.NewProcessWithContext(ctx, pid)
			if err != nil {
				continue
			}
		}
		alive[pid] = p

		rp := RawProcess{PID: pid}
		rp.Name, _ = p.NameWithContext(ctx)
		if ppid, err := p.PpidWithContext(ctx); err == nil {
			rp.ParentPID = &ppid
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			rp.Memory = mi.RSS
		}
		rp.CPU, _ = p.PercentWithContext(ctx, 0)
		if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
			rp.WriteBytes = io.WriteBytes
		}
		rp.Cmd, _ = p.CmdlineSliceWithContext(ctx)
		rp.Exe, _ = p.ExeWithContext(ctx)
		if status, err := p.StatusWithContext(ctx); err == nil {
			rp.Status = strings.Join(status, ",")
		}

		out = append(out, rp)
	}

	g.procs = alive
	return out
}
