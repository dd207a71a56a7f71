// Package collector gathers one telemetry.Snapshot per tick from gopsutil,
// NVML, Linux sysfs/procfs and a handful of vendor command-line tools.
//
// Every adapter may fail on its own. A failure only leaves the matching
// snapshot fields absent (nil pointers, empty strings or a short note),
// never aborts the tick.
package collector

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// Options configures a Collector. Zero values select the real host.
type Options struct {
	// Root prefixes every sysfs/procfs path. Tests point it at a fixture tree.
	Root     string
	Source   GenericSource
	Runner   Runner
	// Nvidia defaults to the go-nvml binding.
	Nvidia   NvidiaLibrary
	Logger   logger.Logger
	Now      func() time.Time
	Hostname func() (string, error)
	GOOS     string
}

// Collector owns the history rings and every per-adapter piece of state.
// It is not safe for concurrent use.
type Collector struct {
	fs       SysFS
	source   GenericSource
	runner   Runner
	log      logger.Logger
	now      func() time.Time
	hostname func() (string, error)
	goos     string

	lastTick time.Time

	cpuHistory  []*telemetry.HistoryRing[float32]
	memHistory  *telemetry.HistoryRing[telemetry.UsagePair]
	swapHistory *telemetry.HistoryRing[telemetry.UsagePair]
	netHistory  *telemetry.HistoryRing[telemetry.RatePair]
	diskHistory []*telemetry.HistoryRing[telemetry.SpacePair]
	prevNet     map[string][2]uint64

	smoother *cpuSmoother
	nvidia   *NvidiaGPU
	intel    *IntelGPU
	cpuPower *CPUPower
	battery  *Battery
	pciGPUs  []parsers.PCIGPU
}

// New creates a Collector. On Linux it runs lspci once to learn the
// display controllers.
func New(ctx context.Context, opts Options) *Collector {
	if opts.Source == nil {
		opts.Source = NewGopsutilSource()
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Nvidia == nil {
		opts.Nvidia = NewNVML()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Hostname == nil {
		opts.Hostname = os.Hostname
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	fs := NewSysFS(opts.Root)
	c := &Collector{
		fs:          fs,
		source:      opts.Source,
		runner:      opts.Runner,
		log:         opts.Logger,
		now:         opts.Now,
		hostname:    opts.Hostname,
		goos:        opts.GOOS,
		lastTick:    opts.Now(),
		memHistory:  telemetry.NewHistoryRing[telemetry.UsagePair](),
		swapHistory: telemetry.NewHistoryRing[telemetry.UsagePair](),
		netHistory:  telemetry.NewHistoryRing[telemetry.RatePair](),
		prevNet:     make(map[string][2]uint64),
		smoother:    newCPUSmoother(),
		nvidia:      NewNvidiaGPU(opts.Nvidia, opts.Logger),
		battery:     NewBattery(fs, opts.Runner, opts.GOOS),
	}

	if c.linux() {
		c.intel = NewIntelGPU(fs)
		c.cpuPower = NewCPUPower(fs)
		c.pciGPUs = detectPCIGPUs(ctx, opts.Runner, opts.Logger)
		c.log.Debug("lspci found %d display controllers", len(c.pciGPUs))
	}

	return c
}

// Close releases the NVIDIA management library.
func (c *Collector) Close() {
	c.nvidia.Close()
}

func (c *Collector) linux() bool {
	return c.goos == "linux"
}

// Collect refreshes every source and returns a fresh snapshot. The returned
// history rings are copies; the collector keeps its own.
func (c *Collector) Collect(ctx context.Context) telemetry.Snapshot {
	now := c.now()
	elapsed := now.Sub(c.lastTick).Seconds()
	c.lastTick = now

	g := c.source.Sample(ctx)
	snap := telemetry.NewSnapshot()

	snap.CPUCount = len(g.PerCore)
	snap.CPUName = g.CPUName
	snap.GlobalCPUUsage = meanUsage(g.PerCore)
	c.cpuHistory = telemetry.ResizeRings(c.cpuHistory, len(g.PerCore))
	for i, u := range g.PerCore {
		c.cpuHistory[i].Push(u)
	}

	snap.CPUFrequencies = make([]uint64, len(g.PerCore))
	copy(snap.CPUFrequencies, g.CoreMHz)
	if c.linux() {
		fillFrequencies(c.fs, snap.CPUFrequencies)
	}

	snap.UsedMemory, snap.TotalMemory = g.MemUsed, g.MemTotal
	snap.UsedSwap, snap.TotalSwap = g.SwapUsed, g.SwapTotal
	c.memHistory.Push(telemetry.UsagePair{Used: g.MemUsed, Total: g.MemTotal})
	c.swapHistory.Push(telemetry.UsagePair{Used: g.SwapUsed, Total: g.SwapTotal})

	snap.Networks = c.networkRates(g.Networks, elapsed)

	snap.Processes = c.smoother.apply(g.Processes, snap.CPUCount, elapsed)

	snap.Disks = dedupDisks(g.Disks)
	c.pushDisks(snap.Disks)

	var meminfo map[string]uint64
	temps := g.Temperatures
	if c.linux() {
		meminfo = readMeminfo(c.fs)
		temps = withThermalFallback(c.fs, temps)
		snap.CachedMemory = cachedMemory(meminfo)
		if r := c.cpuPower.Read(now); r.OK {
			snap.CPUPower = r.Ptr()
		}
	}
	snap.Temperatures = temps

	snap.GPUs = c.gpus(ctx, now, g, temps, meminfo)

	c.hostInfo(&snap, g)
	snap.Battery = c.battery.Read(ctx)

	snap.CPUHistory = cloneRingList(c.cpuHistory)
	snap.MemoryHistory = c.memHistory.Clone()
	snap.SwapHistory = c.swapHistory.Clone()
	snap.NetworkHistory = c.netHistory.Clone()
	snap.DiskHistory = cloneRingList(c.diskHistory)

	return snap
}

// networkRates turns cumulative counters into per-second rates. Interfaces
// that disappeared since the last tick are forgotten.
func (c *Collector) networkRates(counters []NetCounter, elapsed float64) []telemetry.Network {
	nets := make([]telemetry.Network, 0, len(counters))
	seen := make(map[string][2]uint64, len(counters))
	var sumRX, sumTX uint64

	for _, n := range counters {
		var rxRate, txRate uint64
		if prev, ok := c.prevNet[n.Name]; ok && elapsed > 0 {
			rxRate = uint64(float64(saturatingSub(n.RX, prev[0])) / elapsed)
			txRate = uint64(float64(saturatingSub(n.TX, prev[1])) / elapsed)
		}
		seen[n.Name] = [2]uint64{n.RX, n.TX}
		sumRX += rxRate
		sumTX += txRate

		nets = append(nets, telemetry.Network{
			Name:              n.Name,
			TotalReceived:     n.RX,
			TotalTransmitted:  n.TX,
			ReceivedPerSec:    rxRate,
			TransmittedPerSec: txRate,
		})
	}

	c.prevNet = seen
	c.netHistory.Push(telemetry.RatePair{RX: sumRX, TX: sumTX})
	return nets
}

func (c *Collector) pushDisks(disks []telemetry.Disk) {
	c.diskHistory = telemetry.ResizeRings(c.diskHistory, len(disks))
	for i, d := range disks {
		c.diskHistory[i].Push(telemetry.SpacePair{Available: d.AvailableSpace, Total: d.TotalSpace})
	}
}

func (c *Collector) gpus(ctx context.Context, now time.Time, g GenericSample, temps []telemetry.TemperatureInfo, meminfo map[string]uint64) []telemetry.GPU {
	in := gpuInputs{
		nvidia:     c.nvidia.Read(),
		components: g.Temperatures,
		pci:        c.pciGPUs,
	}
	if c.intel != nil && c.intel.Present() {
		in.intelPresent = true
		in.intel = c.intel.Sample(now, temps, meminfo, g.MemTotal)
	}
	return assembleGPUs(in)
}

func (c *Collector) hostInfo(snap *telemetry.Snapshot, g GenericSample) {
	if name, err := c.hostname(); err == nil && name != "" {
		snap.Hostname = name
	}
	if g.Uptime != nil {
		snap.Uptime = parsers.FormatUptime(*g.Uptime)
	}
	if g.Load != nil {
		snap.LoadAvg = parsers.FormatLoadAvg(g.Load.Load1, g.Load.Load5, g.Load.Load15)
	}
}

func meanUsage(perCore []float32) float32 {
	if len(perCore) == 0 {
		return 0
	}
	var sum float32
	for _, u := range perCore {
		sum += u
	}
	return sum / float32(len(perCore))
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func cloneRingList[T any](rings []*telemetry.HistoryRing[T]) []*telemetry.HistoryRing[T] {
	out := make([]*telemetry.HistoryRing[T], len(rings))
	for i, r := range rings {
		out[i] = r.Clone()
	}
	return out
}
