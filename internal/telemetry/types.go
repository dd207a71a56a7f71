// Package telemetry defines the snapshot model shared by the collector and
// the dashboard.
//
// A Snapshot is one complete sample of the local machine plus the UI state
// the dashboard overlays onto it. Snapshots are built by the collector,
// published over a channel and never mutated afterwards; the dashboard works
// on clones.
package telemetry

import (
	"sort"

	"github.com/rileyhilliard/rtop/internal/theme"
)

// DefaultUpdateInterval is the sampling cadence in milliseconds.
const DefaultUpdateInterval = 1000

// ProcessSort selects the process list ordering.
type ProcessSort int

const (
	SortByCPU ProcessSort = iota
	SortByMemory
	SortByPID
	SortByName
)

// String returns the short label shown in the process panel title.
func (s ProcessSort) String() string {
	switch s {
	case SortByCPU:
		return "CPU"
	case SortByMemory:
		return "MEM"
	case SortByPID:
		return "PID"
	case SortByName:
		return "NAME"
	default:
		return "CPU"
	}
}

// Next cycles CPU -> MEM -> PID -> NAME -> CPU.
func (s ProcessSort) Next() ProcessSort {
	return ProcessSort((int(s) + 1) % 4)
}

// ChartType selects which series the main chart shows.
type ChartType int

const (
	ChartCPU ChartType = iota
	ChartMemory
	ChartNetwork
	ChartDisk
)

// String returns a human-readable label for the chart type.
func (c ChartType) String() string {
	switch c {
	case ChartCPU:
		return "cpu"
	case ChartMemory:
		return "memory"
	case ChartNetwork:
		return "network"
	case ChartDisk:
		return "disk"
	default:
		return "cpu"
	}
}

// Next cycles to the next chart type.
func (c ChartType) Next() ChartType {
	return ChartType((int(c) + 1) % 4)
}

// Vendor is a GPU manufacturer.
type Vendor string

const (
	VendorNVIDIA  Vendor = "NVIDIA"
	VendorIntel   Vendor = "Intel"
	VendorAMD     Vendor = "AMD"
	VendorUnknown Vendor = "Unknown"
)

// Process is one row of the process table.
type Process struct {
	PID       int32    `json:"pid" yaml:"pid"`
	ParentPID *int32   `json:"parent_pid,omitempty" yaml:"parent_pid,omitempty"`
	Name      string   `json:"name" yaml:"name"`
	Memory    uint64   `json:"memory" yaml:"memory"`
	CPUUsage  float32  `json:"cpu_usage" yaml:"cpu_usage"`
	DiskUsage uint64   `json:"disk_usage" yaml:"disk_usage"`
	Cmd       []string `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Exe       string   `json:"exe,omitempty" yaml:"exe,omitempty"`
	Status    string   `json:"status" yaml:"status"`
}

// Disk is a mounted volume after deduplication.
type Disk struct {
	Name           string `json:"name" yaml:"name"`
	FileSystem     string `json:"file_system" yaml:"file_system"`
	TotalSpace     uint64 `json:"total_space" yaml:"total_space"`
	AvailableSpace uint64 `json:"available_space" yaml:"available_space"`
}

// Used returns the occupied bytes.
func (d Disk) Used() uint64 {
	if d.AvailableSpace > d.TotalSpace {
		return 0
	}
	return d.TotalSpace - d.AvailableSpace
}

// Network holds cumulative counters and derived rates for one interface.
type Network struct {
	Name              string `json:"name" yaml:"name"`
	TotalReceived     uint64 `json:"total_received" yaml:"total_received"`
	TotalTransmitted  uint64 `json:"total_transmitted" yaml:"total_transmitted"`
	ReceivedPerSec    uint64 `json:"received_per_sec" yaml:"received_per_sec"`
	TransmittedPerSec uint64 `json:"transmitted_per_sec" yaml:"transmitted_per_sec"`
}

// GPU is one graphics adapter. Absent metrics are nil; the matching note
// explains which source produced the value or why none was available.
type GPU struct {
	Name        string   `json:"name" yaml:"name"`
	Vendor      Vendor   `json:"vendor" yaml:"vendor"`
	Temp        *float32 `json:"temp,omitempty" yaml:"temp,omitempty"`
	Usage       *float32 `json:"usage,omitempty" yaml:"usage,omitempty"`
	MemoryUsed  *uint64  `json:"memory_used,omitempty" yaml:"memory_used,omitempty"`
	MemoryTotal *uint64  `json:"memory_total,omitempty" yaml:"memory_total,omitempty"`
	PowerUsage  *float32 `json:"power_usage,omitempty" yaml:"power_usage,omitempty"`
	TempNote    string   `json:"temp_note,omitempty" yaml:"temp_note,omitempty"`
	UsageNote   string   `json:"usage_note,omitempty" yaml:"usage_note,omitempty"`
	MemoryNote  string   `json:"memory_note,omitempty" yaml:"memory_note,omitempty"`
	PowerNote   string   `json:"power_note,omitempty" yaml:"power_note,omitempty"`
}

// TemperatureInfo is a labeled sensor reading in degrees Celsius.
type TemperatureInfo struct {
	Label       string  `json:"label" yaml:"label"`
	Temperature float32 `json:"temperature" yaml:"temperature"`
}

// BatteryInfo describes the primary battery.
type BatteryInfo struct {
	Level  *float32 `json:"level,omitempty" yaml:"level,omitempty"`
	Status string   `json:"status,omitempty" yaml:"status,omitempty"`
}

// UsagePair is a (used, total) sample.
type UsagePair struct {
	Used  uint64 `json:"used" yaml:"used"`
	Total uint64 `json:"total" yaml:"total"`
}

// RatePair is a (rx/s, tx/s) sample.
type RatePair struct {
	RX uint64 `json:"rx" yaml:"rx"`
	TX uint64 `json:"tx" yaml:"tx"`
}

// SpacePair is an (available, total) disk sample.
type SpacePair struct {
	Available uint64 `json:"available" yaml:"available"`
	Total     uint64 `json:"total" yaml:"total"`
}

// Snapshot is a complete system sample.
type Snapshot struct {
	GlobalCPUUsage float32  `json:"global_cpu_usage" yaml:"global_cpu_usage"`
	UsedMemory     uint64   `json:"used_memory" yaml:"used_memory"`
	TotalMemory    uint64   `json:"total_memory" yaml:"total_memory"`
	UsedSwap       uint64   `json:"used_swap" yaml:"used_swap"`
	TotalSwap      uint64   `json:"total_swap" yaml:"total_swap"`
	CachedMemory   uint64   `json:"cached_memory" yaml:"cached_memory"`
	CPUCount       int      `json:"cpu_count" yaml:"cpu_count"`
	CPUPower       *float32 `json:"cpu_power,omitempty" yaml:"cpu_power,omitempty"`
	CPUName        string   `json:"cpu_name" yaml:"cpu_name"`
	Hostname       string   `json:"hostname" yaml:"hostname"`
	Uptime         string   `json:"uptime" yaml:"uptime"`
	LoadAvg        string   `json:"load_avg" yaml:"load_avg"`

	CPUFrequencies []uint64                  `json:"cpu_frequencies" yaml:"cpu_frequencies"`
	CPUHistory     []*HistoryRing[float32]   `json:"cpu_history" yaml:"cpu_history"`
	MemoryHistory  *HistoryRing[UsagePair]   `json:"memory_history" yaml:"memory_history"`
	SwapHistory    *HistoryRing[UsagePair]   `json:"swap_history" yaml:"swap_history"`
	NetworkHistory *HistoryRing[RatePair]    `json:"network_history" yaml:"network_history"`
	DiskHistory    []*HistoryRing[SpacePair] `json:"disk_usage_history" yaml:"disk_usage_history"`

	Processes    []Process         `json:"processes" yaml:"processes"`
	Disks        []Disk            `json:"disks" yaml:"disks"`
	Networks     []Network         `json:"networks" yaml:"networks"`
	GPUs         []GPU             `json:"gpus" yaml:"gpus"`
	Temperatures []TemperatureInfo `json:"temperature_sensors" yaml:"temperature_sensors"`
	Battery      *BatteryInfo      `json:"battery_info,omitempty" yaml:"battery_info,omitempty"`

	SelectedInterface *string      `json:"selected_network_interface,omitempty" yaml:"selected_network_interface,omitempty"`
	ProcessSort       ProcessSort  `json:"process_sort_by" yaml:"process_sort_by"`
	ColorScheme       theme.Scheme `json:"color_scheme" yaml:"color_scheme"`
	AutoUpdate        bool         `json:"auto_update" yaml:"auto_update"`
	UpdateInterval    int          `json:"update_interval" yaml:"update_interval"`
	ShowColors        bool         `json:"show_colors" yaml:"show_colors"`
	ShowGraphs        bool         `json:"show_graphs" yaml:"show_graphs"`
	ChartType         ChartType    `json:"chart_type" yaml:"chart_type"`
}

// NewSnapshot returns an empty snapshot with default UI state.
func NewSnapshot() Snapshot {
	return Snapshot{
		Hostname:       "Unknown",
		Uptime:         "N/A",
		LoadAvg:        "N/A",
		MemoryHistory:  NewHistoryRing[UsagePair](),
		SwapHistory:    NewHistoryRing[UsagePair](),
		NetworkHistory: NewHistoryRing[RatePair](),
		ProcessSort:    SortByCPU,
		ColorScheme:    theme.Default,
		AutoUpdate:     true,
		UpdateInterval: DefaultUpdateInterval,
		ShowColors:     true,
		ShowGraphs:     true,
		ChartType:      ChartCPU,
	}
}

// Clone returns a deep copy so callers can modify the result freely.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.CPUPower = clonePtr(s.CPUPower)
	c.CPUFrequencies = cloneSlice(s.CPUFrequencies)
	c.CPUHistory = cloneRings(s.CPUHistory)
	c.MemoryHistory = s.MemoryHistory.Clone()
	c.SwapHistory = s.SwapHistory.Clone()
	c.NetworkHistory = s.NetworkHistory.Clone()
	c.DiskHistory = cloneRings(s.DiskHistory)
	c.Disks = cloneSlice(s.Disks)
	c.Networks = cloneSlice(s.Networks)
	c.Temperatures = cloneSlice(s.Temperatures)
	c.SelectedInterface = clonePtr(s.SelectedInterface)

	if s.Processes != nil {
		c.Processes = make([]Process, len(s.Processes))
		for i, p := range s.Processes {
			p.ParentPID = clonePtr(p.ParentPID)
			p.Cmd = cloneSlice(p.Cmd)
			c.Processes[i] = p
		}
	}
	if s.GPUs != nil {
		c.GPUs = make([]GPU, len(s.GPUs))
		for i, g := range s.GPUs {
			g.Temp = clonePtr(g.Temp)
			g.Usage = clonePtr(g.Usage)
			g.MemoryUsed = clonePtr(g.MemoryUsed)
			g.MemoryTotal = clonePtr(g.MemoryTotal)
			g.PowerUsage = clonePtr(g.PowerUsage)
			c.GPUs[i] = g
		}
	}
	if s.Battery != nil {
		b := *s.Battery
		b.Level = clonePtr(s.Battery.Level)
		c.Battery = &b
	}
	return c
}

// InterfaceNames returns the sorted, de-duplicated interface names.
func (s Snapshot) InterfaceNames() []string {
	seen := make(map[string]bool, len(s.Networks))
	names := make([]string, 0, len(s.Networks))
	for _, n := range s.Networks {
		if seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		names = append(names, n.Name)
	}
	sort.Strings(names)
	return names
}

// HasInterface reports whether name is present in the network list.
func (s Snapshot) HasInterface(name string) bool {
	for _, n := range s.Networks {
		if n.Name == name {
			return true
		}
	}
	return false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
