package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

func snapshotWithMemory(used uint64) telemetry.Snapshot {
	s := telemetry.NewSnapshot()
	s.UsedMemory = used
	s.TotalMemory = 4000
	return s
}

func TestInterpolator_QuarterStep(t *testing.T) {
	ip := NewInterpolator(snapshotWithMemory(1000))
	ip.Push(snapshotWithMemory(2000))

	frame := ip.Advance(62500 * time.Microsecond)

	assert.InDelta(t, 0.25, ip.Factor(), 1e-12)
	assert.Equal(t, uint64(1250), frame.UsedMemory)
}

func TestInterpolator_SettlesOnTarget(t *testing.T) {
	last := snapshotWithMemory(1000)
	last.GlobalCPUUsage = 10
	target := snapshotWithMemory(3000)
	target.GlobalCPUUsage = 90

	ip := NewInterpolator(last)
	ip.Push(target)
	frame := ip.Advance(time.Second)

	assert.Equal(t, 1.0, ip.Factor())
	assert.Equal(t, uint64(3000), frame.UsedMemory)
	assert.Equal(t, float32(90), frame.GlobalCPUUsage)

	// Settled: further frames stay on the target.
	frame = ip.Advance(16 * time.Millisecond)
	assert.Equal(t, uint64(3000), frame.UsedMemory)
}

func TestInterpolator_Bounds(t *testing.T) {
	tests := []struct {
		name         string
		from, to     uint64
		cpuA, cpuB   float32
		swapA, swapB uint64
	}{
		{name: "rising", from: 100, to: 900, cpuA: 5, cpuB: 95, swapA: 0, swapB: 10},
		{name: "falling", from: 900, to: 100, cpuA: 95, cpuB: 5, swapA: 10, swapB: 0},
		{name: "flat", from: 500, to: 500, cpuA: 50, cpuB: 50, swapA: 3, swapB: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := snapshotWithMemory(tt.from)
			a.GlobalCPUUsage, a.UsedSwap = tt.cpuA, tt.swapA
			b := snapshotWithMemory(tt.to)
			b.GlobalCPUUsage, b.UsedSwap = tt.cpuB, tt.swapB

			ip := NewInterpolator(a)
			ip.Push(b)
			for i := 0; i < 20; i++ {
				f := ip.Advance(16 * time.Millisecond)
				assert.GreaterOrEqual(t, f.UsedMemory, min(tt.from, tt.to))
				assert.LessOrEqual(t, f.UsedMemory, max(tt.from, tt.to))
				assert.GreaterOrEqual(t, f.UsedSwap, min(tt.swapA, tt.swapB))
				assert.LessOrEqual(t, f.UsedSwap, max(tt.swapA, tt.swapB))
				assert.GreaterOrEqual(t, f.GlobalCPUUsage, min(tt.cpuA, tt.cpuB)-1e-4)
				assert.LessOrEqual(t, f.GlobalCPUUsage, max(tt.cpuA, tt.cpuB)+1e-4)
			}
		})
	}
}

func TestInterpolator_PushRestartsFromScreen(t *testing.T) {
	ip := NewInterpolator(snapshotWithMemory(0))
	ip.Push(snapshotWithMemory(1000))
	ip.Advance(125 * time.Millisecond) // factor 0.5 -> 500

	ip.Push(snapshotWithMemory(2000))
	frame := ip.Advance(0)

	assert.Equal(t, uint64(500), frame.UsedMemory)
}

func TestInterpolator_GPUs(t *testing.T) {
	last := telemetry.NewSnapshot()
	last.GPUs = []telemetry.GPU{
		{Name: "a", Usage: telemetry.Ptr[float32](0), Temp: telemetry.Ptr[float32](40), MemoryUsed: telemetry.Ptr[uint64](100)},
		{Name: "b", Usage: nil},
	}
	target := telemetry.NewSnapshot()
	target.GPUs = []telemetry.GPU{
		{Name: "a", Usage: telemetry.Ptr[float32](100), Temp: telemetry.Ptr[float32](60), MemoryUsed: telemetry.Ptr[uint64](300)},
		{Name: "b", Usage: telemetry.Ptr[float32](80)},
		{Name: "c", Usage: telemetry.Ptr[float32](10)},
	}

	ip := NewInterpolator(last)
	ip.Push(target)
	frame := ip.Advance(125 * time.Millisecond)

	require.Len(t, frame.GPUs, 3)
	assert.InDelta(t, 50, *frame.GPUs[0].Usage, 1e-4)
	assert.InDelta(t, 50, *frame.GPUs[0].Temp, 1e-4)
	assert.Equal(t, uint64(200), *frame.GPUs[0].MemoryUsed)
	assert.Equal(t, float32(80), *frame.GPUs[1].Usage, "absent on one side takes the target")
	assert.Equal(t, float32(10), *frame.GPUs[2].Usage)

	assert.Equal(t, float32(100), *target.GPUs[0].Usage, "target is not modified")
}

func TestUIState_Overlay(t *testing.T) {
	s := telemetry.NewSnapshot()
	s.Networks = []telemetry.Network{{Name: "eth0"}, {Name: "wlan0"}}

	wlan := "wlan0"
	u := UIState{
		ProcessSort:       telemetry.SortByName,
		SelectedInterface: &wlan,
		ColorScheme:       theme.Gruvbox,
		AutoUpdate:        false,
		UpdateInterval:    1500,
		ShowGraphs:        false,
		ChartType:         telemetry.ChartDisk,
	}

	u.Overlay(&s)
	once := s.Clone()
	u.Overlay(&s)

	assert.Equal(t, once, s, "overlay is idempotent")
	assert.Equal(t, telemetry.SortByName, s.ProcessSort)
	assert.Equal(t, theme.Gruvbox, s.ColorScheme)
	require.NotNil(t, s.SelectedInterface)
	assert.Equal(t, "wlan0", *s.SelectedInterface)
	assert.False(t, s.AutoUpdate)
	assert.Equal(t, 1500, s.UpdateInterval)
	assert.False(t, s.ShowGraphs)
	assert.Equal(t, telemetry.ChartDisk, s.ChartType)

	wlan = "changed"
	assert.Equal(t, "wlan0", *s.SelectedInterface, "selection is copied")
}

func TestUIState_OverlayClearsMissingInterface(t *testing.T) {
	s := telemetry.NewSnapshot()
	s.Networks = []telemetry.Network{{Name: "eth0"}}

	gone := "docker0"
	UIState{SelectedInterface: &gone}.Overlay(&s)

	assert.Nil(t, s.SelectedInterface)
}

func TestInterpolator_Overlay(t *testing.T) {
	ip := NewInterpolator(telemetry.NewSnapshot())
	ip.Push(telemetry.NewSnapshot())

	u := DefaultUIState()
	u.ProcessSort = telemetry.SortByPID
	ip.Overlay(u)

	assert.Equal(t, telemetry.SortByPID, ip.Current().ProcessSort)
	assert.Equal(t, telemetry.SortByPID, ip.Target().ProcessSort)
	assert.Equal(t, telemetry.SortByPID, ip.Advance(time.Second).ProcessSort)
}
