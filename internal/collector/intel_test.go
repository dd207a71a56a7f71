package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const testCard = "/sys/class/drm/card0"

func intelFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, testCard+"/device/vendor", "0x8086\n")
	// Connector dirs share the card prefix and must be ignored.
	writeFile(t, root, "/sys/class/drm/card0-HDMI-A-1/status", "disconnected\n")
	return root
}

func TestIntelGPU_Present(t *testing.T) {
	t.Run("intel card", func(t *testing.T) {
		g := NewIntelGPU(NewSysFS(intelFixture(t)))
		assert.True(t, g.Present())
	})

	t.Run("amd card only", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "/sys/class/drm/card0/device/vendor", "0x1002\n")
		g := NewIntelGPU(NewSysFS(root))
		assert.False(t, g.Present())
	})

	t.Run("no drm", func(t *testing.T) {
		g := NewIntelGPU(NewSysFS(t.TempDir()))
		assert.False(t, g.Present())
	})
}

func TestIntelGPU_UsageRC6WithContradiction(t *testing.T) {
	root := intelFixture(t)
	writeFile(t, root, testCard+"/gt/gt0/rc6_residency_ms", "1000")
	writeFile(t, root, testCard+"/gt/gt1/rc6_residency_ms", "1000")
	writeFile(t, root, testCard+"/gt/gt1/rps_cur_freq_mhz", "400")
	writeFile(t, root, testCard+"/gt/gt1/rps_max_freq_mhz", "1000")
	writeFile(t, root, testCard+"/gt/gt1/rps_min_freq_mhz", "0")

	g := NewIntelGPU(NewSysFS(root))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := g.Sample(now, nil, nil, 0)
	assert.False(t, first.Usage.OK)
	assert.Equal(t, telemetry.NoteWarmup, first.Usage.Note)

	writeFile(t, root, testCard+"/gt/gt0/rc6_residency_ms", "1050")
	writeFile(t, root, testCard+"/gt/gt1/rc6_residency_ms", "1010")

	second := g.Sample(now.Add(100*time.Millisecond), nil, nil, 0)
	require.True(t, second.Usage.OK)
	assert.InDelta(t, 50.0, second.Usage.Value, 0.001)
	assert.Equal(t, telemetry.NoteRC6f, second.Usage.Note)
}

func TestIntelGPU_UsageSources(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("busy percent wins", func(t *testing.T) {
		root := intelFixture(t)
		writeFile(t, root, testCard+"/device/gpu_busy_percent", "37\n")
		writeFile(t, root, testCard+"/gt/gt0/rc6_residency_ms", "1000")

		g := NewIntelGPU(NewSysFS(root))
		s := g.Sample(now, nil, nil, 0)
		require.True(t, s.Usage.OK)
		assert.InDelta(t, 37.0, s.Usage.Value, 0.001)
		assert.Equal(t, telemetry.NoteBusy, s.Usage.Note)
	})

	t.Run("frequency estimate", func(t *testing.T) {
		root := intelFixture(t)
		writeFile(t, root, testCard+"/gt_cur_freq_mhz", "600")
		writeFile(t, root, testCard+"/gt_max_freq_mhz", "1100")
		writeFile(t, root, testCard+"/gt_min_freq_mhz", "100")

		g := NewIntelGPU(NewSysFS(root))
		s := g.Sample(now, nil, nil, 0)
		require.True(t, s.Usage.OK)
		assert.InDelta(t, 50.0, s.Usage.Value, 0.001)
		assert.Equal(t, telemetry.NoteFreq, s.Usage.Note)
	})

	t.Run("nothing readable", func(t *testing.T) {
		g := NewIntelGPU(NewSysFS(intelFixture(t)))
		s := g.Sample(now, nil, nil, 0)
		assert.False(t, s.Usage.OK)
		assert.Equal(t, telemetry.NoteNoData, s.Usage.Note)
	})

	t.Run("smoothing follows the previous value", func(t *testing.T) {
		root := intelFixture(t)
		busy := testCard + "/device/gpu_busy_percent"
		writeFile(t, root, busy, "0")

		g := NewIntelGPU(NewSysFS(root))
		g.Sample(now, nil, nil, 0)

		writeFile(t, root, busy, "100")
		s := g.Sample(now.Add(time.Second), nil, nil, 0)
		assert.InDelta(t, 60.0, s.Usage.Value, 0.001)
	})
}

func TestCombineRC6(t *testing.T) {
	tests := []struct {
		name      string
		rc6       map[string]float32
		freq      map[string]float32
		estimate  float32
		hasFreq   bool
		wantUsage float32
		wantNote  string
	}{
		{
			name:      "single gt",
			rc6:       map[string]float32{"gt0": 30},
			wantUsage: 30,
			wantNote:  telemetry.NoteRC6,
		},
		{
			name:      "divergent gts take the lower",
			rc6:       map[string]float32{"gt0": 10, "gt1": 90},
			wantUsage: 10,
			wantNote:  telemetry.NoteRC6d,
		},
		{
			name:      "blend with frequency when far apart",
			rc6:       map[string]float32{"gt0": 70},
			freq:      map[string]float32{"gt0": 20},
			estimate:  20,
			hasFreq:   true,
			wantUsage: 70*0.4 + 20*0.6,
			wantNote:  telemetry.NoteHybrid,
		},
		{
			name:      "all filtered falls back to every sample",
			rc6:       map[string]float32{"gt0": 95},
			freq:      map[string]float32{"gt0": 10},
			estimate:  10,
			hasFreq:   true,
			wantUsage: 95,
			wantNote:  telemetry.NoteRC6f,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage, note, ok := combineRC6(tt.rc6, tt.freq, tt.estimate, tt.hasFreq)
			require.True(t, ok)
			assert.InDelta(t, tt.wantUsage, usage, 0.001)
			assert.Equal(t, tt.wantNote, note)
		})
	}
}

func TestIntelGPU_Temperature(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("hwmon", func(t *testing.T) {
		root := intelFixture(t)
		writeFile(t, root, testCard+"/device/hwmon/hwmon3/temp1_input", "47000\n")

		s := NewIntelGPU(NewSysFS(root)).Sample(now, nil, nil, 0)
		require.True(t, s.Temp.OK)
		assert.InDelta(t, 47.0, s.Temp.Value, 0.001)
		assert.Empty(t, s.Temp.Note)
	})

	t.Run("package proxy", func(t *testing.T) {
		temps := []telemetry.TemperatureInfo{
			{Label: "nvme composite", Temperature: 35},
			{Label: "coretemp package id 0", Temperature: 52},
		}
		s := NewIntelGPU(NewSysFS(intelFixture(t))).Sample(now, temps, nil, 0)
		require.True(t, s.Temp.OK)
		assert.InDelta(t, 52.0, s.Temp.Value, 0.001)
		assert.Equal(t, telemetry.NotePkgProxy, s.Temp.Note)
	})

	t.Run("thermal zone", func(t *testing.T) {
		root := intelFixture(t)
		writeFile(t, root, "/sys/class/thermal/thermal_zone0/type", "acpitz\n")
		writeFile(t, root, "/sys/class/thermal/thermal_zone0/temp", "41000\n")

		s := NewIntelGPU(NewSysFS(root)).Sample(now, nil, nil, 0)
		require.True(t, s.Temp.OK)
		assert.InDelta(t, 41.0, s.Temp.Value, 0.001)
		assert.Equal(t, telemetry.NoteThermal, s.Temp.Note)
	})

	t.Run("nothing", func(t *testing.T) {
		s := NewIntelGPU(NewSysFS(intelFixture(t))).Sample(now, nil, nil, 0)
		assert.False(t, s.Temp.OK)
		assert.Equal(t, telemetry.NoteNA, s.Temp.Note)
	})
}

func TestIntelGPU_Memory(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("debugfs", func(t *testing.T) {
		root := intelFixture(t)
		writeFile(t, root, "/sys/kernel/debug/dri/0/i915_gem_objects", "812 objects, 104857600 bytes\n")
		meminfo := map[string]uint64{"MemTotal": 16 << 30, "MemAvailable": 8 << 30}

		s := NewIntelGPU(NewSysFS(root)).Sample(now, nil, meminfo, 0)
		require.True(t, s.MemUsed.OK)
		assert.Equal(t, uint64(104857600), s.MemUsed.Value)
		require.NotNil(t, s.MemTotal)
		assert.Equal(t, uint64(8<<30)+104857600, *s.MemTotal)
	})

	t.Run("shared memory proxy", func(t *testing.T) {
		meminfo := map[string]uint64{"Shmem": 256 << 20, "MemTotal": 16 << 30}
		s := NewIntelGPU(NewSysFS(intelFixture(t))).Sample(now, nil, meminfo, 0)
		require.True(t, s.MemUsed.OK)
		assert.Equal(t, uint64(256<<20), s.MemUsed.Value)
		assert.Equal(t, telemetry.NoteShared, s.MemUsed.Note)
		require.NotNil(t, s.MemTotal)
		assert.Equal(t, uint64(16<<30), *s.MemTotal)
	})

	t.Run("debugfs not mounted", func(t *testing.T) {
		s := NewIntelGPU(NewSysFS(intelFixture(t))).Sample(now, nil, nil, 8<<30)
		assert.False(t, s.MemUsed.OK)
		assert.Equal(t, telemetry.NoteDbgfsOff, s.MemUsed.Note)
		require.NotNil(t, s.MemTotal)
		assert.Equal(t, uint64(8<<30), *s.MemTotal)
	})
}

func TestGTKey(t *testing.T) {
	assert.Equal(t, "gt1", gtKey("/sys/class/drm/card0/gt/gt1/rc6_residency_ms"))
	assert.Equal(t, "card", gtKey("/sys/class/drm/card0/power/rc6_residency_ms"))
	assert.Equal(t, "card", gtKey("/sys/class/drm/card0/gt_cur_freq_mhz"))
}
