package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

func TestSysFS_Reads(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/sys/a/num", " 42\n")
	writeFile(t, root, "/sys/a/float", "3.5\n")
	writeFile(t, root, "/sys/a/text", "hello\n")

	fs := NewSysFS(root)

	s, err := fs.ReadString(fs.Path("/sys/a/text"))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	n, err := fs.ReadUint(fs.Path("/sys/a/num"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	f, err := fs.ReadFloat(fs.Path("/sys/a/float"))
	require.NoError(t, err)
	assert.InDelta(t, 3.5, f, 0.0001)

	assert.True(t, fs.IsDir(fs.Path("/sys/a")))
	assert.False(t, fs.IsDir(fs.Path("/sys/a/num")))
	assert.Equal(t, []string{"float", "num", "text"}, fs.Entries(fs.Path("/sys/a")))
	assert.Nil(t, fs.Entries(fs.Path("/missing")))

	_, err = fs.ReadString(fs.Path("/missing"))
	assert.Equal(t, telemetry.NoteNA, readNote(err))
}

func TestNewSysFS_DefaultsToRoot(t *testing.T) {
	assert.Equal(t, filepath.Join("/", "proc", "meminfo"), NewSysFS("").Path("/proc/meminfo"))
}

func TestReadNote_Permission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	root := t.TempDir()
	writeFile(t, root, "/secret", "1")
	require.NoError(t, os.Chmod(filepath.Join(root, "secret"), 0o000))

	fs := NewSysFS(root)
	_, err := fs.ReadString(fs.Path("/secret"))
	assert.Equal(t, telemetry.NoteNoPerm, readNote(err))
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedUnique([]string{"c", "a", "b", "a", "c"}))
	assert.Nil(t, sortedUnique(nil))
}

func TestFillFrequencies(t *testing.T) {
	cpuinfo := "processor\t: 0\ncpu MHz\t\t: 1000.4\n\nprocessor\t: 1\ncpu MHz\t\t: 1100.0\n\nprocessor\t: 2\ncpu MHz\t\t: 1200.0\n\nprocessor\t: 3\ncpu MHz\t\t: 1299.6\n"

	tests := []struct {
		name  string
		files map[string]string
		in    []uint64
		want  []uint64
	}{
		{
			name: "current frequency beats reported maximum",
			files: map[string]string{
				"/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq": "4800000\n",
				"/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq": "800000\n",
			},
			in:   []uint64{4800},
			want: []uint64{800},
		},
		{
			name: "sysfs then cpuinfo",
			files: map[string]string{
				"/sys/devices/system/cpu/cpu1/cpufreq/scaling_cur_freq": "2800000\n",
				"/sys/devices/system/cpu/cpu2/cpufreq/scaling_cur_freq": "0\n",
				"/sys/devices/system/cpu/cpu2/cpufreq/cpuinfo_cur_freq": "1900000\n",
				"/proc/cpuinfo": cpuinfo,
			},
			in:   []uint64{3500, 3500, 3500, 0},
			want: []uint64{1000, 2800, 1900, 1300},
		},
		{
			name:  "reported value kept when nothing is readable",
			files: map[string]string{},
			in:    []uint64{3500, 0},
			want:  []uint64{3500, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for path, content := range tt.files {
				writeFile(t, root, path, content)
			}

			freqs := append([]uint64(nil), tt.in...)
			fillFrequencies(NewSysFS(root), freqs)
			assert.Equal(t, tt.want, freqs)
		})
	}
}

func TestWithThermalFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/sys/class/thermal/thermal_zone0/type", "acpitz\n")
	writeFile(t, root, "/sys/class/thermal/thermal_zone0/temp", "30000\n")
	writeFile(t, root, "/sys/class/thermal/thermal_zone1/type", "x86_pkg_temp\n")
	writeFile(t, root, "/sys/class/thermal/thermal_zone1/temp", "61000\n")
	fs := NewSysFS(root)

	t.Run("cpu sensor already present", func(t *testing.T) {
		in := []telemetry.TemperatureInfo{{Label: "coretemp_package_id_0", Temperature: 50}}
		assert.Equal(t, in, withThermalFallback(fs, in))
	})

	t.Run("appends package zone", func(t *testing.T) {
		in := []telemetry.TemperatureInfo{{Label: "nvme_composite", Temperature: 35}}
		out := withThermalFallback(fs, in)
		require.Len(t, out, 2)
		assert.Equal(t, "x86_pkg_temp (thermal)", out[1].Label)
		assert.InDelta(t, 61.0, out[1].Temperature, 0.001)
	})

	t.Run("no zones", func(t *testing.T) {
		assert.Empty(t, withThermalFallback(NewSysFS(t.TempDir()), nil))
	})
}

func TestReadMeminfo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/proc/meminfo", "MemTotal:       16318412 kB\nCached:          4194304 kB\n")

	m := readMeminfo(NewSysFS(root))
	require.NotNil(t, m)
	assert.Equal(t, uint64(4194304*1024), cachedMemory(m))

	assert.Nil(t, readMeminfo(NewSysFS(t.TempDir())))
	assert.Zero(t, cachedMemory(nil))
}
