package collector

import (
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const (
	maxCmdTokens = 3
	maxExeLen    = 200
)

// cpuSmoother normalizes per-process CPU usage and smooths it with an EMA
// keyed by PID. Entries for PIDs that disappear are dropped each tick.
type cpuSmoother struct {
	ema map[int32]float32
}

func newCPUSmoother() *cpuSmoother {
	return &cpuSmoother{ema: make(map[int32]float32)}
}

// smoothingAlpha scales with the time since the last tick.
func smoothingAlpha(elapsedSec float64) float32 {
	return float32(clampF(elapsedSec/1.5, 0.35, 1.0))
}

// normalizeProcessCPU maps a raw reading onto 0..100. Some platforms report
// per-core sums (0..cores*100), so values above 100 are divided by cpuCount.
func normalizeProcessCPU(raw float64, cpuCount int) float32 {
	if cpuCount < 1 {
		cpuCount = 1
	}
	v := raw
	if v > 100 {
		v /= float64(cpuCount)
	}
	return float32(clampF(v, 0, 100))
}

// apply converts raw processes into snapshot rows.
func (s *cpuSmoother) apply(raw []RawProcess, cpuCount int, elapsedSec float64) []telemetry.Process {
	alpha := smoothingAlpha(elapsedSec)
	next := make(map[int32]float32, len(raw))
	out := make([]telemetry.Process, 0, len(raw))

	for _, rp := range raw {
		cpu := normalizeProcessCPU(rp.CPU, cpuCount)
		if prev, ok := s.ema[rp.PID]; ok {
			cpu = prev + (cpu-prev)*alpha
		}
		next[rp.PID] = cpu

		cmd := rp.Cmd
		if len(cmd) > maxCmdTokens {
			cmd = cmd[:maxCmdTokens]
		}
		var cmdCopy []string
		if len(cmd) > 0 {
			cmdCopy = append([]string(nil), cmd...)
		}

		exe := rp.Exe
		if len(exe) >= maxExeLen {
			exe = ""
		}

		out = append(out, telemetry.Process{
			PID:       rp.PID,
			ParentPID: rp.ParentPID,
			Name:      rp.Name,
			Memory:    rp.Memory,
			CPUUsage:  cpu,
			DiskUsage: rp.WriteBytes,
			Cmd:       cmdCopy,
			Exe:       exe,
			Status:    rp.Status,
		})
	}

	s.ema = next
	return out
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
