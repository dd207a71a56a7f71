package collector

import (
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// NvidiaLibrary is the part of the NVIDIA management library the adapter
// uses. NewNVML returns the real binding, or nil where it is unavailable.
type NvidiaLibrary interface {
	Init() error
	Shutdown() error
	DeviceCount() (int, error)
	Device(index int) (parsers.NvidiaDeviceStats, error)
}

// NvidiaGPU reads NVIDIA devices through NVML. A failed Init leaves the
// adapter permanently empty; errors after that only affect the current tick.
type NvidiaGPU struct {
	lib   NvidiaLibrary
	log   logger.Logger
	ready bool
}

// NewNvidiaGPU initializes lib. A nil lib or a failed Init yields an adapter
// that reports no devices.
func NewNvidiaGPU(lib NvidiaLibrary, log logger.Logger) *NvidiaGPU {
	n := &NvidiaGPU{lib: lib, log: log}
	if lib == nil {
		return n
	}
	if err := lib.Init(); err != nil {
		log.Debug("%v", errors.WrapWithCode(err, errors.ErrSensor, "NVML init failed", ""))
		return n
	}
	n.ready = true
	return n
}

// Read returns up to four devices. A device that fails to answer is skipped
// for this tick only.
func (n *NvidiaGPU) Read() []telemetry.GPU {
	if !n.ready {
		return nil
	}

	count, err := n.lib.DeviceCount()
	if err != nil {
		n.log.Debug("nvml device count: %v", err)
		return nil
	}

	var gpus []telemetry.GPU
	for i := 0; i < min(count, parsers.MaxNvidiaDevices); i++ {
		stats, err := n.lib.Device(i)
		if err != nil {
			n.log.Debug("nvml device %d: %v", i, err)
			continue
		}
		gpus = append(gpus, parsers.NvidiaGPU(stats))
	}
	return gpus
}

// Close shuts NVML down if Init succeeded.
func (n *NvidiaGPU) Close() {
	if !n.ready {
		return
	}
	n.ready = false
	if err := n.lib.Shutdown(); err != nil {
		n.log.Debug("nvml shutdown: %v", err)
	}
}
