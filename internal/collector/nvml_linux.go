//go:build linux && cgo

package collector

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
)

type nvmlLibrary struct{}

// NewNVML returns the go-nvml binding. libnvidia-ml is loaded lazily by
// Init, so hosts without the driver only see an Init error.
func NewNVML() NvidiaLibrary {
	return nvmlLibrary{}
}

func (nvmlLibrary) Init() error {
	return nvmlError(nvml.Init())
}

func (nvmlLibrary) Shutdown() error {
	return nvmlError(nvml.Shutdown())
}

func (nvmlLibrary) DeviceCount() (int, error) {
	count, ret := nvml.DeviceGetCount()
	return count, nvmlError(ret)
}

func (nvmlLibrary) Device(index int) (parsers.NvidiaDeviceStats, error) {
	var s parsers.NvidiaDeviceStats

	dev, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return s, nvmlError(ret)
	}

	if name, ret := dev.GetName(); ret == nvml.SUCCESS {
		s.Name = name
	}
	if temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		s.TemperatureC = &temp
	}
	if util, ret := dev.GetUtilizationRates(); ret == nvml.SUCCESS {
		gpu := util.Gpu
		s.UtilizationPct = &gpu
	}
	if mem, ret := dev.GetMemoryInfo(); ret == nvml.SUCCESS {
		used, total := mem.Used, mem.Total
		s.MemoryUsed, s.MemoryTotal = &used, &total
	}
	if mw, ret := dev.GetPowerUsage(); ret == nvml.SUCCESS {
		s.PowerMilliwatts = &mw
	}
	return s, nil
}

func nvmlError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return fmt.Errorf("nvml: %s", nvml.ErrorString(ret))
}
