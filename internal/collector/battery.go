package collector

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const (
	powerSupplyDir  = "/sys/class/power_supply"
	chassisTypeFile = "/sys/class/dmi/id/chassis_type"
	batteryTimeout  = 2 * time.Second
)

// Portable, laptop and notebook SMBIOS chassis types.
var portableChassis = map[int]bool{8: true, 9: true, 10: true}

// Battery reads the primary battery for the host OS.
type Battery struct {
	fs     SysFS
	runner Runner
	goos   string
}

// NewBattery creates a battery adapter for goos.
func NewBattery(fs SysFS, runner Runner, goos string) *Battery {
	return &Battery{fs: fs, runner: runner, goos: goos}
}

// Read returns the battery state, or nil when the host has none.
func (b *Battery) Read(ctx context.Context) *telemetry.BatteryInfo {
	switch b.goos {
	case "darwin":
		out, err := runWithTimeout(ctx, b.runner, batteryTimeout, "pmset", "-g", "batt")
		if err != nil {
			return nil
		}
		return parsers.ParsePmsetBattery(out)
	case "windows":
		return b.readWindows(ctx)
	default:
		return b.readSysfs()
	}
}

func (b *Battery) readSysfs() *telemetry.BatteryInfo {
	base := b.fs.Path(powerSupplyDir)
	for _, name := range b.fs.Entries(base) {
		dir := filepath.Join(base, name)
		if !strings.HasPrefix(name, "BAT") || !b.fs.IsDir(dir) {
			continue
		}

		info := &telemetry.BatteryInfo{}
		if raw, err := b.fs.ReadString(filepath.Join(dir, "capacity")); err == nil {
			info.Level = parsers.ParseBatteryLevel(raw)
		}
		if status, err := b.fs.ReadString(filepath.Join(dir, "status")); err == nil {
			info.Status = status
		}
		return info
	}

	raw, err := b.fs.ReadString(b.fs.Path(chassisTypeFile))
	if err != nil {
		return nil
	}
	chassis, _ := strconv.Atoi(raw)
	if !portableChassis[chassis] {
		return &telemetry.BatteryInfo{Level: telemetry.Ptr(float32(0)), Status: telemetry.NoteNA}
	}
	return nil
}

func (b *Battery) readWindows(ctx context.Context) *telemetry.BatteryInfo {
	info := &telemetry.BatteryInfo{}

	if out, err := runWithTimeout(ctx, b.runner, batteryTimeout, "powershell", "-Command",
		"(Get-WmiObject -Class Win32_Battery).EstimatedChargeRemaining"); err == nil {
		info.Level = parsers.ParseBatteryLevel(out)
	}

	out, err := runWithTimeout(ctx, b.runner, batteryTimeout, "powershell", "-Command",
		"(Get-WmiObject -Class Win32_Battery).BatteryStatus")
	if err == nil {
		info.Status = parsers.ParseWindowsBatteryStatus(out)
	}

	if info.Level == nil && info.Status == "" {
		return nil
	}
	return info
}
