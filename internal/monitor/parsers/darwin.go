package parsers

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// ParsePmsetBattery parses battery state from macOS pmset output.
// Expected input is from: pmset -g batt
//
//	Now drawing from 'Battery Power'
//	 -InternalBattery-0 (id=1234567)	85%; discharging; 4:12 remaining present: true
//
// Returns nil when no InternalBattery line is present.
func ParsePmsetBattery(output string) *telemetry.BatteryInfo {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "InternalBattery") {
			continue
		}

		info := &telemetry.BatteryInfo{}

		info.Level = pmsetPercentField(line)

		info.Status = pmsetStateField(line)
		return info
	}
	return nil
}

func pmsetPercentField(line string) *float32 {
	for _, f := range strings.Fields(line) {
		f = strings.TrimSuffix(f, ";")
		if !strings.HasSuffix(f, "%") {
			continue
		}
		if l, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 32); err == nil {
			return telemetry.Ptr(float32(l))
		}
	}
	return nil
}

// pmsetStateField returns the segment after the percentage, e.g. "discharging".
func pmsetStateField(line string) string {
	parts := strings.Split(line, ";")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ParseWindowsBatteryStatus maps a Win32_Battery BatteryStatus code to text.
func ParseWindowsBatteryStatus(code string) string {
	switch strings.TrimSpace(code) {
	case "1":
		return "Discharging"
	case "2":
		return "AC attached"
	case "3":
		return "Fully charged"
	case "4":
		return "Low"
	case "5":
		return "Critical"
	case "6":
		return "Charging"
	default:
		return "Unknown"
	}
}

// ParseBatteryLevel parses a charge percentage such as "87" or "87.5".
func ParseBatteryLevel(raw string) *float32 {
	l, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return nil
	}
	return telemetry.Ptr(float32(l))
}
