package parsers

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseMeminfo parses /proc/meminfo into a map of key -> bytes.
// Values with a kB unit are converted to bytes; unitless values are kept.
func ParseMeminfo(procMeminfo string) (map[string]uint64, error) {
	values := make(map[string]uint64)
	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSuffix(parts[0], ":")
		val, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}

		if len(parts) >= 3 && (parts[2] == "kB" || parts[2] == "KB") {
			val *= 1024
		}
		values[key] = val
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no fields found in /proc/meminfo")
	}

	return values, nil
}

// ParseCPUInfoMHz extracts per-processor frequencies from /proc/cpuinfo.
// The result has length cpuCount; processors without a "cpu MHz" line are 0.
func ParseCPUInfoMHz(procCPUInfo string, cpuCount int) []uint64 {
	out := make([]uint64, cpuCount)
	scanner := bufio.NewScanner(strings.NewReader(procCPUInfo))

	current := -1
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "processor":
			idx, err := strconv.Atoi(value)
			if err != nil {
				current = -1
				continue
			}
			current = idx
		case "cpu MHz":
			mhz, err := strconv.ParseFloat(value, 32)
			if err != nil || current < 0 || current >= cpuCount {
				continue
			}
			out[current] = uint64(math.Max(0, math.Round(mhz)))
		}
	}

	return out
}

// ParseCPUFreq parses a cpufreq sysfs value. Values of 100000 and above are
// kHz and are converted to MHz; zero is treated as missing.
func ParseCPUFreq(raw string) (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	if v >= 100_000 {
		return v / 1000, true
	}
	return v, true
}

// ParseI915GemObjects returns the largest integer that directly precedes a
// "bytes" token in the i915_gem_objects debugfs file.
func ParseI915GemObjects(content string) (uint64, bool) {
	var best uint64
	found := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(strings.ToLower(line), "bytes") {
			continue
		}

		tokens := strings.Fields(line)
		for i := 1; i < len(tokens); i++ {
			if !strings.Contains(strings.ToLower(tokens[i]), "bytes") {
				continue
			}
			n, err := strconv.ParseUint(strings.ReplaceAll(tokens[i-1], ",", ""), 10, 64)
			if err != nil {
				continue
			}
			if !found || n > best {
				best = n
				found = true
			}
		}
	}

	return best, found
}

// ParseMilliCelsius parses a hwmon or thermal-zone temperature. Values above
// 1000 are millidegrees.
func ParseMilliCelsius(raw string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse temperature %q: %w", strings.TrimSpace(raw), err)
	}
	if v > 1000 {
		v /= 1000
	}
	return float32(v), nil
}

// FormatUptime renders seconds as "{d}d {h}h {m}m".
func FormatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
}

// FormatLoadAvg renders the 1, 5 and 15 minute load averages.
func FormatLoadAvg(load1, load5, load15 float64) string {
	return fmt.Sprintf("%.2f %.2f %.2f", load1, load5, load15)
}
