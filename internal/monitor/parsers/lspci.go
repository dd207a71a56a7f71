package parsers

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// maxLspciLines bounds how much lspci output is inspected.
const maxLspciLines = 64

// PCIGPU is a display controller found in lspci output.
type PCIGPU struct {
	Name   string
	Vendor telemetry.Vendor
}

// ParseLspci extracts display controllers from plain `lspci` output.
// Expected lines look like:
//
//	00:02.0 VGA compatible controller: Intel Corporation Device 7d55 (rev 08)
//
// Names are de-duplicated case-insensitively, keeping the first occurrence.
func ParseLspci(output string) []PCIGPU {
	var gpus []PCIGPU
	scanner := bufio.NewScanner(strings.NewReader(output))

	for lines := 0; scanner.Scan() && lines < maxLspciLines; lines++ {
		line := scanner.Text()
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "vga") &&
			!strings.Contains(lower, "3d controller") &&
			!strings.Contains(lower, "display controller") {
			continue
		}

		desc := strings.TrimSpace(line)
		if _, rest, ok := strings.Cut(desc, ":"); ok {
			desc = strings.TrimSpace(rest)
		}
		if _, rest, ok := strings.Cut(desc, " "); ok {
			desc = strings.TrimSpace(rest)
		}

		name := CleanGPUDescription(desc)
		dup := false
		for _, g := range gpus {
			if strings.EqualFold(g.Name, name) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		gpus = append(gpus, PCIGPU{Name: name, Vendor: InferVendor(name)})
	}

	return gpus
}

// CleanGPUDescription strips controller prefixes and trademark marks, and
// turns Intel "Device XXXX" codes into marketing names where known.
func CleanGPUDescription(desc string) string {
	cleaned := strings.TrimSpace(desc)
	for _, junk := range []string{
		"VGA compatible controller: ",
		"3D controller: ",
		"Display controller: ",
		"(R)",
		"(TM)",
	} {
		cleaned = strings.ReplaceAll(cleaned, junk, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	const intel = "Intel Corporation"
	pos := strings.Index(cleaned, intel)
	if pos < 0 {
		return cleaned
	}

	after := strings.TrimSpace(cleaned[pos+len(intel):])
	devPos := strings.Index(after, "Device ")
	if devPos < 0 {
		return "Intel " + after
	}

	if before := strings.TrimSpace(after[:devPos]); before != "" {
		return "Intel " + before
	}

	code := after[devPos+len("Device "):]
	end := strings.IndexFunc(code, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if end >= 0 {
		code = code[:end]
	}

	return "Intel " + intelDeviceName(code)
}

func intelDeviceName(code string) string {
	switch code {
	case "7d55":
		return "Arc Graphics"
	case "a74d", "a75d", "a76d":
		return "Arc A7xxM Graphics"
	default:
		return "GPU (Code: " + code + ")"
	}
}

// InferVendor guesses the GPU vendor from a cleaned device name.
func InferVendor(name string) telemetry.Vendor {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nvidia"):
		return telemetry.VendorNVIDIA
	case strings.Contains(lower, "intel"), strings.Contains(lower, "arc"):
		return telemetry.VendorIntel
	case strings.Contains(lower, "amd"), strings.Contains(lower, "ati"), strings.Contains(lower, "radeon"):
		return telemetry.VendorAMD
	default:
		return telemetry.VendorUnknown
	}
}
