// Package theme provides the dashboard color schemes.
//
// Views never hard-code palette colors. They ask a Theme for a logical
// color (White, Cyan, DarkGray, ...) and the active scheme maps it to a
// 24-bit value. Legacy schemes are folded into the canonical set by
// Canonicalize so older config files keep working.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Scheme identifies a color palette.
type Scheme int

const (
	Default Scheme = iota
	Dark
	Light
	Monochrome
	Nord
	SolarizedDark
	SolarizedLight
	Gruvbox
	Rtop
)

var schemeNames = map[Scheme]string{
	Default:        "Default",
	Dark:           "Dark",
	Light:          "Light",
	Monochrome:     "Monochrome",
	Nord:           "Nord",
	SolarizedDark:  "SolarizedDark",
	SolarizedLight: "SolarizedLight",
	Gruvbox:        "Gruvbox",
	Rtop:           "Rtop",
}

// cycleOrder is the order SwitchTheme walks through.
var cycleOrder = []Scheme{Default, Dark, Nord, SolarizedDark, Gruvbox, Rtop}

// String returns the name used in config files.
func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme parses a config name case-insensitively.
func ParseScheme(name string) (Scheme, bool) {
	name = strings.TrimSpace(name)
	for s, n := range schemeNames {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	return Default, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, ok := ParseScheme(string(text))
	if !ok {
		return fmt.Errorf("unknown color scheme %q", string(text))
	}
	*s = parsed
	return nil
}

// Canonicalize folds legacy schemes into the supported set.
func Canonicalize(s Scheme) Scheme {
	switch s {
	case Light:
		return Default
	case Monochrome:
		return Dark
	case SolarizedLight:
		return SolarizedDark
	default:
		return s
	}
}

// Cycle returns the canonical schemes in switching order.
func Cycle() []Scheme {
	out := make([]Scheme, len(cycleOrder))
	copy(out, cycleOrder)
	return out
}

// Next returns the scheme after s in the cycle.
// Unknown schemes restart at the head of the cycle.
func (s Scheme) Next() Scheme {
	current := Canonicalize(s)
	for i, candidate := range cycleOrder {
		if candidate == current {
			return cycleOrder[(i+1)%len(cycleOrder)]
		}
	}
	return cycleOrder[0]
}

// DisplayName is the label shown in the status bar.
func (s Scheme) DisplayName() string {
	switch Canonicalize(s) {
	case Default:
		return "Graphite"
	case Dark:
		return "Midnight"
	case Nord:
		return "Nord"
	case SolarizedDark:
		return "Solarized"
	case Gruvbox:
		return "Gruvbox"
	case Rtop:
		return "Neon"
	default:
		return s.String()
	}
}

// Theme resolves logical colors for one scheme.
type Theme struct {
	Scheme Scheme
}

// New returns a Theme for the canonical form of s.
func New(s Scheme) Theme {
	return Theme{Scheme: Canonicalize(s)}
}

// RGB returns the palette triple for c. ok is false when the palette has no
// entry, in which case the caller should pass c through unchanged.
func (t Theme) RGB(c Color) (RGB, bool) {
	palette, ok := palettes[Canonicalize(t.Scheme)]
	if !ok {
		return RGB{}, false
	}
	rgb, ok := palette[c]
	return rgb, ok
}

// Color maps a logical color to a lipgloss color.
func (t Theme) Color(c Color) lipgloss.Color {
	if rgb, ok := t.RGB(c); ok {
		return rgb.Lipgloss()
	}
	return c.ANSI()
}

// Text is the default style for body text.
func (t Theme) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Color(White))
}

// Muted is used for absent values and secondary labels.
func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Color(Gray))
}
