// Package ui provides styled text helpers for rtop's non-interactive
// commands such as "rtop sensors".
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Available readings
//	ColorError     (red)    - Missing readings
//	ColorWarning   (yellow) - Notes explaining a missing reading
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Values and secondary text
//	ColorSecondary (blue)   - Section headings
//
// Use DisableColors() to switch to monochrome output (for --no-color or
// when stdout is not a terminal).
//
// # Symbols
//
//	SymbolSuccess  (checkmark)  - Reading available
//	SymbolFail     (X)          - Reading unavailable
//	SymbolPending  (circle)     - Reading still warming up
//
// # Report Lines
//
//	fmt.Println(ui.StatusLine(true, "memory", "15890 MiB total", 12))
//	// ✓ memory        15890 MiB total
package ui
