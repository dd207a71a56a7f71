package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Reading available
	SymbolFail    = "✗" // Reading unavailable
	SymbolPending = "○" // Reading still warming up
	SymbolBullet  = "•"
)
