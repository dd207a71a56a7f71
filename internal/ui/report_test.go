package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func withoutColors(t *testing.T) {
	t.Helper()
	DisableColors()
	t.Cleanup(EnableColors)
}

func TestStatusLine(t *testing.T) {
	withoutColors(t)

	tests := []struct {
		name   string
		ok     bool
		label  string
		detail string
		width  int
		want   string
	}{
		{"available", true, "memory", "512 MiB total", 10, "✓ memory      512 MiB total"},
		{"missing", false, "rapl", "No RAPL", 6, "✗ rapl    No RAPL"},
		{"no detail", true, "cpu", "", 0, "✓ cpu"},
		{"name wider than column", true, "processes", "3 running", 4, "✓ processes  3 running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLine(tt.ok, tt.label, tt.detail, tt.width))
		})
	}
}

func TestStatusLine_AlignsDetails(t *testing.T) {
	withoutColors(t)

	a := StatusLine(true, "cpu", "x", 12)
	b := StatusLine(false, "temperature", "x", 12)
	assert.Equal(t, lipgloss.Width(a), lipgloss.Width(b))
}

func TestHeading(t *testing.T) {
	withoutColors(t)

	var buf bytes.Buffer
	Heading(&buf, "Sensors")
	assert.Equal(t, "Sensors\n\n", buf.String())
}

func TestSummary(t *testing.T) {
	withoutColors(t)

	assert.Equal(t, "3/3 sensors available", Summary(3, 3))
	assert.Equal(t, "1/3 sensors available", Summary(1, 3))
	assert.Equal(t, "0/0 sensors available", Summary(0, 0))
}

func TestColorToggle(t *testing.T) {
	withoutColors(t)
	assert.False(t, ColorsEnabled())

	EnableColors()
	assert.True(t, ColorsEnabled())
}
