package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/theme"
)

func TestNiceUpper(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 1},
		{0.5, 1},
		{1, 1},
		{1.5, 2},
		{2, 2},
		{3, 5},
		{7, 10},
		{10, 10},
		{11.5, 20},
		{1150, 2000},
		{4_800_000, 5_000_000},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NiceUpper(tt.in), 1e-9, "NiceUpper(%v)", tt.in)
	}
}

func TestNiceUpper_NeverBelowInput(t *testing.T) {
	for v := 1.0; v < 1e7; v *= 1.37 {
		assert.GreaterOrEqual(t, NiceUpper(v), v)
	}
}

func TestMovingAverage(t *testing.T) {
	data := []float64{0, 10, 20, 30, 40}

	assert.Equal(t, data, MovingAverage(data, 0))
	assert.Equal(t, []float64{5, 10, 20, 30, 35}, MovingAverage(data, 1))
	assert.Empty(t, MovingAverage(nil, 2))

	out := MovingAverage(data, 0)
	out[0] = 99
	assert.Equal(t, 0.0, data[0], "result must not alias input")
}

func TestBrailleGraph_Render(t *testing.T) {
	g := NewBrailleGraph([]float64{0, 50, 100}, theme.RGB{R: 255})
	lines := g.Render(10, 3)

	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 10, lipgloss.Width(l))
	}
}

func TestBrailleGraph_TooSmall(t *testing.T) {
	g := NewBrailleGraph([]float64{1, 2, 3}, theme.RGB{})
	assert.Equal(t, []string{""}, g.Render(1, 1))
	assert.Nil(t, g.Render(10, 0))
}

func TestBrailleCanvas_HighValuesAtTop(t *testing.T) {
	c := newBrailleCanvas(2, 2)
	c.plot([]float64{100, 100}, 0, 100, func(float64) theme.RGB { return theme.RGB{G: 255} }, false)

	lines := c.lines()
	assert.Contains(t, lines[0], "⠉", "top dot row lit across the cell")
	assert.Equal(t, "  ", lines[1])
}

func TestBrailleCanvas_EmptyCellsAreSpaces(t *testing.T) {
	c := newBrailleCanvas(4, 2)
	for _, l := range c.lines() {
		assert.Equal(t, strings.Repeat(" ", 4), l)
	}
}

func TestBrailleCanvas_SetIgnoresOutOfRange(t *testing.T) {
	c := newBrailleCanvas(1, 1)
	c.set(-1, 0, theme.RGB{})
	c.set(2, 0, theme.RGB{})
	c.set(0, 4, theme.RGB{})
	assert.Equal(t, uint8(0), c.bits[0][0])

	c.set(1, 3, theme.RGB{})
	assert.Equal(t, uint8(1<<7), c.bits[0][0])
}
