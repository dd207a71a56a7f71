package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/theme"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// MaxSmoothing caps the moving-average radius of a BrailleGraph.
const MaxSmoothing = 8

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// brailleCanvas is a grid of braille cells addressed in dot coordinates.
// x grows to the right and y grows downward. Each cell keeps the color of
// the last dot drawn into it.
type brailleCanvas struct {
	width, height int
	bits          [][]uint8
	colors        [][]theme.RGB
}

func newBrailleCanvas(width, height int) *brailleCanvas {
	c := &brailleCanvas{width: width, height: height}
	c.bits = make([][]uint8, height)
	c.colors = make([][]theme.RGB, height)
	for i := range c.bits {
		c.bits[i] = make([]uint8, width)
		c.colors[i] = make([]theme.RGB, width)
	}
	return c
}

// dots returns the canvas resolution.
func (c *brailleCanvas) dots() (int, int) {
	return c.width * 2, c.height * 4
}

// set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *brailleCanvas) set(x, y int, color theme.RGB) {
	w, h := c.dots()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	row, col := y/4, x/2
	c.bits[row][col] |= 1 << brailleDots[y%4][x%2]
	c.colors[row][col] = color
}

// point lights the dot nearest to (x, y).
func (c *brailleCanvas) point(x, y float64, color theme.RGB) {
	c.set(int(math.Round(x)), int(math.Round(y)), color)
}

// line draws a straight segment with twice as many steps as the longest axis.
func (c *brailleCanvas) line(x0, y0, x1, y1 float64, color theme.RGB) {
	dx, dy := x1-x0, y1-y0
	steps := max(1, int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))*2)))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.point(x0+dx*t, y0+dy*t, color)
	}
}

// lines renders the canvas, one string per cell row.
func (c *brailleCanvas) lines() []string {
	out := make([]string, c.height)
	for r := 0; r < c.height; r++ {
		var b strings.Builder
		for col := 0; col < c.width; col++ {
			bits := c.bits[r][col]
			if bits == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(c.colors[r][col].Lipgloss()).
				Render(string(brailleBase + rune(bits))))
		}
		out[r] = b.String()
	}
	return out
}

// BrailleGraph plots a series as a smoothed polyline.
type BrailleGraph struct {
	Data      []float64
	Min, Max  float64
	Smoothing int // moving-average radius, capped at MaxSmoothing
	Baseline  bool
	Gradient  bool
	Fill      bool
	Color     theme.RGB
}

// NewBrailleGraph returns a graph over [0,100] with a baseline.
func NewBrailleGraph(data []float64, color theme.RGB) BrailleGraph {
	return BrailleGraph{
		Data:     data,
		Max:      100,
		Baseline: true,
		Color:    color,
	}
}

// Render draws the graph into width×height cells. Areas smaller than 2×2
// render as blank lines.
func (g BrailleGraph) Render(width, height int) []string {
	if width < 2 || height < 2 {
		return blankLines(height)
	}
	c := newBrailleCanvas(width, height)
	g.draw(c)
	return c.lines()
}

func (g BrailleGraph) draw(c *brailleCanvas) {
	w, h := c.dots()

	if g.Baseline && !g.Fill {
		base := g.Color.Scale(baselineDim)
		for x := 0; x < w; x++ {
			c.set(x, h-1, base)
		}
	}

	if len(g.Data) == 0 || g.Max == g.Min {
		return
	}
	values := MovingAverage(g.Data, min(g.Smoothing, MaxSmoothing))
	colorAt := func(float64) theme.RGB { return g.Color }
	if g.Gradient {
		colorAt = GradientColor
	}
	c.plot(values, g.Min, g.Max, colorAt, g.Fill)
}

// plot draws values as a polyline scaled onto [lo,hi], with high values at
// the top. colorAt receives the normalized height of each point.
func (c *brailleCanvas) plot(values []float64, lo, hi float64, colorAt func(float64) theme.RGB, fill bool) {
	w, h := c.dots()
	bottom := float64(h - 1)
	span := hi - lo
	if len(values) == 0 || span == 0 {
		return
	}

	var prevX, prevY float64
	for i, v := range values {
		x := 0.0
		if len(values) > 1 {
			x = float64(i) * float64(w-1) / float64(len(values)-1)
		}
		norm := clampFloat((v-lo)/span, 0, 1)
		y := bottom * (1 - norm)

		color := colorAt(norm)
		if i == 0 {
			c.point(x, y, color)
		} else {
			c.line(prevX, prevY, x, y, color)
		}
		if fill {
			dim := color.Scale(fillDim)
			for yy := int(math.Ceil(y)); yy < h; yy++ {
				c.set(int(math.Round(x)), yy, dim)
			}
		}
		prevX, prevY = x, y
	}
}

// MovingAverage smooths data with a symmetric window of the given radius.
// The window is truncated at the edges.
func MovingAverage(data []float64, radius int) []float64 {
	out := make([]float64, len(data))
	if radius <= 0 {
		copy(out, data)
		return out
	}
	for i := range data {
		start := max(0, i-radius)
		end := min(len(data), i+radius+1)
		sum := 0.0
		for _, v := range data[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// NiceUpper rounds v up to the next value of the form {1,2,5}·10^k.
// Values at or below 1 return 1.
func NiceUpper(v float64) float64 {
	if v <= 1 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	// Log10 can land just below an exact power of ten.
	for v/magnitude >= 10 {
		magnitude *= 10
	}
	normalized := v / magnitude
	var step float64
	switch {
	case normalized <= 1:
		step = 1
	case normalized <= 2:
		step = 2
	case normalized <= 5:
		step = 5
	default:
		step = 10
	}
	return step * magnitude
}

func blankLines(n int) []string {
	if n <= 0 {
		return nil
	}
	return make([]string, n)
}
