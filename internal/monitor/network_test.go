package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

func networkSnapshot() telemetry.Snapshot {
	s := telemetry.NewSnapshot()
	s.Networks = []telemetry.Network{
		{Name: "eth0", TotalReceived: 1000, TotalTransmitted: 100, ReceivedPerSec: 10, TransmittedPerSec: 1},
		{Name: "wlan0", TotalReceived: 2000, TotalTransmitted: 200, ReceivedPerSec: 20, TransmittedPerSec: 2},
	}
	return s
}

func TestSummarizeNetwork(t *testing.T) {
	s := networkSnapshot()
	assert.Equal(t, NetworkTotals{RXRate: 30, TXRate: 3, RXTotal: 3000, TXTotal: 300}, SummarizeNetwork(s))

	wlan := "wlan0"
	s.SelectedInterface = &wlan
	assert.Equal(t, NetworkTotals{RXRate: 20, TXRate: 2, RXTotal: 2000, TXTotal: 200}, SummarizeNetwork(s))

	gone := "tun0"
	s.SelectedInterface = &gone
	assert.Equal(t, NetworkTotals{}, SummarizeNetwork(s))
}

func TestNextInterface_Cycle(t *testing.T) {
	names := []string{"eth0", "lo", "wlan0"}

	var cur *string
	var seen []string
	for i := 0; i < len(names)+1; i++ {
		cur = NextInterface(names, cur)
		if cur == nil {
			seen = append(seen, "all")
		} else {
			seen = append(seen, *cur)
		}
	}

	assert.Equal(t, []string{"eth0", "lo", "wlan0", "all"}, seen)
	assert.Nil(t, cur, "k+1 presses return to all")
}

func TestNextInterface_Edges(t *testing.T) {
	assert.Nil(t, NextInterface(nil, nil))

	gone := "docker0"
	next := NextInterface([]string{"eth0"}, &gone)
	require.NotNil(t, next)
	assert.Equal(t, "eth0", *next)
}

func TestNetworkSeries(t *testing.T) {
	t.Run("short history is not smoothed", func(t *testing.T) {
		rx, tx, upper := networkSeries([]telemetry.RatePair{{RX: 100, TX: 0}, {RX: 0, TX: 50}})
		assert.Equal(t, []float64{100, 0}, rx)
		assert.Equal(t, []float64{0, 50}, tx)
		assert.Equal(t, 200.0, upper, "100 * 1.15 rounds up to 200")
	})

	t.Run("idle link has a floor", func(t *testing.T) {
		_, _, upper := networkSeries([]telemetry.RatePair{{}, {}, {}})
		assert.Equal(t, 2.0, upper)
	})

	t.Run("longer history is smoothed", func(t *testing.T) {
		rx, _, _ := networkSeries([]telemetry.RatePair{{RX: 0}, {RX: 0}, {RX: 500}, {RX: 0}, {RX: 0}})
		assert.Equal(t, []float64{500.0 / 3, 125, 100, 125, 500.0 / 3}, rx)
	})
}

func TestRenderNetworkPanel(t *testing.T) {
	s := networkSnapshot()
	for _, p := range []telemetry.RatePair{{RX: 1024, TX: 10}, {RX: 2048, TX: 20}, {RX: 4096, TX: 30}} {
		s.NetworkHistory.Push(p)
	}

	out := renderNetworkPanel(theme.New(theme.Default), s, 50, 12)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 12)
	for _, l := range lines {
		assert.Equal(t, 50, lipgloss.Width(l))
	}
	assert.Contains(t, ansi.Strip(out), "Interface: All")
	assert.Contains(t, out, "30.0B/s")

	s.ShowGraphs = false
	assert.Contains(t, renderNetworkPanel(theme.New(theme.Default), s, 50, 12), "Graphs disabled")
}
