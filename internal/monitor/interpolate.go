package monitor

import (
	"math"
	"time"

	"github.com/rileyhilliard/rtop/internal/telemetry"
	"github.com/rileyhilliard/rtop/internal/theme"
)

const (
	// interpolationRate advances the blend factor per second, so a new
	// sample takes about 250ms to settle.
	interpolationRate = 4.0

	// maxInterpolatedGPUs bounds the per-GPU blending.
	maxInterpolatedGPUs = 8
)

// Update interval bounds for the speed keys, in milliseconds.
const (
	minUpdateInterval  = 250
	maxUpdateInterval  = 10000
	updateIntervalStep = 250
)

// UIState holds the user's choices that survive across samples. It is
// copied onto every snapshot before display.
type UIState struct {
	ProcessSort       telemetry.ProcessSort
	SelectedInterface *string
	ColorScheme       theme.Scheme
	AutoUpdate        bool
	UpdateInterval    int
	ShowGraphs        bool
	ChartType         telemetry.ChartType
}

// DefaultUIState mirrors the defaults of telemetry.NewSnapshot.
func DefaultUIState() UIState {
	s := telemetry.NewSnapshot()
	return UIState{
		ProcessSort:    s.ProcessSort,
		ColorScheme:    s.ColorScheme,
		AutoUpdate:     s.AutoUpdate,
		UpdateInterval: s.UpdateInterval,
		ShowGraphs:     s.ShowGraphs,
		ChartType:      s.ChartType,
	}
}

// Overlay copies the UI state onto s. A selected interface that s does not
// report is cleared.
func (u UIState) Overlay(s *telemetry.Snapshot) {
	s.ProcessSort = u.ProcessSort
	s.ColorScheme = u.ColorScheme
	s.AutoUpdate = u.AutoUpdate
	s.UpdateInterval = u.UpdateInterval
	s.ShowGraphs = u.ShowGraphs
	s.ChartType = u.ChartType

	s.SelectedInterface = nil
	if u.SelectedInterface != nil && s.HasInterface(*u.SelectedInterface) {
		name := *u.SelectedInterface
		s.SelectedInterface = &name
	}
}

// Interpolator blends the last displayed snapshot toward the newest one so
// scalar readouts glide between samples.
type Interpolator struct {
	last    telemetry.Snapshot
	target  telemetry.Snapshot
	current telemetry.Snapshot
	factor  float64
}

// NewInterpolator starts settled on initial.
func NewInterpolator(initial telemetry.Snapshot) *Interpolator {
	return &Interpolator{
		last:    initial,
		target:  initial,
		current: initial,
		factor:  1,
	}
}

// Push makes s the new target. Blending restarts from whatever is on
// screen right now.
func (ip *Interpolator) Push(s telemetry.Snapshot) {
	ip.last = ip.current
	ip.target = s
	ip.factor = 0
}

// Advance moves the blend forward by dt and returns the frame to display.
func (ip *Interpolator) Advance(dt time.Duration) telemetry.Snapshot {
	if ip.factor < 1 {
		ip.factor = math.Min(1, ip.factor+interpolationRate*dt.Seconds())
	}
	ip.current = blend(ip.last, ip.target, ip.factor)
	if ip.factor >= 1 {
		ip.last = ip.target
	}
	return ip.current
}

// Overlay applies u to the last, target and current snapshots.
func (ip *Interpolator) Overlay(u UIState) {
	u.Overlay(&ip.last)
	u.Overlay(&ip.target)
	u.Overlay(&ip.current)
}

// Current returns the most recently produced frame.
func (ip *Interpolator) Current() telemetry.Snapshot {
	return ip.current
}

// Target returns the newest snapshot.
func (ip *Interpolator) Target() telemetry.Snapshot {
	return ip.target
}

// Factor returns the blend position in [0,1].
func (ip *Interpolator) Factor() float64 {
	return ip.factor
}

// blend builds a frame from target, with the animated scalars taken between
// last and target. Lists and history rings always come from target. The GPU
// slice is copied because its entries are rewritten here; everything else
// is shared and must be treated as read-only.
func blend(last, target telemetry.Snapshot, f float64) telemetry.Snapshot {
	out := target
	out.GlobalCPUUsage = lerpF32(last.GlobalCPUUsage, target.GlobalCPUUsage, f)
	out.UsedMemory = lerpU64(last.UsedMemory, target.UsedMemory, f)
	out.UsedSwap = lerpU64(last.UsedSwap, target.UsedSwap, f)

	if len(target.GPUs) == 0 {
		return out
	}
	out.GPUs = make([]telemetry.GPU, len(target.GPUs))
	copy(out.GPUs, target.GPUs)

	n := min(len(last.GPUs), len(target.GPUs), maxInterpolatedGPUs)
	for i := 0; i < n; i++ {
		from, to := last.GPUs[i], target.GPUs[i]
		g := &out.GPUs[i]
		if from.Usage != nil && to.Usage != nil {
			g.Usage = telemetry.Ptr(lerpF32(*from.Usage, *to.Usage, f))
		}
		if from.Temp != nil && to.Temp != nil {
			g.Temp = telemetry.Ptr(lerpF32(*from.Temp, *to.Temp, f))
		}
		if from.MemoryUsed != nil && to.MemoryUsed != nil {
			g.MemoryUsed = telemetry.Ptr(lerpU64(*from.MemoryUsed, *to.MemoryUsed, f))
		}
	}
	return out
}

func lerpF32(a, b float32, f float64) float32 {
	f = clampFloat(f, 0, 1)
	return a + (b-a)*float32(f)
}

func lerpU64(a, b uint64, f float64) uint64 {
	f = clampFloat(f, 0, 1)
	v := float64(a) + (float64(b)-float64(a))*f
	return uint64(math.Round(v))
}
