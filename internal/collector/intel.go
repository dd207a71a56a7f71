package collector

import (
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
	"github.com/rileyhilliard/rtop/internal/telemetry"
)

const (
	drmDir         = "/sys/class/drm"
	debugfsDRMDir  = "/sys/kernel/debug/dri"
	intelVendorID  = "0x8086"
	usageSmoothing = 0.6
)

// IntelSample is one tick of Intel iGPU telemetry.
type IntelSample struct {
	Usage    telemetry.Reading[float32]
	Temp     telemetry.Reading[float32]
	MemUsed  telemetry.Reading[uint64]
	MemTotal *uint64
	Power    telemetry.Reading[float32]
}

type rc6Sample struct {
	ms uint64
	at time.Time
}

// IntelGPU reads i915/xe sysfs counters for the first Intel DRM card.
// Paths are discovered lazily and cached.
type IntelGPU struct {
	fs SysFS

	card        string
	rc6Paths    []string
	curPaths    []string
	maxPaths    []string
	minPaths    []string
	busyPath    string
	tempPath    string
	debugfsPath string

	prevRC6   map[string]rc6Sample
	prevUsage float32
	hasPrev   bool

	power *GPUPower
}

// NewIntelGPU creates an Intel adapter over fs.
func NewIntelGPU(fs SysFS) *IntelGPU {
	return &IntelGPU{
		fs:      fs,
		prevRC6: make(map[string]rc6Sample),
		power:   NewGPUPower(fs),
	}
}

// Present reports whether an Intel DRM card was found.
func (g *IntelGPU) Present() bool {
	g.discover()
	return g.card != ""
}

// Sample reads every Intel metric. meminfo is the parsed /proc/meminfo of
// this tick (nil when unavailable).
func (g *IntelGPU) Sample(now time.Time, temps []telemetry.TemperatureInfo, meminfo map[string]uint64, systemTotal uint64) IntelSample {
	g.discover()

	var s IntelSample
	s.Usage = g.usage(now)
	s.Temp = g.temperature(temps)
	s.MemUsed = g.memory(meminfo)
	s.MemTotal = sharedMemoryTotal(s.MemUsed.Ptr(), meminfo, systemTotal)
	s.Power = g.power.Read(now)
	return s
}

func (g *IntelGPU) discover() {
	if g.card == "" {
		g.card = g.detectCard()
		if g.card == "" {
			return
		}
	}

	if len(g.rc6Paths) == 0 {
		g.rc6Paths = g.gtPaths([2]string{"power", "rc6_residency_ms"}, [2]string{"gt", "rc6_residency_ms"})
		// power/rc6_residency_ms duplicates gt0 on multi-GT parts.
		var gtOnly []string
		for _, p := range g.rc6Paths {
			if strings.Contains(p, "/gt/") {
				gtOnly = append(gtOnly, p)
			}
		}
		if len(gtOnly) > 0 {
			g.rc6Paths = gtOnly
		}
	}
	if len(g.curPaths) == 0 {
		g.curPaths = g.gtPaths([2]string{"card", "gt_cur_freq_mhz"}, [2]string{"gt", "rps_cur_freq_mhz"})
	}
	if len(g.maxPaths) == 0 {
		g.maxPaths = g.gtPaths([2]string{"card", "gt_max_freq_mhz"}, [2]string{"gt", "rps_max_freq_mhz"})
	}
	if len(g.minPaths) == 0 {
		g.minPaths = g.gtPaths([2]string{"card", "gt_min_freq_mhz"}, [2]string{"gt", "rps_min_freq_mhz"})
	}
	if g.busyPath == "" {
		for _, p := range []string{
			filepath.Join(g.card, "device", "gpu_busy_percent"),
			filepath.Join(g.card, "gpu_busy_percent"),
			filepath.Join(g.card, "gt", "gt0", "busy_percent"),
		} {
			if g.fs.Exists(p) {
				g.busyPath = p
				break
			}
		}
	}
	if g.tempPath == "" {
		hwmon := filepath.Join(g.card, "device", "hwmon")
		for _, name := range g.fs.Entries(hwmon) {
			p := filepath.Join(hwmon, name, "temp1_input")
			if g.fs.Exists(p) {
				g.tempPath = p
				break
			}
		}
	}
	if g.debugfsPath == "" {
		idx := strings.TrimPrefix(filepath.Base(g.card), "card")
		p := filepath.Join(g.fs.Path(debugfsDRMDir), idx, "i915_gem_objects")
		if g.fs.Exists(p) {
			g.debugfsPath = p
		}
	}
}

func (g *IntelGPU) detectCard() string {
	base := g.fs.Path(drmDir)
	for _, name := range g.fs.Entries(base) {
		if !strings.HasPrefix(name, "card") || strings.Contains(name, "-") {
			continue
		}
		card := filepath.Join(base, name)
		vendor, err := g.fs.ReadString(filepath.Join(card, "device", "vendor"))
		if err != nil {
			continue
		}
		if strings.EqualFold(vendor, intelVendorID) {
			return card
		}
	}
	return ""
}

// gtPaths collects existing files for each (scope, file) mode. Scope "card"
// is the card dir, "power" its power subdir, "gt" every gt/gt* subdir.
func (g *IntelGPU) gtPaths(modes ...[2]string) []string {
	var paths []string
	for _, m := range modes {
		scope, file := m[0], m[1]
		switch scope {
		case "card":
			if p := filepath.Join(g.card, file); g.fs.Exists(p) {
				paths = append(paths, p)
			}
		case "power":
			if p := filepath.Join(g.card, "power", file); g.fs.Exists(p) {
				paths = append(paths, p)
			}
		case "gt":
			gtDir := filepath.Join(g.card, "gt")
			for _, name := range g.fs.Entries(gtDir) {
				if !strings.HasPrefix(name, "gt") {
					continue
				}
				if p := filepath.Join(gtDir, name, file); g.fs.Exists(p) {
					paths = append(paths, p)
				}
			}
		}
	}
	return sortedUnique(paths)
}

// gtKey returns the "gtN" segment following /gt/ in path, or "card".
func gtKey(path string) string {
	idx := strings.Index(path, "/gt/")
	if idx < 0 {
		return "card"
	}
	seg, _, _ := strings.Cut(path[idx+len("/gt/"):], "/")
	if strings.HasPrefix(seg, "gt") {
		return seg
	}
	return "card"
}

func (g *IntelGPU) usage(now time.Time) telemetry.Reading[float32] {
	if g.busyPath != "" {
		if v, err := g.fs.ReadFloat(g.busyPath); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return telemetry.Some(g.smooth(float32(clampF(v, 0, 100))), telemetry.NoteBusy)
		}
	}

	freqByGT := g.freqUsageByGT()
	freqEstimate, hasFreq := median(mapValues(freqByGT))

	rc6ByGT, rc6Ready := g.rc6BusyByGT(now)
	if len(rc6ByGT) > 0 {
		if usage, note, ok := combineRC6(rc6ByGT, freqByGT, freqEstimate, hasFreq); ok {
			return telemetry.Some(g.smooth(usage), note)
		}
	}

	if !rc6Ready && len(g.rc6Paths) > 0 {
		g.hasPrev = false
		return telemetry.Absent[float32](telemetry.NoteWarmup)
	}

	if hasFreq {
		return telemetry.Some(g.smooth(float32(clampF(float64(freqEstimate), 0, 100))), telemetry.NoteFreq)
	}

	g.hasPrev = false
	return telemetry.Absent[float32](telemetry.NoteNoData)
}

// combineRC6 picks a usage value from per-GT RC6 busy samples, using the
// per-GT frequency estimate to discard contradictory GTs.
func combineRC6(rc6ByGT, freqByGT map[string]float32, freqEstimate float32, hasFreq bool) (float32, string, bool) {
	filtered := false
	var samples []float32
	for _, gt := range sortedKeys(rc6ByGT) {
		busy := rc6ByGT[gt]
		if math.IsNaN(float64(busy)) || math.IsInf(float64(busy), 0) {
			continue
		}
		if freq, ok := freqByGT[gt]; ok && busy > 80 && freq < 60 {
			filtered = true
			continue
		}
		samples = append(samples, busy)
	}
	if len(samples) == 0 {
		samples = mapValues(rc6ByGT)
	}

	usage, ok := median(samples)
	if !ok {
		return 0, "", false
	}

	note := telemetry.NoteRC6
	if filtered {
		note = telemetry.NoteRC6f
	}

	if len(samples) >= 2 {
		lo, hi := minMax(samples)
		if hi-lo > 60 {
			usage = lo
			note = telemetry.NoteRC6d
		}
	}

	if hasFreq && !filtered && absF(usage-freqEstimate) > 45 {
		usage = float32(clampF(float64(usage*0.4+freqEstimate*0.6), 0, 100))
		note = telemetry.NoteHybrid
	}

	return usage, note, true
}

func (g *IntelGPU) smooth(u float32) float32 {
	if g.hasPrev {
		u = g.prevUsage + (u-g.prevUsage)*usageSmoothing
	}
	g.prevUsage = u
	g.hasPrev = true
	return u
}

// rc6BusyByGT converts RC6 residency deltas into busy percentages averaged
// per GT. ready is true when at least one path had a previous sample.
func (g *IntelGPU) rc6BusyByGT(now time.Time) (map[string]float32, bool) {
	type acc struct {
		sum   float32
		count int
	}
	byGT := make(map[string]*acc)
	ready := false

	for _, path := range g.rc6Paths {
		ms, err := g.fs.ReadUint(path)
		if err != nil {
			continue
		}

		if prev, ok := g.prevRC6[path]; ok {
			elapsed := now.Sub(prev.at).Milliseconds()
			if elapsed > 0 {
				var delta uint64
				if ms > prev.ms {
					delta = ms - prev.ms
				}
				idle := clampF(float64(delta)/float64(elapsed), 0, 1)
				busy := float32(clampF((1-idle)*100, 0, 100))
				ready = true

				key := gtKey(path)
				if byGT[key] == nil {
					byGT[key] = &acc{}
				}
				byGT[key].sum += busy
				byGT[key].count++
			}
		}

		g.prevRC6[path] = rc6Sample{ms: ms, at: now}
	}

	out := make(map[string]float32, len(byGT))
	for k, a := range byGT {
		if a.count > 0 {
			out[k] = a.sum / float32(a.count)
		}
	}
	return out, ready
}

// freqUsageByGT estimates load from how far the current frequency sits
// between min and max.
func (g *IntelGPU) freqUsageByGT() map[string]float32 {
	cur := g.readByGT(g.curPaths, true)
	maxF := g.readByGT(g.maxPaths, true)
	minF := g.readByGT(g.minPaths, false)

	for k := range cur {
		if strings.HasPrefix(k, "gt") {
			delete(cur, "card")
			delete(maxF, "card")
			delete(minF, "card")
			break
		}
	}

	out := make(map[string]float32, len(cur))
	for gt, c := range cur {
		mx, ok := maxF[gt]
		if !ok {
			continue
		}
		mn := minF[gt]

		var usage float32
		switch {
		case mx > mn:
			usage = (c - mn) / (mx - mn) * 100
		case mx > 0:
			usage = c / mx * 100
		default:
			continue
		}
		if math.IsNaN(float64(usage)) || math.IsInf(float64(usage), 0) {
			continue
		}
		out[gt] = float32(clampF(float64(usage), 0, 100))
	}
	return out
}

func (g *IntelGPU) readByGT(paths []string, pickMax bool) map[string]float32 {
	out := make(map[string]float32)
	for _, p := range paths {
		v, err := g.fs.ReadFloat(p)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		key := gtKey(p)
		cur, ok := out[key]
		switch {
		case !ok:
			out[key] = float32(v)
		case pickMax && float32(v) > cur:
			out[key] = float32(v)
		case !pickMax && float32(v) < cur:
			out[key] = float32(v)
		}
	}
	return out
}

func (g *IntelGPU) temperature(temps []telemetry.TemperatureInfo) telemetry.Reading[float32] {
	noPerm := false
	if g.tempPath != "" {
		raw, err := g.fs.ReadString(g.tempPath)
		if err == nil {
			if t, perr := parsers.ParseMilliCelsius(raw); perr == nil {
				return telemetry.Some(t, "")
			}
		} else if isPermission(err) {
			noPerm = true
		}
	}

	for _, t := range temps {
		label := strings.ToLower(t.Label)
		if strings.Contains(label, "package id") || strings.Contains(label, "x86_pkg_temp") {
			return telemetry.Some(t.Temperature, telemetry.NotePkgProxy)
		}
	}

	if _, t, ok := readThermalZone(g.fs, gpuThermalZones); ok {
		return telemetry.Some(t, telemetry.NoteThermal)
	}

	if noPerm {
		return telemetry.Absent[float32](telemetry.NoteNoPerm)
	}
	return telemetry.Absent[float32](telemetry.NoteNA)
}

func (g *IntelGPU) memory(meminfo map[string]uint64) telemetry.Reading[uint64] {
	noPerm := false
	if g.debugfsPath != "" {
		content, err := g.fs.ReadString(g.debugfsPath)
		if err == nil {
			if v, ok := parsers.ParseI915GemObjects(content); ok {
				return telemetry.Some(v, "")
			}
			return telemetry.Absent[uint64](telemetry.NoteNoData)
		}
		noPerm = isPermission(err)
	}

	if shmem, ok := meminfo["Shmem"]; ok {
		return telemetry.Some(shmem, telemetry.NoteShared)
	}

	if !g.fs.Readable(g.fs.Path(debugfsDRMDir)) {
		return telemetry.Absent[uint64](telemetry.NoteDbgfsOff)
	}
	if noPerm {
		return telemetry.Absent[uint64](telemetry.NoteNoPerm)
	}
	return telemetry.Absent[uint64](telemetry.NoteNA)
}

// sharedMemoryTotal estimates the iGPU's share of system RAM: what is
// currently available plus what the GPU already holds, capped at MemTotal.
func sharedMemoryTotal(used *uint64, meminfo map[string]uint64, systemTotal uint64) *uint64 {
	avail, hasAvail := meminfo["MemAvailable"]
	total, hasTotal := meminfo["MemTotal"]

	var v uint64
	switch {
	case hasAvail && hasTotal && used != nil:
		v = min(saturatingAdd(avail, *used), total)
		v = max(v, *used)
	case hasAvail && hasTotal:
		v = min(avail, total)
	case hasAvail && used != nil:
		v = saturatingAdd(avail, *used)
	case hasAvail:
		v = avail
	case hasTotal:
		v = total
	case systemTotal > 0:
		v = systemTotal
	default:
		return nil
	}
	return &v
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// median of the finite values; even counts average the middle pair.
func median(values []float32) (float32, bool) {
	var vs []float32
	for _, v := range values {
		if !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) {
			vs = append(vs, v)
		}
	}
	if len(vs) == 0 {
		return 0, false
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	mid := len(vs) / 2
	if len(vs)%2 == 0 {
		return (vs[mid-1] + vs[mid]) / 2, true
	}
	return vs[mid], true
}

func minMax(vs []float32) (float32, float32) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func mapValues(m map[string]float32) []float32 {
	out := make([]float32, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

func sortedKeys(m map[string]float32) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
