package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
)

// writeFile creates root/path with content, making parent dirs.
func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

type fakeResult struct {
	out string
	err error
}

// fakeRunner answers commands from a table keyed by binary name.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]fakeResult
	calls   map[string]int
	args    map[string][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string]fakeResult),
		calls:   make(map[string]int),
		args:    make(map[string][]string),
	}
}

func (f *fakeRunner) set(name, out string, err error) {
	f.results[name] = fakeResult{out: out, err: err}
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	f.args[name] = args

	// powershell is keyed by the queried property.
	if name == "powershell" && len(args) > 0 {
		last := args[len(args)-1]
		if idx := strings.LastIndex(last, "."); idx >= 0 {
			if r, ok := f.results[name+last[idx:]]; ok {
				return r.out, r.err
			}
		}
	}

	r, ok := f.results[name]
	if !ok {
		return "", errors.New("executable file not found in $PATH")
	}
	return r.out, r.err
}

func (f *fakeRunner) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// fakeSource replays a queue of samples, repeating the last one.
type fakeSource struct {
	samples []GenericSample
	next    int
}

func (f *fakeSource) Sample(context.Context) GenericSample {
	if len(f.samples) == 0 {
		return GenericSample{}
	}
	s := f.samples[min(f.next, len(f.samples)-1)]
	f.next++
	return s
}

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCollector(t *testing.T, root string, src GenericSource, runner Runner, clock *fakeClock) *Collector {
	t.Helper()
	return New(context.Background(), Options{
		Root:     root,
		Source:   src,
		Runner:   runner,
		Nvidia:   &fakeNVML{initErr: errors.New("no driver")},
		Now:      clock.Now,
		Hostname: func() (string, error) { return "testhost", nil },
		GOOS:     "linux",
	})
}

// fakeNVML serves fixed device stats. Per-index errors in deviceErr fail
// only that device.
type fakeNVML struct {
	initErr   error
	countErr  error
	devices   []parsers.NvidiaDeviceStats
	deviceErr map[int]error
	inits     int
	shutdowns int
	queries   int
}

func (f *fakeNVML) Init() error {
	f.inits++
	return f.initErr
}

func (f *fakeNVML) Shutdown() error {
	f.shutdowns++
	return nil
}

func (f *fakeNVML) DeviceCount() (int, error) {
	f.queries++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.devices), nil
}

func (f *fakeNVML) Device(index int) (parsers.NvidiaDeviceStats, error) {
	if err := f.deviceErr[index]; err != nil {
		return parsers.NvidiaDeviceStats{}, err
	}
	return f.devices[index], nil
}

func nvidiaStats(name string, memTotalMiB uint64) parsers.NvidiaDeviceStats {
	total := memTotalMiB << 20
	return parsers.NvidiaDeviceStats{Name: name, MemoryTotal: &total}
}
