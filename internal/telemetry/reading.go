package telemetry

// Notes attached to absent or fallback-derived readings.
const (
	NoteBusy     = "Busy"
	NoteRC6      = "RC6"
	NoteRC6f     = "RC6f"
	NoteRC6d     = "RC6d"
	NoteHybrid   = "Hybrid"
	NoteFreq     = "Freq"
	NoteWarmup   = "Warmup"
	NoteNoData   = "No data"
	NoteNoPerm   = "No perm"
	NotePkgProxy = "Pkg proxy"
	NoteThermal  = "Thermal"
	NoteShared   = "Shared"
	NoteDbgfsOff = "dbgfs off"
	NoteNoRAPL   = "No RAPL"
	NoteInvalid  = "Invalid"
	NoteUnread   = "Unreadable"
	NoteReset    = "Reset"
	NoteOutlier  = "Outlier"
	NoteNA       = "N/A"
)

// Reading is an adapter result: a value, or the reason it is missing.
// A present value may still carry a note naming the source that produced it.
type Reading[T any] struct {
	Value T
	OK    bool
	Note  string
}

// Some returns a present reading.
func Some[T any](v T, note string) Reading[T] {
	return Reading[T]{Value: v, OK: true, Note: note}
}

// Absent returns a missing reading with a note.
func Absent[T any](note string) Reading[T] {
	return Reading[T]{Note: note}
}

// Ptr returns the value as a pointer, nil when absent.
func (r Reading[T]) Ptr() *T {
	if !r.OK {
		return nil
	}
	v := r.Value
	return &v
}

// Get returns the value and presence flag.
func (r Reading[T]) Get() (T, bool) {
	return r.Value, r.OK
}
