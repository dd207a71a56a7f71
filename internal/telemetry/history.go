package telemetry

import (
	"encoding/json"
)

// HistoryLen is the number of samples every history ring retains.
const HistoryLen = 120

// HistoryRing is a bounded FIFO. Pushing into a full ring drops the oldest
// value; values are never reordered.
type HistoryRing[T any] struct {
	data  []T
	head  int
	count int
}

// NewHistoryRing creates an empty ring with capacity HistoryLen.
func NewHistoryRing[T any]() *HistoryRing[T] {
	return &HistoryRing[T]{data: make([]T, HistoryLen)}
}

// Push appends v, evicting the oldest value when full.
func (r *HistoryRing[T]) Push(v T) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of stored values.
func (r *HistoryRing[T]) Len() int {
	if r == nil {
		return 0
	}
	return r.count
}

// Back returns the newest value.
func (r *HistoryRing[T]) Back() (T, bool) {
	var zero T
	if r.Len() == 0 {
		return zero, false
	}
	idx := (r.head - 1 + len(r.data)) % len(r.data)
	return r.data[idx], true
}

// Front returns the oldest value.
func (r *HistoryRing[T]) Front() (T, bool) {
	var zero T
	if r.Len() == 0 {
		return zero, false
	}
	return r.data[r.start()], true
}

// At returns the i-th value counting from the oldest.
func (r *HistoryRing[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= r.Len() {
		return zero, false
	}
	return r.data[(r.start()+i)%len(r.data)], true
}

// Values returns the stored values oldest first.
func (r *HistoryRing[T]) Values() []T {
	n := r.Len()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = r.data[(r.start()+i)%len(r.data)]
	}
	return out
}

// Clone returns an independent copy.
func (r *HistoryRing[T]) Clone() *HistoryRing[T] {
	if r == nil {
		return nil
	}
	c := &HistoryRing[T]{
		data:  make([]T, len(r.data)),
		head:  r.head,
		count: r.count,
	}
	copy(c.data, r.data)
	return c
}

// MarshalJSON encodes the ring as a list, oldest first.
func (r *HistoryRing[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// MarshalYAML encodes the ring as a list, oldest first.
func (r *HistoryRing[T]) MarshalYAML() (interface{}, error) {
	return r.Values(), nil
}

func (r *HistoryRing[T]) start() int {
	return (r.head - r.count + len(r.data)) % len(r.data)
}

// ResizeRings grows or shrinks rings to n entries. New rings start empty;
// shrinking drops trailing rings.
func ResizeRings[T any](rings []*HistoryRing[T], n int) []*HistoryRing[T] {
	if n < 0 {
		n = 0
	}
	if len(rings) > n {
		return rings[:n]
	}
	for len(rings) < n {
		rings = append(rings, NewHistoryRing[T]())
	}
	return rings
}

func cloneRings[T any](rings []*HistoryRing[T]) []*HistoryRing[T] {
	if rings == nil {
		return nil
	}
	out := make([]*HistoryRing[T], len(rings))
	for i, r := range rings {
		out[i] = r.Clone()
	}
	return out
}
