package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHistoryRing_PushAndValues(t *testing.T) {
	r := NewHistoryRing[int]()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Values())

	_, ok := r.Back()
	assert.False(t, ok)

	r.Push(1)
	r.Push(2)
	r.Push(3)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{1, 2, 3}, r.Values())

	front, ok := r.Front()
	require.True(t, ok)
	assert.Equal(t, 1, front)

	back, ok := r.Back()
	require.True(t, ok)
	assert.Equal(t, 3, back)
}

func TestHistoryRing_DropsOldestWhenFull(t *testing.T) {
	tests := []struct {
		name   string
		pushes int
	}{
		{"exactly full", HistoryLen},
		{"one over", HistoryLen + 1},
		{"wrapped twice", 2*HistoryLen + 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewHistoryRing[int]()
			for i := 0; i < tt.pushes; i++ {
				r.Push(i)
			}

			require.Equal(t, HistoryLen, r.Len())
			values := r.Values()
			assert.Equal(t, tt.pushes-HistoryLen, values[0])
			assert.Equal(t, tt.pushes-1, values[len(values)-1])
			for i := 1; i < len(values); i++ {
				assert.Equal(t, values[i-1]+1, values[i], "values must stay in push order")
			}
		})
	}
}

func TestHistoryRing_At(t *testing.T) {
	r := NewHistoryRing[string]()
	r.Push("a")
	r.Push("b")

	v, ok := r.At(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = r.At(2)
	assert.False(t, ok)
	_, ok = r.At(-1)
	assert.False(t, ok)
}

func TestHistoryRing_NilIsEmpty(t *testing.T) {
	var r *HistoryRing[float32]
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Values())
	assert.Nil(t, r.Clone())
}

func TestHistoryRing_CloneIsIndependent(t *testing.T) {
	r := NewHistoryRing[int]()
	r.Push(1)

	c := r.Clone()
	c.Push(2)
	r.Push(9)

	assert.Equal(t, []int{1, 9}, r.Values())
	assert.Equal(t, []int{1, 2}, c.Values())
}

func TestHistoryRing_Marshal(t *testing.T) {
	r := NewHistoryRing[RatePair]()
	r.Push(RatePair{RX: 10, TX: 20})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"rx":10,"tx":20}]`, string(data))

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "rx: 10")
}

func TestResizeRings(t *testing.T) {
	rings := ResizeRings[float32](nil, 4)
	require.Len(t, rings, 4)
	rings[0].Push(50)

	grown := ResizeRings(rings, 6)
	require.Len(t, grown, 6)
	assert.Equal(t, 1, grown[0].Len(), "existing rings keep their history")
	assert.Equal(t, 0, grown[5].Len())

	shrunk := ResizeRings(grown, 2)
	require.Len(t, shrunk, 2)
	assert.Equal(t, 1, shrunk[0].Len())

	assert.Empty(t, ResizeRings(shrunk, -1))
}
