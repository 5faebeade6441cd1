package summary

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

func TestLaps(t *testing.T) {
	tests := []struct {
		name  string
		times []int64
		want  []int64
	}{
		{name: "single mark", times: []int64{10}, want: []int64{}},
		{name: "two marks", times: []int64{100, 150}, want: []int64{50}},
		{name: "arrow", times: []int64{142, 150, 190, 212, 242}, want: []int64{8, 40, 22, 30}},
		{name: "out of order", times: []int64{200, 120}, want: []int64{-80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Laps(tt.times))
		})
	}
}

func TestNewTimerSummary(t *testing.T) {
	ts := NewTimerSummary("arrow", []int64{142, 150, 190, 212, 242})
	assert.Equal(t, 5, ts.Marks)
	assert.Equal(t, int64(142), ts.Started)
	assert.Equal(t, int64(242), ts.Last)
	assert.Equal(t, int64(100), ts.Elapsed)
	assert.Equal(t, 8.0, ts.StatMin)
	assert.Equal(t, 40.0, ts.StatMax)
	assert.Equal(t, 100.0, ts.StatSum)
	assert.Equal(t, 25.0, ts.StatMean)
	assert.Equal(t, 26.0, ts.StatMedian)

	single := NewTimerSummary("once", []int64{7})
	assert.Equal(t, int64(0), single.Elapsed)
	assert.Empty(t, single.Laps)
	assert.Zero(t, single.StatMean)
}

func TestNewSummary(t *testing.T) {
	sw := stopwatch.New(ptr.To("first"))
	_, _ = sw.MarkTimeAt("blam", 100)
	_, _ = sw.MarkTimeAt("blam", 150)
	sw.Archive(nil, nil)
	_, _ = sw.MarkTimeAt("star", 4)

	s := NewSummary(sw)
	require.Len(t, s.Batches, 2)

	assert.Equal(t, ptr.To("first"), s.Batches[0].Name)
	assert.False(t, s.Batches[0].Current)
	require.Len(t, s.Batches[0].Timers, 1)
	assert.Equal(t, []int64{50}, s.Batches[0].Timers[0].Laps)

	assert.Nil(t, s.Batches[1].Name)
	assert.True(t, s.Batches[1].Current)
	assert.Equal(t, "star", s.Batches[1].Timers[0].Name)

	_, err := json.Marshal(s)
	assert.NoError(t, err)
}

func TestPrint(t *testing.T) {
	sw := stopwatch.New(ptr.To("run1"))
	_, _ = sw.MarkTimeAt("blam", 100)
	_, _ = sw.MarkTimeAt("blam", 150)
	sw.Archive(nil, nil)

	out := &bytes.Buffer{}
	require.NoError(t, NewSummary(sw).Print(out))
	assert.Contains(t, out.String(), "Batch #0 run1 (archived)")
	assert.Contains(t, out.String(), "Batch #1 <unnamed> (current)")
	assert.Contains(t, out.String(), "blam")
	assert.Contains(t, out.String(), "<empty>")
}
