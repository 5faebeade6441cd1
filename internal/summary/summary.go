package summary

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

// Summary holds the statistics of every batch of a stopwatch.
type Summary struct {
	Batches []BatchSummary `json:"batches"`
}

type BatchSummary struct {
	Name    *string        `json:"name"`
	Current bool           `json:"current"`
	Timers  []TimerSummary `json:"timers"`
}

// TimerSummary describes one timer. Laps are the deltas between successive
// marks; durations are in milliseconds.
type TimerSummary struct {
	Name    string  `json:"name"`
	Marks   int     `json:"marks"`
	Started int64   `json:"started"`
	Last    int64   `json:"last"`
	Elapsed int64   `json:"elapsed"`
	Times   []int64 `json:"times"`
	Laps    []int64 `json:"laps"`

	StatMin    float64 `json:"min"`
	StatMax    float64 `json:"max"`
	StatSum    float64 `json:"sum"`
	StatMean   float64 `json:"mean"`
	StatMedian float64 `json:"median"`
	StatPerc90 float64 `json:"p90"`
	StatPerc99 float64 `json:"p99"`
	StatStddev float64 `json:"stddev"`
}

// NewSummary builds the summary of the archived batches, oldest first,
// followed by the current batch.
func NewSummary(sw *stopwatch.Stopwatch) *Summary {
	s := &Summary{}
	for _, b := range sw.TimerArchive() {
		s.Batches = append(s.Batches, NewBatchSummary(b, false))
	}
	s.Batches = append(s.Batches, NewBatchSummary(sw.CurrentTimers(), true))
	return s
}

func NewBatchSummary(b *stopwatch.Batch, current bool) BatchSummary {
	bs := BatchSummary{
		Name:    b.Name,
		Current: current,
		Timers:  make([]TimerSummary, 0, b.Len()),
	}
	for _, name := range b.Names() {
		bs.Timers = append(bs.Timers, NewTimerSummary(name, b.Get(name).Times))
	}
	return bs
}

// NewTimerSummary computes the lap statistics of a timer. A timer with a
// single mark has no laps and zeroed statistics.
func NewTimerSummary(name string, times []int64) TimerSummary {
	ts := TimerSummary{
		Name:    name,
		Marks:   len(times),
		Started: stopwatch.FirstItem(times),
		Last:    stopwatch.LastItem(times),
		Times:   times,
		Laps:    Laps(times),
	}
	ts.Elapsed = ts.Last - ts.Started
	if len(ts.Laps) == 0 {
		return ts
	}

	data := make(stats.Float64Data, 0, len(ts.Laps))
	for _, l := range ts.Laps {
		data = append(data, float64(l))
	}
	// stats returns NaN on errors, which can't be encoded to JSON.
	value := func(v float64, err error) float64 {
		if err != nil || math.IsNaN(v) {
			return 0
		}
		return v
	}
	ts.StatMin = value(stats.Min(data))
	ts.StatMax = value(stats.Max(data))
	ts.StatSum = value(stats.Sum(data))
	ts.StatMean = value(stats.Mean(data))
	ts.StatMedian = value(stats.Median(data))
	ts.StatPerc90 = value(stats.Percentile(data, 90))
	ts.StatPerc99 = value(stats.Percentile(data, 99))
	ts.StatStddev = value(stats.StandardDeviationPopulation(data))
	return ts
}

// Laps returns the differences between successive marks.
func Laps(times []int64) []int64 {
	if len(times) < 2 {
		return []int64{}
	}
	laps := make([]int64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		laps = append(laps, times[i]-times[i-1])
	}
	return laps
}
