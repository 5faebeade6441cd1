package metrics

import (
	"encoding/json"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

// Timers measures the phases of a command run.
type Timers struct {
	sw   *stopwatch.Stopwatch
	last string
}

func NewTimers(opts ...stopwatch.Option) *Timers {
	return &Timers{sw: stopwatch.New(nil, opts...)}
}

// set a timer, updating if existing.
func (ts *Timers) set(k string) {
	// k is never empty here, MarkTime can't fail.
	_, _ = ts.sw.MarkTime(k)
}

// Set check last timer, stop and add a new one (lap).
func (ts *Timers) Set(k string) {
	if k == "" {
		return
	}
	if ts.last != "" {
		ts.set(ts.last)
	}
	ts.set(k)
	ts.last = k
}

// Add a new timer, or a lap on an existing one.
func (ts *Timers) Add(k string) {
	if k == "" {
		return
	}
	ts.set(k)
}

// Totals returns the seconds between the first and the last mark of each timer.
func (ts *Timers) Totals() map[string]float64 {
	totals := make(map[string]float64, ts.sw.CurrentTimers().Len())
	ts.sw.EachTimer(func(times []int64, name string, _ *stopwatch.Batch) {
		totals[name] = float64(stopwatch.LastItem(times)-stopwatch.FirstItem(times)) / 1000
	})
	return totals
}

// Stopwatch returns the stopwatch holding the marks.
func (ts *Timers) Stopwatch() *stopwatch.Stopwatch {
	return ts.sw
}

type Timer struct {
	// Total time in seconds
	Total float64 `json:"seconds"`
}

func (ts *Timers) MarshalJSON() ([]byte, error) {
	out := make(map[string]Timer, ts.sw.CurrentTimers().Len())
	for k, v := range ts.Totals() {
		out[k] = Timer{Total: v}
	}
	return json.Marshal(out)
}
