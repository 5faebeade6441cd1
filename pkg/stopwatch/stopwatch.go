// Package stopwatch records named, timestamped marks and reports the time
// elapsed between successive marks of the same timer.
//
// A Stopwatch owns one open batch of timers and an archive of closed
// batches. Archive closes the open batch and starts a new one.
//
// A Stopwatch is not safe for concurrent use.
package stopwatch

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"k8s.io/utils/ptr"
)

// Clock returns the current time in milliseconds since the Unix epoch.
type Clock func() int64

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock replaces the wall clock used when a mark has no timestamp.
func WithClock(c Clock) Option {
	return func(sw *Stopwatch) {
		sw.clock = c
	}
}

func wallClock() int64 {
	return time.Now().UnixMilli()
}

type Stopwatch struct {
	current *Batch
	archive []*Batch
	clock   Clock
}

// New creates a stopwatch with an empty batch. A nil name leaves the batch unnamed.
func New(name *string, opts ...Option) *Stopwatch {
	sw := &Stopwatch{
		current: newBatch(name),
		archive: []*Batch{},
		clock:   wallClock,
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw
}

// MarkTime records the current clock time on the named timer.
// See MarkTimeAt for the returned value.
func (sw *Stopwatch) MarkTime(name string) (*int64, error) {
	return sw.MarkTimeAt(name, sw.clock())
}

// MarkTimeAt records ts on the named timer, creating the timer when needed.
// It returns nil on the first mark of a timer, otherwise ts minus the
// previous mark. Timestamps are not required to increase, so the result
// may be negative.
func (sw *Stopwatch) MarkTimeAt(name string, ts int64) (*int64, error) {
	if name == "" {
		return nil, errors.WithStack(ErrTimerNameRequired)
	}
	times := sw.current.mark(name, ts).Times
	if len(times) == 1 {
		return nil, nil
	}
	return ptr.To(ts - times[len(times)-2]), nil
}

// TimerExists reports whether the current batch has a timer with this name.
func (sw *Stopwatch) TimerExists(name string) bool {
	return sw.current.Get(name) != nil
}

// TimeStarted returns the first mark of the named timer.
func (sw *Stopwatch) TimeStarted(name string) (int64, error) {
	t := sw.current.Get(name)
	if t == nil {
		return 0, errors.WithStack(ErrTimerNotFound)
	}
	return FirstItem(t.Times), nil
}

// TimeLast returns the latest mark of the named timer.
func (sw *Stopwatch) TimeLast(name string) (int64, error) {
	t := sw.current.Get(name)
	if t == nil {
		return 0, errors.WithStack(ErrTimerNotFound)
	}
	return LastItem(t.Times), nil
}

// CurrentNames returns the timer names of the current batch in insertion order.
func (sw *Stopwatch) CurrentNames() []string {
	return sw.current.Names()
}

// CurrentTimers returns the current batch. This is a live reference: later
// marks are visible through it, and it becomes the archived entry when
// Archive is called. Use Batch.Clone for a snapshot.
func (sw *Stopwatch) CurrentTimers() *Batch {
	return sw.current
}

// EachTimer calls fn once per timer of the current batch, in insertion order.
// fn must not mark or archive while iterating.
func (sw *Stopwatch) EachTimer(fn func(times []int64, name string, all *Batch)) {
	for _, name := range sw.current.names {
		fn(sw.current.timers[name].Times, name, sw.current)
	}
}

// Archive closes the current batch and opens a new empty one called name.
// When previousName is not nil, the closed batch is renamed to it first.
// Archiving an empty batch is allowed.
func (sw *Stopwatch) Archive(name *string, previousName *string) {
	if previousName != nil {
		sw.current.Name = ptr.To(*previousName)
	}
	sw.archive = append(sw.archive, sw.current)
	sw.current = newBatch(name)
}

// TimerArchive returns the closed batches, oldest first. The slice is a copy;
// the batches are shared and must be treated as read only.
func (sw *Stopwatch) TimerArchive() []*Batch {
	archive := make([]*Batch, len(sw.archive))
	copy(archive, sw.archive)
	return archive
}

// ArchivedTimers is an alias of TimerArchive.
func (sw *Stopwatch) ArchivedTimers() []*Batch {
	return sw.TimerArchive()
}

// MarshalJSON encodes the archive and the current batch.
func (sw *Stopwatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Archive []*Batch `json:"archive"`
		Current *Batch   `json:"current"`
	}{
		Archive: sw.archive,
		Current: sw.current,
	})
}

// MarshalYAML implements yaml.Marshaler.
func (sw *Stopwatch) MarshalYAML() (interface{}, error) {
	return struct {
		Archive []*Batch `yaml:"archive"`
		Current *Batch   `yaml:"current"`
	}{
		Archive: sw.archive,
		Current: sw.current,
	}, nil
}
