package events

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

// Lap is the time elapsed between two successive marks of a timer.
type Lap struct {
	// Batch is the index of the batch in the archive, the current batch
	// has index len(archive).
	Batch   int
	Timer   string
	Elapsed int64
}

// Replay applies the events of f to a new stopwatch. It returns the
// stopwatch and every lap observed while marking.
func Replay(f *File, opts ...stopwatch.Option) (*stopwatch.Stopwatch, []Lap, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid events")
	}
	sw := stopwatch.New(f.Name, opts...)
	laps := []Lap{}
	batch := 0

	for idx, ev := range f.Events {
		if ev.IsArchive() {
			var name *string
			if *ev.Archive != "" {
				name = ev.Archive
			}
			log.Debugf("Events/Replay: archive batch %d (rename=%v) new=%q", batch, ev.Rename != nil, *ev.Archive)
			sw.Archive(name, ev.Rename)
			batch++
			continue
		}

		var elapsed *int64
		var err error
		if ev.At != nil {
			elapsed, err = sw.MarkTimeAt(*ev.Mark, *ev.At)
		} else {
			elapsed, err = sw.MarkTime(*ev.Mark)
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "event %d", idx)
		}
		if elapsed != nil {
			laps = append(laps, Lap{Batch: batch, Timer: *ev.Mark, Elapsed: *elapsed})
		}
	}
	log.Debugf("Events/Replay: %d events, %d laps, %d archived batches", len(f.Events), len(laps), batch)
	return sw, laps, nil
}
