// Package events loads recorded mark and archive events and replays them
// into a stopwatch.
package events

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v2"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

// Event is one entry of an event file. Exactly one of Mark or Archive must be set.
type Event struct {
	// Mark is the timer name to mark.
	Mark *string `yaml:"mark,omitempty" json:"mark,omitempty"`
	// At is the mark timestamp in milliseconds, the wall clock is used when empty.
	At *int64 `yaml:"at,omitempty" json:"at,omitempty"`

	// Archive closes the current batch, opening a new one with this name.
	// An empty string opens an unnamed batch.
	Archive *string `yaml:"archive,omitempty" json:"archive,omitempty"`
	// Rename is the new name of the batch being archived.
	Rename *string `yaml:"rename,omitempty" json:"rename,omitempty"`
}

// IsMark returns true when the event marks a timer.
func (e *Event) IsMark() bool {
	return e.Mark != nil
}

// IsArchive returns true when the event archives the current batch.
func (e *Event) IsArchive() bool {
	return e.Archive != nil
}

// File is the content of an event file.
type File struct {
	Name   *string `yaml:"name,omitempty" json:"name,omitempty"`
	Events []Event `yaml:"events" json:"events"`
}

// Validate checks every event is either a mark or an archive.
func (f *File) Validate() error {
	for idx, ev := range f.Events {
		switch {
		case ev.IsMark() && ev.IsArchive():
			return fmt.Errorf("event %d: mark and archive are mutually exclusive", idx)
		case !ev.IsMark() && !ev.IsArchive():
			return fmt.Errorf("event %d: one of mark or archive is required", idx)
		case ev.IsArchive() && ev.At != nil:
			return fmt.Errorf("event %d: at is only allowed on marks", idx)
		case ev.IsMark() && ev.Rename != nil:
			return fmt.Errorf("event %d: rename is only allowed on archives", idx)
		case ev.IsMark() && *ev.Mark == "":
			return errors.Wrapf(stopwatch.ErrTimerNameRequired, "event %d", idx)
		}
	}
	return nil
}

// Parse reads an event file in YAML (or JSON) format.
func Parse(r io.Reader) (*File, error) {
	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "unable to read events")
	}
	f := &File{}
	if err := yaml.UnmarshalStrict(buf.Bytes(), f); err != nil {
		return nil, errors.Wrap(err, "unable to parse events")
	}
	if err := f.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid events")
	}
	log.Debugf("Events/Parse: %d events loaded", len(f.Events))
	return f, nil
}

// Load reads an event file from disk. Files with the .xz extension are
// decompressed.
func Load(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer fd.Close()

	var r io.Reader = bufio.NewReader(fd)
	if strings.HasSuffix(path, ".xz") {
		log.Debugf("Events/Load: decompressing %s", path)
		r, err = xz.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read xz archive %s", path)
		}
	}
	f, err := Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return f, nil
}
