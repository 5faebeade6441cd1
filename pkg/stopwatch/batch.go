package stopwatch

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v2"
	"k8s.io/utils/ptr"
)

// Timer holds the marks recorded for one timer name, in call order.
type Timer struct {
	Times []int64 `json:"times" yaml:"times"`
}

// Batch is a named set of timers. Timers are kept in the order they were
// first marked.
type Batch struct {
	Name *string

	names  []string
	timers map[string]*Timer
}

// newBatch copies name, so callers can't rename the batch through their pointer.
func newBatch(name *string) *Batch {
	if name != nil {
		name = ptr.To(*name)
	}
	return &Batch{
		Name:   name,
		timers: make(map[string]*Timer),
	}
}

// Len returns the number of timers in the batch.
func (b *Batch) Len() int {
	return len(b.names)
}

// Names returns the timer names in insertion order.
func (b *Batch) Names() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// Get returns the timer with the given name, or nil.
func (b *Batch) Get(name string) *Timer {
	return b.timers[name]
}

// Timers returns the name to timer index. The map is a copy; the timers are not.
func (b *Batch) Timers() map[string]*Timer {
	timers := make(map[string]*Timer, len(b.timers))
	for k, v := range b.timers {
		timers[k] = v
	}
	return timers
}

// NameOrEmpty returns the batch name, or an empty string for unnamed batches.
func (b *Batch) NameOrEmpty() string {
	if b.Name == nil {
		return ""
	}
	return *b.Name
}

func (b *Batch) mark(name string, ts int64) *Timer {
	t, ok := b.timers[name]
	if !ok {
		t = &Timer{Times: []int64{}}
		b.timers[name] = t
		b.names = append(b.names, name)
	}
	t.Times = append(t.Times, ts)
	return t
}

// Clone returns a deep copy of the batch.
func (b *Batch) Clone() *Batch {
	c := newBatch(b.Name)
	for _, k := range b.names {
		times := make([]int64, len(b.timers[k].Times))
		copy(times, b.timers[k].Times)
		c.timers[k] = &Timer{Times: times}
		c.names = append(c.names, k)
	}
	return c
}

// Equal reports whether both batches have the same name, the same timers in
// the same order, and the same marks.
func (b *Batch) Equal(o *Batch) bool {
	if b == nil || o == nil {
		return b == o
	}
	if (b.Name == nil) != (o.Name == nil) {
		return false
	}
	if b.Name != nil && *b.Name != *o.Name {
		return false
	}
	if len(b.names) != len(o.names) {
		return false
	}
	for i, k := range b.names {
		if o.names[i] != k {
			return false
		}
		bt, ot := b.timers[k].Times, o.timers[k].Times
		if len(bt) != len(ot) {
			return false
		}
		for j := range bt {
			if bt[j] != ot[j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the batch as {"name": ..., "timers": {...}}, keeping
// timer keys in insertion order.
func (b *Batch) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	name, err := json.Marshal(b.Name)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"name":`)
	buf.Write(name)
	buf.WriteString(`,"timers":{`)
	for i, k := range b.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		timer, err := json.Marshal(b.timers[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(timer)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler with ordered timer keys.
func (b *Batch) MarshalYAML() (interface{}, error) {
	timers := make(yaml.MapSlice, 0, len(b.names))
	for _, k := range b.names {
		timers = append(timers, yaml.MapItem{Key: k, Value: b.timers[k]})
	}
	return yaml.MapSlice{
		{Key: "name", Value: b.Name},
		{Key: "timers", Value: timers},
	}, nil
}
