package events

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"k8s.io/utils/ptr"

	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

const sampleEvents = `name: run1
events:
  - mark: star
    at: 4
  - mark: planet
    at: 1
  - mark: star
    at: 8
  - mark: planet
    at: 2
  - archive: run2
    rename: run1-final
  - mark: arrow
    at: 142
  - mark: arrow
    at: 150
  - archive: ""
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleEvents))
	require.NoError(t, err)
	assert.Equal(t, ptr.To("run1"), f.Name)
	require.Len(t, f.Events, 8)
	assert.True(t, f.Events[0].IsMark())
	assert.Equal(t, ptr.To(int64(4)), f.Events[0].At)
	assert.True(t, f.Events[4].IsArchive())
	assert.Equal(t, ptr.To("run1-final"), f.Events[4].Rename)
	assert.Equal(t, ptr.To(""), f.Events[7].Archive)
}

func TestParseJSON(t *testing.T) {
	f, err := Parse(strings.NewReader(`{"events": [{"mark": "blam", "at": 100}, {"mark": "blam"}]}`))
	require.NoError(t, err)
	assert.Nil(t, f.Name)
	require.Len(t, f.Events, 2)
	assert.Nil(t, f.Events[1].At)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty event",
			input:   "events:\n  - at: 1\n",
			wantErr: "one of mark or archive is required",
		},
		{
			name:    "mark and archive",
			input:   "events:\n  - mark: a\n    archive: b\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "archive with timestamp",
			input:   "events:\n  - archive: b\n    at: 3\n",
			wantErr: "at is only allowed on marks",
		},
		{
			name:    "mark with rename",
			input:   "events:\n  - mark: a\n    rename: b\n",
			wantErr: "rename is only allowed on archives",
		},
		{
			name:    "empty mark",
			input:   "events:\n  - mark: \"\"\n",
			wantErr: "event 0: timer name required",
		},
		{
			name:    "unknown field",
			input:   "events:\n  - mrk: a\n",
			wantErr: "unable to parse events",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "events.yaml")
	require.NoError(t, os.WriteFile(plain, []byte(sampleEvents), 0644))

	compressed := filepath.Join(dir, "events.yaml.xz")
	fd, err := os.Create(compressed)
	require.NoError(t, err)
	w, err := xz.NewWriter(fd)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleEvents))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, fd.Close())

	for _, path := range []string{plain, compressed} {
		f, err := Load(path)
		require.NoError(t, err, path)
		assert.Len(t, f.Events, 8, path)
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleEvents))
	require.NoError(t, err)

	sw, laps, err := Replay(f)
	require.NoError(t, err)

	assert.Equal(t, []Lap{
		{Batch: 0, Timer: "star", Elapsed: 4},
		{Batch: 0, Timer: "planet", Elapsed: 1},
		{Batch: 1, Timer: "arrow", Elapsed: 8},
	}, laps)

	archive := sw.TimerArchive()
	require.Len(t, archive, 2)
	assert.Equal(t, "run1-final", archive[0].NameOrEmpty())
	assert.Equal(t, []string{"star", "planet"}, archive[0].Names())
	assert.Equal(t, []int64{4, 8}, archive[0].Get("star").Times)
	assert.Equal(t, "run2", archive[1].NameOrEmpty())
	assert.Nil(t, sw.CurrentTimers().Name)
	assert.Equal(t, 0, sw.CurrentTimers().Len())
}

func TestReplayClock(t *testing.T) {
	f := &File{Events: []Event{{Mark: ptr.To("frog")}, {Mark: ptr.To("frog")}}}
	now := int64(10)
	sw, laps, err := Replay(f, stopwatch.WithClock(func() int64 {
		now += 15
		return now
	}))
	require.NoError(t, err)
	assert.Equal(t, []Lap{{Batch: 0, Timer: "frog", Elapsed: 15}}, laps)

	started, err := sw.TimeStarted("frog")
	require.NoError(t, err)
	assert.Equal(t, int64(25), started)
}

func TestReplayInvalid(t *testing.T) {
	_, _, err := Replay(&File{Events: []Event{{}}})
	assert.ErrorContains(t, err, "one of mark or archive is required")

	_, _, err = Replay(&File{Events: []Event{{Mark: ptr.To("")}}})
	assert.True(t, stopwatch.IsInvalidArgument(err))
}

func TestReplayNamesAreCopied(t *testing.T) {
	f := &File{
		Name:   ptr.To("run1"),
		Events: []Event{{Mark: ptr.To("a"), At: ptr.To(int64(1))}, {Archive: ptr.To("run2")}},
	}
	sw, _, err := Replay(f)
	require.NoError(t, err)

	*f.Name = "changed"
	*f.Events[1].Archive = "changed"
	assert.Equal(t, "run1", sw.TimerArchive()[0].NameOrEmpty())
	assert.Equal(t, "run2", sw.CurrentTimers().NameOrEmpty())
}
