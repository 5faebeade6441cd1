package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: run1
events:
  - mark: arrow
    at: 142
  - mark: arrow
    at: 242
`), 0644))
	return path
}

func TestProcessReportTable(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, processReport(&Input{events: writeEvents(t)}, out))
	assert.Contains(t, out.String(), "Batch #0 run1 (current)")
	assert.Contains(t, out.String(), "arrow")
}

func TestProcessReportJSON(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, processReport(&Input{events: writeEvents(t), json: true}, out))

	got := struct {
		Summary struct {
			Batches []struct {
				Name    string `json:"name"`
				Current bool   `json:"current"`
				Timers  []struct {
					Name    string `json:"name"`
					Elapsed int64  `json:"elapsed"`
				} `json:"timers"`
			} `json:"batches"`
		} `json:"summary"`
		Runtime map[string]map[string]float64 `json:"runtime"`
	}{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Summary.Batches, 1)
	assert.Equal(t, "run1", got.Summary.Batches[0].Name)
	assert.Equal(t, int64(100), got.Summary.Batches[0].Timers[0].Elapsed)
	assert.Contains(t, got.Runtime, "report-total")
}

func TestProcessReportMissing(t *testing.T) {
	err := processReport(&Input{events: "does-not-exist.yaml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
