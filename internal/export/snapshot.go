package export

import (
	"encoding/json"

	"gopkg.in/yaml.v2"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/summary"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

func saveJSON(path string, sw *stopwatch.Stopwatch, _ *summary.Summary) error {
	w, closer, err := createFile(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sw); err != nil {
		_ = closer()
		return err
	}
	return closer()
}

func saveYAML(path string, sw *stopwatch.Stopwatch, _ *summary.Summary) error {
	data, err := yaml.Marshal(sw)
	if err != nil {
		return err
	}
	w, closer, err := createFile(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = closer()
		return err
	}
	return closer()
}
