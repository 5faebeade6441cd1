package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/config"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/events"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/metrics"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/summary"
)

const cmdName = "report"

type Input struct {
	events string
	json   bool
}

// Report is the json output of the report command.
type Report struct {
	Summary *summary.Summary `json:"summary"`
	Runtime *metrics.Timers  `json:"runtime"`
}

func NewCmdReport() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report events.yaml",
		Short: "Create a report of the timer batches from recorded events.",
		Run: func(cmd *cobra.Command, args []string) {
			input := &Input{
				events: args[0],
				json:   viper.GetBool(config.Key(cmdName, "json")),
			}
			if err := processReport(input, os.Stdout); err != nil {
				log.Error(errors.Wrapf(err, "could not create report: %v", args[0]))
				os.Exit(1)
			}
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().Bool(
		"json", false,
		"Show report in json format",
	)
	config.BindFlags(viper.GetViper(), cmdName, cmd.Flags())

	return cmd
}

// processReport replays the events and writes the report to w.
func processReport(input *Input, w io.Writer) error {
	timers := metrics.NewTimers()
	timers.Add("report-total")

	timers.Set("report/load")
	f, err := events.Load(input.events)
	if err != nil {
		return err
	}

	timers.Set("report/replay")
	sw, _, err := events.Replay(f)
	if err != nil {
		return err
	}

	timers.Set("report/summary")
	s := summary.NewSummary(sw)
	timers.Set("report/done")
	timers.Add("report-total")

	if !input.json {
		return s.Print(w)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&Report{Summary: s, Runtime: timers})
}
