package replay

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/config"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/events"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/export"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/metrics"
	"github.com/redhat-openshift-ecosystem/stopwatch/internal/summary"
)

const cmdName = "replay"

type Input struct {
	events   string
	output   string
	formats  []string
	compress bool
}

func NewCmdReplay() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "replay events.yaml",
		Example: "stopwatch replay ./events.yaml.xz --output /tmp/stopwatch --format json,xlsx,html",
		Short:   "Replay recorded timer events, show the summary and export the batches.",
		Run: func(cmd *cobra.Command, args []string) {
			input := &Input{
				events:   args[0],
				output:   viper.GetString(config.Key(cmdName, "output")),
				formats:  viper.GetStringSlice(config.Key(cmdName, "format")),
				compress: viper.GetBool(config.Key(cmdName, "compress")),
			}
			if err := Run(input); err != nil {
				log.Error(errors.Wrapf(err, "could not replay events: %v", args[0]))
				os.Exit(1)
			}
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringP(
		"output", "o", "",
		"Directory to export the timers. Nothing is exported when empty. Example: -o ./results",
	)
	cmd.Flags().StringSlice(
		"format", export.Formats(),
		"Export formats. Example: --format json,yaml,xlsx,html",
	)
	cmd.Flags().Bool(
		"compress", false,
		"Compress json and yaml exports with xz.",
	)
	config.BindFlags(viper.GetViper(), cmdName, cmd.Flags())

	return cmd
}

// Run loads the events, replays them and prints the summary to stdout,
// exporting the stopwatch when an output directory is set.
func Run(input *Input) error {
	timers := metrics.NewTimers()
	timers.Add("replay-total")

	timers.Set("replay/load")
	f, err := events.Load(input.events)
	if err != nil {
		return err
	}

	timers.Set("replay/replay")
	sw, laps, err := events.Replay(f)
	if err != nil {
		return err
	}
	log.Infof("Replayed %d events: %d laps, %d archived batches", len(f.Events), len(laps), len(sw.TimerArchive()))

	timers.Set("replay/summary")
	if err := summary.NewSummary(sw).Print(os.Stdout); err != nil {
		return err
	}

	if input.output != "" {
		timers.Set("replay/export")
		files, err := export.Export(input.output, sw, export.Options{
			Formats:  input.formats,
			Compress: input.compress,
		})
		if err != nil {
			return err
		}
		for _, file := range files {
			log.Infof("Stopwatch saved to %s", file)
		}
	}

	timers.Set("replay/done")
	timers.Add("replay-total")
	for name, total := range timers.Totals() {
		log.Debugf("Timer %s: %.3fs", name, total)
	}
	return nil
}
