package export

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/summary"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

// newBatchChart plots the elapsed time and the mean lap of every timer in the batch.
func newBatchChart(idx int, b summary.BatchSummary) *charts.Bar {
	title := fmt.Sprintf("Batch #%d", idx)
	if b.Name != nil {
		title = fmt.Sprintf("%s: %s", title, *b.Name)
	}
	subtitle := "archived"
	if b.Current {
		subtitle = "current"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
	)

	names := make([]string, 0, len(b.Timers))
	elapsed := make([]opts.BarData, 0, len(b.Timers))
	meanLap := make([]opts.BarData, 0, len(b.Timers))
	maxLap := make([]opts.BarData, 0, len(b.Timers))
	for _, t := range b.Timers {
		names = append(names, t.Name)
		elapsed = append(elapsed, opts.BarData{Value: t.Elapsed})
		meanLap = append(meanLap, opts.BarData{Value: t.StatMean})
		maxLap = append(maxLap, opts.BarData{Value: t.StatMax})
	}
	bar.SetXAxis(names).
		AddSeries("elapsed", elapsed).
		AddSeries("mean lap", meanLap).
		AddSeries("max lap", maxLap)
	return bar
}

// saveChartPage renders one chart per batch into a single HTML page.
func saveChartPage(path string, _ *stopwatch.Stopwatch, s *summary.Summary) error {
	page := components.NewPage()
	page.PageTitle = "Stopwatch Report"
	for idx, b := range s.Batches {
		page.AddCharts(newBatchChart(idx, b))
	}

	w, closer, err := createFile(path)
	if err != nil {
		return err
	}
	if err := page.Render(w); err != nil {
		_ = closer()
		return err
	}
	return closer()
}
