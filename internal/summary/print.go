package summary

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Print writes the summary as a table, one section per batch.
func (s *Summary) Print(w io.Writer) error {
	tbWriter := tabwriter.NewWriter(w, 0, 8, 1, '\t', tabwriter.AlignRight)

	for idx, b := range s.Batches {
		name := "<unnamed>"
		if b.Name != nil {
			name = *b.Name
		}
		state := "archived"
		if b.Current {
			state = "current"
		}
		fmt.Fprintf(tbWriter, "\n> Batch #%d %s (%s)\t\n", idx, name, state)
		if len(b.Timers) == 0 {
			fmt.Fprintf(tbWriter, "<empty>\n")
			continue
		}
		fmt.Fprintf(tbWriter, "Timer\tMarks\tElapsed\tMin\tMean\tMedian\tP90\tMax\t\n")
		for _, t := range b.Timers {
			fmt.Fprintf(tbWriter, "%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
				t.Name, t.Marks, t.Elapsed, t.StatMin, t.StatMean, t.StatMedian, t.StatPerc90, t.StatMax)
		}
	}
	return tbWriter.Flush()
}
