package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/redhat-openshift-ecosystem/stopwatch/internal/summary"
	"github.com/redhat-openshift-ecosystem/stopwatch/pkg/stopwatch"
)

const maxSheetName = 31

var sheetHeader = []string{"Timer", "Mark", "Timestamp", "Lap_ms", "Elapsed_ms"}

// sheetName returns a valid, unique worksheet name for the batch at idx.
func sheetName(idx int, name *string) string {
	n := fmt.Sprintf("%02d", idx)
	if name != nil && *name != "" {
		n += "-" + strings.Map(func(r rune) rune {
			if strings.ContainsRune(`:\/?*[]'`, r) {
				return '_'
			}
			return r
		}, *name)
	}
	if r := []rune(n); len(r) > maxSheetName {
		n = string(r[:maxSheetName])
	}
	return n
}

// saveSheet creates one worksheet per batch, with one row per mark.
func saveSheet(path string, _ *stopwatch.Stopwatch, s *summary.Summary) error {
	sheet := excelize.NewFile()
	defer sheet.Close()

	for idx, b := range s.Batches {
		name := sheetName(idx, b.Name)
		index, err := sheet.NewSheet(name)
		if err != nil {
			return err
		}
		if b.Current {
			sheet.SetActiveSheet(index)
		}
		if err := populateSheet(sheet, name, b); err != nil {
			return err
		}
	}
	if err := sheet.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return sheet.SaveAs(path)
}

func populateSheet(sheet *excelize.File, name string, b summary.BatchSummary) error {
	if err := sheet.SetSheetRow(name, "A1", &sheetHeader); err != nil {
		return err
	}
	rowN := 2
	for _, t := range b.Timers {
		for mark, ts := range t.Times {
			row := []interface{}{t.Name, mark + 1, ts, nil, ts - t.Started}
			if mark > 0 {
				row[3] = t.Laps[mark-1]
			}
			cell, err := excelize.CoordinatesToCellName(1, rowN)
			if err != nil {
				return err
			}
			if err := sheet.SetSheetRow(name, cell, &row); err != nil {
				return err
			}
			rowN++
		}
	}
	return nil
}
