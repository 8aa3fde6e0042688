package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
)

const (
	tableName  = "Raspored"
	tableStyle = "TableStyleMedium9"
)

// WriteDisplay saves the display projection as a workbook: one header row
// with the grid captions, one row per entry in order, styled as a banded
// named table. Values round-trip losslessly through Normalize. widths maps
// display captions to column widths; unknown captions are ignored.
func WriteDisplay(path string, entries []schedule.DisplayEntry, widths map[string]float64) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := make([]any, schedule.NumColumns)
	for col := 0; col < schedule.NumColumns; col++ {
		header[col] = schedule.DisplayCaptions[col]
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]any, schedule.NumColumns)
		for col := schedule.Column(0); col < schedule.NumColumns; col++ {
			row[col] = e.Cell(col)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	for col := schedule.Column(0); col < schedule.NumColumns; col++ {
		width, ok := widths[col.Caption()]
		if !ok {
			continue
		}
		name, err := excelize.ColumnNumberToName(int(col) + 1)
		if err != nil {
			return err
		}
		if err = f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(schedule.NumColumns, len(entries)+1)
	if err != nil {
		return err
	}
	stripes := true
	if err = f.AddTable(sheet, &excelize.Table{
		Range:          "A1:" + last,
		Name:           tableName,
		StyleName:      tableStyle,
		ShowRowStripes: &stripes,
	}); err != nil {
		return fmt.Errorf("style table: %w", err)
	}

	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return f.Close()
}
