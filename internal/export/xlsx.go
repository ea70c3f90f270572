package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/luki/templog/internal/store"
)

const (
	logsSheet    = "Logs"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with a "Logs" sheet (header plus one row per
// log) and a "Summary" sheet with the two count views.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", logsSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(logsSheet, "A1", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Columns))
	_ = f.SetCellStyle(logsSheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(logsSheet, "A", "A", 22)
	_ = f.SetColWidth(logsSheet, "B", "B", 20)
	_ = f.SetColWidth(logsSheet, "D", "D", 26)
	_ = f.SetColWidth(logsSheet, "E", "E", 16)
	_ = f.SetColWidth(logsSheet, "F", "F", 30)

	for i, l := range r.Logs {
		cells := Row(l)
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		// temperature stays numeric so the sheet can chart it
		row[2] = l.Temperature

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(logsSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	row := 1
	writeCounts := func(title string, counts store.Counts) error {
		titleCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(summarySheet, titleCell, title); err != nil {
			return err
		}
		_ = f.SetCellStyle(summarySheet, titleCell, titleCell, headerStyle)
		row++
		for _, c := range counts {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{c.Label, c.Count}); err != nil {
				return err
			}
			row++
		}
		row++
		return nil
	}
	if err := writeCounts("Location Distribution", r.ByLocation); err != nil {
		return err
	}
	if err := writeCounts("Temperature Status", r.ByStatus); err != nil {
		return err
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)

	idx, err := f.GetSheetIndex(logsSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}

	return f.Write(w)
}
