package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportExcel.
const (
	resultSheet   = "Result"
	boundarySheet = "Boundary"
	cornersSheet  = "Corners"
)

// ExportExcel writes the report as a workbook with a key/value Result
// sheet, the boundary vertex table and the rectangle corners.
func ExportExcel(path string, report Report) error {
	if err := report.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	var rows [][]interface{}
	rows = append(rows, []interface{}{"Section", "Field", "Value"})
	for _, section := range []struct {
		name  string
		items []reportItem
	}{
		{"Boundary", report.boundaryItems()},
		{"Fit Result", report.resultItems()},
		{"Search Settings", report.settingsItems()},
	} {
		for _, item := range section.items {
			rows = append(rows, []interface{}{section.name, item.label, item.value})
		}
	}
	if err := writeRows(f, resultSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(boundarySheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", boundarySheet, err)
	}
	rows = [][]interface{}{{"Vertex", "X", "Y"}}
	for i, p := range report.Boundary.Outline {
		rows = append(rows, []interface{}{i + 1, p.X, p.Y})
	}
	if err := writeRows(f, boundarySheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(cornersSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", cornersSheet, err)
	}
	rows = [][]interface{}{{"Corner", "X", "Y"}}
	for i, c := range report.Result.Corners {
		rows = append(rows, []interface{}{cornerName(i), c.X, c.Y})
	}
	if err := writeRows(f, cornersSheet, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

// writeRows fills a sheet from A1 and bolds the header row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "C", 18)
}
