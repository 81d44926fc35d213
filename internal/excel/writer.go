package excel

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/englishbay/zoomreport/internal/report"
)

const (
	sheetName = "Attendance Report"

	// Column widths grow with content but are capped to keep the sheet usable.
	maxColumnWidth = 50
)

// Writer saves attendance reports as timestamped .xlsx files.
type Writer struct {
	outputDir string
	tzLabel   string
	now       func() time.Time
}

// NewWriter creates a Writer that places files in outputDir and labels the
// date/time columns with tzLabel.
func NewWriter(outputDir, tzLabel string) *Writer {
	return &Writer{
		outputDir: outputDir,
		tzLabel:   tzLabel,
		now:       time.Now,
	}
}

// Write saves the rows to a new workbook and returns its path. An empty row
// list produces a single-cell "No data found" sheet so that a scheduled run
// still leaves an artifact behind.
func (w *Writer) Write(rows []report.Row) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default workbook starts with "Sheet1".
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name report sheet: %w", err)
	}

	var columns [][]string
	if len(rows) == 0 {
		columns = [][]string{{"Message", "No data found"}}
	} else {
		columns = [][]string{
			{fmt.Sprintf("Meeting Date (%s)", w.tzLabel)},
			{fmt.Sprintf("Meeting Time (%s)", w.tzLabel)},
			{"Participant Name"},
		}
		for _, row := range rows {
			columns[0] = append(columns[0], row.Date)
			columns[1] = append(columns[1], row.Time)
			columns[2] = append(columns[2], row.Name)
		}
	}

	for col, values := range columns {
		width := 0
		for rowIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+1)
			if err != nil {
				return "", fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
			if len(value) > width {
				width = len(value)
			}
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return "", fmt.Errorf("failed to resolve column name: %w", err)
		}
		if width += 2; width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width)); err != nil {
			return "", fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	filename := fmt.Sprintf("zoom_attendance_report_%s.xlsx", w.now().Format("20060102_150405"))
	path := filepath.Join(w.outputDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report workbook: %w", err)
	}
	return path, nil
}
