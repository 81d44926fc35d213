package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/englishbay/zoomreport/internal/report"
)

func newTestWriter(dir string) *Writer {
	w := NewWriter(dir, "PST")
	w.now = func() time.Time { return time.Date(2025, 8, 20, 14, 30, 5, 0, time.UTC) }
	return w
}

func TestWrite_Report(t *testing.T) {
	dir := t.TempDir()
	w := newTestWriter(dir)

	rows := []report.Row{
		{Date: "2025-08-20", Time: "10:30", Name: "Alice Liddell"},
		{Date: "2025-08-20", Time: "10:30", Name: "Bob"},
	}

	path, err := w.Write(rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "zoom_attendance_report_20250820_143005.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{sheetName}, f.GetSheetList())

	cells, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, cells, 3)
	assert.Equal(t, []string{"Meeting Date (PST)", "Meeting Time (PST)", "Participant Name"}, cells[0])
	assert.Equal(t, []string{"2025-08-20", "10:30", "Alice Liddell"}, cells[1])
	assert.Equal(t, []string{"2025-08-20", "10:30", "Bob"}, cells[2])
}

func TestWrite_EmptyRows(t *testing.T) {
	w := newTestWriter(t.TempDir())

	path, err := w.Write(nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cells, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, []string{"Message"}, cells[0])
	assert.Equal(t, []string{"No data found"}, cells[1])
}

func TestWrite_ColumnWidthCapped(t *testing.T) {
	w := newTestWriter(t.TempDir())

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	rows := []report.Row{{Date: "2025-08-20", Time: "10:30", Name: string(long)}}

	path, err := w.Write(rows)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(sheetName, "C")
	require.NoError(t, err)
	assert.Equal(t, float64(maxColumnWidth), width)

	width, err = f.GetColWidth(sheetName, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Meeting Date (PST)")+2), width)
}

func TestWrite_BadOutputDir(t *testing.T) {
	w := newTestWriter(filepath.Join(t.TempDir(), "missing", "nested"))

	_, err := w.Write(nil)
	assert.Error(t, err)
}
