// Package excel builds multi-sheet workbook exports of analysis and
// backtest results.
package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "fund-reporter/internal/errors"
)

// sheetNameLimit is the sheet-name length cap the xlsx sink enforces.
const sheetNameLimit = 31

// sheetName truncates a display name to the sink's identifier cap. The
// cut counts runes so a multi-byte name is never split mid-character,
// and the same input always truncates to the same result.
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) > sheetNameLimit {
		return string(runes[:sheetNameLimit])
	}
	return name
}

// headerStyle returns the bold, bordered, filled style applied to every
// sheet's first row.
func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D7E4BC"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
}

// linkStyle returns the underlined hyperlink style.
func linkStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0000FF", Underline: "single"},
	})
}

// wrapStyle returns the wrapped-text style for long prose cells.
func wrapStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
}

// writeHeader writes the header row and applies the header style.
func writeHeader(f *excelize.File, sheet string, style int, columns []string) error {
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// setColumnWidths applies per-column widths, positionally.
func setColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return err
		}
	}
	return nil
}

// saveAtomic writes the workbook to a temporary file in the destination
// directory and renames it into place, so a failed build never leaves a
// partial file at the final path.
func saveAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewExportError(path, "", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.xlsx")
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewExportError(path, "", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewExportError(path, "", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewExportError(path, "", err)
	}
	return nil
}

// defaultSheet is the sheet excelize creates in a new workbook; it is
// removed once at least one data sheet exists.
const defaultSheet = "Sheet1"

// dropDefaultSheet removes the placeholder sheet when the workbook has
// real content.
func dropDefaultSheet(f *excelize.File, dataSheets int) error {
	if dataSheets == 0 {
		return nil
	}
	return f.DeleteSheet(defaultSheet)
}

// cellRef formats a one-based coordinate pair, panicking only on
// impossible coordinates.
func cellRef(col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(fmt.Sprintf("invalid cell coordinates (%d,%d): %v", col, row, err))
	}
	return cell
}
