package excel

import (
	"path/filepath"
	"time"
)

// DefaultPath builds the timestamp-derived workbook path for a given
// context, e.g. analysis-20250412-0930.xlsx.
func DefaultPath(dir, context string, now time.Time) string {
	return filepath.Join(dir, context+"-"+now.Format("20060102-1504")+".xlsx")
}

// ReferencePath builds the demonstration export's path, keeping its
// date-first naming, e.g. 2025-04-12-0930-stocks.xlsx.
func ReferencePath(dir string, now time.Time) string {
	return filepath.Join(dir, now.Format("2006-01-02-1504")+"-stocks.xlsx")
}
