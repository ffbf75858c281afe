package excel

import (
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	apperrors "fund-reporter/internal/errors"
	"fund-reporter/internal/logging"
	"fund-reporter/internal/models"
)

// BacktestWorkbookBuilder exports backtest output: the simulated trades
// and the performance-metrics series, one sheet each.
type BacktestWorkbookBuilder struct {
	logger zerolog.Logger
}

// NewBacktestWorkbookBuilder creates a backtest workbook builder.
func NewBacktestWorkbookBuilder(logger zerolog.Logger) *BacktestWorkbookBuilder {
	return &BacktestWorkbookBuilder{logger: logger}
}

// Build writes the Trades and Performance sheets to path. Summary rows
// are excluded from the trades sheet; they are rendered on the console
// instead.
func (b *BacktestWorkbookBuilder) Build(rows []models.BacktestRow, perf models.PerformanceSeries, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := headerStyle(f)
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}

	sheets := 0
	added, err := b.tradesSheet(f, header, models.TradeRows(rows))
	if err != nil {
		return apperrors.NewExportError(path, "Trades", err)
	}
	if added {
		sheets++
	}

	added, err = b.performanceSheet(f, header, perf)
	if err != nil {
		return apperrors.NewExportError(path, "Performance", err)
	}
	if added {
		sheets++
	}

	if err := dropDefaultSheet(f, sheets); err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	return saveAtomic(f, path)
}

func (b *BacktestWorkbookBuilder) tradesSheet(f *excelize.File, header int, trades []models.TradeRow) (bool, error) {
	if len(trades) == 0 {
		return false, nil
	}

	const sheet = "Trades"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	columns := []string{
		"Date", "Ticker", "Action", "Quantity", "Price",
		"Shares Owned", "Position Value", "Bullish Count", "Bearish Count", "Neutral Count",
	}
	if err := writeHeader(f, sheet, header, columns); err != nil {
		return false, err
	}
	widths := make([]float64, len(columns))
	for i := range widths {
		widths[i] = 15
	}
	if err := setColumnWidths(f, sheet, widths); err != nil {
		return false, err
	}

	for i, t := range trades {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), t.Date); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), t.Ticker); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(3, row), t.Action); err != nil {
			return false, err
		}
		numbers := []float64{t.Quantity, t.Price, t.SharesOwned, t.PositionValue}
		for j, v := range numbers {
			if err := b.setNumber(f, sheet, cellRef(4+j, row), v); err != nil {
				return false, err
			}
		}
		counts := []int{t.BullishCount, t.BearishCount, t.NeutralCount}
		for j, v := range counts {
			if err := f.SetCellValue(sheet, cellRef(8+j, row), v); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

func (b *BacktestWorkbookBuilder) performanceSheet(f *excelize.File, header int, perf models.PerformanceSeries) (bool, error) {
	if len(perf.Rows) == 0 {
		return false, nil
	}

	const sheet = "Performance"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	columns := append([]string{"Date"}, perf.Columns...)
	if err := writeHeader(f, sheet, header, columns); err != nil {
		return false, err
	}
	widths := make([]float64, len(columns))
	for i := range widths {
		widths[i] = 15
	}
	if err := setColumnWidths(f, sheet, widths); err != nil {
		return false, err
	}

	for i, pr := range perf.Rows {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), pr.Date); err != nil {
			return false, err
		}
		for j, v := range pr.Values {
			if j >= len(perf.Columns) {
				break
			}
			if err := b.setNumber(f, sheet, cellRef(2+j, row), v); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

func (b *BacktestWorkbookBuilder) setNumber(f *excelize.File, sheet, cell string, v float64) error {
	if !models.IsFinite(v) {
		sheetLogger := logging.WithSheet(b.logger, sheet)
		sheetLogger.Warn().Str("cell", cell).Float64("value", v).
			Msg("non-finite value left empty in workbook")
		return nil
	}
	return f.SetCellValue(sheet, cell, v)
}
