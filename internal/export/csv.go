// Package export writes flat-file exports of backtest output.
package export

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	apperrors "fund-reporter/internal/errors"
	"fund-reporter/internal/models"
)

// tradeRecord is the CSV row shape for one simulated trade. Numeric
// fields are pre-formatted so non-finite values become empty cells
// instead of NaN literals.
type tradeRecord struct {
	Date          string `csv:"date"`
	Ticker        string `csv:"ticker"`
	Action        string `csv:"action"`
	Quantity      string `csv:"quantity"`
	Price         string `csv:"price"`
	SharesOwned   string `csv:"shares_owned"`
	PositionValue string `csv:"position_value"`
	BullishCount  int    `csv:"bullish_count"`
	BearishCount  int    `csv:"bearish_count"`
	NeutralCount  int    `csv:"neutral_count"`
}

// TradesCSVWriter exports trade rows to CSV.
type TradesCSVWriter struct {
	logger zerolog.Logger
}

// NewTradesCSVWriter creates a CSV trades writer.
func NewTradesCSVWriter(logger zerolog.Logger) *TradesCSVWriter {
	return &TradesCSVWriter{logger: logger}
}

// Write exports the trade rows (summary rows excluded) to path, writing
// a temporary file first so failures leave no partial artifact.
func (w *TradesCSVWriter) Write(rows []models.BacktestRow, path string) error {
	trades := models.TradeRows(rows)
	records := make([]*tradeRecord, 0, len(trades))
	for _, t := range trades {
		records = append(records, &tradeRecord{
			Date:          t.Date,
			Ticker:        t.Ticker,
			Action:        t.Action,
			Quantity:      w.number(t.Quantity, 0),
			Price:         w.number(t.Price, 2),
			SharesOwned:   w.number(t.SharesOwned, 0),
			PositionValue: w.number(t.PositionValue, 2),
			BullishCount:  t.BullishCount,
			BearishCount:  t.BearishCount,
			NeutralCount:  t.NeutralCount,
		})
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	tmp, err := os.CreateTemp(dir, ".trades-*.csv")
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	tmpName := tmp.Name()

	if err := gocsv.Marshal(&records, tmp); err != nil {
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

func (w *TradesCSVWriter) number(v float64, decimals int) string {
	if !models.IsFinite(v) {
		w.logger.Warn().Float64("value", v).Msg("non-finite value left empty in CSV")
		return ""
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
