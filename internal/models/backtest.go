package models

// BacktestRow is a tagged variant: exactly one of Trade or Summary is set.
// The two shapes are never intermixed in the same typed slot.
type BacktestRow struct {
	Trade   *TradeRow
	Summary *SummaryRow
}

// IsSummary reports whether the row is a portfolio summary snapshot.
func (r BacktestRow) IsSummary() bool {
	return r.Summary != nil
}

// TradeRowOf wraps a trade row as a BacktestRow.
func TradeRowOf(t TradeRow) BacktestRow {
	return BacktestRow{Trade: &t}
}

// SummaryRowOf wraps a summary row as a BacktestRow.
func SummaryRowOf(s SummaryRow) BacktestRow {
	return BacktestRow{Summary: &s}
}

// TradeRow is one simulated trade produced by the backtesting engine.
type TradeRow struct {
	Date          string
	Ticker        string
	Action        string
	Quantity      float64
	Price         float64
	SharesOwned   float64
	PositionValue float64
	BullishCount  int
	BearishCount  int
	NeutralCount  int
}

// SummaryRow is a numeric snapshot of portfolio state at a point in a
// backtest. The fields are computed upstream and carried end-to-end;
// renderers read them directly and are the only place that ever formats
// them to text.
type SummaryRow struct {
	Date               string
	TotalPositionValue float64
	CashBalance        float64
	TotalValue         float64
	ReturnPct          float64
	SharpeRatio        *float64
	SortinoRatio       *float64
	MaxDrawdown        *float64
}

// PerformanceRow is one dated row of the performance-metrics series.
type PerformanceRow struct {
	Date   string
	Values []float64
}

// PerformanceSeries is the tabular performance-metrics output of a backtest.
// Values in each row align positionally with Columns.
type PerformanceSeries struct {
	Columns []string
	Rows    []PerformanceRow
}

// LatestSummary returns the most recent summary row in rows, or nil.
func LatestSummary(rows []BacktestRow) *SummaryRow {
	var latest *SummaryRow
	for i := range rows {
		if rows[i].Summary != nil {
			latest = rows[i].Summary
		}
	}
	return latest
}

// TradeRows returns only the trade rows, preserving order.
func TradeRows(rows []BacktestRow) []TradeRow {
	trades := make([]TradeRow, 0, len(rows))
	for _, row := range rows {
		if row.Trade != nil {
			trades = append(trades, *row.Trade)
		}
	}
	return trades
}
