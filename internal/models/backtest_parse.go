package models

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	apperrors "fund-reporter/internal/errors"
)

// BacktestInput bundles everything a backtest run hands to the reporting
// layer: the interleaved trade/summary rows and the performance series.
type BacktestInput struct {
	Rows        []BacktestRow
	Performance PerformanceSeries
}

// ParseBacktestInput decodes a backtest result document. Each element of
// "rows" carries a "type" discriminator of "trade" or "summary"; rows with
// any other tag are rejected so a malformed feed fails loudly instead of
// silently dropping data.
func ParseBacktestInput(data []byte) (*BacktestInput, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", apperrors.ErrInvalidInput)
	}
	doc := gjson.ParseBytes(data)

	input := &BacktestInput{}
	var parseErr error
	doc.Get("rows").ForEach(func(_, row gjson.Result) bool {
		switch row.Get("type").String() {
		case "trade":
			input.Rows = append(input.Rows, TradeRowOf(parseTradeRow(row)))
		case "summary":
			input.Rows = append(input.Rows, SummaryRowOf(parseSummaryRow(row)))
		default:
			parseErr = fmt.Errorf("%w: row type %q", apperrors.ErrInvalidInput, row.Get("type").String())
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	perf := doc.Get("performance")
	if perf.Exists() {
		input.Performance = parsePerformanceSeries(perf)
	}
	return input, nil
}

func parseTradeRow(row gjson.Result) TradeRow {
	return TradeRow{
		Date:          row.Get("date").String(),
		Ticker:        row.Get("ticker").String(),
		Action:        row.Get("action").String(),
		Quantity:      numberOrNaN(row.Get("quantity")),
		Price:         numberOrNaN(row.Get("price")),
		SharesOwned:   numberOrNaN(row.Get("shares_owned")),
		PositionValue: numberOrNaN(row.Get("position_value")),
		BullishCount:  int(row.Get("bullish_count").Int()),
		BearishCount:  int(row.Get("bearish_count").Int()),
		NeutralCount:  int(row.Get("neutral_count").Int()),
	}
}

func parseSummaryRow(row gjson.Result) SummaryRow {
	return SummaryRow{
		Date:               row.Get("date").String(),
		TotalPositionValue: numberOrNaN(row.Get("total_position_value")),
		CashBalance:        numberOrNaN(row.Get("cash_balance")),
		TotalValue:         numberOrNaN(row.Get("total_value")),
		ReturnPct:          numberOrNaN(row.Get("return_pct")),
		SharpeRatio:        optionalNumber(row.Get("sharpe_ratio")),
		SortinoRatio:       optionalNumber(row.Get("sortino_ratio")),
		MaxDrawdown:        optionalNumber(row.Get("max_drawdown")),
	}
}

func parsePerformanceSeries(perf gjson.Result) PerformanceSeries {
	series := PerformanceSeries{}
	perf.Get("columns").ForEach(func(_, col gjson.Result) bool {
		series.Columns = append(series.Columns, col.String())
		return true
	})
	perf.Get("rows").ForEach(func(_, row gjson.Result) bool {
		pr := PerformanceRow{Date: row.Get("date").String()}
		row.Get("values").ForEach(func(_, v gjson.Result) bool {
			pr.Values = append(pr.Values, numberOrNaN(v))
			return true
		})
		series.Rows = append(series.Rows, pr)
		return true
	})
	return series
}

// numberOrNaN maps an absent or null field to NaN so downstream guards
// treat it as unavailable rather than a literal zero.
func numberOrNaN(v gjson.Result) float64 {
	if v.Type != gjson.Number {
		return math.NaN()
	}
	return v.Float()
}

func optionalNumber(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}
