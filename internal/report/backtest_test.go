package report

import (
	"math"
	"strings"
	"testing"

	"fund-reporter/internal/models"
)

func sampleBacktestRows() []models.BacktestRow {
	sharpe := 1.25
	drawdown := -2.5
	return []models.BacktestRow{
		models.TradeRowOf(models.TradeRow{
			Date:          "2025-04-01",
			Ticker:        "MSFT",
			Action:        "short",
			Quantity:      51,
			Price:         385.24,
			SharesOwned:   -51,
			PositionValue: -19647.24,
			BullishCount:  2,
			BearishCount:  8,
			NeutralCount:  4,
		}),
		models.SummaryRowOf(models.SummaryRow{
			Date:               "2025-04-01",
			TotalPositionValue: -19647.24,
			CashBalance:        119647.24,
			TotalValue:         100000.0,
			ReturnPct:          0.0,
		}),
		models.SummaryRowOf(models.SummaryRow{
			Date:               "2025-04-02",
			TotalPositionValue: -18500.0,
			CashBalance:        118600.0,
			TotalValue:         100100.0,
			ReturnPct:          0.1,
			SharpeRatio:        &sharpe,
			MaxDrawdown:        &drawdown,
		}),
	}
}

func TestBacktestReportSummaryBlock(t *testing.T) {
	out := testRenderer().BacktestReport(sampleBacktestRows())

	for _, want := range []string{
		"PORTFOLIO SUMMARY:",
		"Cash Balance: $118,600.00",
		"Total Position Value: -$18,500.00",
		"Total Value: $100,100.00",
		"Return: +0.10%",
		"Sharpe Ratio: 1.25",
		"Max Drawdown: 2.50%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Backtest report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Sortino") {
		t.Errorf("Absent ratio should not be rendered:\n%s", out)
	}
}

func TestBacktestReportTradeTable(t *testing.T) {
	out := testRenderer().BacktestReport(sampleBacktestRows())

	for _, want := range []string{"Date", "Ticker", "Position Value", "MSFT", "SHORT", "385.24"} {
		if !strings.Contains(out, want) {
			t.Errorf("Trade table missing %q:\n%s", want, out)
		}
	}

	// Summary rows never appear in the tabular body.
	if strings.Contains(out, "| 2025-04-02") {
		t.Errorf("Summary row leaked into the trade table:\n%s", out)
	}
}

func TestBacktestReportNonFiniteValues(t *testing.T) {
	rows := []models.BacktestRow{
		models.TradeRowOf(models.TradeRow{
			Date:     "2025-04-01",
			Ticker:   "MSFT",
			Action:   "hold",
			Quantity: math.NaN(),
			Price:    math.Inf(1),
		}),
		models.SummaryRowOf(models.SummaryRow{
			Date:        "2025-04-01",
			CashBalance: math.NaN(),
			TotalValue:  math.Inf(-1),
		}),
	}

	out := testRenderer().BacktestReport(rows)
	if strings.Contains(out, "NaN") || strings.Contains(out, "Inf") || strings.Contains(out, "inf") {
		t.Errorf("Non-finite values must render as absent markers:\n%s", out)
	}
}

func TestBacktestReportNoSummary(t *testing.T) {
	rows := []models.BacktestRow{
		models.TradeRowOf(models.TradeRow{Date: "2025-04-01", Ticker: "MSFT", Action: "buy", Quantity: 1, Price: 10}),
	}

	out := testRenderer().BacktestReport(rows)
	if strings.Contains(out, "Cash Balance") {
		t.Errorf("Summary block should be omitted without a summary row:\n%s", out)
	}
	if !strings.Contains(out, "MSFT") {
		t.Errorf("Trade table missing:\n%s", out)
	}
}
