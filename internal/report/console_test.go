package report

import (
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"fund-reporter/internal/analysts"
	"fund-reporter/internal/models"
)

func testRenderer() *Renderer {
	return NewRenderer(PlainStyler{}, analysts.NewOrderingPolicy(), DefaultReasoningWidth, zerolog.Nop())
}

func int64Ptr(v int64) *int64 { return &v }

func singleTickerResult() *models.ReportResult {
	return &models.ReportResult{
		Decisions: []models.TickerDecision{
			{
				Ticker: "MSFT",
				Decision: models.Decision{
					Action:     "SHORT",
					Quantity:   int64Ptr(51),
					Confidence: 75.0,
					Reasoning:  models.ReasoningFromText("Overvalued versus intrinsic value."),
				},
			},
		},
		AnalystSignals: []models.AnalystSignals{
			{
				Agent: "benjamin_graham_agent",
				Signals: []models.TickerSignal{
					{
						Ticker: "MSFT",
						Signal: models.Signal{
							Signal:     "SHORT",
							Confidence: 75.0,
							Reasoning:  models.ReasoningFromText("No margin of safety at this price."),
						},
					},
				},
			},
		},
	}
}

func TestTradingReportEmptyDecisions(t *testing.T) {
	r := testRenderer()

	out := r.TradingReport(&models.ReportResult{})
	if !strings.Contains(out, "No trading decisions available") {
		t.Errorf("Expected empty-decisions notice, got %q", out)
	}
	if strings.Contains(out, "+") || strings.Contains(out, "|") {
		t.Errorf("No tables should be rendered for empty decisions, got %q", out)
	}

	if out2 := r.TradingReport(nil); out2 != out {
		t.Errorf("nil result should render like an empty one")
	}
}

func TestTradingReportSingleTicker(t *testing.T) {
	out := testRenderer().TradingReport(singleTickerResult())

	for _, want := range []string{
		"Analysis for MSFT",
		"AGENT ANALYSIS:",
		"TRADING DECISION:",
		"PORTFOLIO SUMMARY:",
		"Benjamin Graham",
		"SHORT",
		"51",
		"75.0%",
		"Portfolio Strategy:",
		"Overvalued versus intrinsic value.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestTradingReportExcludesRiskManagementAgent(t *testing.T) {
	result := singleTickerResult()
	result.AnalystSignals = append(result.AnalystSignals, models.AnalystSignals{
		Agent: analysts.RiskManagementAgent,
		Signals: []models.TickerSignal{
			{Ticker: "MSFT", Signal: models.Signal{Signal: "NEUTRAL", Confidence: 50}},
		},
	})

	out := testRenderer().TradingReport(result)
	if strings.Contains(out, "Risk Management") {
		t.Errorf("Risk management agent must not appear in the analyst table:\n%s", out)
	}
}

func TestTradingReportAnalystOrdering(t *testing.T) {
	// warren_buffett_agent is configured ahead of valuation_agent, and an
	// unknown agent sorts after every known one.
	result := singleTickerResult()
	result.AnalystSignals = []models.AnalystSignals{
		{
			Agent: "some_new_agent",
			Signals: []models.TickerSignal{
				{Ticker: "MSFT", Signal: models.Signal{Signal: "BULLISH", Confidence: 10}},
			},
		},
		{
			Agent: analysts.ValuationAgent,
			Signals: []models.TickerSignal{
				{Ticker: "MSFT", Signal: models.Signal{Signal: "BEARISH", Confidence: 20}},
			},
		},
		{
			Agent: "warren_buffett_agent",
			Signals: []models.TickerSignal{
				{Ticker: "MSFT", Signal: models.Signal{Signal: "NEUTRAL", Confidence: 30}},
			},
		},
	}

	out := testRenderer().TradingReport(result)
	buffett := strings.Index(out, "Warren Buffett")
	valuation := strings.Index(out, "Valuation")
	unknown := strings.Index(out, "Some New")
	if buffett == -1 || valuation == -1 || unknown == -1 {
		t.Fatalf("Missing analyst rows:\n%s", out)
	}
	if !(buffett < valuation && valuation < unknown) {
		t.Errorf("Rows out of order: buffett=%d valuation=%d unknown=%d", buffett, valuation, unknown)
	}
}

func TestTradingReportPreservesRawSignalLabel(t *testing.T) {
	result := singleTickerResult()
	result.AnalystSignals[0].Signals[0].Signal.Signal = "NEUTRAL (WATCH)"

	out := testRenderer().TradingReport(result)
	if !strings.Contains(out, "NEUTRAL (WATCH)") {
		t.Errorf("Raw signal label should pass through verbatim:\n%s", out)
	}
}

func TestTradingReportNonFiniteConfidence(t *testing.T) {
	result := singleTickerResult()
	result.AnalystSignals[0].Signals[0].Signal.Confidence = math.NaN()

	out := testRenderer().TradingReport(result)
	if strings.Contains(out, "NaN") {
		t.Errorf("NaN must never be rendered:\n%s", out)
	}
}

func TestTradingReportOutOfRangeConfidencePassesThrough(t *testing.T) {
	result := singleTickerResult()
	result.AnalystSignals[0].Signals[0].Signal.Confidence = 140

	out := testRenderer().TradingReport(result)
	if !strings.Contains(out, "140%") {
		t.Errorf("Out-of-range confidence should render unclamped:\n%s", out)
	}
}

func TestTradingReportAbsentQuantity(t *testing.T) {
	result := singleTickerResult()
	result.Decisions[0].Decision.Quantity = nil

	out := testRenderer().TradingReport(result)
	if !strings.Contains(out, "Quantity") {
		t.Fatalf("Decision block missing quantity label:\n%s", out)
	}
	if strings.Contains(out, "<nil>") {
		t.Errorf("Absent quantity rendered incorrectly:\n%s", out)
	}
}

func TestTradingReportANSIStyling(t *testing.T) {
	r := NewRenderer(ANSIStyler{Enabled: true}, analysts.NewOrderingPolicy(), DefaultReasoningWidth, zerolog.Nop())
	out := r.TradingReport(singleTickerResult())

	if !strings.Contains(out, "\x1b[") {
		t.Errorf("Expected ANSI sequences in styled output")
	}
	if VisibleWidth("\x1b[31mSHORT\x1b[0m") != 5 {
		t.Errorf("VisibleWidth should ignore ANSI sequences")
	}
}
