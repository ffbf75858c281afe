package models

import (
	"testing"
)

const sampleResult = `{
	"decisions": {
		"MSFT": {"action": "short", "quantity": 51, "confidence": 75.0, "reasoning": "Overvalued."},
		"AAPL": {"action": "hold", "quantity": null, "confidence": 55.5, "reasoning": null}
	},
	"analyst_signals": {
		"benjamin_graham_agent": {
			"MSFT": {"signal": "BEARISH", "confidence": 75.0, "reasoning": "No margin of safety."},
			"AAPL": {"signal": "NEUTRAL", "confidence": 45.0, "reasoning": {"valuation": "premium", "liquidity": "weak"}}
		},
		"technical_analyst_agent": {
			"MSFT": {
				"signal": "BULLISH",
				"confidence": 60.0,
				"strategy_signals": {
					"trend_following": {"signal": "bullish", "confidence": 60, "metrics": {"adx": 28.5}}
				}
			}
		}
	}
}`

func TestParseReportResultPreservesOrder(t *testing.T) {
	result, err := ParseReportResult([]byte(sampleResult))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := result.Tickers(); len(got) != 2 || got[0] != "MSFT" || got[1] != "AAPL" {
		t.Errorf("Decision order not preserved: %v", got)
	}

	if len(result.AnalystSignals) != 2 {
		t.Fatalf("Expected 2 agents, got %d", len(result.AnalystSignals))
	}
	if result.AnalystSignals[0].Agent != "benjamin_graham_agent" {
		t.Errorf("Agent order not preserved: %v", result.AnalystSignals[0].Agent)
	}
}

func TestParseReportResultFields(t *testing.T) {
	result, err := ParseReportResult([]byte(sampleResult))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	msft := result.Decisions[0].Decision
	if msft.Action != "short" {
		t.Errorf("Action should be preserved as-is on parse, got %q", msft.Action)
	}
	if msft.Quantity == nil || *msft.Quantity != 51 {
		t.Errorf("Quantity wrong: %v", msft.Quantity)
	}
	if msft.Confidence != 75.0 {
		t.Errorf("Confidence wrong: %v", msft.Confidence)
	}

	aapl := result.Decisions[1].Decision
	if aapl.Quantity != nil {
		t.Errorf("Null quantity should parse as absent, got %v", *aapl.Quantity)
	}
	if !aapl.Reasoning.IsZero() {
		t.Errorf("Null reasoning should parse as empty, got %q", aapl.Reasoning.Raw)
	}
}

func TestParseReportResultStructuredReasoningVerbatim(t *testing.T) {
	result, err := ParseReportResult([]byte(sampleResult))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	signal, ok := result.SignalFor("benjamin_graham_agent", "AAPL")
	if !ok {
		t.Fatal("Missing AAPL signal")
	}
	want := `{"valuation": "premium", "liquidity": "weak"}`
	if signal.Reasoning.Raw != want {
		t.Errorf("Structured reasoning not carried verbatim:\n got %q\nwant %q", signal.Reasoning.Raw, want)
	}
}

func TestParseReportResultStrategySignals(t *testing.T) {
	result, err := ParseReportResult([]byte(sampleResult))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	signal, ok := result.SignalFor("technical_analyst_agent", "MSFT")
	if !ok {
		t.Fatal("Missing technical signal")
	}
	if len(signal.StrategySignals) != 1 {
		t.Fatalf("Expected 1 strategy signal, got %d", len(signal.StrategySignals))
	}
	ss := signal.StrategySignals[0]
	if ss.Strategy != "trend_following" || ss.Signal != "bullish" || ss.Confidence != 60 {
		t.Errorf("Strategy signal wrong: %+v", ss)
	}
	if ss.Metrics != `{"adx": 28.5}` {
		t.Errorf("Metrics not carried verbatim: %q", ss.Metrics)
	}
}

func TestParseReportResultInvalidJSON(t *testing.T) {
	if _, err := ParseReportResult([]byte("{not json")); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

func TestSignalForMissing(t *testing.T) {
	result, _ := ParseReportResult([]byte(sampleResult))
	if _, ok := result.SignalFor("benjamin_graham_agent", "TSLA"); ok {
		t.Error("Missing ticker should report not-found, not an error")
	}
	if _, ok := result.SignalFor("nobody_agent", "MSFT"); ok {
		t.Error("Missing agent should report not-found")
	}
}
