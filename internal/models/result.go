package models

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Signal is one analyst's directional call for a ticker. The raw signal
// label is preserved verbatim; styling normalizes it separately.
type Signal struct {
	Signal     string
	Confidence float64
	Reasoning  Reasoning

	// StrategySignals carries the per-strategy breakdown some technical
	// analysts attach beside the top-level signal.
	StrategySignals []StrategySignal
}

// StrategySignal is one strategy's contribution to a technical signal.
type StrategySignal struct {
	Strategy   string
	Signal     string
	Confidence float64
	Metrics    string // verbatim JSON of the strategy metrics
}

// Decision is the final action for one ticker.
type Decision struct {
	Action     string
	Quantity   *int64 // absent when the engine did not size the position
	Confidence float64
	Reasoning  Reasoning
}

// TickerDecision pairs a ticker with its decision, preserving input order.
type TickerDecision struct {
	Ticker   string
	Decision Decision
}

// TickerSignal pairs a ticker with one analyst's signal, preserving input order.
type TickerSignal struct {
	Ticker string
	Signal Signal
}

// AnalystSignals holds all of one agent's signals, keyed and ordered by ticker.
type AnalystSignals struct {
	Agent   string
	Signals []TickerSignal
}

// ReportResult is the complete output of an upstream analysis run: the final
// decisions per ticker plus every analyst's signals. Both mappings preserve
// the upstream insertion order. Read-only once constructed.
type ReportResult struct {
	Decisions      []TickerDecision
	AnalystSignals []AnalystSignals
}

// SignalsFor returns the ordered signals for an agent, or nil.
func (r *ReportResult) SignalsFor(agent string) []TickerSignal {
	for _, as := range r.AnalystSignals {
		if as.Agent == agent {
			return as.Signals
		}
	}
	return nil
}

// SignalFor returns one agent's signal for a ticker.
func (r *ReportResult) SignalFor(agent, ticker string) (Signal, bool) {
	for _, ts := range r.SignalsFor(agent) {
		if ts.Ticker == ticker {
			return ts.Signal, true
		}
	}
	return Signal{}, false
}

// Tickers returns the decision tickers in input order.
func (r *ReportResult) Tickers() []string {
	tickers := make([]string, 0, len(r.Decisions))
	for _, td := range r.Decisions {
		tickers = append(tickers, td.Ticker)
	}
	return tickers
}

// ParseReportResult decodes an upstream result document. gjson iteration
// preserves document order, which is what keeps decision and signal maps
// ordered through the pipeline.
func ParseReportResult(data []byte) (*ReportResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("report result is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	result := &ReportResult{}

	doc.Get("decisions").ForEach(func(key, value gjson.Result) bool {
		result.Decisions = append(result.Decisions, TickerDecision{
			Ticker:   key.String(),
			Decision: parseDecision(value),
		})
		return true
	})

	doc.Get("analyst_signals").ForEach(func(agent, signals gjson.Result) bool {
		as := AnalystSignals{Agent: agent.String()}
		signals.ForEach(func(ticker, signal gjson.Result) bool {
			as.Signals = append(as.Signals, TickerSignal{
				Ticker: ticker.String(),
				Signal: parseSignal(signal),
			})
			return true
		})
		result.AnalystSignals = append(result.AnalystSignals, as)
		return true
	})

	return result, nil
}

func parseDecision(value gjson.Result) Decision {
	d := Decision{
		Action:     value.Get("action").String(),
		Confidence: value.Get("confidence").Float(),
		Reasoning:  reasoningFrom(value.Get("reasoning")),
	}
	if qty := value.Get("quantity"); qty.Exists() && qty.Type != gjson.Null {
		n := qty.Int()
		d.Quantity = &n
	}
	return d
}

func parseSignal(value gjson.Result) Signal {
	s := Signal{
		Signal:     value.Get("signal").String(),
		Confidence: value.Get("confidence").Float(),
		Reasoning:  reasoningFrom(value.Get("reasoning")),
	}
	value.Get("strategy_signals").ForEach(func(strategy, details gjson.Result) bool {
		ss := StrategySignal{
			Strategy:   strategy.String(),
			Signal:     details.Get("signal").String(),
			Confidence: details.Get("confidence").Float(),
		}
		if metrics := details.Get("metrics"); metrics.Exists() {
			ss.Metrics = metrics.Raw
		}
		s.StrategySignals = append(s.StrategySignals, ss)
		return true
	})
	return s
}

func reasoningFrom(value gjson.Result) Reasoning {
	if !value.Exists() || value.Type == gjson.Null {
		return Reasoning{}
	}
	return Reasoning{Raw: value.Raw}
}
