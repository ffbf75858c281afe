package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"fund-reporter/internal/analysts"
	"fund-reporter/internal/models"
	"fund-reporter/pkg/utils"
)

// DefaultReasoningWidth is the column width reasoning text wraps to.
const DefaultReasoningWidth = 60

// Renderer produces the console trading report and backtest report. It
// writes nothing itself; callers print the returned text. The input
// result is never mutated, so a renderer and a workbook builder can
// consume the same result concurrently.
type Renderer struct {
	styler Styler
	policy *analysts.OrderingPolicy
	width  int
	logger zerolog.Logger
}

// NewRenderer creates a renderer with the given style backend and
// analyst ordering policy.
func NewRenderer(styler Styler, policy *analysts.OrderingPolicy, width int, logger zerolog.Logger) *Renderer {
	if width <= 0 {
		width = DefaultReasoningWidth
	}
	return &Renderer{
		styler: styler,
		policy: policy,
		width:  width,
		logger: logger,
	}
}

// TradingReport renders per-ticker analyst tables, decision blocks, and
// the portfolio summary. An empty decision set yields only a notice.
func (r *Renderer) TradingReport(result *models.ReportResult) string {
	if result == nil || len(result.Decisions) == 0 {
		return r.paint("No trading decisions available", StyleNegative) + "\n"
	}

	var b strings.Builder
	for _, td := range result.Decisions {
		r.writeTickerAnalysis(&b, result, td)
	}
	r.writePortfolioSummary(&b, result)
	return b.String()
}

func (r *Renderer) writeTickerAnalysis(b *strings.Builder, result *models.ReportResult, td models.TickerDecision) {
	ticker := r.paint(td.Ticker, StyleTicker)
	b.WriteString("\n" + r.paint("Analysis for ", StyleHeading) + ticker + "\n")
	b.WriteString(r.paint(strings.Repeat("=", 50), StyleHeading) + "\n")

	b.WriteString("\n" + r.paint("AGENT ANALYSIS:", StyleHeading) + " [" + ticker + "]\n")
	b.WriteString(r.analystTable(result, td.Ticker))

	b.WriteString("\n" + r.paint("TRADING DECISION:", StyleHeading) + " [" + ticker + "]\n")
	b.WriteString(r.decisionBlock(td.Decision))
}

type analystRow struct {
	display string
	rank    int
	cells   []string
}

// analystTable builds the sorted per-ticker analyst table. The risk
// management agent is consumed elsewhere and never shown here.
func (r *Renderer) analystTable(result *models.ReportResult, ticker string) string {
	var rows []analystRow
	for _, as := range result.AnalystSignals {
		if as.Agent == analysts.RiskManagementAgent {
			continue
		}
		var signal models.Signal
		found := false
		for _, ts := range as.Signals {
			if ts.Ticker == ticker {
				signal = ts.Signal
				found = true
				break
			}
		}
		if !found {
			continue
		}

		display := analysts.DisplayName(as.Agent)
		reasoning := WrapString(Normalize(signal.Reasoning).Display, r.width)
		rows = append(rows, analystRow{
			display: display,
			rank:    r.policy.Rank(display),
			cells: []string{
				r.paint(display, StyleAccent),
				r.paint(signal.Signal, SignalStyle(signal.Signal)),
				r.confidenceCell(signal.Confidence),
				reasoning,
			},
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].rank < rows[j].rank
	})

	grid := NewGrid("Agent", "Signal", "Confidence", "Reasoning").
		Align(AlignLeft, AlignCenter, AlignRight, AlignLeft)
	for _, row := range rows {
		grid.AddRow(row.cells...)
	}
	return grid.Render()
}

func (r *Renderer) decisionBlock(d models.Decision) string {
	action := strings.ToUpper(d.Action)
	style := ActionStyle(d.Action)

	quantity := ""
	if d.Quantity != nil {
		quantity = strconv.FormatInt(*d.Quantity, 10)
	}
	reasoning := WrapString(Normalize(d.Reasoning).Display, r.width)

	grid := NewGrid("", "").Align(AlignLeft, AlignLeft)
	grid.AddRow("Action", r.paint(action, style))
	grid.AddRow("Quantity", r.paint(quantity, style))
	grid.AddRow("Confidence", r.fixedConfidenceCell(d.Confidence))
	grid.AddRow("Reasoning", reasoning)
	return grid.Render()
}

// writePortfolioSummary renders the summary table over all tickers plus
// the first non-empty decision reasoning as the portfolio strategy.
func (r *Renderer) writePortfolioSummary(b *strings.Builder, result *models.ReportResult) {
	b.WriteString("\n" + r.paint("PORTFOLIO SUMMARY:", StyleHeading) + "\n")

	grid := NewGrid("Ticker", "Action", "Quantity", "Confidence").
		Align(AlignLeft, AlignCenter, AlignRight, AlignRight)
	for _, td := range result.Decisions {
		action := strings.ToUpper(td.Decision.Action)
		style := ActionStyle(td.Decision.Action)
		quantity := ""
		if td.Decision.Quantity != nil {
			quantity = strconv.FormatInt(*td.Decision.Quantity, 10)
		}
		grid.AddRow(
			r.paint(td.Ticker, StyleTicker),
			r.paint(action, style),
			r.paint(quantity, style),
			r.fixedConfidenceCell(td.Decision.Confidence),
		)
	}
	b.WriteString(grid.Render())

	// The portfolio manager's narrative is shared across tickers; the
	// first non-empty decision reasoning stands in for it.
	for _, td := range result.Decisions {
		if td.Decision.Reasoning.IsZero() {
			continue
		}
		strategy := WrapString(Normalize(td.Decision.Reasoning).Display, r.width)
		b.WriteString("\n" + r.paint("Portfolio Strategy:", StyleHeading) + "\n")
		b.WriteString(r.paint(strategy, StyleAccent) + "\n")
		break
	}
}

// confidenceCell renders a confidence as its literal numeric value with
// a trailing percent sign. Out-of-range values pass through unchanged;
// non-finite values become an absent marker.
func (r *Renderer) confidenceCell(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("confidence", v).Msg("non-finite confidence replaced with absent marker")
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// fixedConfidenceCell is confidenceCell at one decimal place.
func (r *Renderer) fixedConfidenceCell(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("confidence", v).Msg("non-finite confidence replaced with absent marker")
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func (r *Renderer) paint(text string, style Style) string {
	return r.styler.Paint(text, style)
}

// money formats a dollar amount, substituting the absent marker for
// non-finite values.
func (r *Renderer) money(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("value", v).Msg("non-finite amount replaced with absent marker")
		return ""
	}
	return utils.FormatUSD(v)
}
