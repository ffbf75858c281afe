package report

import (
	"strconv"
	"strings"

	"fund-reporter/internal/models"
	"fund-reporter/pkg/utils"
)

// BacktestReport renders the latest portfolio summary followed by a
// table of trade rows. Summary numbers come straight from the summary
// row's numeric fields; rendered text is never parsed back.
func (r *Renderer) BacktestReport(rows []models.BacktestRow) string {
	var b strings.Builder

	if summary := models.LatestSummary(rows); summary != nil {
		r.writeSummaryBlock(&b, summary)
	}

	b.WriteString("\n")
	b.WriteString(r.tradeTable(models.TradeRows(rows)))
	return b.String()
}

func (r *Renderer) writeSummaryBlock(b *strings.Builder, s *models.SummaryRow) {
	b.WriteString("\n" + r.paint("PORTFOLIO SUMMARY:", StyleHeading) + "\n")
	b.WriteString("Cash Balance: " + r.paint(r.money(s.CashBalance), StyleAccent) + "\n")
	b.WriteString("Total Position Value: " + r.paint(r.money(s.TotalPositionValue), StyleNeutral) + "\n")
	b.WriteString("Total Value: " + r.paint(r.money(s.TotalValue), StyleHeading) + "\n")

	returnStyle := StylePositive
	if s.ReturnPct < 0 {
		returnStyle = StyleNegative
	}
	b.WriteString("Return: " + r.paint(r.signedPercent(s.ReturnPct), returnStyle) + "\n")

	if s.SharpeRatio != nil {
		b.WriteString("Sharpe Ratio: " + r.paint(r.ratio(*s.SharpeRatio), StyleNeutral) + "\n")
	}
	if s.SortinoRatio != nil {
		b.WriteString("Sortino Ratio: " + r.paint(r.ratio(*s.SortinoRatio), StyleNeutral) + "\n")
	}
	if s.MaxDrawdown != nil {
		drawdown := *s.MaxDrawdown
		if drawdown < 0 {
			drawdown = -drawdown
		}
		b.WriteString("Max Drawdown: " + r.paint(r.percent(drawdown), StyleNegative) + "\n")
	}
}

func (r *Renderer) tradeTable(trades []models.TradeRow) string {
	grid := NewGrid(
		"Date", "Ticker", "Action", "Quantity", "Price",
		"Shares", "Position Value", "Bullish", "Bearish", "Neutral",
	).Align(
		AlignLeft, AlignLeft, AlignCenter, AlignRight, AlignRight,
		AlignRight, AlignRight, AlignRight, AlignRight, AlignRight,
	)

	for _, t := range trades {
		style := ActionStyle(t.Action)
		grid.AddRow(
			t.Date,
			r.paint(t.Ticker, StyleTicker),
			r.paint(strings.ToUpper(t.Action), style),
			r.paint(r.count(t.Quantity), style),
			r.amount(t.Price),
			r.count(t.SharesOwned),
			r.paint(r.amount(t.PositionValue), StyleNeutral),
			r.paint(strconv.Itoa(t.BullishCount), StylePositive),
			r.paint(strconv.Itoa(t.BearishCount), StyleNegative),
			r.paint(strconv.Itoa(t.NeutralCount), StyleAccent),
		)
	}
	return grid.Render()
}

func (r *Renderer) amount(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("value", v).Msg("non-finite amount replaced with absent marker")
		return ""
	}
	return utils.FormatThousands(v, 2)
}

func (r *Renderer) count(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("value", v).Msg("non-finite count replaced with absent marker")
		return ""
	}
	return utils.FormatCount(v)
}

func (r *Renderer) percent(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("value", v).Msg("non-finite percent replaced with absent marker")
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func (r *Renderer) signedPercent(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("value", v).Msg("non-finite percent replaced with absent marker")
		return ""
	}
	return utils.FormatSignedPercent(v, 2)
}

func (r *Renderer) ratio(v float64) string {
	if !models.IsFinite(v) {
		r.logger.Warn().Float64("value", v).Msg("non-finite ratio replaced with absent marker")
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
