package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fund-reporter/internal/excel"
)

func newReferenceExportCmd(app *App) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "reference-export [file]",
		Short: "Export a reference analysis workbook",
		Long: `Export a reference analysis workbook with stock analysis, a portfolio
recommendation, watchlist, risk notes, and economic factors with
clickable news references.

With a file argument, the workbook is built from that JSON document.
Without one, a built-in sample dataset is exported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config)

			data := sampleReferenceData()
			if len(args) > 0 {
				raw, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading %s: %w", args[0], err)
				}
				if err := json.Unmarshal(raw, &data); err != nil {
					return fmt.Errorf("parsing %s: %w", args[0], err)
				}
			}

			path := outputPath
			if path == "" {
				path = excel.ReferencePath(app.Config.Export.OutputDir, time.Now())
			}

			exporter := excel.NewReferenceExporter(app.Logger)
			if err := exporter.Build(data, path); err != nil {
				return err
			}

			recordRun(cmd.Context(), app, "reference", path, analysisTickers(data))

			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("Exported reference workbook to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "destination path (default: <output_dir>/<date>-<time>-stocks.xlsx)")
	return cmd
}

func analysisTickers(data excel.ReferenceData) []string {
	tickers := make([]string, 0, len(data.Analysis))
	for _, a := range data.Analysis {
		tickers = append(tickers, a.Ticker)
	}
	return tickers
}

func floatPtr(v float64) *float64 { return &v }

// sampleReferenceData is the built-in demonstration dataset.
func sampleReferenceData() excel.ReferenceData {
	return excel.ReferenceData{
		Analysis: []excel.StockAnalysis{
			{
				Ticker:       "MSFT",
				Agent:        "Benjamin Graham",
				Signal:       "BEARISH",
				CurrentPrice: 385.24,
				TargetPrice:  floatPtr(308.19),
				Confidence:   75.0,
				Reasoning:    "The stock trades far above the Graham Number, eliminating the margin of safety. While the current ratio of 2.47 exceeds Graham's 2.0 threshold and the debt ratio of 0.54 remains within acceptable bounds, the extreme valuation disconnect cannot be ignored.",
			},
			{
				Ticker:       "NVDA",
				Agent:        "Benjamin Graham",
				Signal:       "NEUTRAL",
				CurrentPrice: 106.84,
				Confidence:   35.0,
				Reasoning:    "Strong financial health (current ratio 2.57, conservative debt ratio 0.38), but the extreme valuation is concerning. Leadership in AI chips gives upside that offsets the valuation concerns.",
			},
			{
				Ticker:       "NEM",
				Agent:        "Benjamin Graham",
				Signal:       "NEUTRAL (WATCH)",
				CurrentPrice: 54.51,
				Confidence:   35.0,
				Reasoning:    "Excellent financial strength (current ratio 3.52, debt ratio 0.43) but mixed earnings history. May benefit from gold's rising price trends; worth monitoring as trade tensions persist.",
			},
			{
				Ticker:       "BA",
				Agent:        "Benjamin Graham",
				Signal:       "BEARISH",
				CurrentPrice: 175.41,
				Confidence:   80.0,
				Reasoning:    "Multiple fundamental weaknesses. The current ratio of 1.35 falls below Graham's 2.0 liquidity requirement, the debt ratio of 0.93 indicates excessive leverage, and earnings are unstable with negative EPS in multiple periods.",
			},
		},
		Primary: excel.PositionRecommendation{
			Ticker:     "MSFT",
			Action:     "SHORT",
			Quantity:   51,
			EntryPrice: 385.24,
			TargetExit: 308.19,
			StopLoss:   424.0,
		},
		Watchlist: []string{"NEM", "JPM", "CVX"},
		RiskNotes: []string{
			"Set stop-loss on MSFT short at $424 (10% above entry)",
			"Implement trailing stops to lock in profits",
			"Maintain position sizes below 20% of portfolio value",
			"Monitor trade war developments closely",
		},
		Factors: []excel.EconomicFactor{
			{
				Factor:  "Trade War Developments",
				Date:    "April 5, 2025",
				Source:  "Currency News, Yahoo Finance",
				Summary: "Historic $2 trillion was wiped off the US stock market as trade tensions escalate. The S&P 500 posted a 4.8% decline, its sharpest slide since 2020.",
				Detail:  "Watch for escalation or de-escalation of tariffs, especially between US and China.",
				RefURLs: []string{
					"https://www.currencynews.co.uk/forecast/20250405-42696_pound-dives-vs-euro-and-dollar-as-2-trillion-wiped-off-us-stock-market.html",
					"https://finance.yahoo.com/news/stocks-bonds-other-markets-fared-190055002.html",
				},
			},
			{
				Factor:  "Federal Reserve Policy",
				Date:    "April 2024",
				Source:  "IMF World Economic Outlook",
				Summary: "Global inflation is forecast to decline steadily, from 6.8% in 2023 to 5.9% in 2024 and 4.5% in 2025.",
				Detail:  "Monitor interest rate decisions; rates held high for longer than expected would pressure tech valuations further.",
				RefURLs: []string{
					"https://www.imf.org/en/Publications/WEO/Issues/2024/04/16/world-economic-outlook-april-2024",
				},
			},
			{
				Factor:  "Gold Prices",
				Date:    "April 2025",
				Source:  "Yahoo Finance, JPMorgan",
				Summary: "Gold reached record highs near $3,343 per troy ounce, with analysts projecting prices above $4,000/oz by Q2 2026.",
				Detail:  "Track gold performance as a barometer of global uncertainty.",
				RefURLs: []string{
					"https://finance.yahoo.com/news/stocks-bonds-other-markets-fared-190055002.html",
					"https://www.marketscreener.com/quote/stock/JPMORGAN-CHASE-CO-37468997/news/JP-Morgan-see-gold-prices-crossing-4-000-oz-by-Q2-2026-49680068/",
				},
			},
			{
				Factor:  "Earnings Reports",
				Date:    "April 11, 2025",
				Source:  "Market Screener",
				Summary: "JPMorgan logged Q1 profit of $14.6 billion as its CEO warned of uncertainty over global trade.",
				Detail:  "Pay special attention to how companies are being affected by trade tensions in their quarterly reports.",
				RefURLs: []string{
					"https://www.marketscreener.com/quote/stock/JPMORGAN-CHASE-CO-37468997/news/JPMorgan-logs-Q1-profit-of-14-6-billion-as-CEO-warns-of-uncertainty-over-global-trade-other-events-49597780/",
				},
			},
			{
				Factor:  "Market Volatility",
				Date:    "April 2024",
				Source:  "JMG Financial Group, Schroders",
				Summary: "Stocks ended April lower as benchmark indices endured their first downturn in months on the Federal Reserve's intent to hold rates at a two-decade high.",
				Detail:  "Consumer confidence fell to its lowest level since 2022, with labor costs rising the most in a year.",
				RefURLs: []string{
					"https://www.jmgfinancial.com/why-did-stocks-pull-back-in-april/",
					"https://www.schroders.com/en/global/individual/insights/monthly-markets-review---april-2024/",
				},
			},
		},
	}
}
