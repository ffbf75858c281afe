package models

import "time"

// Price is one OHLCV record from the price-history upstream.
type Price struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// PriceHistory is the passthrough response shape for one ticker.
type PriceHistory struct {
	Ticker string  `json:"ticker"`
	Prices []Price `json:"prices"`
}

// ExportRun records one completed export for the run-history archive.
type ExportRun struct {
	ID        int64
	Timestamp time.Time
	Kind      string // "analysis", "backtest", "reference", "trades-csv"
	Path      string
	Tickers   []string
}
