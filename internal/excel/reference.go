package excel

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	apperrors "fund-reporter/internal/errors"
	"fund-reporter/internal/logging"
	"fund-reporter/internal/models"
)

// StockAnalysis is one analyzed ticker in a reference export.
type StockAnalysis struct {
	Ticker       string   `json:"ticker"`
	Agent        string   `json:"agent"`
	Signal       string   `json:"signal"`
	CurrentPrice float64  `json:"current_price"`
	TargetPrice  *float64 `json:"target_price,omitempty"`
	Confidence   float64  `json:"confidence"`
	Reasoning    string   `json:"reasoning"`
}

// PositionRecommendation is the primary position in a reference export.
type PositionRecommendation struct {
	Ticker     string  `json:"ticker"`
	Action     string  `json:"action"`
	Quantity   int64   `json:"quantity"`
	EntryPrice float64 `json:"entry_price"`
	TargetExit float64 `json:"target_exit"`
	StopLoss   float64 `json:"stop_loss"`
}

// EconomicFactor is one macro factor with its news references. Up to
// three reference URLs are carried; empty slots render as empty cells.
type EconomicFactor struct {
	Factor  string   `json:"factor"`
	Date    string   `json:"date"`
	Source  string   `json:"source"`
	Summary string   `json:"summary"`
	Detail  string   `json:"detail"`
	RefURLs []string `json:"ref_urls,omitempty"`
}

// ReferenceData is the payload of the demonstration export.
type ReferenceData struct {
	Analysis  []StockAnalysis        `json:"analysis"`
	Primary   PositionRecommendation `json:"primary"`
	Watchlist []string               `json:"watchlist"`
	RiskNotes []string               `json:"risk_notes"`
	Factors   []EconomicFactor       `json:"factors"`
}

// refURLColumns caps the reference-URL columns on the factors sheet.
const refURLColumns = 3

// ReferenceExporter writes the demonstration workbook: stock analysis,
// portfolio recommendation, watchlist, risk notes, and economic factors
// with clickable news references.
type ReferenceExporter struct {
	logger zerolog.Logger
}

// NewReferenceExporter creates a reference exporter.
func NewReferenceExporter(logger zerolog.Logger) *ReferenceExporter {
	return &ReferenceExporter{logger: logger}
}

// Build writes the reference workbook to path.
func (e *ReferenceExporter) Build(data ReferenceData, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := headerStyle(f)
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	link, err := linkStyle(f)
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	wrap, err := wrapStyle(f)
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}

	sheets := 0
	if len(data.Analysis) > 0 {
		if err := e.analysisSheet(f, header, wrap, data.Analysis); err != nil {
			return apperrors.NewExportError(path, "Stock Analysis", err)
		}
		sheets++
	}
	if data.Primary.Ticker != "" {
		if err := e.recommendationSheet(f, header, data.Primary); err != nil {
			return apperrors.NewExportError(path, "Portfolio Recommendation", err)
		}
		sheets++
	}
	if len(data.Watchlist) > 0 {
		if err := e.listSheet(f, header, "Watchlist", "Watchlist Tickers", data.Watchlist); err != nil {
			return apperrors.NewExportError(path, "Watchlist", err)
		}
		sheets++
	}
	if len(data.RiskNotes) > 0 {
		if err := e.listSheet(f, header, "Risk Management", "Risk Management", data.RiskNotes); err != nil {
			return apperrors.NewExportError(path, "Risk Management", err)
		}
		sheets++
	}
	if len(data.Factors) > 0 {
		if err := e.factorsSheet(f, header, link, wrap, data.Factors); err != nil {
			return apperrors.NewExportError(path, "Economic Factors", err)
		}
		sheets++
	}

	if err := dropDefaultSheet(f, sheets); err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	return saveAtomic(f, path)
}

func (e *ReferenceExporter) analysisSheet(f *excelize.File, header, wrap int, analysis []StockAnalysis) error {
	const sheet = "Stock Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	columns := []string{"Ticker", "Agent", "Signal", "Current Price", "Target Price", "Confidence", "Reasoning"}
	if err := writeHeader(f, sheet, header, columns); err != nil {
		return err
	}
	if err := setColumnWidths(f, sheet, []float64{10, 15, 15, 12, 12, 12, 60}); err != nil {
		return err
	}

	for i, a := range analysis {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), a.Ticker); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), a.Agent); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef(3, row), a.Signal); err != nil {
			return err
		}
		if err := e.setNumber(f, sheet, cellRef(4, row), a.CurrentPrice); err != nil {
			return err
		}
		if a.TargetPrice != nil {
			if err := e.setNumber(f, sheet, cellRef(5, row), *a.TargetPrice); err != nil {
				return err
			}
		}
		if err := e.setNumber(f, sheet, cellRef(6, row), a.Confidence); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef(7, row), a.Reasoning); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cellRef(7, row), cellRef(7, row), wrap); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheet, row, 70); err != nil {
			return err
		}
	}
	return nil
}

func (e *ReferenceExporter) recommendationSheet(f *excelize.File, header int, p PositionRecommendation) error {
	const sheet = "Portfolio Recommendation"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	columns := []string{"Ticker", "Action", "Quantity", "Entry Price", "Target Exit", "Stop Loss"}
	if err := writeHeader(f, sheet, header, columns); err != nil {
		return err
	}
	if err := setColumnWidths(f, sheet, []float64{10, 10, 10, 12, 12, 12}); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A2", p.Ticker); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B2", p.Action); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "C2", p.Quantity); err != nil {
		return err
	}
	numbers := []float64{p.EntryPrice, p.TargetExit, p.StopLoss}
	for i, v := range numbers {
		if err := e.setNumber(f, sheet, cellRef(4+i, 2), v); err != nil {
			return err
		}
	}
	return nil
}

func (e *ReferenceExporter) listSheet(f *excelize.File, header int, sheet, column string, items []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeader(f, sheet, header, []string{column}); err != nil {
		return err
	}
	if err := setColumnWidths(f, sheet, []float64{60}); err != nil {
		return err
	}
	for i, item := range items {
		if err := f.SetCellValue(sheet, cellRef(1, i+2), item); err != nil {
			return err
		}
	}
	return nil
}

// factorsSheet writes the economic factors with their reference URLs.
// Each URL cell shows "Reference N" (N is the 1-based position among the
// URL columns), carries the original URL as its hyperlink target, and
// gets the link style.
func (e *ReferenceExporter) factorsSheet(f *excelize.File, header, link, wrap int, factors []EconomicFactor) error {
	const sheet = "Economic Factors"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	columns := []string{"Factor", "Date", "Source", "Summary", "Detail"}
	for i := 0; i < refURLColumns; i++ {
		columns = append(columns, "Reference URL "+strconv.Itoa(i+1))
	}
	if err := writeHeader(f, sheet, header, columns); err != nil {
		return err
	}
	if err := setColumnWidths(f, sheet, []float64{20, 15, 20, 30, 40, 30, 30, 30}); err != nil {
		return err
	}

	for i, factor := range factors {
		row := i + 2
		texts := []string{factor.Factor, factor.Date, factor.Source, factor.Summary, factor.Detail}
		for j, v := range texts {
			if err := f.SetCellValue(sheet, cellRef(1+j, row), v); err != nil {
				return err
			}
		}
		for _, col := range []int{2, 4, 5} {
			if err := f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), wrap); err != nil {
				return err
			}
		}

		for j := 0; j < refURLColumns && j < len(factor.RefURLs); j++ {
			url := factor.RefURLs[j]
			if url == "" {
				continue
			}
			cell := cellRef(6+j, row)
			if err := f.SetCellValue(sheet, cell, "Reference "+strconv.Itoa(j+1)); err != nil {
				return err
			}
			if err := f.SetCellHyperLink(sheet, cell, url, "External"); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, link); err != nil {
				return err
			}
		}

		if err := f.SetRowHeight(sheet, row, 70); err != nil {
			return err
		}
	}
	return nil
}

func (e *ReferenceExporter) setNumber(f *excelize.File, sheet, cell string, v float64) error {
	if !models.IsFinite(v) {
		sheetLogger := logging.WithSheet(e.logger, sheet)
		sheetLogger.Warn().Str("cell", cell).Float64("value", v).
			Msg("non-finite value left empty in workbook")
		return nil
	}
	return f.SetCellValue(sheet, cell, v)
}
