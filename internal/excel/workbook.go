package excel

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"

	"fund-reporter/internal/analysts"
	apperrors "fund-reporter/internal/errors"
	"fund-reporter/internal/logging"
	"fund-reporter/internal/models"
	"fund-reporter/internal/report"
)

// WorkbookBuilder exports a ReportResult to a multi-sheet workbook:
// decisions, aggregated signals, one sheet per analyst, and the
// specialized technical, fundamental, and sentiment sheets. Sheets with
// no source data are omitted entirely.
type WorkbookBuilder struct {
	logger zerolog.Logger
}

// NewWorkbookBuilder creates a workbook builder.
func NewWorkbookBuilder(logger zerolog.Logger) *WorkbookBuilder {
	return &WorkbookBuilder{logger: logger}
}

// Build writes the workbook to path. The file appears at the final path
// only after every sheet is built and flushed; on failure no artifact is
// left behind.
func (b *WorkbookBuilder) Build(result *models.ReportResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := headerStyle(f)
	if err != nil {
		return apperrors.NewExportError(path, "", err)
	}

	sheets := 0
	steps := []struct {
		name  string
		build func(*excelize.File, int, *models.ReportResult) (bool, error)
	}{
		{"Trading Decisions", b.decisionsSheet},
		{"Analyst Signals", b.signalsSheet},
		{"", b.analystSheets},
		{"Technical Analysis", b.technicalSheet},
		{"Fundamental Analysis", b.fundamentalSheet},
		{"Sentiment Analysis", b.sentimentSheet},
	}
	for _, step := range steps {
		added, err := step.build(f, header, result)
		if err != nil {
			return apperrors.NewExportError(path, step.name, err)
		}
		if added {
			sheets++
		}
	}

	if err := dropDefaultSheet(f, sheets); err != nil {
		return apperrors.NewExportError(path, "", err)
	}
	return saveAtomic(f, path)
}

func (b *WorkbookBuilder) decisionsSheet(f *excelize.File, header int, result *models.ReportResult) (bool, error) {
	if len(result.Decisions) == 0 {
		return false, nil
	}

	const sheet = "Trading Decisions"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	if err := writeHeader(f, sheet, header, []string{"Ticker", "Action", "Quantity", "Confidence", "Reasoning"}); err != nil {
		return false, err
	}
	if err := setColumnWidths(f, sheet, []float64{20, 20, 20, 20, 50}); err != nil {
		return false, err
	}

	for i, td := range result.Decisions {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), td.Ticker); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), strings.ToUpper(td.Decision.Action)); err != nil {
			return false, err
		}
		if td.Decision.Quantity != nil {
			if err := f.SetCellValue(sheet, cellRef(3, row), *td.Decision.Quantity); err != nil {
				return false, err
			}
		}
		if err := b.setNumber(f, sheet, cellRef(4, row), td.Decision.Confidence); err != nil {
			return false, err
		}
		display := report.Normalize(td.Decision.Reasoning).Display
		if err := f.SetCellValue(sheet, cellRef(5, row), display); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (b *WorkbookBuilder) signalsSheet(f *excelize.File, header int, result *models.ReportResult) (bool, error) {
	type signalRow struct {
		ticker string
		agent  string
		signal models.Signal
	}
	var rows []signalRow
	for _, as := range result.AnalystSignals {
		for _, ts := range as.Signals {
			rows = append(rows, signalRow{ticker: ts.Ticker, agent: as.Agent, signal: ts.Signal})
		}
	}
	if len(rows) == 0 {
		return false, nil
	}

	const sheet = "Analyst Signals"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	if err := writeHeader(f, sheet, header, []string{"Ticker", "Analyst", "Signal", "Confidence", "Reasoning"}); err != nil {
		return false, err
	}
	if err := setColumnWidths(f, sheet, []float64{20, 20, 20, 20, 50}); err != nil {
		return false, err
	}

	for i, sr := range rows {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), sr.ticker); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), analysts.DisplayName(sr.agent)); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(3, row), sr.signal.Signal); err != nil {
			return false, err
		}
		if err := b.setNumber(f, sheet, cellRef(4, row), sr.signal.Confidence); err != nil {
			return false, err
		}
		display := report.Normalize(sr.signal.Reasoning).Display
		if err := f.SetCellValue(sheet, cellRef(5, row), display); err != nil {
			return false, err
		}
	}
	return true, nil
}

// analystSheets builds one sheet per analyst, skipping the risk and
// portfolio management identities. Columns beyond the fixed four come
// from the analyst's flattened reasoning aspects; an aspect seen on any
// row is declared for every row, empty where absent.
func (b *WorkbookBuilder) analystSheets(f *excelize.File, header int, result *models.ReportResult) (bool, error) {
	added := false
	for _, as := range result.AnalystSignals {
		if as.Agent == analysts.RiskManagementAgent || as.Agent == analysts.PortfolioManagementAgent {
			continue
		}
		if len(as.Signals) == 0 {
			continue
		}
		if err := b.analystSheet(f, header, as); err != nil {
			return added, err
		}
		added = true
	}
	return added, nil
}

func (b *WorkbookBuilder) analystSheet(f *excelize.File, header int, as models.AnalystSignals) error {
	sheet := sheetName(analysts.DisplayName(as.Agent))
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// First pass: flatten every row and collect the aspect columns in
	// first-seen order.
	normalized := make([]report.Normalized, len(as.Signals))
	var aspects []string
	seen := make(map[string]bool)
	for i, ts := range as.Signals {
		normalized[i] = report.Normalize(ts.Signal.Reasoning)
		for _, col := range normalized[i].Columns {
			if !seen[col.Aspect] {
				seen[col.Aspect] = true
				aspects = append(aspects, col.Aspect)
			}
		}
	}

	columns := append([]string{"Ticker", "Signal", "Confidence", "Reasoning"}, aspects...)
	if err := writeHeader(f, sheet, header, columns); err != nil {
		return err
	}
	widths := []float64{15, 15, 15, 50}
	for range aspects {
		widths = append(widths, 30)
	}
	if err := setColumnWidths(f, sheet, widths); err != nil {
		return err
	}

	for i, ts := range as.Signals {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), ts.Ticker); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), ts.Signal.Signal); err != nil {
			return err
		}
		if err := b.setNumber(f, sheet, cellRef(3, row), ts.Signal.Confidence); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef(4, row), normalized[i].Display); err != nil {
			return err
		}

		cells := make(map[string]string, len(normalized[i].Columns))
		for _, col := range normalized[i].Columns {
			cells[col.Aspect] = col.Cell
		}
		for j, aspect := range aspects {
			if cell, ok := cells[aspect]; ok {
				if err := f.SetCellValue(sheet, cellRef(5+j, row), cell); err != nil {
					return err
				}
			}
		}
	}
	agentLogger := logging.WithAgent(b.logger, as.Agent)
	agentLogger.Debug().
		Str("sheet", sheet).Int("rows", len(as.Signals)).Msg("analyst sheet written")
	return nil
}

// technicalSheet explodes the technical analyst's per-strategy signals.
func (b *WorkbookBuilder) technicalSheet(f *excelize.File, header int, result *models.ReportResult) (bool, error) {
	type stratRow struct {
		ticker string
		ss     models.StrategySignal
	}
	var rows []stratRow
	for _, ts := range result.SignalsFor(analysts.TechnicalAnalystAgent) {
		for _, ss := range ts.Signal.StrategySignals {
			rows = append(rows, stratRow{ticker: ts.Ticker, ss: ss})
		}
	}
	if len(rows) == 0 {
		return false, nil
	}

	const sheet = "Technical Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	if err := writeHeader(f, sheet, header, []string{"Ticker", "Strategy", "Signal", "Confidence", "Metrics"}); err != nil {
		return false, err
	}
	if err := setColumnWidths(f, sheet, []float64{20, 20, 20, 20, 40}); err != nil {
		return false, err
	}

	for i, sr := range rows {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), sr.ticker); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), sr.ss.Strategy); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(3, row), sr.ss.Signal); err != nil {
			return false, err
		}
		if err := b.setNumber(f, sheet, cellRef(4, row), sr.ss.Confidence); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(5, row), sr.ss.Metrics); err != nil {
			return false, err
		}
	}
	return true, nil
}

// fundamentalSheet explodes the fundamentals analyst's structured
// reasoning into one row per (ticker, aspect).
func (b *WorkbookBuilder) fundamentalSheet(f *excelize.File, header int, result *models.ReportResult) (bool, error) {
	type aspectRow struct {
		ticker  string
		aspect  string
		signal  string
		details string
	}
	var rows []aspectRow
	for _, ts := range result.SignalsFor(analysts.FundamentalsAgent) {
		if ts.Signal.Reasoning.IsZero() {
			continue
		}
		value := gjson.Parse(ts.Signal.Reasoning.Raw)
		if !value.IsObject() {
			continue
		}
		ticker := ts.Ticker
		value.ForEach(func(aspect, details gjson.Result) bool {
			r := aspectRow{ticker: ticker, aspect: aspect.String()}
			if details.IsObject() {
				r.signal = details.Get("signal").String()
				if d := details.Get("details"); d.Exists() {
					if d.Type == gjson.String {
						r.details = d.String()
					} else {
						r.details = d.Raw
					}
				}
			} else if details.Type == gjson.String {
				r.details = details.String()
			} else {
				r.details = details.Raw
			}
			rows = append(rows, r)
			return true
		})
	}
	if len(rows) == 0 {
		return false, nil
	}

	const sheet = "Fundamental Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	if err := writeHeader(f, sheet, header, []string{"Ticker", "Aspect", "Signal", "Details"}); err != nil {
		return false, err
	}
	if err := setColumnWidths(f, sheet, []float64{20, 20, 20, 40}); err != nil {
		return false, err
	}

	for i, ar := range rows {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), ar.ticker); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), ar.aspect); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(3, row), ar.signal); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(4, row), ar.details); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (b *WorkbookBuilder) sentimentSheet(f *excelize.File, header int, result *models.ReportResult) (bool, error) {
	signals := result.SignalsFor(analysts.SentimentAgent)
	if len(signals) == 0 {
		return false, nil
	}

	const sheet = "Sentiment Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return false, err
	}
	if err := writeHeader(f, sheet, header, []string{"Ticker", "Signal", "Confidence", "Reasoning"}); err != nil {
		return false, err
	}
	if err := setColumnWidths(f, sheet, []float64{20, 20, 20, 40}); err != nil {
		return false, err
	}

	for i, ts := range signals {
		row := i + 2
		if err := f.SetCellValue(sheet, cellRef(1, row), ts.Ticker); err != nil {
			return false, err
		}
		if err := f.SetCellValue(sheet, cellRef(2, row), ts.Signal.Signal); err != nil {
			return false, err
		}
		if err := b.setNumber(f, sheet, cellRef(3, row), ts.Signal.Confidence); err != nil {
			return false, err
		}
		display := report.Normalize(ts.Signal.Reasoning).Display
		if err := f.SetCellValue(sheet, cellRef(4, row), display); err != nil {
			return false, err
		}
	}
	return true, nil
}

// setNumber writes a numeric cell, leaving it empty when the value is
// not finite. NaN and infinities never reach the file.
func (b *WorkbookBuilder) setNumber(f *excelize.File, sheet, cell string, v float64) error {
	if !models.IsFinite(v) {
		sheetLogger := logging.WithSheet(b.logger, sheet)
		sheetLogger.Warn().Str("cell", cell).Float64("value", v).
			Msg("non-finite value left empty in workbook")
		return nil
	}
	return f.SetCellValue(sheet, cell, v)
}
