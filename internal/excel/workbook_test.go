package excel

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"fund-reporter/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleResult() *models.ReportResult {
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
							Signal:     "BEARISH",
							Confidence: 75.0,
							Reasoning:  models.ReasoningFromJSON(`{"valuation": "premium", "liquidity": "weak"}`),
						},
					},
				},
			},
		},
	}
}

func TestWorkbookBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.xlsx")

	if err := NewWorkbookBuilder(zerolog.Nop()).Build(sampleResult(), path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Trading Decisions", "Analyst Signals", "Benjamin Graham"} {
		found := false
		for _, s := range sheets {
			if s == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Missing sheet %q, have %v", want, sheets)
		}
	}
	for _, s := range sheets {
		if s == "Sheet1" {
			t.Errorf("Placeholder sheet should be removed, have %v", sheets)
		}
	}

	ticker, err := f.GetCellValue("Trading Decisions", "A2")
	if err != nil || ticker != "MSFT" {
		t.Errorf("Decisions A2 = %q (%v), want MSFT", ticker, err)
	}
	action, _ := f.GetCellValue("Trading Decisions", "B2")
	if action != "SHORT" {
		t.Errorf("Decisions B2 = %q, want SHORT", action)
	}
	qty, _ := f.GetCellValue("Trading Decisions", "C2")
	if qty != "51" {
		t.Errorf("Decisions C2 = %q, want 51", qty)
	}
}

func TestWorkbookAnalystSheetAspectColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.xlsx")

	if err := NewWorkbookBuilder(zerolog.Nop()).Build(sampleResult(), path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Benjamin Graham")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 data row, got %d rows", len(rows))
	}

	header := rows[0]
	wantHeader := []string{"Ticker", "Signal", "Confidence", "Reasoning", "valuation", "liquidity"}
	if len(header) < len(wantHeader) {
		t.Fatalf("Header too short: %v", header)
	}
	for i, want := range wantHeader {
		if header[i] != want {
			t.Errorf("Header[%d] = %q, want %q", i, header[i], want)
		}
	}

	data := rows[1]
	if data[0] != "MSFT" || data[1] != "BEARISH" {
		t.Errorf("Data row wrong: %v", data)
	}
	if data[4] != "premium" || data[5] != "weak" {
		t.Errorf("Aspect cells wrong: %v", data)
	}
}

func TestWorkbookUpperCasesDecisionAction(t *testing.T) {
	result := sampleResult()
	result.Decisions[0].Decision.Action = "short"
	path := filepath.Join(t.TempDir(), "analysis.xlsx")

	if err := NewWorkbookBuilder(zerolog.Nop()).Build(result, path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	action, _ := f.GetCellValue("Trading Decisions", "B2")
	if action != "SHORT" {
		t.Errorf("Decisions B2 = %q, want upper-cased SHORT", action)
	}
}

func TestWorkbookNonFiniteConfidenceLeftEmpty(t *testing.T) {
	result := sampleResult()
	result.Decisions[0].Decision.Confidence = math.NaN()
	path := filepath.Join(t.TempDir(), "analysis.xlsx")

	if err := NewWorkbookBuilder(zerolog.Nop()).Build(result, path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	conf, _ := f.GetCellValue("Trading Decisions", "D2")
	if conf != "" {
		t.Errorf("NaN confidence should leave the cell empty, got %q", conf)
	}
}

func TestWorkbookEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	if err := NewWorkbookBuilder(zerolog.Nop()).Build(&models.ReportResult{}, path); err != nil {
		t.Fatalf("Build of an empty result should not fail: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Workbook file missing: %v", err)
	}
}

func TestWorkbookAtomicPublish(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.xlsx")

	if err := NewWorkbookBuilder(zerolog.Nop()).Build(sampleResult(), path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".export-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the final artifact, got %v", entries)
	}
}

func TestSheetNameTruncationIsDeterministic(t *testing.T) {
	long := strings.Repeat("Stanley Druckenmiller ", 3)
	first := sheetName(long)
	if len(first) != sheetNameLimit {
		t.Errorf("Expected truncation to %d chars, got %d", sheetNameLimit, len(first))
	}
	for i := 0; i < 5; i++ {
		if sheetName(long) != first {
			t.Fatalf("Truncation not deterministic")
		}
	}
	if sheetName("Short") != "Short" {
		t.Errorf("Short names must pass through unchanged")
	}
}

func TestSheetNameTruncationKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("é", sheetNameLimit+5)
	got := sheetName(long)
	if utf8.RuneCountInString(got) != sheetNameLimit {
		t.Errorf("Expected %d runes, got %d", sheetNameLimit, utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncated name is not valid UTF-8: %q", got)
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return parsed
}

func TestDefaultPathLayout(t *testing.T) {
	now := mustTime(t, "2025-04-11T15:04:00Z")
	got := DefaultPath("/tmp/out", "analysis", now)
	if got != filepath.Join("/tmp/out", "analysis-20250411-1504.xlsx") {
		t.Errorf("DefaultPath = %q", got)
	}

	ref := ReferencePath("/tmp/out", now)
	if ref != filepath.Join("/tmp/out", "2025-04-11-1504-stocks.xlsx") {
		t.Errorf("ReferencePath = %q", ref)
	}
}
