package report

import (
	"strings"
	"testing"

	"fund-reporter/internal/models"
)

func TestNormalizeEmpty(t *testing.T) {
	cases := []models.Reasoning{
		{},
		{Raw: "null"},
		{Raw: `""`},
	}
	for _, r := range cases {
		n := Normalize(r)
		if n.Kind != KindEmpty {
			t.Errorf("Expected KindEmpty for %q, got %v", r.Raw, n.Kind)
		}
		if n.Display != "" {
			t.Errorf("Expected empty display for %q, got %q", r.Raw, n.Display)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	n := Normalize(models.ReasoningFromText("Overvalued versus intrinsic value."))
	if n.Kind != KindText {
		t.Fatalf("Expected KindText, got %v", n.Kind)
	}
	if n.Display != "Overvalued versus intrinsic value." {
		t.Errorf("Text not passed through verbatim: %q", n.Display)
	}
	if len(n.Columns) != 0 {
		t.Errorf("Text reasoning should have no columns, got %v", n.Columns)
	}
}

func TestNormalizeStructuredAspects(t *testing.T) {
	raw := `{"a": {"signal": "X", "details": "d1"}, "b": "d2"}`
	n := Normalize(models.ReasoningFromJSON(raw))

	if n.Kind != KindStructured {
		t.Fatalf("Expected KindStructured, got %v", n.Kind)
	}
	if len(n.Columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(n.Columns))
	}
	if n.Columns[0].Aspect != "a" || n.Columns[0].Cell != "d1" {
		t.Errorf("First column wrong: %+v", n.Columns[0])
	}
	if n.Columns[1].Aspect != "b" || n.Columns[1].Cell != "d2" {
		t.Errorf("Second column wrong: %+v", n.Columns[1])
	}
	if !strings.Contains(n.Display, "d1") || !strings.Contains(n.Display, "d2") {
		t.Errorf("Display missing detail text: %q", n.Display)
	}
}

func TestNormalizePreservesKeyOrder(t *testing.T) {
	raw := `{"zeta": "1", "alpha": "2", "mid": "3"}`
	n := Normalize(models.ReasoningFromJSON(raw))

	want := []string{"zeta", "alpha", "mid"}
	if len(n.Columns) != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), len(n.Columns))
	}
	for i, aspect := range want {
		if n.Columns[i].Aspect != aspect {
			t.Errorf("Column %d: expected %q, got %q", i, aspect, n.Columns[i].Aspect)
		}
	}
}

func TestNormalizeSignalOnlyObjectKeepsWholeValue(t *testing.T) {
	raw := `{"a": {"signal": "bullish", "confidence": 80}}`
	n := Normalize(models.ReasoningFromJSON(raw))

	if len(n.Columns) != 1 {
		t.Fatalf("Expected 1 column, got %d", len(n.Columns))
	}
	cell := n.Columns[0].Cell
	if !strings.Contains(cell, "bullish") || !strings.Contains(cell, "80") {
		t.Errorf("Signal-only object should keep all leaves, got %q", cell)
	}
}

func TestNormalizeOther(t *testing.T) {
	n := Normalize(models.ReasoningFromJSON(`[1, 2, 3]`))
	if n.Kind != KindOther {
		t.Fatalf("Expected KindOther, got %v", n.Kind)
	}
	if n.Display != "[1, 2, 3]" {
		t.Errorf("Unexpected display for array payload: %q", n.Display)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	r := models.ReasoningFromJSON(`{"x": "1", "y": {"signal": "s", "details": "d"}}`)
	first := Normalize(r)
	for i := 0; i < 5; i++ {
		again := Normalize(r)
		if again.Display != first.Display {
			t.Fatalf("Display changed between calls: %q vs %q", first.Display, again.Display)
		}
		for j := range first.Columns {
			if again.Columns[j] != first.Columns[j] {
				t.Fatalf("Column %d changed between calls", j)
			}
		}
	}
}
