package report

import (
	"strings"
	"testing"
)

func TestGridHeaderRow(t *testing.T) {
	grid := NewGrid("Agent", "Signal").Align(AlignLeft, AlignCenter)
	grid.AddRow("Benjamin Graham", "BEARISH")
	out := grid.Render()

	if !strings.Contains(out, "Agent") || !strings.Contains(out, "Signal") {
		t.Errorf("Header cells missing:\n%s", out)
	}
	if !strings.Contains(out, "=") {
		t.Errorf("Header separator missing:\n%s", out)
	}
}

func TestGridAllEmptyHeadersOmitHeaderRow(t *testing.T) {
	grid := NewGrid("", "").Align(AlignLeft, AlignLeft)
	grid.AddRow("Action", "BUY")
	grid.AddRow("Quantity", "10")
	out := grid.Render()

	if strings.Contains(out, "=") {
		t.Errorf("Headerless grid must not draw a header separator:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("Unexpected grid shape:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "+") {
		t.Errorf("Expected top border, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "| Action") {
		t.Errorf("Expected first data row right below the border, got %q", lines[1])
	}
}
