package report

import "strings"

// Alignment controls horizontal alignment within a grid column.
type Alignment int

// Column alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Grid renders a bordered table with multi-line cells, column alignment,
// and ANSI-aware width computation.
type Grid struct {
	headers []string
	aligns  []Alignment
	rows    [][]string
}

// NewGrid creates a grid with the given headers. Alignments default to
// left and can be set per column with Align.
func NewGrid(headers ...string) *Grid {
	return &Grid{
		headers: headers,
		aligns:  make([]Alignment, len(headers)),
	}
}

// Align sets the column alignments, positionally.
func (g *Grid) Align(aligns ...Alignment) *Grid {
	copy(g.aligns, aligns)
	return g
}

// AddRow appends a row. Cells may contain newlines; the row expands to
// the tallest cell.
func (g *Grid) AddRow(cells ...string) {
	row := make([]string, len(g.headers))
	copy(row, cells)
	g.rows = append(g.rows, row)
}

// Render draws the grid.
func (g *Grid) Render() string {
	if len(g.headers) == 0 {
		return ""
	}

	widths := g.columnWidths()
	var b strings.Builder

	g.writeBorder(&b, widths, '-')
	if g.hasHeader() {
		g.writeCells(&b, g.headers, widths)
		g.writeBorder(&b, widths, '=')
	}
	for i, row := range g.rows {
		if i > 0 {
			g.writeBorder(&b, widths, '-')
		}
		g.writeCells(&b, row, widths)
	}
	if len(g.rows) > 0 {
		g.writeBorder(&b, widths, '-')
	}
	return b.String()
}

// hasHeader reports whether any header cell carries text. All-empty
// headers only fix the column count; no header row is drawn for them.
func (g *Grid) hasHeader() bool {
	for _, h := range g.headers {
		if h != "" {
			return true
		}
	}
	return false
}

func (g *Grid) columnWidths() []int {
	widths := make([]int, len(g.headers))
	for i, h := range g.headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range g.rows {
		for i, cell := range row {
			for _, line := range strings.Split(cell, "\n") {
				if w := visibleWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func (g *Grid) writeBorder(b *strings.Builder, widths []int, fill byte) {
	for _, w := range widths {
		b.WriteByte('+')
		b.WriteString(strings.Repeat(string(fill), w+2))
	}
	b.WriteString("+\n")
}

// writeCells emits one logical row, expanded to the tallest cell.
func (g *Grid) writeCells(b *strings.Builder, cells []string, widths []int) {
	split := make([][]string, len(cells))
	height := 1
	for i, cell := range cells {
		split[i] = strings.Split(cell, "\n")
		if len(split[i]) > height {
			height = len(split[i])
		}
	}

	for line := 0; line < height; line++ {
		for i := range cells {
			text := ""
			if line < len(split[i]) {
				text = split[i][line]
			}
			b.WriteString("| ")
			b.WriteString(g.pad(text, widths[i], g.aligns[i]))
			b.WriteByte(' ')
		}
		b.WriteString("|\n")
	}
}

func (g *Grid) pad(text string, width int, align Alignment) string {
	gap := width - visibleWidth(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + text
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}
