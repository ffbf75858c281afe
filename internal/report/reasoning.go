package report

import (
	"strings"

	"github.com/tidwall/gjson"

	"fund-reporter/internal/models"
)

// Kind tags a normalized reasoning payload. Downstream renderers match
// on the tag instead of re-inspecting the payload shape.
type Kind int

// Reasoning payload kinds.
const (
	KindEmpty Kind = iota
	KindText
	KindStructured
	KindOther
)

// AspectColumn is one flattened aspect of a structured reasoning payload,
// usable directly as an extra spreadsheet column.
type AspectColumn struct {
	Aspect string
	Cell   string
}

// Normalized is the classified form of a reasoning payload: a display
// string for console and workbook cells, plus, for structured payloads,
// the ordered flattened columns.
type Normalized struct {
	Kind    Kind
	Display string
	Columns []AspectColumn
}

// Normalize classifies a reasoning payload. Plain text passes through
// unchanged; a mapping is flattened aspect by aspect in insertion order;
// anything else is stringified as compact JSON. The function is pure, so
// repeated calls on the same input give the same ordered output.
func Normalize(r models.Reasoning) Normalized {
	if r.IsZero() {
		return Normalized{Kind: KindEmpty}
	}

	value := gjson.Parse(r.Raw)
	switch {
	case value.Type == gjson.String:
		return Normalized{Kind: KindText, Display: value.String()}
	case value.IsObject():
		return normalizeAspects(value)
	default:
		return Normalized{Kind: KindOther, Display: strings.TrimSpace(value.Raw)}
	}
}

// normalizeAspects flattens a mapping of aspect to detail. An aspect
// value carrying a "details" entry contributes that entry; one carrying
// only a "signal" contributes the whole value; everything else is
// stringified as-is. Every reachable leaf survives into the output.
func normalizeAspects(value gjson.Result) Normalized {
	n := Normalized{Kind: KindStructured}
	var lines []string

	value.ForEach(func(key, val gjson.Result) bool {
		cell := aspectCell(val)
		n.Columns = append(n.Columns, AspectColumn{Aspect: key.String(), Cell: cell})
		lines = append(lines, key.String()+": "+cell)
		return true
	})

	n.Display = strings.Join(lines, "\n")
	return n
}

func aspectCell(val gjson.Result) string {
	if val.IsObject() {
		if details := val.Get("details"); details.Exists() {
			return cellText(details)
		}
		if val.Get("signal").Exists() {
			return strings.TrimSpace(val.Raw)
		}
	}
	return cellText(val)
}

// cellText stringifies a JSON value for a table cell: strings are used
// verbatim, everything else keeps its compact JSON encoding.
func cellText(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.String()
	}
	return strings.TrimSpace(v.Raw)
}
