package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// RowExtractor turns a semi-structured tabular document into rows of
// cell text. The arrivals board carries no markup contract, so
// implementations must tolerate malformed documents and never fail a
// whole parse.
type RowExtractor interface {
	ExtractRows(doc string) [][]string
}

// HTMLTableExtractor scans <tr>/<td> boundaries with a tolerant
// tokenizer. Entities are decoded and whitespace collapsed before a
// cell is emitted.
type HTMLTableExtractor struct{}

// NewHTMLTableExtractor creates a new table extractor
func NewHTMLTableExtractor() *HTMLTableExtractor {
	return &HTMLTableExtractor{}
}

// ExtractRows returns the cell text of every table row in document
// order. Rows without cells are dropped.
func (e *HTMLTableExtractor) ExtractRows(doc string) [][]string {
	z := html.NewTokenizer(strings.NewReader(doc))

	var rows [][]string
	var cells []string
	var cell strings.Builder
	inRow := false
	inCell := false

	flushCell := func() {
		if inCell {
			cells = append(cells, CleanCellText(cell.String()))
			inCell = false
		}
	}
	flushRow := func() {
		flushCell()
		if inRow && len(cells) > 0 {
			rows = append(rows, cells)
		}
		inRow = false
		cells = nil
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			// Truncated markup still yields whatever was collected.
			flushRow()
			return rows
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "tr":
				flushRow()
				inRow = true
			case "td", "th":
				if inRow {
					flushCell()
					inCell = true
					cell.Reset()
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "tr":
				flushRow()
			case "td", "th":
				flushCell()
			}
		case html.TextToken:
			if inCell {
				cell.Write(z.Text())
			}
		}
	}
}

// CleanCellText normalizes decoded entities such as non-breaking
// spaces and collapses runs of whitespace to single spaces.
func CleanCellText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
