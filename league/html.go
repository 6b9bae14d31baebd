package league

import (
	"io"

	"golang.org/x/net/html"
)

// LoadHTML reads a team table from the first <table> element of an HTML
// document. The first row supplies the header (th or td cells); subsequent
// rows supply team records with the same column semantics as LoadCSV.
//
// The tokenizer walk mirrors the CSV path after cell extraction: header
// mapping, per-row conversion, registry validation.
func LoadHTML(r io.Reader) (*Registry, error) {
	z := html.NewTokenizer(r)

	var (
		inTable bool
		inRow   bool
		inCell  bool
		done    bool

		cell   []byte
		row    []string
		header []string
		rows   [][]string
	)

	commitCell := func() {
		if inCell {
			row = append(row, string(cell))
			cell = cell[:0]
			inCell = false
		}
	}
	commitRow := func() {
		commitCell()
		if !inRow {
			return
		}
		inRow = false
		if header == nil {
			header = row
		} else if len(row) > 0 {
			rows = append(rows, row)
		}
		row = nil
	}

	for !done {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF ends the document; the table may be unclosed.
			done = true
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				if header != nil || len(rows) > 0 {
					done = true // only the first table is read

					break
				}
				inTable = true
			case "tr":
				if inTable {
					commitRow()
					inRow = true
				}
			case "th", "td":
				if inRow {
					commitCell()
					inCell = true
				}
			}
		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				if inTable {
					commitRow()
					inTable = false
					done = true
				}
			case "tr":
				commitRow()
			case "th", "td":
				commitCell()
			}
		case html.TextToken:
			if inCell {
				cell = append(cell, z.Text()...)
			}
		}
	}
	commitRow()

	if header == nil {
		return nil, ErrNoHeader
	}

	return registryFromRows(header, rows)
}
