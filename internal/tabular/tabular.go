// Package tabular parses raw delimited text into rectangular string tables.
package tabular

import "strings"

// Table is a rectangular grid of string cells. After parsing, every row
// has the same length; cells the source did not provide are empty strings.
type Table struct {
	rows [][]string
}

// Parse reads comma-separated text into a Table. Parsing is best-effort
// and never fails: a double quote opens a quoted region where commas and
// newlines are literal and "" is a literal quote, carriage returns are
// dropped wherever they appear, and an unterminated quote runs to the end
// of the input. A final newline terminates the last row without adding an
// empty one; a line with no characters at all becomes a row of empty
// cells.
func Parse(text string) Table {
	text = strings.ReplaceAll(text, "\r", "")

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
		sawAny   bool
	)

	flushField := func() {
		row = append(row, field.String())
		field.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			switch {
			case c == '"' && i+1 < len(text) && text[i+1] == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				field.WriteByte(c)
			}
			continue
		}
		switch c {
		case '"':
			inQuotes = true
			sawAny = true
		case ',':
			flushField()
			sawAny = true
		case '\n':
			if sawAny {
				flushField()
			}
			rows = append(rows, row)
			row = nil
			sawAny = false
		default:
			field.WriteByte(c)
			sawAny = true
		}
	}
	if sawAny {
		flushField()
		rows = append(rows, row)
	}

	return Table{rows: pad(rows)}
}

// pad widens every row to the widest row with empty cells so downstream
// indexing by column is always in bounds.
func pad(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

// Len returns the number of rows, header included.
func (t Table) Len() int {
	return len(t.rows)
}

// Row returns the cells of row i. All rows share the same width.
func (t Table) Row(i int) []string {
	return t.rows[i]
}

// HeaderIndex maps lowercased, trimmed column names from the first row to
// their column index. Blank names are skipped and a repeated name keeps
// the rightmost column. An empty table yields an empty map.
func (t Table) HeaderIndex() map[string]int {
	index := make(map[string]int)
	if len(t.rows) == 0 {
		return index
	}
	for i, name := range t.rows[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" {
			index[key] = i
		}
	}
	return index
}
