// Package sheet reads typed newsletter records out of parsed tables.
//
// Four readers cover the four source sheets: free-form metadata key/value
// pairs, numbered content points, supply distribution segments, and the
// latest price. Columns are matched by trimmed, lowercased header name,
// so sheets may order and case their columns freely. Validation failures
// are classified by the sentinel errors in this package.
package sheet

import (
	"fmt"
	"strings"

	"github.com/globalite/go-macrobrief/internal/tabular"
)

// Point is one numbered content section of an issue.
type Point struct {
	Order        int
	Title        string
	Content      string
	ImagePath    string
	ImageCaption string
	Source       string
}

// Segment is one category of the ownership distribution chart.
type Segment struct {
	Category  string
	AmountBTC float64
	Percent   float64
	Color     string
}

// PricePoint is the latest recognized quote from the price sheet.
type PricePoint struct {
	Price    float64
	Date     string
	Currency string
}

// requireColumns resolves required column names to indexes from the table
// header, reporting every missing name at once.
func requireColumns(t tabular.Table, sheetName string, names ...string) (map[string]int, error) {
	index := t.HeaderIndex()
	var missing []string
	for _, name := range names {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w in %s sheet: %s", ErrSchema, sheetName, strings.Join(missing, ", "))
	}
	return index, nil
}

// cell returns the trimmed cell under the named column, or "" when the
// column is absent from the header.
func cell(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
