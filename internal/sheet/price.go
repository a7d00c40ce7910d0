package sheet

import (
	"fmt"
	"strings"

	"github.com/globalite/go-macrobrief/internal/tabular"
)

// priceAssets are the asset labels accepted as a bitcoin spot price row.
var priceAssets = map[string]bool{
	"BITCOIN": true,
	"BTC-USD": true,
	"BTC":     true,
}

// ReadPrice finds the latest bitcoin price row in the price table. The
// table is optional: an empty table yields a nil price and no error.
// Rows are scanned bottom-up so the most recent entry wins, skipping
// rows whose asset is not bitcoin or whose price cell does not parse.
func ReadPrice(t tabular.Table) (*PricePoint, error) {
	if t.Len() == 0 {
		return nil, nil
	}

	index := t.HeaderIndex()
	var missing []string
	for _, name := range []string{"date", "asset"} {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	_, hasClose := index["close"]
	_, hasPrice := index["price"]
	if !hasClose && !hasPrice {
		missing = append(missing, "close/price")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w in price sheet: %s", ErrSchema, strings.Join(missing, ", "))
	}

	for i := t.Len() - 1; i >= 1; i-- {
		row := t.Row(i)

		asset := strings.ToUpper(cell(row, index, "asset"))
		if !priceAssets[asset] {
			continue
		}

		price, ok := parsePrice(row, index)
		if !ok {
			continue
		}

		currency := strings.ToUpper(cell(row, index, "currency"))
		if currency == "" {
			currency = "USD"
		}
		return &PricePoint{
			Price:    price,
			Date:     cell(row, index, "date"),
			Currency: currency,
		}, nil
	}
	return nil, nil
}

// parsePrice reads the close column when it parses, falling back to price.
func parsePrice(row []string, index map[string]int) (float64, bool) {
	if value, ok := parseFinite(cell(row, index, "close")); ok {
		return value, true
	}
	return parseFinite(cell(row, index, "price"))
}
