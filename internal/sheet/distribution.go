package sheet

import (
	"fmt"
	"sort"

	"github.com/globalite/go-macrobrief/internal/tabular"
)

// ReadDistribution validates the distribution table into chart segments
// normalized against maxSupply. An absent or empty table falls back to
// the built-in breakdown without error. Rows with a blank category and
// no positive amount are skipped as padding.
func ReadDistribution(t tabular.Table, maxSupply float64) ([]Segment, error) {
	if t.Len() == 0 {
		return DefaultDistribution(maxSupply), nil
	}

	index, err := requireColumns(t, "distribution", "category", "amount_btc", "color")
	if err != nil {
		return nil, err
	}

	var segments []Segment
	for i := 1; i < t.Len(); i++ {
		row := t.Row(i)

		category := cell(row, index, "category")
		amount := ParseNumber(cell(row, index, "amount_btc"), 0)
		percent := ParseNumber(cell(row, index, "percent"), 0)
		color := cell(row, index, "color")
		if color == "" {
			color = DefaultSegmentColor
		}

		if category == "" && amount <= 0 {
			continue
		}
		if category == "" {
			return nil, fmt.Errorf("%w in distribution sheet: missing category", ErrRow)
		}
		if amount < 0 {
			return nil, fmt.Errorf("%w in distribution sheet: amount cannot be negative for category %q",
				ErrRow, category)
		}

		segments = append(segments, Segment{
			Category:  category,
			AmountBTC: amount,
			Percent:   percent,
			Color:     color,
		})
	}

	if len(segments) == 0 {
		return DefaultDistribution(maxSupply), nil
	}
	return Normalize(segments, maxSupply), nil
}

// Normalize derives each segment's percent share and rescales the set so
// the chart closes at exactly 100. The denominator is referenceTotal when
// positive, else the sum of segment amounts, else 1. A positive supplied
// percent survives the first pass untouched; the rescale pass then
// corrects any drift from partially-specified percent columns. Segments
// come back sorted by amount, largest first, ties keeping input order.
func Normalize(segments []Segment, referenceTotal float64) []Segment {
	if len(segments) == 0 {
		return nil
	}

	denominator := referenceTotal
	if denominator <= 0 {
		denominator = 0
		for _, s := range segments {
			denominator += s.AmountBTC
		}
	}
	if denominator <= 0 {
		denominator = 1
	}

	normalized := make([]Segment, len(segments))
	total := 0.0
	for i, s := range segments {
		if s.Percent <= 0 {
			s.Percent = s.AmountBTC / denominator * 100
		}
		normalized[i] = s
		total += s.Percent
	}
	if total > 0 {
		for i := range normalized {
			normalized[i].Percent = normalized[i].Percent / total * 100
		}
	}

	sort.SliceStable(normalized, func(a, b int) bool {
		return normalized[a].AmountBTC > normalized[b].AmountBTC
	})
	return normalized
}
