package render

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/globalite/go-macrobrief/internal/sheet"
)

// englishPrinter renders numbers with English thousands grouping. The
// document locale is fixed, so output stays byte-identical across hosts.
var englishPrinter = message.NewPrinter(language.English)

// FormatInteger renders a rounded value with thousands separators.
func FormatInteger(value float64) string {
	return englishPrinter.Sprintf("%d", int64(math.Round(value)))
}

// FormatBTCCompact renders an amount as a compact BTC figure: millions
// with up to two decimals and trailing zeros trimmed, thousands rounded
// to a grouped integer, smaller values plain.
func FormatBTCCompact(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000:
		rendered := strconv.FormatFloat(value/1_000_000, 'f', 2, 64)
		rendered = strings.TrimRight(rendered, "0")
		rendered = strings.TrimRight(rendered, ".")
		return rendered + "M BTC"
	case abs >= 1_000:
		return englishPrinter.Sprintf("%d", int64(math.Round(value/1_000))) + "K BTC"
	default:
		return FormatInteger(value) + " BTC"
	}
}

// FormatPercent renders one decimal place with a trailing .0 trimmed.
func FormatPercent(value float64) string {
	rendered := strconv.FormatFloat(value, 'f', 1, 64)
	rendered = strings.TrimRight(rendered, "0")
	rendered = strings.TrimRight(rendered, ".")
	return rendered + "%"
}

// FormatBlockHeight renders the block-height pill value. Blank becomes
// n/a, non-negative numeric values group thousands, and anything else
// passes through as written.
func FormatBlockHeight(value string) string {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "n/a"
	}
	if numeric := sheet.ParseNumber(clean, -1); numeric >= 0 {
		return FormatInteger(numeric)
	}
	return clean
}

// FormatCurrency renders a price in its currency, falling back to a
// dollar-prefixed grouped figure when the code is unrecognized.
func FormatCurrency(value float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "$" + englishPrinter.Sprintf("%.2f", value)
	}
	return englishPrinter.Sprint(currency.Symbol(unit.Amount(value)))
}
