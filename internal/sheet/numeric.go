package sheet

import (
	"math"
	"strconv"
	"strings"
)

// ParseBool reports whether a cell holds a truthy marker: 1, true, yes,
// y, or on, case-insensitive.
func ParseBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// ParseNumber converts a cell to a float, tolerating thousands commas and
// surrounding whitespace. Blank, unparseable, and non-finite cells yield
// the fallback.
func ParseNumber(cell string, fallback float64) float64 {
	value, ok := parseFinite(cell)
	if !ok {
		return fallback
	}
	return value
}

// parseFinite parses a cell as a finite float, reporting success.
func parseFinite(cell string) (float64, bool) {
	text := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
