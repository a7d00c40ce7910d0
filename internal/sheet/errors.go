package sheet

import "errors"

// Sentinel errors classifying validation failures. Wrapped messages carry
// the sheet name and the offending row number or category.
var (
	// ErrSchema reports a header row missing required columns.
	ErrSchema = errors.New("missing required columns")

	// ErrRow reports an invalid value in a single data row.
	ErrRow = errors.New("invalid row")

	// ErrCardinality reports a violated bound on the assembled point set.
	ErrCardinality = errors.New("invalid point set")
)
