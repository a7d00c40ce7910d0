package gsheet

import "errors"

// Sentinel errors classifying fetch failures. Wrapped messages carry the
// tab name and a hint about sharing or naming where one applies.
var (
	// ErrInvalidSheetRef reports a reference that is neither a sheet URL
	// nor a bare sheet ID.
	ErrInvalidSheetRef = errors.New("invalid sheet reference")

	// ErrTabUnavailable reports a tab that could not be downloaded.
	ErrTabUnavailable = errors.New("could not load sheet tab")

	// ErrTabEmpty reports a required tab with no content.
	ErrTabEmpty = errors.New("sheet tab is empty")
)
