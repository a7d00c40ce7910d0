package main

import (
	"errors"
	"os"

	macrobrief "github.com/globalite/go-macrobrief"
	"github.com/globalite/go-macrobrief/internal/config"
	"github.com/globalite/go-macrobrief/internal/dateutil"
	"github.com/globalite/go-macrobrief/internal/gsheet"
	"github.com/globalite/go-macrobrief/internal/workbook"
)

// Exit codes for the macrobrief CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitFetch   = 4 // Google Sheets tab download errors
	ExitBrowser = 5 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 5)
	if errors.Is(err, macrobrief.ErrBrowserConnect) ||
		errors.Is(err, macrobrief.ErrPageCreate) ||
		errors.Is(err, macrobrief.ErrPageLoad) ||
		errors.Is(err, macrobrief.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Sheet download errors (exit 4)
	if errors.Is(err, gsheet.ErrTabUnavailable) ||
		errors.Is(err, gsheet.ErrTabEmpty) {
		return ExitFetch
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrWorkbookNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, gsheet.ErrInvalidSheetRef) ||
		errors.Is(err, workbook.ErrMissingSheet) ||
		errors.Is(err, workbook.ErrTemplateExists) ||
		errors.Is(err, dateutil.ErrInvalidPattern) ||
		errors.Is(err, macrobrief.ErrInvalidImageExtension) ||
		errors.Is(err, macrobrief.ErrSheetSchema) ||
		errors.Is(err, macrobrief.ErrSheetRow) ||
		errors.Is(err, macrobrief.ErrSheetCardinality) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrSheetWithPaths) {
		return ExitUsage
	}

	return ExitGeneral
}
