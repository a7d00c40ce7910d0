package macrobrief

import (
	"errors"

	"github.com/globalite/go-macrobrief/internal/sheet"
)

// Sentinel errors for library operations.
var (
	ErrDocumentRender = errors.New("document rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Image backend validation errors.
	ErrInvalidImageExtension = errors.New("invalid image backend extension")
)

// Sheet validation errors, re-exported so callers can classify Render
// failures without reaching into internal packages.
var (
	ErrSheetSchema      = sheet.ErrSchema
	ErrSheetRow         = sheet.ErrRow
	ErrSheetCardinality = sheet.ErrCardinality
)
