package workbook

import "errors"

var (
	// ErrMissingSheet reports a workbook without a required worksheet.
	ErrMissingSheet = errors.New("workbook is missing required sheet")

	// ErrTemplateExists guards against overwriting a workbook on init.
	ErrTemplateExists = errors.New("template already exists")
)
