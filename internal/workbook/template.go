package workbook

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/globalite/go-macrobrief/internal/sheet"
)

// CreateTemplate writes a starter workbook: the complete metadata
// defaults, two example points, the built-in ownership distribution,
// and an empty price sheet ready for quotes. force overwrites an
// existing workbook.
func CreateTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s", ErrTemplateExists, path)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MetaSheet); err != nil {
		return fmt.Errorf("naming meta sheet: %w", err)
	}

	meta := sheet.DefaultMeta()
	metaRows := [][]any{{"key", "value"}}
	for _, key := range sheet.DefaultMetaKeys() {
		metaRows = append(metaRows, []any{key, meta[key]})
	}
	if err := appendRows(f, MetaSheet, metaRows); err != nil {
		return err
	}

	pointsRows := [][]any{
		{"order", "title", "content", "image_path", "image_caption", "source"},
		{
			1,
			"Liquidity stopped tightening",
			"QT pace has slowed materially.\n- Funding stress eased\n- Repo usage normalized",
			"",
			"Optional image caption",
			"Source: Example Research Desk",
		},
		{
			2,
			"Market leverage reset",
			"A broad deleveraging event removed excess risk without structural damage.",
			"", "", "",
		},
	}
	if err := createSheet(f, PointsSheet, pointsRows); err != nil {
		return err
	}

	distributionRows := [][]any{{"category", "amount_btc", "percent", "color"}}
	for _, segment := range sheet.DefaultSegments() {
		distributionRows = append(distributionRows,
			[]any{segment.Category, int(segment.AmountBTC), "", segment.Color})
	}
	if err := createSheet(f, DistributionSheet, distributionRows); err != nil {
		return err
	}

	priceRows := [][]any{{"date", "asset", "close", "currency"}}
	if err := createSheet(f, PriceSheet, priceRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

// createSheet adds a worksheet and fills it.
func createSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	return appendRows(f, name, rows)
}

// appendRows writes rows starting at A1.
func appendRows(f *excelize.File, sheetName string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing sheet %q row %d: %w", sheetName, i+1, err)
		}
	}
	return nil
}
