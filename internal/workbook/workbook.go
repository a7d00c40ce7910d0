// Package workbook reads newsletter tabs from local .xlsx workbooks and
// writes the starter template and per-build history snapshots. Sheets
// are re-serialized as CSV text so workbook and Google Sheet sources
// feed the rendering pipeline through the same door.
package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/globalite/go-macrobrief/internal/tabular"
)

// Worksheet names of one newsletter workbook.
const (
	MetaSheet         = "meta"
	PointsSheet       = "points"
	DistributionSheet = "distribution"
	PriceSheet        = "price"
)

// Tables holds the raw CSV text of the four worksheets. Optional sheets
// that are absent come back as empty strings.
type Tables struct {
	Meta         string
	Points       string
	Distribution string
	Price        string
}

// ReadTables loads the newsletter worksheets from an .xlsx workbook.
// Meta and points must exist; distribution and price may be absent.
func ReadTables(path string) (*Tables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	for _, name := range []string{MetaSheet, PointsSheet} {
		if !present[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingSheet, name)
		}
	}

	tables := &Tables{}
	for _, s := range []struct {
		name string
		dst  *string
	}{
		{MetaSheet, &tables.Meta},
		{PointsSheet, &tables.Points},
		{DistributionSheet, &tables.Distribution},
		{PriceSheet, &tables.Price},
	} {
		if !present[s.name] {
			continue
		}
		rows, err := f.GetRows(s.name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", s.name, err)
		}
		text, err := rowsToCSV(rows)
		if err != nil {
			return nil, fmt.Errorf("serializing sheet %q: %w", s.name, err)
		}
		*s.dst = text
	}

	return tables, nil
}

// rowsToCSV serializes worksheet rows as CSV text.
func rowsToCSV(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteSnapshot saves fetched tabs as an .xlsx history snapshot shaped
// like a local source workbook. Optional tabs with no content produce
// no worksheet.
func WriteSnapshot(path string, tables Tables) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MetaSheet); err != nil {
		return fmt.Errorf("naming meta sheet: %w", err)
	}
	if err := fillSheet(f, MetaSheet, tables.Meta); err != nil {
		return err
	}

	if _, err := f.NewSheet(PointsSheet); err != nil {
		return fmt.Errorf("creating points sheet: %w", err)
	}
	if err := fillSheet(f, PointsSheet, tables.Points); err != nil {
		return err
	}

	for _, s := range []struct {
		name string
		text string
	}{
		{DistributionSheet, tables.Distribution},
		{PriceSheet, tables.Price},
	} {
		if strings.TrimSpace(s.text) == "" {
			continue
		}
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", s.name, err)
		}
		if err := fillSheet(f, s.name, s.text); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// fillSheet fills one worksheet from CSV text, row by row.
func fillSheet(f *excelize.File, sheet, text string) error {
	t := tabular.Parse(text)
	for i := 0; i < t.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		row := t.Row(i)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing sheet %q row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// HistoryPath picks a timestamped snapshot name under dir, prefixed
// with the source base name. When a build lands on an already-used
// timestamp, seconds are appended so the earlier snapshot survives.
func HistoryPath(dir, base, layout string, now time.Time) string {
	path := filepath.Join(dir, base+"_"+now.Format(layout)+".xlsx")
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, base+"_"+now.Format(layout+"05")+".xlsx")
	}
	return path
}

// CopySnapshot copies the source workbook into the history location
// before a build reads it.
func CopySnapshot(src, dst string) error {
	data, err := os.ReadFile(src) // #nosec G304 -- src is the user-supplied workbook path
	if err != nil {
		return fmt.Errorf("reading workbook: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil { // #nosec G306 -- snapshots are meant to be readable
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
