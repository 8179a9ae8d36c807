package tourbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetPreps   = "Preparation"
	SheetEntries = "Entries"
	SheetSummary = "Summary"
)

// ExportTourXLSX renders one tour into a three-sheet workbook: preparation
// items, entries, and an income/expense/profit summary. Every monetary cell
// carries both the source amount and the value normalized into the home
// currency through the given table. The exporter only reads; it never
// mutates the tour.
func ExportTourXLSX(path string, t *Tour, table RateTable) error {
	stats := NewTourStats(t, table)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPreps); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", SheetPreps, err)
	}
	if _, err := f.NewSheet(SheetEntries); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", SheetEntries, err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", SheetSummary, err)
	}

	if err := writePrepSheet(f, t, table); err != nil {
		return err
	}
	if err := writeEntrySheet(f, t, table); err != nil {
		return err
	}
	if err := writeSummarySheet(f, stats); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not write workbook %q: %w", path, err)
	}
	return nil
}

// ReportFileName returns the default workbook name for a tour.
func ReportFileName(t *Tour) string {
	return t.Name + "-report.xlsx"
}

func writePrepSheet(f *excelize.File, t *Tour, table RateTable) error {
	if err := setRow(f, SheetPreps, 1, "ID", "Category", "Name", "Status", "Due", "Cost", "Currency", "Cost ("+HomeCurrency+")", "Notes"); err != nil {
		return err
	}
	for i, p := range t.Preps {
		err := setRow(f, SheetPreps, i+2,
			p.ID,
			string(p.Category),
			p.Name,
			string(p.Status),
			p.Due.String(),
			p.Cost.InexactFloat64(),
			p.Cost.Currency(),
			table.Convert(p.Cost).InexactFloat64(),
			p.Notes,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEntrySheet(f *excelize.File, t *Tour, table RateTable) error {
	if err := setRow(f, SheetEntries, 1, "ID", "Date", "Description", "Type", "Amount", "Currency", "Amount ("+HomeCurrency+")"); err != nil {
		return err
	}
	for i, e := range SortedByDate(t.Entries) {
		err := setRow(f, SheetEntries, i+2,
			e.ID,
			e.Date.String(),
			e.Description,
			string(e.Type),
			e.Amount.InexactFloat64(),
			e.Amount.Currency(),
			table.Convert(e.Amount).InexactFloat64(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, stats TourStats) error {
	rows := []struct {
		label string
		value Money
	}{
		{"Income", stats.Income},
		{"Expense", stats.Expense},
		{"Profit", stats.Profit},
	}
	for i, r := range rows {
		if err := setRow(f, SheetSummary, i+1, r.label, r.value.InexactFloat64(), HomeCurrency); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("bad cell coordinates in sheet %q: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("could not write cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
