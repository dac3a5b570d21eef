package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteTSV writes the column header and the display text of every row.
func (t *Table) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, r := range t.Rows {
		row := make([]string, len(r))
		for i, c := range r {
			row[i] = c.Text
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

const summarySheet = "Summary"

// SaveXLSX writes a Summary sheet with every table's fields and one sheet
// per table with raw values.
func SaveXLSX(filename string, tables ...*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	set := func(sheet string, col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	for col, h := range []string{"Table", "Field", "Value"} {
		if err := set(summarySheet, col+1, 1, h); err != nil {
			return err
		}
	}
	row := 2
	used := map[string]bool{summarySheet: true}

	for _, t := range tables {
		for _, field := range t.Summary {
			for col, v := range []any{t.Title, field.Name, field.Value.Value} {
				if err := set(summarySheet, col+1, row, v); err != nil {
					return err
				}
			}
			row++
		}
		if len(t.Columns) == 0 {
			continue
		}

		sheet := sheetName(t.Title, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := set(sheet, 1, 1, "No"); err != nil {
			return err
		}
		for j, c := range t.Columns {
			if err := set(sheet, j+2, 1, c); err != nil {
				return err
			}
		}
		for i, r := range t.Rows {
			if err := set(sheet, 1, i+2, i+1); err != nil {
				return err
			}
			for j, c := range r {
				if err := set(sheet, j+2, i+2, c.Value); err != nil {
					return err
				}
			}
		}
	}

	return f.SaveAs(filename)
}

// sheetName makes a unique sheet name within excelize's 31 character limit.
func sheetName(title string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, title)
	if base == "" {
		base = "Table"
	}
	if r := []rune(base); len(r) > 28 {
		base = string(r[:28])
	}

	name := base
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s %d", base, i)
	}
	used[name] = true
	return name
}
