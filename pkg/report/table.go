package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Cell carries the display text and, for numbers, the raw value written to
// spreadsheets.
type Cell struct {
	Text  string
	Value any
}

func Text(s string) Cell { return Cell{Text: s, Value: s} }

func Number(v float64, text string) Cell { return Cell{Text: text, Value: v} }

func Int(i int) Cell { return Cell{Text: fmt.Sprintf("%d", i), Value: i} }

// Field is one line of the summary printed above the rows.
type Field struct {
	Name  string
	Value Cell
}

type Table struct {
	Title   string
	Summary []Field
	Columns []string
	Rows    [][]Cell
}

func New(title string, columns ...string) *Table {
	return &Table{Title: title, Columns: columns}
}

func (t *Table) AddField(name string, value Cell) {
	t.Summary = append(t.Summary, Field{Name: name, Value: value})
}

func (t *Table) AddRow(cells ...Cell) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("report: row has %d cells, table %q has %d columns", len(cells), t.Title, len(t.Columns))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// Field looks up a summary value by name.
func (t *Table) Field(name string) (Cell, bool) {
	for _, f := range t.Summary {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Cell{}, false
}

func width(s string) int { return utf8.RuneCountInString(s) }

func padLeft(s string, w int) string  { return strings.Repeat(" ", w-width(s)) + s }
func padRight(s string, w int) string { return s + strings.Repeat(" ", w-width(s)) }

// Print writes the summary and a boxed table with a leading "No" column.
func (t *Table) Print(w io.Writer) error {
	ew := &errWriter{w: w}

	if t.Title != "" {
		ew.printf("%s\n", t.Title)
	}
	nameWidth := 0
	for _, f := range t.Summary {
		nameWidth = max(nameWidth, width(f.Name))
	}
	for _, f := range t.Summary {
		ew.printf("  %s : %s\n", padRight(f.Name, nameWidth), f.Value.Text)
	}
	if len(t.Columns) == 0 {
		return ew.err
	}
	if len(t.Summary) > 0 {
		ew.printf("\n")
	}
	if len(t.Rows) == 0 {
		ew.printf("(none)\n")
		return ew.err
	}

	headers := append([]string{"No"}, t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, 0, len(headers))
		row = append(row, fmt.Sprintf("%d", i+1))
		for _, c := range r {
			row = append(row, c.Text)
		}
		rows[i] = row
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = width(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			widths[j] = max(widths[j], width(cell))
		}
	}

	line := func() {
		ew.printf("+")
		for _, w := range widths {
			ew.printf("%s+", strings.Repeat("-", w+2))
		}
		ew.printf("\n")
	}

	line()
	ew.printf("|")
	for i, h := range headers {
		ew.printf(" %s |", padRight(h, widths[i]))
	}
	ew.printf("\n")
	line()
	for _, row := range rows {
		ew.printf("|")
		for j, cell := range row {
			ew.printf(" %s |", padLeft(cell, widths[j]))
		}
		ew.printf("\n")
	}
	line()
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
