package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table is a flat sheet: a header row followed by data rows.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// WriteXLSX writes doc as a single "Report" sheet with the same columns as
// the CSV form.
func WriteXLSX(w io.Writer, doc Document) error {
	t := Table{Sheet: "Report", Header: []string{"Section", "Parameter", "Value", "Unit"}}
	t.Rows = append(t.Rows,
		[]any{"document", "title", doc.Title, ""},
		[]any{"document", "generated", doc.Generated.Format("2006-01-02 15:04:05"), ""},
	)
	for _, s := range doc.sections() {
		for _, f := range *s.fields {
			var v any = f.Value
			if f.Text != "" {
				v = f.Text
			}
			t.Rows = append(t.Rows, []any{s.name, f.Name, v, f.Unit})
		}
	}
	return t.WriteXLSX(w)
}

func (t Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func (t Table) WriteCSV(w io.Writer) error {
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, t.Header)
	for _, r := range t.Rows {
		out := make([]string, len(r))
		for i, v := range r {
			out[i] = fmt.Sprint(v)
		}
		rows = append(rows, out)
	}
	return writeCSVRows(w, rows)
}
