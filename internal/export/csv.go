package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// The type column tells numbers from text, so a text value such as "1e3"
// or "NaN" reads back as text.
var csvHeader = []string{"section", "parameter", "value", "unit", "type"}

const (
	typeNumber = "number"
	typeText   = "text"
)

// WriteCSV writes one row per field. Document metadata goes into a leading
// "document" section so ParseCSV can restore it.
func WriteCSV(w io.Writer, doc Document) error {
	rows := [][]string{
		csvHeader,
		{"document", "kind", doc.Kind, "", typeText},
		{"document", "title", doc.Title, "", typeText},
		{"document", "project", doc.Project, "", typeText},
		{"document", "author", doc.Author, "", typeText},
		{"document", "generated", doc.Generated.Format(time.RFC3339Nano), "", typeText},
		{"document", "notes", doc.Notes, "", typeText},
	}
	for _, s := range doc.sections() {
		for _, f := range *s.fields {
			v, typ := f.Text, typeText
			if v == "" {
				v, typ = strconv.FormatFloat(f.Value, 'g', -1, 64), typeNumber
			}
			rows = append(rows, []string{s.name, f.Name, v, f.Unit, typ})
		}
	}
	return writeCSVRows(w, rows)
}

func writeCSVRows(w io.Writer, rows [][]string) error {
	if err := csv.NewWriter(w).WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ParseCSV reads a document written by WriteCSV. Files without the type
// column are read the old way: values that parse as numbers become Value,
// anything else Text.
func ParseCSV(r io.Reader) (Document, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return Document{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return Document{}, fmt.Errorf("read csv: empty input")
	}
	typed := len(rows[0]) == len(csvHeader)
	if !typed && len(rows[0]) != len(csvHeader)-1 {
		return Document{}, fmt.Errorf("read csv: header has %d columns, want %d", len(rows[0]), len(csvHeader))
	}

	var doc Document
	bySection := map[string]*[]Field{}
	for _, s := range doc.sections() {
		bySection[s.name] = s.fields
	}
	for i, row := range rows[1:] {
		sec, name, value, unit := row[0], row[1], row[2], row[3]
		if sec == "document" {
			if err := doc.setMeta(name, value); err != nil {
				return Document{}, fmt.Errorf("read csv row %d: %w", i+2, err)
			}
			continue
		}
		dst, ok := bySection[sec]
		if !ok {
			return Document{}, fmt.Errorf("read csv row %d: unknown section %q", i+2, sec)
		}
		typ := ""
		if typed {
			typ = row[4]
		}
		f, err := parseField(name, value, unit, typ)
		if err != nil {
			return Document{}, fmt.Errorf("read csv row %d: %w", i+2, err)
		}
		*dst = append(*dst, f)
	}
	return doc, nil
}

// parseField reads one value; an empty typ means the untyped layout.
func parseField(name, value, unit, typ string) (Field, error) {
	f := Field{Name: name, Unit: unit}
	switch typ {
	case "":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			f.Value = v
		} else {
			f.Text = value
		}
	case typeText:
		f.Text = value
	case typeNumber:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Field{}, err
		}
		f.Value = v
	default:
		return Field{}, fmt.Errorf("unknown type %q", typ)
	}
	return f, nil
}

func (d *Document) setMeta(key, value string) error {
	switch key {
	case "kind":
		d.Kind = value
	case "title":
		d.Title = value
	case "project":
		d.Project = value
	case "author":
		d.Author = value
	case "notes":
		d.Notes = value
	case "generated":
		if value == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return err
		}
		d.Generated = t
	}
	return nil
}
