// Package export serializes calculation documents to CSV, JSON, plain text,
// PDF and XLSX.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ShaftGear/internal/calcerr"
)

// Field is one named value. Text holds non-numeric values and takes
// precedence over Value when set.
type Field struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Text  string  `json:"text,omitempty"`
}

func Num(name string, v float64, unit string) Field {
	return Field{Name: name, Value: v, Unit: unit}
}

func Text(name, text string) Field {
	return Field{Name: name, Text: text}
}

// Bool renders a pass/fail flag.
func Bool(name string, ok bool) Field {
	if ok {
		return Text(name, "PASS")
	}
	return Text(name, "FAIL")
}

func (f Field) String() string {
	if f.Text != "" {
		return f.Text
	}
	s := formatValue(f.Value)
	if f.Unit != "" {
		s += " " + f.Unit
	}
	return s
}

// Document is a rendered calculation: its inputs, results, the material used
// and the safety checks.
type Document struct {
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Project    string    `json:"project,omitempty"`
	Author     string    `json:"author,omitempty"`
	Generated  time.Time `json:"generated"`
	Summary    []Field   `json:"summary,omitempty"`
	Parameters []Field   `json:"parameters"`
	Results    []Field   `json:"results"`
	Material   []Field   `json:"material,omitempty"`
	Checks     []Field   `json:"checks,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

type section struct {
	name   string
	fields *[]Field
}

func (d *Document) sections() []section {
	return []section{
		{"summary", &d.Summary},
		{"parameters", &d.Parameters},
		{"results", &d.Results},
		{"material", &d.Material},
		{"checks", &d.Checks},
	}
}

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	TXT  Format = "txt"
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively; "text" is TXT.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, TXT, PDF, XLSX:
		return f, nil
	case "text":
		return TXT, nil
	case "":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", calcerr.ErrInvalidInput, s)
}

func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv"
	case JSON:
		return "application/json"
	case TXT:
		return "text/plain; charset=utf-8"
	case PDF:
		return "application/pdf"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Write serializes doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case CSV:
		return WriteCSV(w, doc)
	case JSON:
		return WriteJSON(w, doc)
	case TXT:
		return WriteText(w, doc)
	case PDF:
		return WritePDF(w, doc)
	case XLSX:
		return WriteXLSX(w, doc)
	}
	return fmt.Errorf("%w: unsupported export format %q", calcerr.ErrInvalidInput, f)
}

// Filename returns base_20060102_150405.ext.
func Filename(base string, f Format, t time.Time) string {
	base = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(base)), " ", "_")
	if base == "" {
		base = "calculation"
	}
	return fmt.Sprintf("%s_%s.%s", base, t.Format("20060102_150405"), f)
}

func formatValue(v float64) string {
	switch a := abs(v); {
	case v == 0:
		return "0"
	case a >= 1000:
		return fmt.Sprintf("%.0f", v)
	case a >= 1:
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.4g", v)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
