package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders doc as an A4 report.
func WritePDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if doc.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", doc.Project)))
		pdf.Ln(6)
	}
	if doc.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", doc.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", doc.Generated.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	table := func(title string, fs []Field) {
		if len(fs) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, f := range fs {
			pdf.CellFormat(95, 6, tr(f.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(85, 6, tr(f.String()), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}
	table("Summary", doc.Summary)
	table("Design parameters", doc.Parameters)
	table("Calculation results", doc.Results)
	table("Material properties", doc.Material)
	table("Safety assessment", doc.Checks)

	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(doc.Notes), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 8)
	for _, d := range disclaimer {
		pdf.Cell(0, 4, d)
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
