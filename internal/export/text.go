package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	rule    = 80
	subrule = 40
)

var recommendations = []string{
	"Verify all safety factors meet or exceed minimum requirements",
	"Consider manufacturing tolerances in final design",
	"Review material selection for operating environment",
	"Validate assumptions with detailed FEA if critical application",
	"Consider fatigue analysis for cyclic loading conditions",
}

var disclaimer = []string{
	"This analysis is based on simplified engineering calculations.",
	"For critical applications, detailed finite element analysis",
	"and professional engineering review are recommended.",
	"Verify all results against applicable design codes and standards.",
}

// WriteText writes an 80-column plain text report.
func WriteText(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format+"\n", args...)
	}
	heading := func(title string) {
		line("%s", title)
		line("%s", strings.Repeat("-", subrule))
	}
	fields := func(title string, fs []Field) {
		if len(fs) == 0 {
			return
		}
		heading(title)
		for _, f := range fs {
			line("%s: %s", f.Name, f)
		}
		line("")
	}

	line("%s", strings.Repeat("=", rule))
	line("%s", strings.ToUpper(doc.Title))
	line("%s", strings.Repeat("=", rule))
	line("Generated: %s", doc.Generated.Format("2006-01-02 15:04:05"))
	line("Software: %s", software)
	if doc.Project != "" {
		line("Project: %s", doc.Project)
	}
	if doc.Author != "" {
		line("Author: %s", doc.Author)
	}
	line("")

	fields("EXECUTIVE SUMMARY", doc.Summary)
	fields("DESIGN PARAMETERS", doc.Parameters)
	fields("CALCULATION RESULTS", doc.Results)
	fields("MATERIAL PROPERTIES", doc.Material)

	heading("SAFETY ASSESSMENT")
	if len(doc.Checks) == 0 {
		line("Safety factor analysis not available")
	}
	for _, f := range doc.Checks {
		line("%s: %s", f.Name, f)
	}
	line("")

	if doc.Notes != "" {
		heading("NOTES")
		line("%s", doc.Notes)
		line("")
	}

	heading("DESIGN RECOMMENDATIONS")
	for _, r := range recommendations {
		line("* %s", r)
	}
	line("")

	heading("DISCLAIMER")
	for _, d := range disclaimer {
		line("%s", d)
	}
	line("")
	line("%s", strings.Repeat("=", rule))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}
