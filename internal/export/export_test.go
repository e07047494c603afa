package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ShaftGear/internal/calcerr"
)

func sampleDoc() Document {
	return Document{
		Kind:      "shaft",
		Title:     "Shaft Design Report",
		Project:   "Conveyor, line 2",
		Author:    "QA",
		Generated: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Summary:   []Field{Num("Outer diameter", 40, "mm")},
		Parameters: []Field{
			Text("Material", "AISI 1045 Steel"),
			Num("Torque", 500, "N·m"),
			Num("Bending moment", 0.1+0.2, "N·m"),
		},
		Results: []Field{
			Num("Von Mises stress", 48.31275734, "MPa"),
			Num("Tiny", 1.25e-9, "mm"),
		},
		Material: []Field{Num("Yield strength", 310, "MPa")},
		Checks:   []Field{Num("Safety factor", 6.4166, ""), Bool("Static check", true)},
		Notes:    "Distortion-energy check",
	}
}

func TestCSVRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, doc))
	assert.True(t, strings.HasPrefix(buf.String(), "section,parameter,value,unit,type\n"))

	got, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.True(t, doc.Generated.Equal(got.Generated))
	got.Generated = doc.Generated
	assert.Equal(t, doc, got)
}

func TestCSVKeepsNumericLookingText(t *testing.T) {
	doc := Document{
		Kind:       "gear",
		Parameters: []Field{Text("Grade", "1e3"), Text("Label", "NaN"), Text("Limit", "inf"), Num("Module", 3, "mm")},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, doc))

	got, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Parameters, got.Parameters)
}

func TestParseCSVUntypedLayout(t *testing.T) {
	got, err := ParseCSV(strings.NewReader("section,parameter,value,unit\nparameters,Torque,500,N·m\nparameters,Material,AISI 1045 Steel,\n"))
	require.NoError(t, err)
	assert.Equal(t, []Field{Num("Torque", 500, "N·m"), Text("Material", "AISI 1045 Steel")}, got.Parameters)
}

func TestParseCSVRejectsUnknownSection(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("section,parameter,value,unit,type\nbogus,x,1,mm,number\n"))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("section,parameter,value,unit,type\nparameters,x,abc,mm,number\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("section,parameter,value,unit,type\nparameters,x,1,mm,date\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("section,parameter\nparameters,x\n"))
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))
	assert.Contains(t, buf.String(), `"export_type": "mechanical_engineering_calculation"`)
	assert.Contains(t, buf.String(), `"calculation_metadata"`)

	got, err := ParseJSON(&buf)
	require.NoError(t, err)
	assert.True(t, doc.Generated.Equal(got.Generated))
	got.Generated = doc.Generated
	assert.Equal(t, doc, got)
}

func TestParseJSONRejectsForeignDocument(t *testing.T) {
	_, err := ParseJSON(strings.NewReader(`{"export_info":{"export_type":"other"}}`))
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleDoc()))
	out := buf.String()

	for _, want := range []string{
		"SHAFT DESIGN REPORT",
		"Generated: 2025-03-14 09:26:53",
		"DESIGN PARAMETERS",
		"Material: AISI 1045 Steel",
		"Torque: 500.000 N·m",
		"Static check: PASS",
		"DISCLAIMER",
	} {
		assert.Contains(t, out, want)
	}
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(l)), rule, l)
	}
}

func TestWriteTextWithoutChecks(t *testing.T) {
	doc := sampleDoc()
	doc.Checks = nil
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc))
	assert.Contains(t, buf.String(), "Safety factor analysis not available")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleDoc()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleDoc()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Section", "Parameter", "Value", "Unit"}, rows[0])
	assert.Equal(t, []string{"parameters", "Material", "AISI 1045 Steel"}, rows[4][:3])
}

func TestTableCSV(t *testing.T) {
	tb := Table{Header: []string{"name", "yield_mpa"}, Rows: [][]any{{"A", 250.0}, {"B, cast", 310.5}}}
	var buf bytes.Buffer
	require.NoError(t, tb.WriteCSV(&buf))
	assert.Equal(t, "name,yield_mpa\nA,250\n\"B, cast\",310.5\n", buf.String())
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "shaft_design_results_20250102_030405.csv", Filename("Shaft Design Results", CSV, ts))
	assert.Equal(t, "calculation_20250102_030405.pdf", Filename("", PDF, ts))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"CSV": CSV, "text": TXT, "": PDF, " xlsx ": XLSX} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}
	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}
