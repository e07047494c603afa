// Package importer reads shaft load cases from an XLSX sheet.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ShaftGear/internal/calc/premium/batch"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/export"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

// Columns of the shaft sheet, in order. Columns after length_mm are optional.
var Columns = []string{
	"material", "torque_nm", "bending_moment_nm", "axial_force_n",
	"outer_diameter_mm", "inner_diameter_mm", "length_mm", "target_safety_factor",
}

const requiredColumns = 7

// Row is one parsed sheet row. Line is the 1-based sheet row number.
type Row struct {
	Line  int
	Input shaft.Input
	Err   error
}

// ReadShaftRows parses the first sheet. The first row is a header and blank
// rows are skipped.
func ReadShaftRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not an xlsx file: %v", calcerr.ErrInvalidInput, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet has no data rows", calcerr.ErrInvalidInput)
	}

	var out []Row
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		in, err := parseShaftRow(cells)
		out = append(out, Row{Line: i + 2, Input: in, Err: err})
	}
	return out, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseShaftRow(cells []string) (shaft.Input, error) {
	if len(cells) < requiredColumns {
		return shaft.Input{}, fmt.Errorf("%w: expected at least %d columns, got %d", calcerr.ErrInvalidInput, requiredColumns, len(cells))
	}
	vals := make([]float64, len(Columns))
	for i := 1; i < len(Columns) && i < len(cells); i++ {
		s := strings.TrimSpace(cells[i])
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return shaft.Input{}, fmt.Errorf("%w: %s: %q is not a number", calcerr.ErrInvalidInput, Columns[i], s)
		}
		vals[i] = v
	}
	return shaft.Input{
		Material:           strings.TrimSpace(cells[0]),
		TorqueNM:           vals[1],
		BendingMomentNM:    vals[2],
		AxialForceN:        vals[3],
		OuterDiameterMM:    vals[4],
		InnerDiameterMM:    vals[5],
		LengthMM:           vals[6],
		TargetSafetyFactor: vals[7],
	}, nil
}

// Shaft calculates every row; Index in the result is the sheet row number.
func Shaft(v *validate.Validator, src material.Source, rows []Row) batch.Result[shaft.Result] {
	var out batch.Result[shaft.Result]
	for _, row := range rows {
		if row.Err != nil {
			out.Add(row.Line, shaft.Result{}, row.Err)
			continue
		}
		res, err := shaft.Run(v, src, row.Input)
		out.Add(row.Line, res, err)
	}
	return out
}

// Template is an empty shaft sheet with one example row.
func Template() export.Table {
	t := export.Table{Sheet: "Shafts", Header: Columns}
	t.Rows = append(t.Rows, []any{"AISI 1045 Steel", 500.0, 250.0, 0.0, 40.0, 0.0, 600.0, 2.0})
	return t
}
