package units

import (
	"fmt"
	"math"
	"sort"

	"ShaftGear/internal/calcerr"
)

type Dimension string

const (
	Length Dimension = "length"
	Force  Dimension = "force"
	Stress Dimension = "stress"
	Power  Dimension = "power"
	Torque Dimension = "torque"
)

type unit struct {
	dim    Dimension
	factor float64 // to the SI base unit of dim
}

var table = map[string]unit{
	"mm": {Length, 0.001},
	"cm": {Length, 0.01},
	"m":  {Length, 1},
	"in": {Length, 0.0254},
	"ft": {Length, 0.3048},

	"N":   {Force, 1},
	"kN":  {Force, 1000},
	"lbf": {Force, 4.448222},
	"kgf": {Force, 9.80665},

	"Pa":  {Stress, 1},
	"MPa": {Stress, 1e6},
	"GPa": {Stress, 1e9},
	"psi": {Stress, 6894.757},
	"ksi": {Stress, 6.894757e6},

	"W":  {Power, 1},
	"kW": {Power, 1000},
	"hp": {Power, 745.6999},

	"Nm":   {Torque, 1},
	"kNm":  {Torque, 1000},
	"lbft": {Torque, 1.355818},
	"lbin": {Torque, 0.1129848},
}

// Convert converts value between two units of the same dimension.
func Convert(value float64, from, to string) (float64, error) {
	f, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", calcerr.ErrInvalidInput, from)
	}
	t, ok := table[to]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", calcerr.ErrInvalidInput, to)
	}
	if f.dim != t.dim {
		return 0, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)", calcerr.ErrInvalidInput, from, f.dim, to, t.dim)
	}
	return value * f.factor / t.factor, nil
}

// Known lists the unit symbols of a dimension, or all symbols when dim is empty.
func Known(dim Dimension) []string {
	var out []string
	for sym, u := range table {
		if dim == "" || u.dim == dim {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}

// FormatEngineering formats value with an exponent that is a multiple of 3:
// 12345 -> "12.35e+3".
func FormatEngineering(value float64, precision int) string {
	if value == 0 {
		return "0"
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprint(value)
	}
	exp := int(math.Floor(math.Log10(math.Abs(value))/3) * 3)
	mantissa := value / math.Pow(10, float64(exp))
	if exp == 0 {
		return fmt.Sprintf("%.*f", precision, mantissa)
	}
	return fmt.Sprintf("%.*fe%+d", precision, mantissa, exp)
}
