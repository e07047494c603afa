package shaft

import (
	"fmt"
	"math"

	"ShaftGear/internal/calcerr"
)

// Section is a circular shaft cross-section in mm. InnerMM is zero for a
// solid shaft.
type Section struct {
	OuterMM float64 `json:"outer_mm"`
	InnerMM float64 `json:"inner_mm"`
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return calcerr.InvalidInput(name, v)
	}
	return nil
}

// finite rejects a result that overflowed or underflowed into NaN or ±Inf.
func finite(name string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s is not a finite number for these inputs", calcerr.ErrInvalidInput, name)
	}
	return v, nil
}

func (s Section) Validate() error {
	if err := positive("outer diameter", s.OuterMM); err != nil {
		return err
	}
	if s.InnerMM < 0 || s.InnerMM >= s.OuterMM || math.IsNaN(s.InnerMM) {
		return fmt.Errorf("%w: inner diameter must be in [0, %g), got %g", calcerr.ErrInvalidInput, s.OuterMM, s.InnerMM)
	}
	if i := s.IMM4(); !(i > 0) || math.IsInf(i, 1) || math.IsInf(s.AreaMM2(), 1) {
		return fmt.Errorf("%w: section %g/%g mm is outside the representable range", calcerr.ErrInvalidInput, s.OuterMM, s.InnerMM)
	}
	return nil
}

func (s Section) Solid() bool { return s.InnerMM == 0 }

// AreaMM2 is the cross-sectional area.
func (s Section) AreaMM2() float64 {
	return math.Pi / 4 * (s.OuterMM*s.OuterMM - s.InnerMM*s.InnerMM)
}

// IMM4 is the second moment of area about a diameter.
func (s Section) IMM4() float64 {
	return math.Pi * (math.Pow(s.OuterMM, 4) - math.Pow(s.InnerMM, 4)) / 64
}

// JMM4 is the polar second moment of area.
func (s Section) JMM4() float64 {
	return 2 * s.IMM4()
}

// AxialStress in MPa for a force in N.
func (s Section) AxialStress(forceN float64) float64 {
	return forceN / s.AreaMM2()
}

// BendingStress in MPa at the outer fibre for a moment in N·m.
func (s Section) BendingStress(momentNM float64) float64 {
	return momentNM * 1000 * (s.OuterMM / 2) / s.IMM4()
}

// TorsionalStress in MPa at the outer fibre for a torque in N·m.
func (s Section) TorsionalStress(torqueNM float64) float64 {
	return torqueNM * 1000 * (s.OuterMM / 2) / s.JMM4()
}

// WeightKgPerM for a density in kg/m3.
func (s Section) WeightKgPerM(densityKgM3 float64) float64 {
	return s.AreaMM2() * 1e-6 * densityKgM3
}
