// Package autodesign sizes a shaft to the next preferred stock diameter.
package autodesign

import (
	"fmt"
	"math"
	"sort"

	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

// PreferredSizesMM are standard stock shaft diameters.
var PreferredSizesMM = []float64{
	6, 8, 10, 12, 14, 16, 18, 20, 22, 25, 28, 30, 32, 35, 38, 40, 42, 45, 48,
	50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 110, 120, 130, 140, 150, 160,
	170, 180, 190, 200, 220, 240, 250, 260, 280, 300,
}

type ShaftInput struct {
	Material           string        `json:"material" validate:"required,material"`
	TorqueNM           float64       `json:"torque_nm" validate:"gte=0"`
	BendingMomentNM    float64       `json:"bending_moment_nm" validate:"gte=0"`
	AxialForceN        float64       `json:"axial_force_n" validate:"gte=0"`
	InnerDiameterMM    float64       `json:"inner_diameter_mm" validate:"gte=0"`
	LengthMM           float64       `json:"length_mm" validate:"gt=0"`
	TargetSafetyFactor float64       `json:"target_safety_factor" validate:"omitempty,gte=1"`
	Support            shaft.Support `json:"support" validate:"omitempty,oneof=simply_supported_center_load simply_supported_uniform_load cantilever_end_load cantilever_uniform_load"`
}

type ShaftResult struct {
	RequiredDiameterMM float64      `json:"required_diameter_mm"`
	SelectedDiameterMM float64      `json:"selected_diameter_mm"`
	Preferred          bool         `json:"preferred"`
	Check              shaft.Result `json:"check"`
	Notes              string       `json:"notes"`
}

// nextSize returns the smallest preferred size >= d, or d rounded up to
// 10 mm past the end of the list.
func nextSize(d float64) (float64, bool) {
	i := sort.SearchFloat64s(PreferredSizesMM, d)
	if i < len(PreferredSizesMM) {
		return PreferredSizesMM[i], true
	}
	return math.Ceil(d/10) * 10, false
}

// Shaft computes the required diameter, rounds it up to a stock size and
// verifies the result. Axial force is not part of the sizing formula, so the
// size is stepped up until the verified factor meets the target.
func Shaft(v *validate.Validator, src material.Source, in ShaftInput) (ShaftResult, error) {
	if err := v.Struct(in); err != nil {
		return ShaftResult{}, err
	}
	mat, err := src.Lookup(in.Material)
	if err != nil {
		return ShaftResult{}, err
	}
	if in.TargetSafetyFactor <= 0 {
		in.TargetSafetyFactor = shaft.DefaultTargetSafetyFactor
	}

	req, err := shaft.RequiredDiameter(in.TorqueNM, in.BendingMomentNM, mat.YieldStrengthMPa, in.TargetSafetyFactor, in.InnerDiameterMM)
	if err != nil {
		return ShaftResult{}, err
	}

	d := req
	for step := 0; step < len(PreferredSizesMM)+100; step++ {
		size, preferred := nextSize(d)
		if size <= in.InnerDiameterMM {
			d = math.Nextafter(in.InnerDiameterMM, math.Inf(1))
			continue
		}
		res, err := shaft.Calculate(shaft.Input{
			Material:           mat.Name,
			TorqueNM:           in.TorqueNM,
			BendingMomentNM:    in.BendingMomentNM,
			AxialForceN:        in.AxialForceN,
			OuterDiameterMM:    size,
			InnerDiameterMM:    in.InnerDiameterMM,
			LengthMM:           in.LengthMM,
			TargetSafetyFactor: in.TargetSafetyFactor,
			Support:            in.Support,
		}, mat)
		if err != nil {
			return ShaftResult{}, err
		}
		if res.Safety.MeetsRequired {
			return ShaftResult{
				RequiredDiameterMM: req,
				SelectedDiameterMM: size,
				Preferred:          preferred,
				Check:              res,
				Notes:              notes(preferred, res),
			}, nil
		}
		d = math.Nextafter(size, math.Inf(1))
	}
	return ShaftResult{}, fmt.Errorf("%w: no diameter up to %g mm meets a safety factor of %g", calcerr.ErrInvalidInput, d, in.TargetSafetyFactor)
}

func notes(preferred bool, res shaft.Result) string {
	n := "Auto-sized shaft (diameter selected to satisfy the target safety factor)."
	if !preferred {
		n += " Required size exceeds the preferred series; rounded up to 10 mm."
	}
	if !res.OKDeflection {
		n += " Deflection exceeds the limit; increase the diameter or reduce the span."
	}
	if !res.OKTwist {
		n += " Angle of twist exceeds 1°/m."
	}
	return n
}
