// Package recommend ranks materials for a given shaft load case.
package recommend

import (
	"sort"

	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

// Catalog is the part of the material database recommend needs.
type Catalog interface {
	material.Source
	All() []material.Record
}

type ShaftInput struct {
	TorqueNM           float64       `json:"torque_nm" validate:"gte=0"`
	BendingMomentNM    float64       `json:"bending_moment_nm" validate:"gte=0"`
	AxialForceN        float64       `json:"axial_force_n" validate:"gte=0"`
	OuterDiameterMM    float64       `json:"outer_diameter_mm" validate:"gt=0"`
	InnerDiameterMM    float64       `json:"inner_diameter_mm" validate:"gte=0,ltfield=OuterDiameterMM"`
	LengthMM           float64       `json:"length_mm" validate:"gt=0"`
	TargetSafetyFactor float64       `json:"target_safety_factor" validate:"omitempty,gte=1"`
	Support            shaft.Support `json:"support" validate:"omitempty,oneof=simply_supported_center_load simply_supported_uniform_load cantilever_end_load cantilever_uniform_load"`
	Application        string        `json:"application"`
}

func (in ShaftInput) shaftInput(materialName string) shaft.Input {
	return shaft.Input{
		Material:           materialName,
		TorqueNM:           in.TorqueNM,
		BendingMomentNM:    in.BendingMomentNM,
		AxialForceN:        in.AxialForceN,
		OuterDiameterMM:    in.OuterDiameterMM,
		InnerDiameterMM:    in.InnerDiameterMM,
		LengthMM:           in.LengthMM,
		TargetSafetyFactor: in.TargetSafetyFactor,
		Support:            in.Support,
	}
}

type Candidate struct {
	Material     string  `json:"material"`
	Category     string  `json:"category"`
	SafetyFactor float64 `json:"safety_factor"`
	WeightKgPerM float64 `json:"weight_kg_per_m"`
	OKDeflection bool    `json:"ok_deflection"`
	OKTwist      bool    `json:"ok_twist"`
}

type ShaftResult struct {
	Candidates  []Candidate `json:"candidates"`
	Rejected    []Candidate `json:"rejected"`
	Application []string    `json:"application,omitempty"`
	Notes       string      `json:"notes"`
}

// Shaft checks the load case against every material. Candidates meet the
// target safety factor and are ordered lightest first; rejected materials
// are ordered by safety factor, highest first.
func Shaft(v *validate.Validator, cat Catalog, in ShaftInput) (ShaftResult, error) {
	all := cat.All()
	if len(all) > 0 {
		if err := v.Struct(in.shaftInput(all[0].Name)); err != nil {
			return ShaftResult{}, err
		}
	}

	out := ShaftResult{Candidates: []Candidate{}, Rejected: []Candidate{}}
	for _, m := range all {
		res, err := shaft.Calculate(in.shaftInput(m.Name), m)
		if err != nil {
			return ShaftResult{}, err
		}
		c := Candidate{
			Material:     m.Name,
			Category:     m.Category,
			SafetyFactor: res.Safety.Factor,
			WeightKgPerM: res.WeightKgPerM,
			OKDeflection: res.OKDeflection,
			OKTwist:      res.OKTwist,
		}
		if res.Safety.MeetsRequired {
			out.Candidates = append(out.Candidates, c)
		} else {
			out.Rejected = append(out.Rejected, c)
		}
	}
	sort.SliceStable(out.Candidates, func(i, j int) bool {
		return out.Candidates[i].WeightKgPerM < out.Candidates[j].WeightKgPerM
	})
	sort.SliceStable(out.Rejected, func(i, j int) bool {
		return out.Rejected[i].SafetyFactor > out.Rejected[j].SafetyFactor
	})

	if in.Application != "" {
		out.Application = material.Applications()[in.Application]
	}
	out.Notes = "Materials meeting the target safety factor, lightest first."
	if len(out.Candidates) == 0 {
		out.Notes = "No material meets the target safety factor at this diameter; increase the diameter."
	}
	return out, nil
}
