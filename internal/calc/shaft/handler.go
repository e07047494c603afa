package shaft

import (
	"fmt"
	"net/http"

	"ShaftGear/internal/httpx"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

// Run validates in, looks up its material and calculates.
func Run(v *validate.Validator, src material.Source, in Input) (Result, error) {
	if err := v.Struct(in); err != nil {
		return Result{}, err
	}
	mat, err := src.Lookup(in.Material)
	if err != nil {
		return Result{}, err
	}
	return Calculate(in, mat)
}

type DesignInput struct {
	Material           string  `json:"material" validate:"required,material"`
	TorqueNM           float64 `json:"torque_nm" validate:"gte=0"`
	BendingMomentNM    float64 `json:"bending_moment_nm" validate:"gte=0"`
	InnerDiameterMM    float64 `json:"inner_diameter_mm" validate:"gte=0"`
	TargetSafetyFactor float64 `json:"target_safety_factor" validate:"omitempty,gte=1"`
}

type DesignResult struct {
	RequiredDiameterMM float64 `json:"required_diameter_mm"`
	EquivalentMomentNM float64 `json:"equivalent_moment_nm"`
	AllowableStressMPa float64 `json:"allowable_stress_mpa"`
	TargetSafetyFactor float64 `json:"target_safety_factor"`
	Notes              string  `json:"notes"`
}

// RunDesign validates in and sizes the shaft.
func RunDesign(v *validate.Validator, src material.Source, in DesignInput) (DesignResult, error) {
	if err := v.Struct(in); err != nil {
		return DesignResult{}, err
	}
	mat, err := src.Lookup(in.Material)
	if err != nil {
		return DesignResult{}, err
	}
	if in.TargetSafetyFactor <= 0 {
		in.TargetSafetyFactor = DefaultTargetSafetyFactor
	}
	d, err := RequiredDiameter(in.TorqueNM, in.BendingMomentNM, mat.YieldStrengthMPa, in.TargetSafetyFactor, in.InnerDiameterMM)
	if err != nil {
		return DesignResult{}, fmt.Errorf("required diameter: %w", err)
	}
	return DesignResult{
		RequiredDiameterMM: d,
		EquivalentMomentNM: EquivalentMoment(in.TorqueNM, in.BendingMomentNM),
		AllowableStressMPa: mat.YieldStrengthMPa / in.TargetSafetyFactor,
		TargetSafetyFactor: in.TargetSafetyFactor,
		Notes:              "Diameter from the distortion-energy equivalent moment; axial force not included.",
	}, nil
}

type Handler struct {
	Materials material.Source
	Validator *validate.Validator
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := Run(h.Validator, h.Materials, input)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var input DesignInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.Error(w, r, err)
		return
	}
	res, err := RunDesign(h.Validator, h.Materials, input)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
