package shaft

import (
	"fmt"
	"math"

	"ShaftGear/internal/calc/safety"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
)

const (
	DefaultTargetSafetyFactor   = 2.0
	DefaultDeflectionLimitRatio = 250.0 // L/250
	TwistLimitDegPerM           = 1.0
)

type Input struct {
	Material             string  `json:"material" validate:"required,material"`
	TorqueNM             float64 `json:"torque_nm" validate:"gte=0"`
	BendingMomentNM      float64 `json:"bending_moment_nm" validate:"gte=0"`
	AxialForceN          float64 `json:"axial_force_n" validate:"gte=0"`
	OuterDiameterMM      float64 `json:"outer_diameter_mm" validate:"gt=0"`
	InnerDiameterMM      float64 `json:"inner_diameter_mm" validate:"gte=0,ltfield=OuterDiameterMM"`
	LengthMM             float64 `json:"length_mm" validate:"gt=0"`
	TargetSafetyFactor   float64 `json:"target_safety_factor" validate:"omitempty,gte=1"`
	DeflectionLimitRatio float64 `json:"deflection_limit_ratio" validate:"omitempty,gt=0"`
	Support              Support `json:"support" validate:"omitempty,oneof=simply_supported_center_load simply_supported_uniform_load cantilever_end_load cantilever_uniform_load"`
}

func (in Input) Check(ve *calcerr.ValidationError) {
	if in.TorqueNM == 0 && in.BendingMomentNM == 0 && in.AxialForceN == 0 {
		ve.Add("torque_nm", "load", "at least one of torque_nm, bending_moment_nm or axial_force_n must be greater than 0")
	}
}

func (in Input) Section() Section {
	return Section{OuterMM: in.OuterDiameterMM, InnerMM: in.InnerDiameterMM}
}

type Result struct {
	Material           string       `json:"material"`
	Solid              bool         `json:"solid"`
	AreaMM2            float64      `json:"area_mm2"`
	IMM4               float64      `json:"i_mm4"`
	JMM4               float64      `json:"j_mm4"`
	AxialStressMPa     float64      `json:"axial_stress_mpa"`
	BendingStressMPa   float64      `json:"bending_stress_mpa"`
	TorsionalStressMPa float64      `json:"torsional_stress_mpa"`
	VonMisesMPa        float64      `json:"von_mises_mpa"`
	YieldStrengthMPa   float64      `json:"yield_strength_mpa"`
	Safety             safety.Check `json:"safety"`
	Pass               bool         `json:"pass"`
	MeetsRequired      bool         `json:"meets_required"`
	DeflectionMM       float64      `json:"deflection_mm"`
	DeflectionLimitMM  float64      `json:"deflection_limit_mm"`
	OKDeflection       bool         `json:"ok_deflection"`
	TwistDeg           float64      `json:"twist_deg"`
	TwistLimitDeg      float64      `json:"twist_limit_deg"`
	OKTwist            bool         `json:"ok_twist"`
	BucklingLoadN      float64      `json:"buckling_load_n"`
	BucklingSF         float64      `json:"buckling_sf,omitempty"`
	OKBuckling         bool         `json:"ok_buckling"`
	WeightKgPerM       float64      `json:"weight_kg_per_m"`
	Notes              string       `json:"notes"`
}

// TorsionalStress is 16T/(πd³) in MPa for a solid shaft of diameter d (mm)
// under torque T (N·m).
func TorsionalStress(diameterMM, torqueNM float64) (float64, error) {
	sec := Section{OuterMM: diameterMM}
	if err := sec.Validate(); err != nil {
		return 0, fmt.Errorf("torsional stress: %w", err)
	}
	return finite("torsional stress", sec.TorsionalStress(torqueNM))
}

// BendingStress is 32M/(πd³) in MPa for a solid shaft.
func BendingStress(diameterMM, momentNM float64) (float64, error) {
	sec := Section{OuterMM: diameterMM}
	if err := sec.Validate(); err != nil {
		return 0, fmt.Errorf("bending stress: %w", err)
	}
	return finite("bending stress", sec.BendingStress(momentNM))
}

// CombinedStress is the von Mises equivalent √(σ² + 3τ²).
func CombinedStress(torsional, bending float64) float64 {
	return math.Sqrt(bending*bending + 3*torsional*torsional)
}

// SafetyFactor compares the von Mises stress with the yield strength.
func SafetyFactor(vonMisesMPa, yieldMPa float64) (safety.Check, error) {
	return safety.Evaluate(vonMisesMPa, yieldMPa)
}

// Calculate verifies a given shaft against the material's yield strength and
// the deflection and twist limits.
func Calculate(in Input, mat material.Record) (Result, error) {
	sec := in.Section()
	if err := sec.Validate(); err != nil {
		return Result{}, err
	}
	if err := positive("length", in.LengthMM); err != nil {
		return Result{}, err
	}
	if in.TargetSafetyFactor <= 0 {
		in.TargetSafetyFactor = DefaultTargetSafetyFactor
	}
	if in.DeflectionLimitRatio <= 0 {
		in.DeflectionLimitRatio = DefaultDeflectionLimitRatio
	}

	axial := sec.AxialStress(in.AxialForceN)
	bending := sec.BendingStress(in.BendingMomentNM)
	torsional := sec.TorsionalStress(in.TorqueNM)
	vm := CombinedStress(torsional, axial+bending)
	if _, err := finite("von Mises stress", vm); err != nil {
		return Result{}, err
	}

	check, err := SafetyFactor(vm, mat.YieldStrengthMPa)
	if err != nil {
		return Result{}, fmt.Errorf("safety factor: %w", err)
	}
	check = check.WithRequired(in.TargetSafetyFactor)

	load, err := EquivalentLoad(in.Support, in.BendingMomentNM, in.LengthMM)
	if err != nil {
		return Result{}, err
	}
	defl, err := Deflection(in.Support, load, in.LengthMM, mat.ElasticModulusGPa, sec.IMM4())
	if err != nil {
		return Result{}, fmt.Errorf("deflection: %w", err)
	}
	deflLimit := in.LengthMM / in.DeflectionLimitRatio

	twist, err := AngleOfTwist(in.TorqueNM, in.LengthMM, ShearModulus(mat.ElasticModulusGPa, mat.PoissonRatio), sec.JMM4())
	if err != nil {
		return Result{}, fmt.Errorf("angle of twist: %w", err)
	}
	twistDeg := twist * 180 / math.Pi
	twistLimit := TwistLimitDegPerM * in.LengthMM / 1000

	// Axial force is taken as compressive.
	pcr, err := BucklingLoad(mat.ElasticModulusGPa, sec.IMM4(), in.LengthMM, in.Support.EffectiveLengthFactor())
	if err != nil {
		return Result{}, err
	}
	var bucklingSF float64
	if in.AxialForceN > 0 {
		bucklingSF = pcr / in.AxialForceN
	}

	return Result{
		Material:           mat.Name,
		Solid:              sec.Solid(),
		AreaMM2:            sec.AreaMM2(),
		IMM4:               sec.IMM4(),
		JMM4:               sec.JMM4(),
		AxialStressMPa:     axial,
		BendingStressMPa:   bending,
		TorsionalStressMPa: torsional,
		VonMisesMPa:        vm,
		YieldStrengthMPa:   mat.YieldStrengthMPa,
		Safety:             check,
		Pass:               check.Pass,
		MeetsRequired:      check.MeetsRequired,
		DeflectionMM:       defl,
		DeflectionLimitMM:  deflLimit,
		OKDeflection:       defl <= deflLimit,
		TwistDeg:           twistDeg,
		TwistLimitDeg:      twistLimit,
		OKTwist:            twistDeg <= twistLimit,
		BucklingLoadN:      pcr,
		BucklingSF:         bucklingSF,
		OKBuckling:         in.AxialForceN == 0 || bucklingSF >= in.TargetSafetyFactor,
		WeightKgPerM:       sec.WeightKgPerM(mat.DensityKgM3),
		Notes:              notes(in.Support),
	}, nil
}

func notes(s Support) string {
	if s == "" {
		s = SimplySupportedCenterLoad
	}
	return fmt.Sprintf("Distortion-energy check against yield; deflection for %s with the load that produces the given bending moment.", s)
}
