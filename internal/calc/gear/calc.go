package gear

import (
	"fmt"
	"math"

	"ShaftGear/internal/calc/safety"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
)

type Type string

// StrengthModel selects how the allowable contact stress is estimated.
type StrengthModel string

const (
	// FromYield is 2.8·Sy.
	FromYield StrengthModel = "yield"
	// FromHardness is the through-hardened steel fit 2.22·HB + 200.
	FromHardness StrengthModel = "hardness"
)

const (
	Spur    Type = "spur"
	Helical Type = "helical"
)

const (
	DefaultPressureAngleDeg  = 20.0
	DefaultServiceFactor     = 1.25
	DefaultRequiredBendingSF = 2.0
	DefaultRequiredContactSF = 1.5
)

type Input struct {
	GearType          Type    `json:"gear_type" validate:"omitempty,oneof=spur helical"`
	PinionTeeth       int     `json:"pinion_teeth" validate:"gte=1"`
	GearTeeth         int     `json:"gear_teeth" validate:"gte=1"`
	ModuleMM          float64 `json:"module_mm" validate:"gt=0"`
	FaceWidthMM       float64 `json:"face_width_mm" validate:"gt=0"`
	HelixAngleDeg     float64 `json:"helix_angle_deg" validate:"gte=0,lte=45"`
	PressureAngleDeg  float64 `json:"pressure_angle_deg" validate:"omitempty,gte=14.5,lte=30"`
	PowerKW           float64 `json:"power_kw" validate:"gt=0"`
	PinionRPM         float64 `json:"pinion_rpm" validate:"gt=0"`
	PinionMaterial    string  `json:"pinion_material" validate:"required,material"`
	GearMaterial      string  `json:"gear_material" validate:"required,material"`
	ServiceFactor     float64 `json:"service_factor" validate:"omitempty,gte=1"`
	RequiredBendingSF float64 `json:"required_bending_sf" validate:"omitempty,gte=1"`
	RequiredContactSF float64 `json:"required_contact_sf" validate:"omitempty,gte=1"`
	QualityGrade      int     `json:"quality_grade" validate:"omitempty,gte=6,lte=12"`

	ContactStrengthModel StrengthModel `json:"contact_strength_model" validate:"omitempty,oneof=yield hardness"`
}

// withDefaults fills optional fields. Spur gears have no helix.
func (in Input) withDefaults() Input {
	if in.GearType == "" {
		in.GearType = Spur
	}
	if in.GearType == Spur {
		in.HelixAngleDeg = 0
	}
	if in.PressureAngleDeg <= 0 {
		in.PressureAngleDeg = DefaultPressureAngleDeg
	}
	if in.ServiceFactor <= 0 {
		in.ServiceFactor = DefaultServiceFactor
	}
	if in.RequiredBendingSF <= 0 {
		in.RequiredBendingSF = DefaultRequiredBendingSF
	}
	if in.RequiredContactSF <= 0 {
		in.RequiredContactSF = DefaultRequiredContactSF
	}
	if in.ContactStrengthModel == "" {
		in.ContactStrengthModel = FromYield
	}
	return in
}

type GeometryResult struct {
	Ratio                 float64 `json:"ratio"`
	PinionPitchDiameterMM float64 `json:"pinion_pitch_diameter_mm"`
	GearPitchDiameterMM   float64 `json:"gear_pitch_diameter_mm"`
	CenterDistanceMM      float64 `json:"center_distance_mm"`
	GearRPM               float64 `json:"gear_rpm"`
	PinionTorqueNM        float64 `json:"pinion_torque_nm"`
	GearTorqueNM          float64 `json:"gear_torque_nm"`
	PitchLineVelocityMS   float64 `json:"pitch_line_velocity_ms"`
	TransmittedLoadN      float64 `json:"transmitted_load_n"`
}

// Geometry derives the pair's dimensions, speeds and tangential load.
func Geometry(in Input) (GeometryResult, error) {
	if in.PinionTeeth < 1 {
		return GeometryResult{}, calcerr.InvalidInput("pinion teeth", float64(in.PinionTeeth))
	}
	if in.GearTeeth < 1 {
		return GeometryResult{}, calcerr.InvalidInput("gear teeth", float64(in.GearTeeth))
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"module", in.ModuleMM},
		{"power", in.PowerKW},
		{"pinion speed", in.PinionRPM},
	} {
		if err := positive(p.name, p.v); err != nil {
			return GeometryResult{}, fmt.Errorf("gear geometry: %w", err)
		}
	}

	ratio := float64(in.GearTeeth) / float64(in.PinionTeeth)
	d1 := in.ModuleMM * float64(in.PinionTeeth)
	d2 := in.ModuleMM * float64(in.GearTeeth)
	t1 := in.PowerKW * 1000 * 60 / (2 * math.Pi * in.PinionRPM)
	return GeometryResult{
		Ratio:                 ratio,
		PinionPitchDiameterMM: d1,
		GearPitchDiameterMM:   d2,
		CenterDistanceMM:      (d1 + d2) / 2,
		GearRPM:               in.PinionRPM / ratio,
		PinionTorqueNM:        t1,
		GearTorqueNM:          t1 * ratio,
		PitchLineVelocityMS:   math.Pi * d1 * in.PinionRPM / 60000,
		TransmittedLoadN:      2000 * t1 / d1,
	}, nil
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return calcerr.InvalidInput(name, v)
	}
	return nil
}

// ToothBendingStress is the Lewis stress W/(F·m·Y) in MPa.
func ToothBendingStress(loadN, moduleMM, faceWidthMM, formFactor float64) (float64, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"load", loadN},
		{"module", moduleMM},
		{"face width", faceWidthMM},
		{"form factor", formFactor},
	} {
		if err := positive(p.name, p.v); err != nil {
			return 0, fmt.Errorf("tooth bending stress: %w", err)
		}
	}
	return loadN / (faceWidthMM * moduleMM * formFactor), nil
}

// ElasticCoefficient Cp in √MPa for moduli in GPa.
func ElasticCoefficient(e1GPa, nu1, e2GPa, nu2 float64) (float64, error) {
	if err := positive("pinion elastic modulus", e1GPa); err != nil {
		return 0, err
	}
	if err := positive("gear elastic modulus", e2GPa); err != nil {
		return 0, err
	}
	e1, e2 := e1GPa*1000, e2GPa*1000
	return math.Sqrt(1 / (math.Pi * ((1-nu1*nu1)/e1 + (1-nu2*nu2)/e2))), nil
}

// ContactGeometryFactor is I = cosψ·sinφ/2 · mG/(mG+1).
func ContactGeometryFactor(pressureAngleDeg, helixAngleDeg, ratio float64) (float64, error) {
	if err := positive("pressure angle", pressureAngleDeg); err != nil {
		return 0, err
	}
	if err := positive("gear ratio", ratio); err != nil {
		return 0, err
	}
	phi := pressureAngleDeg * math.Pi / 180
	psi := helixAngleDeg * math.Pi / 180
	i := math.Cos(psi) * math.Sin(phi) / 2 * ratio / (ratio + 1)
	if !(i > 0) {
		return 0, fmt.Errorf("%w: contact geometry factor is not positive for pressure angle %g and helix angle %g",
			calcerr.ErrInvalidInput, pressureAngleDeg, helixAngleDeg)
	}
	return i, nil
}

// ContactStress is the Hertzian surface stress Cp·√(W/(F·d·I)) in MPa.
func ContactStress(loadN, faceWidthMM, pitchDiameterMM, geometryFactor, cp float64) (float64, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"load", loadN},
		{"face width", faceWidthMM},
		{"pitch diameter", pitchDiameterMM},
		{"geometry factor", geometryFactor},
		{"elastic coefficient", cp},
	} {
		if err := positive(p.name, p.v); err != nil {
			return 0, fmt.Errorf("contact stress: %w", err)
		}
	}
	return cp * math.Sqrt(loadN/(faceWidthMM*pitchDiameterMM*geometryFactor)), nil
}

// ContactStrength estimates the surface fatigue strength in MPa.
func ContactStrength(r material.Record, model StrengthModel) (float64, error) {
	switch model {
	case FromYield, "":
		return 2.8 * r.YieldStrengthMPa, nil
	case FromHardness:
		return 2.22*r.HardnessHB + 200, nil
	}
	return 0, fmt.Errorf("%w: unknown contact strength model %q", calcerr.ErrInvalidInput, model)
}

func SafetyFactor(stress, allowable float64) (safety.Check, error) {
	return safety.Evaluate(stress, allowable)
}

type ToothResult struct {
	Material           string       `json:"material"`
	Teeth              int          `json:"teeth"`
	LewisFactor        float64      `json:"lewis_factor"`
	BendingStressMPa   float64      `json:"bending_stress_mpa"`
	BendingStrengthMPa float64      `json:"bending_strength_mpa"`
	Bending            safety.Check `json:"bending"`
	ContactStrengthMPa float64      `json:"contact_strength_mpa"`
	Contact            safety.Check `json:"contact"`
}

type Result struct {
	GearType              Type           `json:"gear_type"`
	Geometry              GeometryResult `json:"geometry"`
	ServiceFactor         float64        `json:"service_factor"`
	DynamicFactor         float64        `json:"dynamic_factor"`
	DesignLoadN           float64        `json:"design_load_n"`
	ElasticCoefficient    float64        `json:"elastic_coefficient"`
	ContactGeometryFactor float64        `json:"contact_geometry_factor"`
	ContactStressMPa      float64        `json:"contact_stress_mpa"`
	Pinion                ToothResult    `json:"pinion"`
	Gear                  ToothResult    `json:"gear"`
	ContactStrengthModel  StrengthModel  `json:"contact_strength_model"`
	Pass                  bool           `json:"pass"`
	MeetsRequired         bool           `json:"meets_required"`
	Notes                 string         `json:"notes"`
}

// Calculate checks tooth bending (Lewis) and surface contact (Hertz) for the
// pinion and the gear. Pass means every factor is at least 1; MeetsRequired
// means every factor reaches its required value.
func Calculate(in Input, pinion, gear material.Record) (Result, error) {
	in = in.withDefaults()
	geo, err := Geometry(in)
	if err != nil {
		return Result{}, err
	}
	if err := positive("face width", in.FaceWidthMM); err != nil {
		return Result{}, err
	}

	kv := DynamicFactor(geo.PitchLineVelocityMS)
	load := geo.TransmittedLoadN * in.ServiceFactor * kv

	cp, err := ElasticCoefficient(pinion.ElasticModulusGPa, pinion.PoissonRatio, gear.ElasticModulusGPa, gear.PoissonRatio)
	if err != nil {
		return Result{}, fmt.Errorf("elastic coefficient: %w", err)
	}
	geomI, err := ContactGeometryFactor(in.PressureAngleDeg, in.HelixAngleDeg, geo.Ratio)
	if err != nil {
		return Result{}, err
	}
	sc, err := ContactStress(load, in.FaceWidthMM, geo.PinionPitchDiameterMM, geomI, cp)
	if err != nil {
		return Result{}, err
	}

	tooth := func(mat material.Record, teeth int) (ToothResult, error) {
		y := LewisFormFactor(teeth)
		sb, err := ToothBendingStress(load, in.ModuleMM, in.FaceWidthMM, y)
		if err != nil {
			return ToothResult{}, err
		}
		bending, err := safety.Against(sb, mat.YieldStrengthMPa, in.RequiredBendingSF)
		if err != nil {
			return ToothResult{}, fmt.Errorf("%s bending safety: %w", mat.Name, err)
		}
		strength, err := ContactStrength(mat, in.ContactStrengthModel)
		if err != nil {
			return ToothResult{}, err
		}
		contact, err := safety.Against(sc, strength, in.RequiredContactSF)
		if err != nil {
			return ToothResult{}, fmt.Errorf("%s contact safety: %w", mat.Name, err)
		}
		return ToothResult{
			Material:           mat.Name,
			Teeth:              teeth,
			LewisFactor:        y,
			BendingStressMPa:   sb,
			BendingStrengthMPa: mat.YieldStrengthMPa,
			Bending:            bending,
			ContactStrengthMPa: strength,
			Contact:            contact,
		}, nil
	}
	p, err := tooth(pinion, in.PinionTeeth)
	if err != nil {
		return Result{}, err
	}
	g, err := tooth(gear, in.GearTeeth)
	if err != nil {
		return Result{}, err
	}

	meets := p.Bending.MeetsRequired && g.Bending.MeetsRequired &&
		p.Contact.MeetsRequired && g.Contact.MeetsRequired
	return Result{
		GearType:              in.GearType,
		Geometry:              geo,
		ServiceFactor:         in.ServiceFactor,
		DynamicFactor:         kv,
		DesignLoadN:           load,
		ElasticCoefficient:    cp,
		ContactGeometryFactor: geomI,
		ContactStressMPa:      sc,
		Pinion:                p,
		Gear:                  g,
		ContactStrengthModel:  in.ContactStrengthModel,
		Pass:                  p.Bending.Pass && g.Bending.Pass && p.Contact.Pass && g.Contact.Pass,
		MeetsRequired:         meets,
		Notes:                 notes(in.ContactStrengthModel),
	}, nil
}

func notes(model StrengthModel) string {
	if model == FromHardness {
		return "Lewis bending against yield strength; Hertz contact against 2.22·HB + 200 MPa."
	}
	return "Lewis bending against yield strength; Hertz contact against 2.8·Sy."
}
