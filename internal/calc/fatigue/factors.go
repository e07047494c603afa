package fatigue

import (
	"fmt"
	"math"

	"ShaftGear/internal/calcerr"
)

type Finish string

const (
	MirrorPolished Finish = "mirror_polished"
	Polished       Finish = "polished"
	Machined       Finish = "machined"
	HotRolled      Finish = "hot_rolled"
	AsForged       Finish = "as_forged"
)

// Marin surface coefficients a·Sut^b with Sut in MPa.
var finishCoeff = map[Finish][2]float64{
	MirrorPolished: {1.58, -0.085},
	Polished:       {4.51, -0.265},
	Machined:       {4.51, -0.265},
	HotRolled:      {57.7, -0.718},
	AsForged:       {272, -0.995},
}

// SurfaceFactor is the Marin factor ka, capped at 1. An empty finish means
// machined.
func SurfaceFactor(finish Finish, ultimateMPa float64) (float64, error) {
	if finish == "" {
		finish = Machined
	}
	c, ok := finishCoeff[finish]
	if !ok {
		return 0, fmt.Errorf("%w: unknown surface finish %q", calcerr.ErrInvalidInput, finish)
	}
	if !(ultimateMPa > 0) {
		return 0, calcerr.InvalidInput("ultimate strength", ultimateMPa)
	}
	ka := c[0] * math.Pow(ultimateMPa, c[1])
	return math.Min(ka, 1), nil
}

type Loading string

const (
	Bending Loading = "bending"
	Torsion Loading = "torsion"
	Axial   Loading = "axial"
)

// SizeFactor is the Marin factor kb for a round section. Axial loading has
// no size effect; above 10 in the factor is held at its 10 in value.
func SizeFactor(diameterMM float64, loading Loading) (float64, error) {
	if !(diameterMM > 0) {
		return 0, calcerr.InvalidInput("diameter", diameterMM)
	}
	switch loading {
	case Bending, Torsion, "":
	case Axial:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: unknown loading %q", calcerr.ErrInvalidInput, loading)
	}
	in := diameterMM / 25.4
	switch {
	case in <= 0.3:
		return 1, nil
	case in <= 2:
		return math.Pow(in/0.3, -0.107), nil
	case in <= 10:
		return 0.91 * math.Pow(in, -0.157), nil
	default:
		return 0.91 * math.Pow(10, -0.157), nil
	}
}

type Feature string

const (
	Plain          Feature = "none"
	ShoulderFillet Feature = "shoulder_fillet"
	Keyway         Feature = "keyway"
	TransverseHole Feature = "transverse_hole"
)

// Notch describes a stress raiser on a shaft of diameter DiameterMM (the
// smaller diameter at a shoulder).
type Notch struct {
	Feature         Feature `json:"feature"`
	DiameterMM      float64 `json:"diameter_mm"`
	FilletRadiusMM  float64 `json:"fillet_radius_mm"`
	LargeDiameterMM float64 `json:"large_diameter_mm"`
	HoleDiameterMM  float64 `json:"hole_diameter_mm"`
}

// StressConcentration returns the elastic factor Kt. Ratios are clamped to
// the range the fits were made for: r/d ≥ 0.01, D/d ≥ 1.1, hole d/D ≤ 0.5.
func StressConcentration(n Notch) (float64, error) {
	switch n.Feature {
	case Plain, "":
		return 1, nil
	case Keyway:
		return 2, nil
	case ShoulderFillet:
		if !(n.DiameterMM > 0) || !(n.FilletRadiusMM > 0) || !(n.LargeDiameterMM > 0) {
			return 0, fmt.Errorf("%w: shoulder fillet needs diameter, fillet radius and large diameter", calcerr.ErrInvalidInput)
		}
		rd := math.Max(n.FilletRadiusMM/n.DiameterMM, 0.01)
		Dd := math.Max(n.LargeDiameterMM/n.DiameterMM, 1.1)
		return 1 + 0.25*math.Sqrt(Dd-1)/math.Sqrt(rd), nil
	case TransverseHole:
		if !(n.DiameterMM > 0) || !(n.HoleDiameterMM > 0) {
			return 0, fmt.Errorf("%w: transverse hole needs shaft and hole diameters", calcerr.ErrInvalidInput)
		}
		x := math.Min(n.HoleDiameterMM/n.DiameterMM, 0.5)
		return 3 - 3.13*x + 3.66*x*x - 1.53*x*x*x, nil
	}
	return 0, fmt.Errorf("%w: unknown notch feature %q", calcerr.ErrInvalidInput, n.Feature)
}
