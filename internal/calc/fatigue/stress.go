// Package fatigue estimates endurance and life of a shaft under fully
// reversed stress using Marin factors and a Basquin S-N line.
package fatigue

import "math"

// State is a general 3D stress state in MPa.
type State struct {
	SigmaX float64 `json:"sigma_x"`
	SigmaY float64 `json:"sigma_y"`
	SigmaZ float64 `json:"sigma_z"`
	TauXY  float64 `json:"tau_xy"`
	TauXZ  float64 `json:"tau_xz"`
	TauYZ  float64 `json:"tau_yz"`
}

func VonMises(s State) float64 {
	dxy := s.SigmaX - s.SigmaY
	dyz := s.SigmaY - s.SigmaZ
	dzx := s.SigmaZ - s.SigmaX
	return math.Sqrt(0.5*(dxy*dxy+dyz*dyz+dzx*dzx) + 3*(s.TauXY*s.TauXY+s.TauXZ*s.TauXZ+s.TauYZ*s.TauYZ))
}

type Principal struct {
	Sigma1   float64 `json:"sigma_1"`
	Sigma2   float64 `json:"sigma_2"`
	AngleDeg float64 `json:"angle_deg"`
}

// PrincipalStresses for a plane stress state. AngleDeg is
// ½·atan(2τxy/(σx−σy)), ±45° when σx = σy.
func PrincipalStresses(sigmaX, sigmaY, tauXY float64) Principal {
	avg := (sigmaX + sigmaY) / 2
	r := math.Hypot((sigmaX-sigmaY)/2, tauXY)
	var theta float64
	switch {
	case sigmaX != sigmaY:
		theta = 0.5 * math.Atan(2*tauXY/(sigmaX-sigmaY))
	case tauXY > 0:
		theta = math.Pi / 4
	case tauXY < 0:
		theta = -math.Pi / 4
	}
	return Principal{Sigma1: avg + r, Sigma2: avg - r, AngleDeg: theta * 180 / math.Pi}
}
