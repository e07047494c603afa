package shaft

import (
	"fmt"
	"math"
)

// EffectiveLengthFactor is K in the Euler formula: 1 for a shaft pinned at
// both bearings, 2 for a cantilever.
func (s Support) EffectiveLengthFactor() float64 {
	switch s {
	case CantileverEndLoad, CantileverUniformLoad:
		return 2
	default:
		return 1
	}
}

// BucklingLoad is the Euler critical load π²EI/(KL)² in N.
func BucklingLoad(elasticModulusGPa, iMM4, lengthMM, k float64) (float64, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"elastic modulus", elasticModulusGPa}, {"second moment of area", iMM4}, {"length", lengthMM}, {"effective length factor", k}} {
		if err := positive(p.name, p.v); err != nil {
			return 0, fmt.Errorf("buckling load: %w", err)
		}
	}
	kl := k * lengthMM
	return finite("buckling load", math.Pi*math.Pi*elasticModulusGPa*1000*iMM4/(kl*kl))
}
