package fatigue

import (
	"math"

	"ShaftGear/internal/calcerr"
)

const (
	basquinCoeff    = 0.9 // fatigue strength coefficient as a fraction of Sut
	basquinExponent = -0.12
)

// Life is a cycle count; Infinite is set instead of an unbounded count.
type Life struct {
	Cycles   float64 `json:"cycles"`
	Infinite bool    `json:"infinite"`
}

// EstimateLife applies a Basquin line through 0.9·Sut. Amplitudes at or below
// the endurance limit give infinite life, above yield a single cycle.
// enduranceMPa <= 0 means 0.5·Sut.
func EstimateLife(amplitudeMPa, ultimateMPa, yieldMPa, enduranceMPa float64) (Life, error) {
	if !(amplitudeMPa > 0) {
		return Life{}, calcerr.InvalidInput("stress amplitude", amplitudeMPa)
	}
	if !(ultimateMPa > 0) {
		return Life{}, calcerr.InvalidInput("ultimate strength", ultimateMPa)
	}
	if enduranceMPa <= 0 {
		enduranceMPa = 0.5 * ultimateMPa
	}
	if amplitudeMPa <= enduranceMPa {
		return Life{Infinite: true}, nil
	}
	if amplitudeMPa > yieldMPa {
		return Life{Cycles: 1}, nil
	}
	n := math.Pow(amplitudeMPa/(basquinCoeff*ultimateMPa), 1/basquinExponent)
	return Life{Cycles: math.Max(1, n)}, nil
}
