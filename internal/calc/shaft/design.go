package shaft

import (
	"fmt"
	"math"

	"ShaftGear/internal/calcerr"
)

// EquivalentMoment is √(M² + ¾T²) in N·m, the moment that gives the same von
// Mises stress as M and T acting together on a round section.
func EquivalentMoment(torqueNM, momentNM float64) float64 {
	return math.Sqrt(momentNM*momentNM + 0.75*torqueNM*torqueNM)
}

// RequiredDiameter returns the smallest outer diameter (mm) whose von Mises
// stress under torque and bending equals yield/targetSF. innerMM > 0 sizes a
// hollow shaft with a fixed bore. Axial force is not considered.
func RequiredDiameter(torqueNM, momentNM, yieldMPa, targetSF, innerMM float64) (float64, error) {
	if err := positive("yield strength", yieldMPa); err != nil {
		return 0, err
	}
	if err := positive("target safety factor", targetSF); err != nil {
		return 0, err
	}
	if innerMM < 0 {
		return 0, calcerr.InvalidInput("inner diameter", innerMM)
	}
	me := EquivalentMoment(torqueNM, momentNM) * 1000 // N·mm
	if !(me > 0) {
		return 0, fmt.Errorf("%w: torque or bending moment must be greater than zero", calcerr.ErrInvalidInput)
	}
	if math.IsInf(me, 1) {
		return 0, fmt.Errorf("%w: equivalent moment overflows for torque %g and moment %g", calcerr.ErrInvalidInput, torqueNM, momentNM)
	}
	allow := yieldMPa / targetSF

	solid := math.Cbrt(32 * me / (math.Pi * allow))
	if innerMM == 0 {
		return finite("required diameter", solid)
	}

	stress := func(d float64) float64 {
		return 32 * me * d / (math.Pi * (math.Pow(d, 4) - math.Pow(innerMM, 4)))
	}
	lo, hi := innerMM, math.Max(solid, innerMM)*2
	for stress(hi) > allow {
		hi *= 2
	}
	for i := 0; i < 200 && hi-lo > 1e-9*hi; i++ {
		mid := (lo + hi) / 2
		if stress(mid) > allow {
			lo = mid
		} else {
			hi = mid
		}
	}
	return finite("required diameter", hi)
}
