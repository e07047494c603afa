package safety

import (
	"fmt"
	"math"

	"ShaftGear/internal/calcerr"
)

// Check is the outcome of comparing a computed stress with a strength.
type Check struct {
	Factor        float64 `json:"factor"`
	Pass          bool    `json:"pass"` // factor >= 1
	Required      float64 `json:"required,omitempty"`
	MeetsRequired bool    `json:"meets_required"`
}

// Evaluate returns strength/stress. A factor of exactly 1.0 passes.
func Evaluate(stress, strength float64) (Check, error) {
	if stress <= 0 || math.IsNaN(stress) || math.IsInf(stress, 0) {
		return Check{}, fmt.Errorf("%w: stress must be a positive finite number, got %g", calcerr.ErrInvalidInput, stress)
	}
	if strength <= 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return Check{}, calcerr.InvalidInput("strength", strength)
	}
	f := strength / stress
	return Check{Factor: f, Pass: f >= 1.0, MeetsRequired: f >= 1.0}, nil
}

// Against evaluates and also compares with a required factor (values below 1
// are treated as 1).
func Against(stress, strength, required float64) (Check, error) {
	c, err := Evaluate(stress, strength)
	if err != nil {
		return Check{}, err
	}
	return c.WithRequired(required), nil
}

func (c Check) WithRequired(required float64) Check {
	if required < 1 {
		required = 1
	}
	c.Required = required
	c.MeetsRequired = c.Factor >= required
	return c
}
