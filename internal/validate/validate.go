// Package validate checks calculation parameters against struct-tag range
// rules before any formula runs.
//
// Rules are go-playground/validator tags. Besides the stock tags a custom
// "material" tag requires the string to name a material in the database.
// Types that need a rule spanning several fields implement Checker.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
)

// Checker is implemented by parameter structs with cross-field rules. It is
// called after the tag rules and appends to ve.
type Checker interface {
	Check(ve *calcerr.ValidationError)
}

type Validator struct {
	v *validator.Validate
}

func New(materials material.Source) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("material", func(fl validator.FieldLevel) bool {
		if materials == nil {
			return false
		}
		_, err := materials.Lookup(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Struct validates params and returns nil or a *calcerr.ValidationError.
func (v *Validator) Struct(params any) error {
	ve := &calcerr.ValidationError{}
	if err := v.v.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate: %w", err)
		}
		for _, fe := range fieldErrs {
			ve.Add(fieldPath(fe), fe.Tag(), message(fe))
		}
	}
	if c, ok := params.(Checker); ok {
		c.Check(ve)
	}
	return ve.OrNil()
}

// fieldPath drops the top-level struct name: "Input.items[0].torque_nm" -> "items[0].torque_nm".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	f := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", f, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	case "ltfield":
		return fmt.Sprintf("%s must be less than %s", f, snake(fe.Param()))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", f)
	case "material":
		return fmt.Sprintf("%s must be a known material, got %q", f, fe.Value())
	case "dive":
		return fmt.Sprintf("%s is invalid", f)
	default:
		return fmt.Sprintf("%s failed the %s rule", f, fe.Tag())
	}
}

// snake turns a Go field name from a tag parameter into its json form:
// OuterDiameterMM -> outer_diameter_mm.
func snake(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := rs[i-1] >= 'a' && rs[i-1] <= 'z'
			nextLower := i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
