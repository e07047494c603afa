package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShaftGear/internal/calc/gear"
	"ShaftGear/internal/calc/shaft"
	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

func newCalculator() *Calculator {
	db := material.Default()
	return &Calculator{Materials: db, Validator: validate.New(db)}
}

func TestRun(t *testing.T) {
	c := newCalculator()

	out, err := c.Run(KindShaft, json.RawMessage(`{"material":"AISI 1045 Steel","torque_nm":500,"bending_moment_nm":300,"outer_diameter_mm":40,"length_mm":500}`))
	require.NoError(t, err)
	res, ok := out.(shaft.Result)
	require.True(t, ok)
	assert.Greater(t, res.VonMisesMPa, 0.0)

	out, err = c.Run(KindGear, json.RawMessage(`{"pinion_teeth":20,"gear_teeth":40,"module_mm":3,"face_width_mm":50,"power_kw":10,"pinion_rpm":1500,"pinion_material":"AISI 4140 Steel","gear_material":"AISI 4140 Steel"}`))
	require.NoError(t, err)
	assert.IsType(t, gear.Result{}, out)

	out, err = c.Run(KindMaterial, json.RawMessage(`{"name":"Inconel 718"}`))
	require.NoError(t, err)
	assert.Equal(t, "Superalloy", out.(material.Record).Category)
}

func TestRunErrors(t *testing.T) {
	c := newCalculator()

	cases := []struct {
		name    string
		kind    string
		payload string
		field   string
	}{
		{"unknown kind", "beam", `{}`, "type"},
		{"unknown field", KindShaft, `{"torque":1}`, "payload"},
		{"not an object", KindFatigue, `[1,2]`, "payload"},
		{"validation", KindShaft, `{"material":"AISI 1045 Steel","torque_nm":-1,"outer_diameter_mm":40,"length_mm":500}`, "torque_nm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Run(tc.kind, json.RawMessage(tc.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, calcerr.ErrValidation)
			fields := []string{}
			for _, v := range calcerr.Violations(err) {
				fields = append(fields, v.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}

	_, err := c.Run(KindMaterial, json.RawMessage(`{"name":"Unobtainium"}`))
	assert.ErrorIs(t, err, calcerr.ErrNotFound)
}
