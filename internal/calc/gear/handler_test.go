package gear

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

func newHandler() *Handler {
	db := material.Default()
	return &Handler{Materials: db, Validator: validate.New(db)}
}

func TestCalcHandler(t *testing.T) {
	body := `{"pinion_teeth":20,"gear_teeth":40,"module_mm":3,"face_width_mm":50,"power_kw":10,"pinion_rpm":1500,
		"pinion_material":"AISI 4140 Steel","gear_material":"AISI 1045 Steel"}`
	rec := httptest.NewRecorder()
	newHandler().Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/gear/calc", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "AISI 1045 Steel", res.Gear.Material)
	assert.Equal(t, 90.0, res.Geometry.CenterDistanceMM)
}

func TestCalcHandlerRejectsInvalidInput(t *testing.T) {
	body := `{"pinion_teeth":0,"gear_teeth":40,"module_mm":3,"face_width_mm":50,"power_kw":10,"pinion_rpm":1500,
		"pinion_material":"AISI 4140 Steel","gear_material":"Cheese","gear_type":"bevel"}`
	rec := httptest.NewRecorder()
	newHandler().Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/gear/calc", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	for _, f := range []string{"pinion_teeth", "gear_material", "gear_type"} {
		assert.Contains(t, rec.Body.String(), `"field":"`+f+`"`)
	}
}
