package shaft

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

func newHandler() *Handler {
	db := material.Default()
	return &Handler{Materials: db, Validator: validate.New(db)}
}

func TestCalcHandler(t *testing.T) {
	body := `{"material":"AISI 4140 Steel","torque_nm":300,"bending_moment_nm":150,"outer_diameter_mm":35,"length_mm":400}`
	rec := httptest.NewRecorder()
	newHandler().Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shaft/calc", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "AISI 4140 Steel", res.Material)
	assert.Greater(t, res.Safety.Factor, 0.0)
}

func TestCalcHandlerValidation(t *testing.T) {
	body := `{"material":"Unobtainium","torque_nm":-1,"outer_diameter_mm":0,"length_mm":400}`
	rec := httptest.NewRecorder()
	newHandler().Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shaft/calc", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var payload struct {
		Violations []calcerr.Violation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	fields := map[string]bool{}
	for _, v := range payload.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["material"])
	assert.True(t, fields["torque_nm"])
	assert.True(t, fields["outer_diameter_mm"])
}

func TestCalcHandlerRejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler().Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"diameter":10}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDesignHandler(t *testing.T) {
	body := `{"material":"AISI 1045 Steel","torque_nm":800,"bending_moment_nm":400}`
	rec := httptest.NewRecorder()
	newHandler().Design(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shaft/design", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res DesignResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, DefaultTargetSafetyFactor, res.TargetSafetyFactor)
	assert.InDelta(t, 155, res.AllowableStressMPa, 1e-9)
	assert.Greater(t, res.RequiredDiameterMM, 0.0)
}

func TestDesignHandlerRejectsOverflowingTorque(t *testing.T) {
	body := `{"material":"AISI 1045","torque_nm":1e200}`
	rec := httptest.NewRecorder()
	newHandler().Design(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shaft/design", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload.Error, "overflows")
}

func TestCalcHandlerRejectsOverflowingTorque(t *testing.T) {
	body := `{"material":"AISI 1045 Steel","torque_nm":1e200,"outer_diameter_mm":10,"length_mm":100}`
	rec := httptest.NewRecorder()
	newHandler().Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/shaft/calc", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRunLooksUpMaterialCaseInsensitively(t *testing.T) {
	db := material.Default()
	res, err := Run(validate.New(db), db, Input{Material: "aisi 1045 steel", TorqueNM: 100, OuterDiameterMM: 25, LengthMM: 200})
	require.NoError(t, err)
	assert.Equal(t, "AISI 1045 Steel", res.Material)
}
