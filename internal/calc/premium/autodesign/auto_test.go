package autodesign

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
	"ShaftGear/internal/validate"
)

func run(t *testing.T, in ShaftInput) (ShaftResult, error) {
	t.Helper()
	db := material.Default()
	return Shaft(validate.New(db), db, in)
}

func TestPreferredSizesSorted(t *testing.T) {
	assert.True(t, sort.Float64sAreSorted(PreferredSizesMM))
}

func TestNextSize(t *testing.T) {
	s, ok := nextSize(33.2)
	assert.True(t, ok)
	assert.Equal(t, 35.0, s)

	s, ok = nextSize(40)
	assert.True(t, ok)
	assert.Equal(t, 40.0, s)

	s, ok = nextSize(301)
	assert.False(t, ok)
	assert.Equal(t, 310.0, s)
}

func TestShaftSelectsPreferredSize(t *testing.T) {
	res, err := run(t, ShaftInput{Material: "AISI 1045 Steel", TorqueNM: 800, BendingMomentNM: 400, LengthMM: 500})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.SelectedDiameterMM, res.RequiredDiameterMM)
	assert.Contains(t, PreferredSizesMM, res.SelectedDiameterMM)
	assert.True(t, res.Preferred)
	assert.True(t, res.Check.Safety.MeetsRequired)
}

func TestShaftAccountsForAxialForce(t *testing.T) {
	base := ShaftInput{Material: "AISI 1045 Steel", TorqueNM: 100, LengthMM: 300}
	plain, err := run(t, base)
	require.NoError(t, err)

	base.AxialForceN = 150000
	loaded, err := run(t, base)
	require.NoError(t, err)
	assert.Greater(t, loaded.SelectedDiameterMM, plain.SelectedDiameterMM)
	assert.True(t, loaded.Check.Safety.MeetsRequired)
}

func TestShaftRejectsZeroLoad(t *testing.T) {
	_, err := run(t, ShaftInput{Material: "AISI 1045 Steel", LengthMM: 300})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestHandler(t *testing.T) {
	db := material.Default()
	h := &Handler{Materials: db, Validator: validate.New(db)}
	rec := httptest.NewRecorder()
	h.Shaft(rec, httptest.NewRequest(http.MethodPost, "/api/premium/autodesign/shaft",
		strings.NewReader(`{"material":"AISI 4140 Steel","torque_nm":1200,"length_mm":800,"inner_diameter_mm":20}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"selected_diameter_mm"`)
}
