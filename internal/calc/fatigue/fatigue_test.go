package fatigue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShaftGear/internal/calcerr"
	"ShaftGear/internal/material"
)

func TestVonMises(t *testing.T) {
	assert.InDelta(t, 150, VonMises(State{SigmaX: 150}), 1e-12)
	assert.InDelta(t, math.Sqrt(3)*40, VonMises(State{TauXY: 40}), 1e-12)
	assert.InDelta(t, 0, VonMises(State{SigmaX: 70, SigmaY: 70, SigmaZ: 70}), 1e-12)
}

func TestPrincipalStresses(t *testing.T) {
	p := PrincipalStresses(80, 20, 40)
	assert.InDelta(t, 100, p.Sigma1, 1e-12)
	assert.InDelta(t, 0, p.Sigma2, 1e-12)
	assert.InDelta(t, 0.5*math.Atan(80.0/60)*180/math.Pi, p.AngleDeg, 1e-12)

	p = PrincipalStresses(10, 10, 5)
	assert.InDelta(t, 45, p.AngleDeg, 1e-12)
	p = PrincipalStresses(10, 10, -5)
	assert.InDelta(t, -45, p.AngleDeg, 1e-12)
}

func TestSurfaceFactor(t *testing.T) {
	ka, err := SurfaceFactor(Machined, 565)
	require.NoError(t, err)
	assert.InDelta(t, 4.51*math.Pow(565, -0.265), ka, 1e-12)

	def, err := SurfaceFactor("", 565)
	require.NoError(t, err)
	assert.Equal(t, ka, def)

	forged, err := SurfaceFactor(AsForged, 565)
	require.NoError(t, err)
	assert.Less(t, forged, ka)

	capped, err := SurfaceFactor(MirrorPolished, 50)
	require.NoError(t, err)
	assert.Equal(t, 1.0, capped)

	_, err = SurfaceFactor("sandblasted", 565)
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestSizeFactor(t *testing.T) {
	cases := []struct {
		d    float64
		l    Loading
		want float64
	}{
		{5, Bending, 1},
		{25.4, Bending, math.Pow(1/0.3, -0.107)},
		{25.4, Torsion, math.Pow(1/0.3, -0.107)},
		{100, Bending, 0.91 * math.Pow(100/25.4, -0.157)},
		{400, Bending, 0.91 * math.Pow(10, -0.157)},
		{100, Axial, 1},
	}
	for _, tc := range cases {
		kb, err := SizeFactor(tc.d, tc.l)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, kb, 1e-12, "d=%g %s", tc.d, tc.l)
	}
	_, err := SizeFactor(0, Bending)
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestStressConcentration(t *testing.T) {
	kt, err := StressConcentration(Notch{Feature: Plain})
	require.NoError(t, err)
	assert.Equal(t, 1.0, kt)

	kt, err = StressConcentration(Notch{Feature: Keyway})
	require.NoError(t, err)
	assert.Equal(t, 2.0, kt)

	kt, err = StressConcentration(Notch{Feature: ShoulderFillet, DiameterMM: 40, FilletRadiusMM: 4, LargeDiameterMM: 60})
	require.NoError(t, err)
	assert.InDelta(t, 1+0.25*math.Sqrt(0.5)/math.Sqrt(0.1), kt, 1e-12)

	kt, err = StressConcentration(Notch{Feature: TransverseHole, DiameterMM: 50, HoleDiameterMM: 5})
	require.NoError(t, err)
	assert.InDelta(t, 3-0.313+3.66*0.01-1.53*0.001, kt, 1e-12)

	_, err = StressConcentration(Notch{Feature: ShoulderFillet, DiameterMM: 40})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestEstimateLife(t *testing.T) {
	l, err := EstimateLife(200, 565, 310, 0)
	require.NoError(t, err)
	assert.True(t, l.Infinite)

	l, err = EstimateLife(400, 565, 310, 0)
	require.NoError(t, err)
	assert.Equal(t, Life{Cycles: 1}, l)

	l, err = EstimateLife(300, 565, 310, 0)
	require.NoError(t, err)
	assert.False(t, l.Infinite)
	assert.InDelta(t, math.Pow(300/(0.9*565), 1/-0.12), l.Cycles, 1e-6)

	_, err = EstimateLife(0, 565, 310, 0)
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestLifeDecreasesWithAmplitude(t *testing.T) {
	prev := math.Inf(1)
	for a := 290.0; a <= 310; a += 5 {
		l, err := EstimateLife(a, 565, 310, 0)
		require.NoError(t, err)
		assert.Less(t, l.Cycles, prev)
		prev = l.Cycles
	}
}

func TestCalculate(t *testing.T) {
	mat, err := material.Default().Lookup("AISI 1045 Steel")
	require.NoError(t, err)

	res, err := Calculate(Input{Material: mat.Name, StressAmplitudeMPa: 100, DiameterMM: 25.4}, mat)
	require.NoError(t, err)
	ka, _ := SurfaceFactor(Machined, mat.UltimateStrengthMPa)
	kb, _ := SizeFactor(25.4, Bending)
	assert.InDelta(t, ka*kb*mat.FatigueStrengthMPa, res.EnduranceLimitMPa, 1e-9)
	assert.Equal(t, 1.0, res.StressConcentration)
	assert.True(t, res.Life.Infinite)
	assert.InDelta(t, res.EnduranceLimitMPa/100, res.Safety.Factor, 1e-9)
	assert.Equal(t, DefaultRequiredSF, res.Safety.Required)

	keyed, err := Calculate(Input{Material: mat.Name, StressAmplitudeMPa: 100, DiameterMM: 25.4, Feature: Keyway}, mat)
	require.NoError(t, err)
	assert.InDelta(t, 200, keyed.EffectiveAmplitudeMPa, 1e-12)
	assert.InDelta(t, res.Safety.Factor/2, keyed.Safety.Factor, 1e-9)
}

func TestCalculatePassIsSeparateFromRequiredFactor(t *testing.T) {
	mat, err := material.Default().Lookup("AISI 1045 Steel")
	require.NoError(t, err)
	base, err := Calculate(Input{Material: mat.Name, StressAmplitudeMPa: 100, DiameterMM: 25.4}, mat)
	require.NoError(t, err)

	res, err := Calculate(Input{Material: mat.Name, StressAmplitudeMPa: base.EnduranceLimitMPa / 1.2, DiameterMM: 25.4}, mat)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, res.Safety.Factor, 1e-9)
	assert.True(t, res.Pass)
	assert.False(t, res.MeetsRequired)

	res, err = Calculate(Input{Material: mat.Name, StressAmplitudeMPa: base.EnduranceLimitMPa * 2, DiameterMM: 25.4}, mat)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.False(t, res.MeetsRequired)
}

func TestInputCheck(t *testing.T) {
	ve := &calcerr.ValidationError{}
	Input{Feature: ShoulderFillet, DiameterMM: 40, LargeDiameterMM: 30}.Check(ve)
	Input{Feature: TransverseHole, DiameterMM: 40, HoleDiameterMM: 40}.Check(ve)
	fields := map[string]bool{}
	for _, v := range ve.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["fillet_radius_mm"])
	assert.True(t, fields["large_diameter_mm"])
	assert.True(t, fields["hole_diameter_mm"])
}
