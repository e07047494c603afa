package shaft

import (
	"fmt"

	"ShaftGear/internal/calcerr"
)

// Support is the support and load configuration used for deflection.
type Support string

const (
	SimplySupportedCenterLoad  Support = "simply_supported_center_load"
	SimplySupportedUniformLoad Support = "simply_supported_uniform_load"
	CantileverEndLoad          Support = "cantilever_end_load"
	CantileverUniformLoad      Support = "cantilever_uniform_load"
)

// coefficients returns kd and km for max deflection kd·W·L³/(E·I) and max
// moment km·W·L, where W is the total load.
func (s Support) coefficients() (kd, km float64, err error) {
	switch s {
	case SimplySupportedCenterLoad, "":
		return 1.0 / 48, 1.0 / 4, nil
	case SimplySupportedUniformLoad:
		return 5.0 / 384, 1.0 / 8, nil
	case CantileverEndLoad:
		return 1.0 / 3, 1, nil
	case CantileverUniformLoad:
		return 1.0 / 8, 1.0 / 2, nil
	}
	return 0, 0, fmt.Errorf("%w: unknown support %q", calcerr.ErrInvalidInput, s)
}

// Deflection returns the maximum transverse deflection in mm for a total
// load in N on a shaft of the given length (mm), modulus (GPa) and second
// moment of area (mm4).
func Deflection(support Support, loadN, lengthMM, elasticModulusGPa, iMM4 float64) (float64, error) {
	kd, _, err := support.coefficients()
	if err != nil {
		return 0, err
	}
	if err := positive("length", lengthMM); err != nil {
		return 0, err
	}
	if err := positive("elastic modulus", elasticModulusGPa); err != nil {
		return 0, err
	}
	if err := positive("second moment of area", iMM4); err != nil {
		return 0, err
	}
	E := elasticModulusGPa * 1000 // MPa
	return finite("deflection", kd*loadN*lengthMM*lengthMM*lengthMM/(E*iMM4))
}

// EquivalentLoad is the total load in N that produces the given maximum
// bending moment for the support configuration.
func EquivalentLoad(support Support, momentNM, lengthMM float64) (float64, error) {
	_, km, err := support.coefficients()
	if err != nil {
		return 0, err
	}
	if err := positive("length", lengthMM); err != nil {
		return 0, err
	}
	return finite("equivalent load", momentNM*1000/(km*lengthMM))
}

// ShearModulus in GPa from E (GPa) and Poisson's ratio.
func ShearModulus(elasticModulusGPa, poisson float64) float64 {
	return elasticModulusGPa / (2 * (1 + poisson))
}

// AngleOfTwist in radians: T·L/(G·J).
func AngleOfTwist(torqueNM, lengthMM, shearModulusGPa, jMM4 float64) (float64, error) {
	if err := positive("shear modulus", shearModulusGPa); err != nil {
		return 0, err
	}
	if err := positive("polar moment", jMM4); err != nil {
		return 0, err
	}
	return finite("angle of twist", torqueNM*1000*lengthMM/(shearModulusGPa*1000*jMM4))
}
