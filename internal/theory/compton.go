package theory

import (
	"math"

	"github.com/wildstyl3r/finasym/internal/constants"
)

// Compton scattering variable conversions for 511 keV photons, angles in degrees.

func ThetaToPhotonEnergy(theta float64) float64 { // [keV]
	return constants.ElectronRestEnergy / (2. - math.Cos(constants.DegToRad*theta))
}

// ThetaToElectronEnergy is the energy deposited by the recoil electron,
// i.e. what the first crystal measures.
func ThetaToElectronEnergy(theta float64) float64 { // [keV]
	return constants.ElectronRestEnergy - ThetaToPhotonEnergy(theta)
}

func DegToRad(deg float64) float64 {
	return constants.DegToRad * deg
}
