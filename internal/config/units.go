package config

import (
	"strconv"

	"github.com/wildstyl3r/finasym/internal/constants"
	"github.com/wildstyl3r/finasym/internal/utils"
)

// base units are degrees for angles and keV for energies
var unitToBase = map[string]float64{
	"deg":  1,                        // [deg]
	"rad":  constants.RadToDeg,       // [deg]
	"mrad": constants.RadToDeg / 1e3, // [deg]
	"keV":  1,                        // [keV]
	"MeV":  1e3,                      // [keV]
	"eV":   1e-3,                     // [keV]
}

type UnitClass int

const (
	Angle UnitClass = iota
	Energy
)

var unitsInClass = map[UnitClass][]string{
	Angle:  {"deg", "rad", "mrad"},
	Energy: {"keV", "MeV", "eV"},
}

var classesOfUnits = map[string]UnitClass{
	"deg":  Angle,
	"rad":  Angle,
	"mrad": Angle,
	"keV":  Energy,
	"MeV":  Energy,
	"eV":   Energy,
}

type UnitElement = struct {
	Class UnitClass
	Power int
}

var defaultUnits = []string{"deg", "keV"}

func checkUnits(units []string) (extended, conflicts []string) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			conflicts = append(conflicts, unit)
			continue
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string{}, units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// ToBase converts v measured in units into degrees/keV when direct is set,
// and from degrees/keV into units otherwise.
func ToBase(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for i := range classes {
		uc := classes[i]
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		absPower := utils.IntAbs(uc.Power)
		if direct == (uc.Power > 0) {
			for range absPower {
				v *= unitToBase[*unit]
			}
		} else {
			for range absPower {
				v /= unitToBase[*unit]
			}
		}
	}
	return v
}

// Factor is the multiplier taking a base quantity of the given classes into units.
func Factor(classes []UnitElement, units []string) float64 {
	return ToBase(1, classes, units, false)
}

// UnitName spells the unit of a quantity, e.g. "keV" or "mrad".
func UnitName(classes []UnitElement, units []string) string {
	name := ""
	for _, uc := range classes {
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		if name != "" {
			name += " "
		}
		name += *unit
		if uc.Power != 1 {
			name += "^" + strconv.Itoa(uc.Power)
		}
	}
	return name
}
