package constants

const ElectronRestEnergy float64 = 511. // [keV], energy of each annihilation photon
const DegToRad float64 = 0.017453292519943295
const RadToDeg float64 = 57.29577951308232 // [deg]
const RightAngle = 90.                     // [deg]
const StraightAngle = 180.                 // [deg]
