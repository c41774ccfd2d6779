package sweep

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wildstyl3r/finasym/internal/constants"
	"github.com/wildstyl3r/finasym/internal/theory"
	"github.com/wildstyl3r/finasym/internal/utils"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Mode selects the variable on the x axis.
type Mode string

const (
	ModeTheta  Mode = "theta"
	ModeEnergy Mode = "energy"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "theta":
		return ModeTheta, nil
	case "e", "energy":
		return ModeEnergy, nil
	}
	return "", fmt.Errorf("%w: unknown x variable %q (theta or energy)", ErrInvalidArgument, s)
}

// detector half-widths in phi compared on every chart [deg]
var DefaultAlphas = []float64{1., 30., 45.}

type Parameters struct {
	NBins    int
	SemiSpan float64 // [deg]
	Mode     Mode
	Alphas   []float64 // [deg]
}

func (p Parameters) Validate() error {
	if p.NBins <= 0 {
		return fmt.Errorf("%w: number of bins must be positive, got %d", ErrInvalidArgument, p.NBins)
	}
	if !(p.SemiSpan > 0) || math.IsInf(p.SemiSpan, 0) {
		return fmt.Errorf("%w: semi-span must be a positive angle, got %v", ErrInvalidArgument, p.SemiSpan)
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return err
	}
	if len(p.Alphas) == 0 {
		return fmt.Errorf("%w: no azimuthal acceptances given", ErrInvalidArgument)
	}
	return nil
}

// Grid returns nBins angles [deg] centred on 90 and spaced by 2*semiSpan, ascending.
func Grid(nBins int, semiSpan float64) ([]float64, error) {
	if nBins <= 0 {
		return nil, fmt.Errorf("%w: number of bins must be positive, got %d", ErrInvalidArgument, nBins)
	}
	if !(semiSpan > 0) || math.IsInf(semiSpan, 0) {
		return nil, fmt.Errorf("%w: semi-span must be a positive angle, got %v", ErrInvalidArgument, semiSpan)
	}
	theta := make([]float64, nBins)
	for i := range theta {
		// symmetric bins around 90 deg
		theta[i] = constants.RightAngle - float64(nBins-1)*semiSpan + float64(i)*2*semiSpan
	}
	return theta, nil
}

// Singularity marks a non-finite asymmetry. The value is kept in the result as computed.
type Singularity struct {
	Bin   int
	Theta float64 // [deg]
	Alpha float64 // [deg]
	Value float64
}

func (s Singularity) String() string {
	return fmt.Sprintf("theta=%g deg alpha=%g deg: %v", s.Theta, s.Alpha, s.Value)
}

type Result struct {
	Parameters
	Theta          []float64   // [deg]
	ElectronEnergy []float64   // [keV]
	PhotonEnergy   []float64   // [keV]
	Rho1           []float64   // finite theta only
	Asymmetry      [][]float64 // [alpha][bin]
	Singularities  []Singularity
}

func Run(p Parameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Mode, _ = ParseMode(string(p.Mode))
	theta, err := Grid(p.NBins, p.SemiSpan)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Parameters:     p,
		Theta:          theta,
		ElectronEnergy: make([]float64, p.NBins),
		PhotonEnergy:   make([]float64, p.NBins),
		Rho1:           make([]float64, p.NBins),
		Asymmetry:      make([][]float64, len(p.Alphas)),
	}
	for a := range r.Asymmetry {
		r.Asymmetry[a] = make([]float64, p.NBins)
	}

	semiSpan := theory.DegToRad(p.SemiSpan)
	for i := range theta {
		r.ElectronEnergy[i] = theory.ThetaToElectronEnergy(theta[i])
		r.PhotonEnergy[i] = theory.ThetaToPhotonEnergy(theta[i])

		thetaRad := theory.DegToRad(theta[i])
		r.Rho1[i] = theory.Rho1(thetaRad, semiSpan)
		for a, alpha := range p.Alphas {
			rho := theory.Rho2(thetaRad, semiSpan, theory.DegToRad(alpha))
			r.Asymmetry[a][i] = rho
			if !utils.IsFinite(rho) {
				r.Singularities = append(r.Singularities, Singularity{Bin: i, Theta: theta[i], Alpha: alpha, Value: rho})
			}
		}
	}
	return r, nil
}

// FileName is FiniteAsymmetry_<nBins>_<mode>.<ext>.
func (r *Result) FileName(ext string) string {
	return fmt.Sprintf("FiniteAsymmetry_%d_%s.%s", r.NBins, r.Mode, strings.TrimPrefix(ext, "."))
}

// Peak is the sampled bin with the largest asymmetry for the alpha with the given index.
func (r *Result) Peak(alphaIndex int) (theta, rho float64) {
	i := utils.Argmax(r.Asymmetry[alphaIndex])
	return r.Theta[i], r.Asymmetry[alphaIndex][i]
}

// PeakAngle refines the maximum of the asymmetry over theta in [lo, hi] [deg].
// The asymmetry has a single maximum between roughly 60 and 120 degrees.
func PeakAngle(semiSpan, alpha, lo, hi float64) (theta, rho float64) {
	s := theory.DegToRad(semiSpan)
	a := theory.DegToRad(alpha)
	f := func(t float64) float64 {
		return theory.Rho2(theory.DegToRad(t), s, a)
	}
	theta = utils.TernarySearchMax(f, lo, hi, 1e-6)
	return theta, f(theta)
}
