package report

import (
	"flag"
	"fmt"

	"github.com/wildstyl3r/finasym/internal/config"
	"github.com/wildstyl3r/finasym/internal/sweep"
)

type DataItem struct {
	saveFlag   *bool
	fileSuffix string
}

type SequentialDataItem struct {
	DataItem
	xName  string
	values func(*sweep.Result) (args []float64, values [][]float64, labels []string)
	xUnit  []config.UnitElement
	yUnit  []config.UnitElement
}

type DataFlags struct {
	all         *bool
	sequentials map[string]SequentialDataItem
	outputPath  string
	makeDir     bool
}

var angleUnit = []config.UnitElement{{Class: config.Angle, Power: 1}}
var energyUnit = []config.UnitElement{{Class: config.Energy, Power: 1}}

func alphaLabels(r *sweep.Result) (labels []string) {
	for _, alpha := range r.Alphas {
		labels = append(labels, fmt.Sprintf("alpha=%g deg", alpha))
	}
	return
}

func asymmetryRow(r *sweep.Result, bin int) []float64 {
	row := make([]float64, len(r.Alphas))
	for a := range r.Alphas {
		row[a] = r.Asymmetry[a][bin]
	}
	return row
}

func NewDataFlags(fs *flag.FlagSet) DataFlags {
	return DataFlags{
		all: fs.Bool("all", false, "save every available table"),
		sequentials: map[string]SequentialDataItem{
			"Asymmetry": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("asym", false, "save asymmetry for finite theta and phi"),
					fileSuffix: "asym",
				},
				xName: "theta",
				values: func(r *sweep.Result) (args []float64, values [][]float64, labels []string) {
					for i := range r.Theta {
						args = append(args, r.Theta[i])
						values = append(values, asymmetryRow(r, i))
					}
					return args, values, alphaLabels(r)
				},
				xUnit: angleUnit,
			},
			"Asymmetry vs electron energy": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("asyme", false, "save asymmetry against the energy deposited by the electron"),
					fileSuffix: "asym_e",
				},
				xName: "electron energy",
				values: func(r *sweep.Result) (args []float64, values [][]float64, labels []string) {
					for i := range r.ElectronEnergy {
						args = append(args, r.ElectronEnergy[i])
						values = append(values, asymmetryRow(r, i))
					}
					return args, values, alphaLabels(r)
				},
				xUnit: energyUnit,
			},
			"Finite theta asymmetry": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("rho1", false, "save asymmetry for finite theta only"),
					fileSuffix: "rho1",
				},
				xName: "theta",
				values: func(r *sweep.Result) (args []float64, values [][]float64, labels []string) {
					for i := range r.Theta {
						args = append(args, r.Theta[i])
						values = append(values, []float64{r.Rho1[i]})
					}
					return args, values, []string{"rho1"}
				},
				xUnit: angleUnit,
			},
			"Compton energies": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("nrg", false, "save electron and photon energies"),
					fileSuffix: "nrg",
				},
				xName: "theta",
				values: func(r *sweep.Result) (args []float64, values [][]float64, labels []string) {
					for i := range r.Theta {
						args = append(args, r.Theta[i])
						values = append(values, []float64{r.ElectronEnergy[i], r.PhotonEnergy[i]})
					}
					return args, values, []string{"electron", "photon"}
				},
				xUnit: angleUnit,
				yUnit: energyUnit,
			},
			"Singularities": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("sing", false, "save bins where the asymmetry is not finite"),
					fileSuffix: "sing",
				},
				xName: "theta",
				values: func(r *sweep.Result) (args []float64, values [][]float64, labels []string) {
					last := -1
					for _, s := range r.Singularities {
						if s.Bin == last {
							continue
						}
						last = s.Bin
						args = append(args, r.Theta[s.Bin])
						values = append(values, asymmetryRow(r, s.Bin))
					}
					return args, values, alphaLabels(r)
				},
				xUnit: angleUnit,
			},
		},
	}
}

func (df *DataFlags) SetOutput(outputPath string, makeDir bool) {
	df.outputPath = outputPath
	df.makeDir = makeDir
}
