package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/finasym/internal/config"
	"github.com/wildstyl3r/finasym/internal/sweep"
	"github.com/wildstyl3r/finasym/internal/utils"
)

func columnName(name string, classes []config.UnitElement, units []string) string {
	if unit := config.UnitName(classes, units); unit != "" {
		return name + " (" + unit + ")"
	}
	return name
}

// Save writes every selected table of r; units are the output units of the plot.
// It returns the names of the written tables.
func (df DataFlags) Save(plotName string, r *sweep.Result, units []string) (saved []string, err error) {
	names := make([]string, 0, len(df.sequentials))
	for name := range df.sequentials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		output := df.sequentials[name]
		if !*output.saveFlag && !*df.all {
			continue
		}
		if err := df.saveItem(output, plotName, r, units); err != nil {
			return saved, fmt.Errorf("unable to save %s: %w", name, err)
		}
		saved = append(saved, name)
	}
	return saved, nil
}

func (df DataFlags) saveItem(output SequentialDataItem, plotName string, r *sweep.Result, units []string) error {
	file, err := utils.OpenFile(df.makeDir, df.outputPath, output.fileSuffix, plotName)
	if err != nil {
		return err
	}
	defer file.Close()

	args, values, labels := output.values(r)
	xFactor := config.Factor(output.xUnit, units)
	yFactor := config.Factor(output.yUnit, units)
	floats.Scale(xFactor, args)

	yName := "value"
	if len(output.yUnit) > 0 {
		yName = columnName(yName, output.yUnit, units)
	}
	rows := [][]string{{columnName(output.xName, output.xUnit, units), yName}}
	rows = append(rows, append([]string{""}, labels...))
	for x := range args {
		floats.Scale(yFactor, values[x])
		row := []string{strconv.FormatFloat(args[x], 'f', -1, 64)}
		for _, v := range values[x] {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

var summaryColumns = []string{"plot", "bins", "semi-span (deg)", "alpha (deg)", "peak theta (deg)", "peak asymmetry", "singular bins", "refined peak theta (deg)", "refined peak asymmetry"}

// the asymmetry maximum lies in this window for any realistic detector
const peakWindowLo, peakWindowHi = 60., 120.

// SummaryRows describes the sampled maximum of every alpha curve of r.
func SummaryRows(plotName string, r *sweep.Result) utils.CSV {
	var rows utils.CSV
	for a, alpha := range r.Alphas {
		theta, rho := r.Peak(a)
		refinedTheta, refinedRho := sweep.PeakAngle(r.SemiSpan, alpha, peakWindowLo, peakWindowHi)
		singular := 0
		for _, s := range r.Singularities {
			if s.Alpha == alpha {
				singular++
			}
		}
		rows = append(rows, []string{
			plotName,
			strconv.Itoa(r.NBins),
			strconv.FormatFloat(r.SemiSpan, 'f', -1, 64),
			strconv.FormatFloat(alpha, 'f', -1, 64),
			strconv.FormatFloat(theta, 'f', -1, 64),
			strconv.FormatFloat(rho, 'f', -1, 64),
			strconv.Itoa(singular),
			strconv.FormatFloat(refinedTheta, 'f', 4, 64),
			strconv.FormatFloat(refinedRho, 'f', 6, 64),
		})
	}
	return rows
}

func WriteSummary(outputPath string, rows utils.CSV) error {
	if outputPath != "" {
		if err := os.MkdirAll(outputPath, 0750); err != nil {
			return err
		}
	}
	file, err := os.Create(filepath.Join(outputPath, "summary.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	if err := utils.WriteAsCSV(file, rows, summaryColumns); err != nil {
		return err
	}
	return file.Close()
}
