package report

import (
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/wildstyl3r/finasym/internal/sweep"
	"github.com/wildstyl3r/finasym/internal/utils"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func newFlags(t *testing.T, args ...string) DataFlags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	df := NewDataFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return df
}

func TestSaveSelected(t *testing.T) {
	r, err := sweep.Run(sweep.Parameters{NBins: 3, SemiSpan: 5, Mode: sweep.ModeTheta, Alphas: sweep.DefaultAlphas})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	df := newFlags(t, "-asym", "-nrg")
	df.SetOutput(dir, false)
	saved, err := df.Save("p3", r, []string{"deg", "keV"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(saved, []string{"Asymmetry", "Compton energies"}) {
		t.Errorf("saved = %v", saved)
	}

	rows := readCSV(t, filepath.Join(dir, "p3_asym.txt"))
	if len(rows) != 5 {
		t.Fatalf("asym rows = %v", rows)
	}
	if rows[0][0] != "theta (deg)" || rows[1][1] != "alpha=1 deg" || rows[1][3] != "alpha=45 deg" {
		t.Errorf("asym header = %v %v", rows[0], rows[1])
	}
	if rows[3][0] != "90" || !strings.HasPrefix(rows[3][1], "2.5807") {
		t.Errorf("asym row at 90 = %v", rows[3])
	}

	rows = readCSV(t, filepath.Join(dir, "p3_nrg.txt"))
	if rows[0][1] != "value (keV)" || rows[3][2] != "255.5" {
		t.Errorf("nrg rows = %v", rows)
	}
	if _, err := os.Stat(filepath.Join(dir, "p3_rho1.txt")); !os.IsNotExist(err) {
		t.Errorf("rho1 table written without its flag")
	}
}

func TestSaveAllConvertsUnits(t *testing.T) {
	r, err := sweep.Run(sweep.Parameters{NBins: 3, SemiSpan: 2, Mode: sweep.ModeEnergy, Alphas: []float64{0, 30}})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	df := newFlags(t, "-all")
	df.SetOutput(dir, true)
	saved, err := df.Save("p", r, []string{"mrad", "MeV"})
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 5 {
		t.Errorf("saved = %v", saved)
	}

	rows := readCSV(t, filepath.Join(dir, "nrg", "p.txt"))
	if rows[0][0] != "theta (mrad)" || rows[0][1] != "value (MeV)" {
		t.Errorf("nrg header = %v", rows[0])
	}
	if !strings.HasPrefix(rows[3][0], "1570.79") || rows[3][2] != "0.2555" {
		t.Errorf("nrg row at 90 deg = %v", rows[3])
	}

	rows = readCSV(t, filepath.Join(dir, "sing", "p.txt"))
	if len(rows) != 5 {
		t.Fatalf("sing rows = %v", rows)
	}
	for _, row := range rows[2:] {
		if row[1] != "NaN" {
			t.Errorf("alpha 0 should be NaN, got %v", row)
		}
	}

	rows = readCSV(t, filepath.Join(dir, "asym_e", "p.txt"))
	if rows[0][0] != "electron energy (MeV)" {
		t.Errorf("asym_e header = %v", rows[0])
	}
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()
	var rows utils.CSV
	for _, name := range []string{"run_10", "run_2"} {
		r, err := sweep.Run(sweep.Parameters{NBins: 5, SemiSpan: 2, Mode: sweep.ModeTheta, Alphas: []float64{1}})
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, SummaryRows(name, r)...)
	}
	if err := WriteSummary(dir, rows); err != nil {
		t.Fatal(err)
	}
	got := readCSV(t, filepath.Join(dir, "summary.csv"))
	if len(got) != 3 || got[1][0] != "run_2" || got[2][0] != "run_10" {
		t.Fatalf("summary = %v", got)
	}
	if got[1][4] != "82" || got[1][6] != "0" || !strings.HasPrefix(got[1][7], "81.6") {
		t.Errorf("summary row = %v", got[1])
	}
}

func TestSummaryKeepsAlphaOrder(t *testing.T) {
	dir := t.TempDir()
	alphas := []float64{1, 10, 20, 30, 45}
	r, err := sweep.Run(sweep.Parameters{NBins: 3, SemiSpan: 2, Mode: sweep.ModeTheta, Alphas: alphas})
	if err != nil {
		t.Fatal(err)
	}
	var rows utils.CSV
	for i := 12; i >= 0; i-- {
		rows = append(rows, SummaryRows("plot_"+strconv.Itoa(i), r)...)
	}
	if err := WriteSummary(dir, rows); err != nil {
		t.Fatal(err)
	}
	got := readCSV(t, filepath.Join(dir, "summary.csv"))[1:]
	if len(got) != 13*len(alphas) {
		t.Fatalf("summary has %d rows", len(got))
	}
	for i, row := range got {
		plot, alpha := "plot_"+strconv.Itoa(i/len(alphas)), strconv.FormatFloat(alphas[i%len(alphas)], 'f', -1, 64)
		if row[0] != plot || row[3] != alpha {
			t.Errorf("row %d = %s alpha %s, want %s alpha %s", i, row[0], row[3], plot, alpha)
		}
	}
}
