package render

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testFigure() Figure {
	return Figure{
		Title:  "test",
		XLabel: "x",
		YLabel: "y",
		XMin:   0,
		XMax:   10,
		YMin:   0,
		YMax:   3,
		Width:  400,
		Height: 300,
		Series: []Series{
			{
				Name:  "dashed",
				X:     []float64{1, 2, 3, 4},
				Y:     []float64{1, 2, math.NaN(), 2.5},
				Style: Style{Color: color.RGBA{R: 204, A: 255}, Marker: MarkerCircle, Dashed: true},
			},
			{
				Name:  "single",
				X:     []float64{5},
				Y:     []float64{1.5},
				Style: Style{Color: color.RGBA{B: 204, A: 255}, Marker: MarkerCircle},
			},
			{
				Name:  "points",
				X:     []float64{6, 7},
				Y:     []float64{math.Inf(1), 2},
				Style: Style{Color: color.RGBA{A: 255}, NoLine: true},
			},
		},
	}
}

func TestRenderers(t *testing.T) {
	cases := []struct {
		renderer string
		ext      string
	}{
		{"gonum", "pdf"},
		{"gonum", "png"},
		{"gonum", "svg"},
		{"gochart", "png"},
		{"gochart", "svg"},
	}
	dir := t.TempDir()
	for _, c := range cases {
		t.Run(c.renderer+"_"+c.ext, func(t *testing.T) {
			r, err := NewRenderer(c.renderer)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(dir, c.renderer+"."+c.ext)
			if err := r.Render(testFigure(), path); err != nil {
				t.Fatalf("Render: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Errorf("%s is empty", path)
			}
		})
	}
}

func TestRenderSinglePointOnly(t *testing.T) {
	fig := Figure{
		XMin: 0, XMax: 180, YMin: 0.5, YMax: 3,
		Series: []Series{{Name: "one", X: []float64{90}, Y: []float64{2.58}, Style: Style{Marker: MarkerCircle, Dashed: true}}},
	}
	dir := t.TempDir()
	for _, name := range []string{"gonum", "gochart"} {
		r, _ := NewRenderer(name)
		if err := r.Render(fig, filepath.Join(dir, name+".png")); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestGoChartPointsOnly(t *testing.T) {
	fig := Figure{
		XMin: 0, XMax: 10, YMin: 0, YMax: 3,
		Series: []Series{{
			Name:  "measured",
			X:     []float64{2, 5, 8},
			Y:     []float64{1, 2, 1},
			Style: Style{Color: color.RGBA{R: 204, A: 255}, NoLine: true},
		}},
	}
	path := filepath.Join(t.TempDir(), "points.svg")
	if err := (GoChartRenderer{}).Render(fig, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	// go-chart's default series color appears only when a line falls back to defaults
	if strings.Contains(svg, "stroke:rgba(0,116,217") {
		t.Error("points-only series drawn with a connecting line")
	}
	if !strings.Contains(svg, "rgba(204,0,0") {
		t.Error("points missing from the chart")
	}
}

func TestUnsupported(t *testing.T) {
	if _, err := NewRenderer("root"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("NewRenderer(root) err = %v", err)
	}
	r, _ := NewRenderer("gochart")
	err := r.Render(testFigure(), filepath.Join(t.TempDir(), "x.pdf"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("gochart pdf err = %v", err)
	}
	if err := CheckFormat(GonumRenderer{}, ".PDF"); err != nil {
		t.Errorf("CheckFormat(.PDF) = %v", err)
	}
	if err := CheckFormat(GonumRenderer{}, "docx"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CheckFormat(docx) = %v", err)
	}
}
