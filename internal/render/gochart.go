package render

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wildstyl3r/finasym/internal/utils"
)

// GoChartRenderer draws with github.com/wcharczuk/go-chart/v2 (png or svg).
type GoChartRenderer struct{}

func (GoChartRenderer) Formats() []string {
	return []string{"png", "svg"}
}

func chartStyle(s Style) chart.Style {
	col := drawing.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A}
	if s.NoLine {
		// a zero stroke width means "default" to go-chart
		return chart.Style{
			StrokeWidth: chart.Disabled,
			StrokeColor: drawing.ColorTransparent,
			DotWidth:    4,
			DotColor:    col,
		}
	}
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if s.Dashed {
		st.StrokeDashArray = []float64{6, 3}
	}
	if s.Marker != MarkerNone {
		st.DotColor = col
		st.DotWidth = 3
	}
	return st
}

func (g GoChartRenderer) Render(fig Figure, path string) error {
	var provider chart.RendererProvider
	switch formatOf(path) {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return CheckFormat(g, formatOf(path))
	}

	series := []chart.Series{}
	for _, s := range fig.Series {
		xs, ys := utils.FinitePairs(s.X, s.Y)
		if len(xs) == 0 {
			continue
		}
		// a single point has no x-range; widen it into a degenerate segment
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1e-9)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   chartStyle(s.Style),
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("%w: nothing finite to draw in %s", ErrUnsupported, path)
	}

	w, h := size(fig)
	ch := chart.Chart{
		Title:      fig.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: fig.XLabel},
		YAxis:      chart.YAxis{Name: fig.YLabel},
		Series:     series,
	}
	if fig.XMax > fig.XMin {
		ch.XAxis.Range = &chart.ContinuousRange{Min: fig.XMin, Max: fig.XMax}
	}
	if fig.YMax > fig.YMin {
		ch.YAxis.Range = &chart.ContinuousRange{Min: fig.YMin, Max: fig.YMax}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to save %s: %w", path, err)
	}
	defer file.Close()
	if err := ch.Render(provider, file); err != nil {
		return fmt.Errorf("unable to render %s: %w", path, err)
	}
	return file.Close()
}
