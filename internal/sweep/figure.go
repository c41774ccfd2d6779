package sweep

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/wildstyl3r/finasym/internal/constants"
	"github.com/wildstyl3r/finasym/internal/render"
)

// frame of the asymmetry charts
const (
	yMin = 0.5
	yMax = 3.0
)

const yLabel = "P(Δφ = 90)/P(Δφ = 0)"

// electron (or theta) curves take the darker shade, photon curves the lighter one
var palette = []struct{ dark, light color.RGBA }{
	{color.RGBA{R: 204, A: 255}, color.RGBA{R: 255, G: 102, B: 102, A: 255}},
	{color.RGBA{B: 204, A: 255}, color.RGBA{R: 102, G: 102, B: 255, A: 255}},
	{color.RGBA{G: 102, A: 255}, color.RGBA{G: 204, A: 255}},
	{color.RGBA{R: 153, B: 153, A: 255}, color.RGBA{R: 255, G: 102, B: 255, A: 255}},
	{color.RGBA{R: 204, G: 102, A: 255}, color.RGBA{R: 255, G: 170, B: 51, A: 255}},
}

func alphaStyle(a int, photon bool) render.Style {
	shades := palette[a%len(palette)]
	if photon {
		return render.Style{Color: shades.light, Marker: render.MarkerCircle}
	}
	return render.Style{Color: shades.dark, Marker: render.MarkerCircle, Dashed: true}
}

// Figure lays the sweep out for the chart renderer: asymmetry vs theta, or
// asymmetry vs electron energy (dashed) together with the same asymmetry vs
// photon energy (solid).
func (r *Result) Figure() render.Figure {
	fig := render.Figure{
		YLabel: yLabel,
		YMin:   yMin,
		YMax:   yMax,
	}
	switch r.Mode {
	case ModeEnergy:
		fig.XLabel = "energy (keV): electron (dashed), photon (solid)"
		fig.XMax = constants.ElectronRestEnergy
		for a, alpha := range r.Alphas {
			fig.Series = append(fig.Series, render.Series{
				Name:  fmt.Sprintf("electron, α = %g°", alpha),
				X:     r.ElectronEnergy,
				Y:     r.Asymmetry[a],
				Style: alphaStyle(a, false),
			})
		}
		for a, alpha := range r.Alphas {
			fig.Series = append(fig.Series, render.Series{
				Name:  fmt.Sprintf("photon, α = %g°", alpha),
				X:     r.PhotonEnergy,
				Y:     r.Asymmetry[a],
				Style: alphaStyle(a, true),
			})
		}
	default:
		fig.XLabel = "θ (deg)"
		fig.XMax = constants.StraightAngle
		for a, alpha := range r.Alphas {
			fig.Series = append(fig.Series, render.Series{
				Name:  fmt.Sprintf("α = %g°", alpha),
				X:     r.Theta,
				Y:     r.Asymmetry[a],
				Style: alphaStyle(a, false),
			})
		}
	}
	return fig
}

// WithMeasured overlays measured (x, y) points on fig as a points-only series.
func WithMeasured(fig render.Figure, name string, points [][]float64) render.Figure {
	if len(points) == 0 {
		return fig
	}
	s := render.Series{
		Name:  name,
		X:     make([]float64, 0, len(points)),
		Y:     make([]float64, 0, len(points)),
		Style: render.Style{Color: color.RGBA{A: 255}, Marker: render.MarkerCircle, NoLine: true},
	}
	for _, p := range points {
		s.X = append(s.X, p[0])
		s.Y = append(s.Y, p[1])
	}
	fig.Series = append(slices.Clip(fig.Series), s)
	return fig
}
