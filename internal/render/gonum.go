package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wildstyl3r/finasym/internal/utils"
)

// GonumRenderer draws with gonum.org/v1/plot; the output format follows the file extension.
type GonumRenderer struct{}

func (GonumRenderer) Formats() []string {
	return []string{"pdf", "png", "svg", "eps", "jpg", "jpeg", "tif", "tiff"}
}

func (g GonumRenderer) Render(fig Figure, path string) error {
	if err := CheckFormat(g, formatOf(path)); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for _, s := range fig.Series {
		xs, ys := utils.FinitePairs(s.X, s.Y)
		if len(xs) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}

		var thumbnails []plot.Thumbnailer
		if !s.Style.NoLine {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Name, err)
			}
			line.LineStyle.Color = s.Style.Color
			line.LineStyle.Width = vg.Points(1.5)
			if s.Style.Dashed {
				line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			}
			p.Add(line)
			thumbnails = append(thumbnails, line)
		}
		if s.Style.Marker != MarkerNone || s.Style.NoLine {
			scatter, err := plotter.NewScatter(pts)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Name, err)
			}
			scatter.GlyphStyle.Color = s.Style.Color
			scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			scatter.GlyphStyle.Radius = vg.Points(2.5)
			p.Add(scatter)
			thumbnails = append(thumbnails, scatter)
		}
		if s.Name != "" {
			p.Legend.Add(s.Name, thumbnails...)
		}
	}

	// p.Add widens the axes to the data, the frame is fixed afterwards
	if fig.XMax > fig.XMin {
		p.X.Min, p.X.Max = fig.XMin, fig.XMax
	}
	if fig.YMax > fig.YMin {
		p.Y.Min, p.Y.Max = fig.YMin, fig.YMax
	}

	w, h := size(fig)
	// 96 px per inch
	if err := p.Save(vg.Length(w)*vg.Inch/96, vg.Length(h)*vg.Inch/96, path); err != nil {
		return fmt.Errorf("unable to save %s: %w", path, err)
	}
	return nil
}
