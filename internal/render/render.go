package render

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"slices"
	"strings"
)

var ErrUnsupported = errors.New("unsupported renderer option")

type Marker int

const (
	MarkerNone Marker = iota
	MarkerCircle
)

// Style is everything a renderer needs to tell one series from another.
type Style struct {
	Color  color.RGBA
	Marker Marker
	Dashed bool
	NoLine bool // points only
}

type Series struct {
	Name  string
	X, Y  []float64
	Style Style
}

// Figure is a set of series on shared axes. A zero-width axis range
// (Min == Max) leaves the range to the renderer.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	Width  int // [px]
	Height int // [px]
	Series []Series
}

type Renderer interface {
	Render(fig Figure, path string) error
	Formats() []string
}

const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

func NewRenderer(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gonum":
		return GonumRenderer{}, nil
	case "gochart", "go-chart":
		return GoChartRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown renderer %q", ErrUnsupported, name)
	}
}

// CheckFormat reports whether r can write files with extension ext (with or without the dot).
func CheckFormat(r Renderer, ext string) error {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if !slices.Contains(r.Formats(), ext) {
		return fmt.Errorf("%w: format %q, expected one of %v", ErrUnsupported, ext, r.Formats())
	}
	return nil
}

func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func size(fig Figure) (w, h int) {
	w, h = fig.Width, fig.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return
}
