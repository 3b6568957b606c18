package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

// ScatterPlot is a complete scatter figure.
type ScatterPlot struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Guides []Guide
}

// BarPlot is a complete bar figure.
type BarPlot struct {
	Title  string
	YLabel string
	Bars   []Bar
}

// Sink receives finished figures.
type Sink interface {
	Scatter(p ScatterPlot) error
	Bars(p BarPlot) error
}

// PNGRenderer renders figures as PNG files in Dir.
type PNGRenderer struct {
	Dir    string
	Width  int
	Height int

	// Written lists the files produced so far
	Written []string
}

// guideColors cycle over the reference curves
var guideColors = []drawing.Color{
	chart.ColorRed, chart.ColorOrange, chart.ColorGreen, chart.ColorBlue, chart.ColorCyan, chart.ColorBlack,
}

// Scatter renders the series as dots coloured by intensity, plus the guides
// as lines.
func (pr *PNGRenderer) Scatter(p ScatterPlot) error {
	points := Flatten(p.Series)
	if len(points) == 0 {
		return core.Errorf(core.KindNoMatch, "render", "no points in '%s'", p.Title)
	}

	zs := make([]float64, len(points))
	xs := make([]float64, len(points))
	for i, pt := range points {
		zs[i] = pt.Z
		xs[i] = pt.X
	}
	zmin, zmax := floats.Min(zs), floats.Max(zs)
	xmax := floats.Max(xs)

	var series []chart.Series
	for _, s := range p.Series {
		cs := chart.ContinuousSeries{
			Name:    s.Name,
			XValues: make([]float64, len(s.Points)),
			YValues: make([]float64, len(s.Points)),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return chart.Viridis(s.Points[index].Z, zmin, zmax)
				},
			},
		}
		for i, pt := range s.Points {
			cs.XValues[i] = pt.X
			cs.YValues[i] = pt.Y
		}
		series = append(series, cs)
	}

	for i, g := range p.Guides {
		pts := g.Points(xmax, 100)
		if len(pts) == 0 {
			continue
		}
		cs := chart.ContinuousSeries{
			Name:    g.Label,
			XValues: make([]float64, len(pts)),
			YValues: make([]float64, len(pts)),
			Style: chart.Style{
				StrokeWidth: 1.5,
				StrokeColor: guideColors[i%len(guideColors)],
			},
		}
		for j, pt := range pts {
			cs.XValues[j] = pt.X
			cs.YValues[j] = pt.Y
		}
		series = append(series, cs)
	}

	ch := chart.Chart{
		Title:      p.Title,
		Width:      pr.width(),
		Height:     pr.height(),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: p.XLabel},
		YAxis:      chart.YAxis{Name: p.YLabel},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return pr.write(p.Title, func(f *os.File) error {
		return ch.Render(chart.PNG, f)
	})
}

// Bars renders a bar chart; bars are drawn in the given order.
func (pr *PNGRenderer) Bars(p BarPlot) error {
	if len(p.Bars) == 0 {
		return core.Errorf(core.KindNoMatch, "render", "no bars in '%s'", p.Title)
	}

	values := make([]chart.Value, len(p.Bars))
	for i, b := range p.Bars {
		values[i] = chart.Value{Label: b.Label, Value: b.Value}
	}

	bc := chart.BarChart{
		Title:      p.Title,
		Width:      pr.width(),
		Height:     pr.height(),
		BarWidth:   barWidth(pr.width(), len(values)),
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{Name: p.YLabel},
		Bars:  values,
	}

	return pr.write(p.Title, func(f *os.File) error {
		return bc.Render(chart.PNG, f)
	})
}

func (pr *PNGRenderer) write(title string, render func(f *os.File) error) error {
	if err := os.MkdirAll(pr.Dir, 0o755); err != nil {
		return core.Wrap(core.KindIO, "render", err)
	}

	path := filepath.Join(pr.Dir, FileName(title)+".png")
	f, err := os.Create(path)
	if err != nil {
		return core.Wrap(core.KindIO, "render", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return core.Wrap(core.KindIO, "render", err)
	}

	pr.Written = append(pr.Written, path)
	return nil
}

func (pr *PNGRenderer) width() int {
	if pr.Width > 0 {
		return pr.Width
	}
	return 800
}

func (pr *PNGRenderer) height() int {
	if pr.Height > 0 {
		return pr.Height
	}
	return 600
}

const barSpacing = 8

func barWidth(width, n int) int {
	w := (width-120)/n - barSpacing
	if w < 4 {
		return 4
	}
	if w > 60 {
		return 60
	}
	return w
}

// FileName turns a figure title into a file name.
func FileName(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '#':
			b.WriteString("num")
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "plot"
	}
	return b.String()
}
