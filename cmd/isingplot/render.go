package main

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/katalvlaran/ising/lattice"
)

// series is the sweep output consumed by the renderers.
type series struct {
	dim           lattice.Dimension
	beta          []float64
	energy        []float64
	magnetisation []float64
	specificHeat  []float64
}

var (
	blue = color.RGBA{R: 0x34, G: 0x8A, B: 0xBD, A: 0xFF}
	red  = color.RGBA{R: 0xA6, G: 0x06, B: 0x28, A: 0xFF}
)

// panel describes one chart of the three-panel figure.
type panel struct {
	label      string
	values     []float64
	color      color.Color
	line       bool
	yMin, yMax float64
	fixedY     bool
}

func (s series) panels() []panel {
	absM := make([]float64, len(s.magnetisation))
	for i, m := range s.magnetisation {
		absM[i] = math.Abs(m)
	}
	// Ground-state energy per site is -z/2 = -dim.
	eMin := -1.2 * float64(s.dim)

	return []panel{
		{label: "Energy", values: s.energy, color: blue, line: true, yMin: eMin, yMax: 0, fixedY: true},
		{label: "Magnetization", values: absM, color: red, yMin: 0, yMax: 1.2, fixedY: true},
		{label: "SpecificHeat", values: s.specificHeat, color: red},
	}
}

// renderPNG draws the three panels side by side (18in × 6in) as a PNG.
func renderPNG(w io.Writer, s series) error {
	ps := s.panels()
	row := make([]*plot.Plot, len(ps))
	for j, p := range ps {
		pl := plot.New()
		pl.X.Label.Text = "Beta"
		pl.Legend.Top = true
		pl.Legend.Left = true

		pts := make(plotter.XYs, len(s.beta))
		for i := range s.beta {
			pts[i].X = s.beta[i]
			pts[i].Y = p.values[i]
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("isingplot: %s scatter: %w", p.label, err)
		}
		sc.GlyphStyle.Color = p.color
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		pl.Add(sc)
		if p.line {
			ln, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("isingplot: %s line: %w", p.label, err)
			}
			ln.LineStyle.Color = p.color
			ln.LineStyle.Width = vg.Points(2)
			pl.Add(ln)
		}
		pl.Legend.Add(p.label, sc)
		if p.fixedY {
			pl.Y.Min, pl.Y.Max = p.yMin, p.yMax
		}
		row[j] = pl
	}

	img := vgimg.New(18*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for j, pl := range row {
		pl.Draw(canvases[0][j])
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("isingplot: encode png: %w", err)
	}

	return nil
}

// renderHTML writes an interactive go-echarts page with one line chart per panel.
func renderHTML(w io.Writer, s series) error {
	xs := make([]string, len(s.beta))
	for i, b := range s.beta {
		xs[i] = fmt.Sprintf("%.3f", b)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Ising %s sweep", s.dim)
	for _, p := range s.panels() {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{
				Theme: types.ThemeWesteros,
			}),
			charts.WithTitleOpts(opts.Title{
				Title:    p.label,
				Subtitle: fmt.Sprintf("%s lattice, per site", s.dim),
			}),
			charts.WithXAxisOpts(opts.XAxis{
				Name: "Beta",
			}),
			charts.WithYAxisOpts(opts.YAxis{
				Scale: opts.Bool(true),
			}),
		)
		data := make([]opts.LineData, len(p.values))
		for i, v := range p.values {
			data[i] = opts.LineData{Value: v}
		}
		line.SetXAxis(xs).AddSeries(p.label, data)
		page.AddCharts(line)
	}

	return page.Render(w)
}
