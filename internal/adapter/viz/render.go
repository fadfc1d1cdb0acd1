// Package viz renders the three channels' values over output time as a
// stacked PNG figure.
package viz

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Bwong44/FogSonification/internal/domain"
)

var (
	cloudColor   = color.RGBA{B: 200, A: 255}
	invertColor  = color.RGBA{G: 150, A: 255}
	solarColor   = color.RGBA{R: 230, G: 140, A: 255}
	sunriseColor = color.RGBA{R: 240, G: 200, A: 255}
	sunsetColor  = color.RGBA{R: 120, B: 160, A: 255}
)

// Render draws four stacked panels: raw cloud coverage, inverted coverage
// (what actually plays), the scaled solar sine, and the sunrise/sunset
// events, all against seconds of output time.
func Render(w io.Writer, table domain.CleanedTable, comp domain.Composition, sineRange float64) error {
	n := table.Len()
	if n == 0 {
		return fmt.Errorf("nothing to render: empty table")
	}

	times := make([]float64, n)
	for i := range times {
		if n > 1 {
			times[i] = float64(i) / float64(n-1) * comp.Duration
		}
	}

	panels := []*plot.Plot{
		cloudPanel(table, times, false),
		cloudPanel(table, times, true),
		solarPanel(table, times, sineRange),
		eventsPanel(table, times),
	}

	img := vgimg.New(28*vg.Centimeter, 24*vg.Centimeter)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: len(panels), Cols: 1, PadY: vg.Millimeter * 4}

	grid := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		grid[i] = []*plot.Plot{p}
	}
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range panels {
		p.Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func newPanel(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (seconds)"
	p.Y.Label.Text = ylabel
	return p
}

func cloudPanel(table domain.CleanedTable, times []float64, inverted bool) *plot.Plot {
	title, c := "Channel 1: Cloud Coverage", cloudColor
	if inverted {
		title, c = "Channel 1: Inverted Cloud Coverage (Higher = Clearer Sky)", invertColor
	}
	p := newPanel(title, "Coverage (%)")
	p.Y.Min, p.Y.Max = 0, 100

	xys := make(plotter.XYs, len(times))
	for i, entry := range table.Entries {
		y := entry.Row.CloudCover
		if inverted {
			y = 100 - y
		}
		xys[i] = plotter.XY{X: times[i], Y: y}
	}
	addLine(p, xys, c)
	return p
}

func solarPanel(table domain.CleanedTable, times []float64, sineRange float64) *plot.Plot {
	p := newPanel("Channel 2: Solar Sine (Peaks at Solar Noon)", "Phase")
	p.Y.Min, p.Y.Max = -sineRange, sineRange

	xys := make(plotter.XYs, len(times))
	for i, entry := range table.Entries {
		xys[i] = plotter.XY{X: times[i], Y: entry.Solar.Phase * sineRange}
	}
	addLine(p, xys, solarColor)
	return p
}

func eventsPanel(table domain.CleanedTable, times []float64) *plot.Plot {
	p := newPanel("Channel 3: Sunrise/Sunset Events", "Event")
	p.Y.Min, p.Y.Max = -0.5, 1.5

	var sunrises, sunsets plotter.XYs
	for i, entry := range table.Entries {
		if entry.Solar.Sunrise {
			sunrises = append(sunrises, plotter.XY{X: times[i], Y: 1})
		}
		if entry.Solar.Sunset {
			sunsets = append(sunsets, plotter.XY{X: times[i], Y: 0})
		}
	}
	addScatter(p, sunrises, sunriseColor)
	addScatter(p, sunsets, sunsetColor)
	return p
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color) {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return
	}
	line.LineStyle.Color = c
	p.Add(line, plotter.NewGrid())
}

func addScatter(p *plot.Plot, xys plotter.XYs, c color.Color) {
	if len(xys) == 0 {
		return
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)
}
