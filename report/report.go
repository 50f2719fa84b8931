/*
 * report.go, part of goerrat.
 *
 * Copyright 2024 The goerrat developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package report renders an analysis result as per-chain pages of
//error-value bars: a baseline, guide lines at the 95% and 99% rejection
//limits, ticks every 10th residue with labels every 20th, and one bar per
//residue colored by the confidence band it falls in. Two encodings are
//available, PostScript line art and a paginated PDF document; they share
//the page-building code, so geometry and thresholds are identical.
package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	errat "github.com/rmera/goerrat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	//pageSpan is how many residue slots one page holds.
	pageSpan = 301
	//maxDisplay clamps the drawn bar height. Error values above it are
	//far beyond the 99% limit already; letting them set the scale would
	//flatten the interesting part of the profile.
	maxDisplay = 27.0
	//page size in printer's points, US letter like the classic plots.
	pageWidth  = 612
	pageHeight = 792
)

//The band colors: neutral below the 95% limit, caution between the
//limits, alarm above the 99% limit.
var (
	colorBelow95 = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBelow99 = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorAbove99 = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

//page is one drawable segment of a chain.
type page struct {
	chain       byte
	first, last int //residue slots, inclusive
}

//paginate cuts the chain ranges into pages of at most pageSpan slots.
//Chains too short to have any drawable slot produce no page.
func paginate(chains []errat.ChainRange) []page {
	pages := make([]page, 0, len(chains))
	for _, ch := range chains {
		for first := ch.First; first <= ch.Last; first += pageSpan {
			last := first + pageSpan - 1
			if last > ch.Last {
				last = ch.Last
			}
			pages = append(pages, page{chain: ch.ID, first: first, last: last})
		}
	}
	return pages
}

//band picks the bar color from the unclamped error value. The limits
//themselves still belong to the band below them.
func band(v float64) color.Color {
	switch {
	case v > errat.Lmt99:
		return colorAbove99
	case v > errat.Lmt95:
		return colorBelow99
	}
	return colorBelow95
}

//clamped caps the drawn bar height at maxDisplay.
func clamped(v float64) float64 {
	if v > maxDisplay {
		return maxDisplay
	}
	return v
}

//errBars draws one bar per residue slot, colored by band and clamped to
//maxDisplay. It implements plot.Plotter and plot.DataRanger.
type errBars struct {
	profile     []float64
	first, last int
}

func (b errBars) value(slot int) float64 {
	if slot < 0 || slot >= len(b.profile) {
		return 0
	}
	return b.profile[slot]
}

func (b errBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	outline := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}
	y0 := trY(0)
	for slot := b.first; slot <= b.last; slot++ {
		v := b.value(slot)
		if v <= 0 {
			continue
		}
		xmin := trX(float64(slot) - 0.5)
		xmax := trX(float64(slot) + 0.5)
		y1 := trY(clamped(v))
		c.FillPolygon(band(v), []vg.Point{{X: xmin, Y: y0}, {X: xmax, Y: y0}, {X: xmax, Y: y1}, {X: xmin, Y: y1}})
		c.StrokeLines(outline, []vg.Point{{X: xmin, Y: y0}, {X: xmin, Y: y1}, {X: xmax, Y: y1}, {X: xmax, Y: y0}, {X: xmin, Y: y0}})
	}
}

func (b errBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	return float64(b.first) - 1, float64(b.last) + 1, 0, maxDisplay
}

//residueTicker labels every 20th residue with its chain-local number and
//puts an unlabeled tick at every 10th.
type residueTicker struct{}

func (residueTicker) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, 32)
	for v := int(math.Ceil(min)); v <= int(math.Floor(max)); v++ {
		switch {
		case v%20 == 0:
			ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v % errat.ChainOffset)})
		case v%10 == 0:
			ticks = append(ticks, plot.Tick{Value: float64(v)})
		}
	}
	return ticks
}

//buildPage lays out one page: title block, fixed 0-27 error axis, the two
//rejection-limit guide lines, and the bars.
func buildPage(res *errat.Result, label string, pg page) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Program: ERRAT2\nFile: %s   Chain#:%c\nOverall quality factor: %.3f", label, pg.chain, res.QualityFactor())
	p.X.Label.Text = "Residue # (window center)"
	p.Y.Label.Text = "Error value"
	p.X.Min = float64(pg.first) - 1
	p.X.Max = float64(pg.last) + 1
	p.Y.Min = 0
	p.Y.Max = maxDisplay
	p.X.Tick.Marker = residueTicker{}

	for _, limit := range []struct {
		y    float64
		name string
	}{{errat.Lmt95, "95%"}, {errat.Lmt99, "99%"}} {
		guide, err := plotter.NewLine(plotter.XYs{
			{X: float64(pg.first) - 1, Y: limit.y},
			{X: float64(pg.last) + 1, Y: limit.y},
		})
		if err != nil {
			return nil, err
		}
		guide.LineStyle.Color = color.Gray{Y: 100}
		guide.LineStyle.Width = vg.Points(0.5)
		p.Add(guide)
		p.Legend.Add(limit.name, guide)
	}
	p.Add(errBars{profile: res.Profile, first: pg.first, last: pg.last})
	return p, nil
}

//pages builds all pages of the report, announcing each chain segment on
//the log the way the classic program does.
func pages(res *errat.Result, label string, logw io.Writer) ([]*plot.Plot, error) {
	if logw == nil {
		logw = io.Discard
	}
	pgs := paginate(res.Chains)
	plots := make([]*plot.Plot, 0, len(pgs))
	for _, pg := range pgs {
		fmt.Fprintf(logw, "# Chain Label %c:    Residue range %d to %d\n", pg.chain, pg.first, pg.last)
		p, err := buildPage(res, label, pg)
		if err != nil {
			return nil, err
		}
		plots = append(plots, p)
	}
	return plots, nil
}
