/*
 * sinks.go, part of goerrat.
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

package report

import (
	"io"

	errat "github.com/rmera/goerrat"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgpdf"
)

//WriteEPS renders the report as PostScript, one page per chain segment,
//all written to w in sequence. A result with no scored windows produces
//no output and no error. logw may be nil.
func WriteEPS(w io.Writer, res *errat.Result, label string, logw io.Writer) error {
	if !res.Scored() {
		return nil
	}
	plots, err := pages(res, label, logw)
	if err != nil {
		return err
	}
	for _, p := range plots {
		c := vgeps.NewTitle(vg.Points(pageWidth), vg.Points(pageHeight), label)
		p.Draw(draw.New(c))
		if _, err := c.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

//WritePDF renders the report as a single multi-page PDF document.
//A result with no scored windows produces no output and no error.
//logw may be nil.
func WritePDF(w io.Writer, res *errat.Result, label string, logw io.Writer) error {
	if !res.Scored() {
		return nil
	}
	plots, err := pages(res, label, logw)
	if err != nil {
		return err
	}
	c := vgpdf.New(vg.Points(pageWidth), vg.Points(pageHeight))
	for i, p := range plots {
		if i > 0 {
			c.NextPage()
		}
		p.Draw(draw.New(c))
	}
	_, err = c.WriteTo(w)
	return err
}
