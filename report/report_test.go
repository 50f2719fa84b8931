/*
 * report_test.go, part of goerrat.
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
	"bytes"
	"strings"
	"testing"

	errat "github.com/rmera/goerrat"
)

//fakeResult builds a scored result spanning two chains, long enough for
//the first chain to need two pages.
func fakeResult() *errat.Result {
	res := &errat.Result{
		Profile: make([]float64, errat.ChainOffset+200),
		Chains: []errat.ChainRange{
			{ID: 'A', First: 5, Last: 400},
			{ID: 'B', First: errat.ChainOffset + 5, Last: errat.ChainOffset + 90},
		},
	}
	for i := 5; i <= 400; i++ {
		res.Profile[i] = 5.0
		res.Total++
	}
	res.Profile[10] = errat.Lmt95 + 2 //caution band
	res.Profile[20] = errat.Lmt99 + 2 //alarm band
	res.Profile[30] = 100             //clamped when drawn
	res.Flagged = 3
	res.ErrSum = 2000
	return res
}

func TestPaginate(Te *testing.T) {
	res := fakeResult()
	pgs := paginate(res.Chains)
	if len(pgs) != 3 {
		Te.Fatalf("got %d pages, want 3", len(pgs))
	}
	if pgs[0].chain != 'A' || pgs[0].first != 5 || pgs[0].last != 5+pageSpan-1 {
		Te.Errorf("first page wrong: %+v", pgs[0])
	}
	if pgs[1].first != 5+pageSpan || pgs[1].last != 400 {
		Te.Errorf("second page wrong: %+v", pgs[1])
	}
	if pgs[2].chain != 'B' || pgs[2].first != errat.ChainOffset+5 {
		Te.Errorf("chain B page wrong: %+v", pgs[2])
	}
}

func TestBandingAndClamp(Te *testing.T) {
	if band(5.0) != colorBelow95 {
		Te.Error("ordinary value not in the neutral band")
	}
	//the limits themselves stay in the band below them
	if band(errat.Lmt95) != colorBelow95 {
		Te.Error("value at the 95% limit left the neutral band")
	}
	if band(errat.Lmt95+0.1) != colorBelow99 {
		Te.Error("value between the limits not in the caution band")
	}
	if band(errat.Lmt99) != colorBelow99 {
		Te.Error("value at the 99% limit left the caution band")
	}
	if band(errat.Lmt99+0.1) != colorAbove99 {
		Te.Error("value above the 99% limit not in the alarm band")
	}
	if clamped(100) != maxDisplay {
		Te.Errorf("bar height not clamped: %g", clamped(100))
	}
	if clamped(5.0) != 5.0 {
		Te.Errorf("in-range bar height changed: %g", clamped(5.0))
	}
}

func TestResidueTicker(Te *testing.T) {
	ticks := residueTicker{}.Ticks(float64(errat.ChainOffset+5), float64(errat.ChainOffset+45))
	labeled := 0
	for _, t := range ticks {
		if t.Label == "" {
			continue
		}
		labeled++
		//labels show the chain-local residue number
		if strings.Contains(t.Label, "100") {
			Te.Errorf("tick label carries the chain offset: %q", t.Label)
		}
	}
	if labeled != 2 { //10020 and 10040
		Te.Errorf("got %d labeled ticks, want 2", labeled)
	}
}

func TestWritePDF(Te *testing.T) {
	res := fakeResult()
	var out bytes.Buffer
	var log strings.Builder
	if err := WritePDF(&out, res, "model", &log); err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
		Te.Error("output does not start like a PDF document")
	}
	if strings.Count(log.String(), "# Chain Label") != 3 {
		Te.Errorf("page announcements missing from the log:\n%s", log.String())
	}
}

func TestWriteEPS(Te *testing.T) {
	res := fakeResult()
	var out bytes.Buffer
	if err := WriteEPS(&out, res, "model", nil); err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "%!PS") {
		Te.Error("output does not start like PostScript")
	}
}

func TestWriteUnscored(Te *testing.T) {
	res := &errat.Result{Profile: make([]float64, 10)}
	var out bytes.Buffer
	if err := WritePDF(&out, res, "empty", nil); err != nil {
		Te.Fatal(err)
	}
	if out.Len() != 0 {
		Te.Error("unscored result still produced a report")
	}
}
