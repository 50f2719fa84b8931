/*
 * profile.go, part of goerrat.
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

package errat

import (
	"fmt"
	"io"
)

//Outcome is the result of evaluating one scan window. Outcomes are
//independent values: the parallel stage produces them without touching any
//shared state, and the sequential reduction folds them into the profile.
type Outcome struct {
	ResNum int     //global residue number of the window's starting residue
	Score  float64 //meaningless when Low
	Low    bool    //window below the minimum interaction limit, no score
}

//Slot returns the index in the error profile where this window's score is
//stored: the starting residue number shifted by SlotOffset.
func (o *Outcome) Slot() int {
	return o.ResNum + SlotOffset
}

//ChainRange is the drawable residue-slot range of one chain: the chain's
//first residue number plus SlotOffset through its last minus SlotOffset,
//i.e. the slots that can hold window scores.
type ChainRange struct {
	ID          byte
	First, Last int
}

//Result is what an analysis produces: the residue-indexed error profile
//(index = residue number + SlotOffset) and the aggregate statistics. It is
//written once, by the sequential aggregation, and read-only afterwards.
type Result struct {
	Profile []float64
	Total   int //scored windows
	Flagged int //scored windows above the 95% rejection limit
	ErrSum  float64
	Chains  []ChainRange
}

//Scored reports whether any window was scored. When it returns false the
//structure is unscoreable, no quality factor is defined, and report
//generation is skipped.
func (R *Result) Scored() bool {
	return R.Total > 0
}

//AvgError returns the mean error value over the scored windows. Only
//meaningful when Scored.
func (R *Result) AvgError() float64 {
	return R.ErrSum / float64(R.Total)
}

//QualityFactor returns the overall quality factor: the percentage of
//scored windows whose error value stays below the 95% rejection limit.
//Only meaningful when Scored.
func (R *Result) QualityFactor() float64 {
	return 100.0 - 100.0*float64(R.Flagged)/float64(R.Total)
}

//aggregate folds the window outcomes into the result, in the order given.
//It runs strictly sequentially, so counts and profile contents are the
//same regardless of how the outcomes were computed. A window above the
//95% limit increments the flagged count exactly once, whether or not it
//also exceeds the 99% limit. Under-sampled windows only produce a warning
//on the log, keyed by their starting slot.
func (R *Result) aggregate(outcomes []*Outcome, logw io.Writer) {
	for _, o := range outcomes {
		if o == nil { //invalid window, silently skipped
			continue
		}
		if o.Low {
			fmt.Fprintf(logw, "WARNING: Frame\t%d\tBelow Minimum Interaction Limit.\n", o.Slot())
			continue
		}
		R.Total++
		R.ErrSum += o.Score
		if o.Score > Lmt95 {
			R.Flagged++
		}
		R.Profile[o.Slot()] = o.Score
	}
}

//chainRanges splits the structure's residue slots per chain, the way the
//report lays them out.
func chainRanges(s *Structure) []ChainRange {
	if s.Len() == 0 {
		return nil
	}
	ranges := make([]ChainRange, 0, 2)
	cur := ChainRange{ID: s.atoms[0].Chain, First: s.atoms[0].ResNum + SlotOffset}
	for i := 1; i < s.Len(); i++ {
		if s.atoms[i].Chain != s.atoms[i-1].Chain && s.atoms[i-1].ResNum > SlotOffset {
			cur.Last = s.atoms[i-1].ResNum - SlotOffset
			ranges = append(ranges, cur)
			cur = ChainRange{ID: s.atoms[i].Chain, First: s.atoms[i].ResNum + SlotOffset}
		}
	}
	cur.Last = s.atoms[s.Len()-1].ResNum - SlotOffset
	ranges = append(ranges, cur)
	return ranges
}
