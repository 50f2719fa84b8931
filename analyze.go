/*
 * analyze.go, part of goerrat.
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
	"runtime"
	"sync"
)

//Options holds the adjustable knobs of an analysis run.
type Options struct {
	cpus int
}

//DefaultOptions returns an Options with the default values.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	return ret
}

//Cpus returns the number of goroutines used for the window evaluation,
//and sets it first, if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return o.cpus
}

//Analyze runs the whole pipeline on a structure: builds the spatial grid,
//evaluates every scan window, and reduces the outcomes into the error
//profile and the aggregate statistics. Diagnostics go to logw, which may
//be nil. The structure is only read, never modified, so the window
//evaluation runs on a pool of goroutines; every window writes its outcome
//to its own slot and the reduction is sequential, which makes the result
//identical to a single-goroutine run.
//
//Analyze either completes or fails fast on a structural precondition (too
//many grid cells, an overfull cell) before any window is scored; it never
//fails partway through. On failure the returned Result is nil.
func Analyze(s *Structure, logw io.Writer, options ...*Options) (*Result, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if logw == nil {
		logw = io.Discard
	}
	res := &Result{
		Profile: make([]float64, s.MaxResNum()+SlotOffset+1),
		Chains:  chainRanges(s),
	}
	if s.Len() == 0 {
		return res, nil
	}
	g, err := newGrid(s)
	if err != nil {
		fmt.Fprintf(logw, "ERROR: %v\n", err)
		return nil, errDecorate(err, "Analyze")
	}
	starts := windowStarts(s)
	outcomes := make([]*Outcome, len(starts))

	//Fork-join over the windows. Workers pull window indexes from jobs
	//and write to disjoint elements of outcomes, so no locking is
	//needed; s and g are shared read-only.
	jobs := make(chan int, o.cpus)
	var wg sync.WaitGroup
	for w := 0; w < o.cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]int, 0, 27*cellCapacity)
			for k := range jobs {
				outcomes[k] = evalWindow(s, g, starts[k], buf)
			}
		}()
	}
	for k := range starts {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	res.aggregate(outcomes, logw)
	if res.Scored() {
		fmt.Fprintf(logw, "Total frames: %d\tP frames %d\tNumber: %.6g\n", res.Total, res.Flagged, float64(res.Flagged)/float64(res.Total))
		fmt.Fprintf(logw, "\n")
		fmt.Fprintf(logw, "Avg Probability\t%.6g\n", res.AvgError())
		fmt.Fprintf(logw, "# Overall quality factor: %.6g\n", res.QualityFactor())
	}
	return res, nil
}

//evalWindow evaluates one scan window: finds its span, classifies its
//contacts and scores the histogram. Returns nil for an invalid window.
func evalWindow(s *Structure, g *grid, start int, buf []int) *Outcome {
	end, ok := windowSpan(s, start)
	if !ok {
		return nil
	}
	tab := windowContacts(s, g, start, end, buf)
	score, ok := scoreWindow(&tab)
	if !ok {
		return &Outcome{ResNum: s.atoms[start].ResNum, Low: true}
	}
	return &Outcome{ResNum: s.atoms[start].ResNum, Score: score}
}
