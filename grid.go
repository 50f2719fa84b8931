/*
 * grid.go, part of goerrat.
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
	"math"
)

const (
	//CellSide is the edge of the cubic grid cells, in A. It is the
	//contact cutoff rounded up to a size that keeps the cell count and
	//the per-cell occupancy tractable.
	CellSide = 4.0
	//maxCells caps the total number of grid cells. A single structure
	//whose bounding box needs more than this is not physically
	//reasonable input.
	maxCells = 200000
	//cellCapacity is the most atoms one cell may hold. A realistically
	//packed structure never puts more than this many atoms in a 4 A
	//cube, so exceeding it signals broken input. Overflow is fatal
	//rather than truncated: dropping atoms silently would corrupt the
	//contact statistics.
	cellCapacity = 15
	//boundsEpsilon is subtracted from the box minimum before the floor
	//division that assigns cells, so atoms sitting exactly on the lower
	//bound don't land in a nonexistent cell.
	boundsEpsilon = 0.00001
)

//grid is a uniform partition of the structure's bounding box into cubic
//cells, each holding the indexes of the atoms inside it. It is built once
//and read-only afterwards.
type grid struct {
	min    [3]float64
	n      [3]int //cells per axis
	counts []int
	cells  []int32 //cellCapacity slots per cell, flat
}

//newGrid partitions the atoms of s into cells. It fails with a fatal error
//if the box needs more than maxCells cells or any cell would receive more
//than cellCapacity atoms.
func newGrid(s *Structure) (*grid, error) {
	g := new(grid)
	for j := 0; j < 3; j++ {
		g.min[j] = math.Inf(1)
	}
	var max [3]float64
	for j := 0; j < 3; j++ {
		max[j] = math.Inf(-1)
	}
	for i := 0; i < s.Len(); i++ {
		row := s.coords.RawRowView(i)
		for j := 0; j < 3; j++ {
			if row[j] < g.min[j] {
				g.min[j] = row[j]
			}
			if row[j] > max[j] {
				max[j] = row[j]
			}
		}
	}
	total := 1
	for j := 0; j < 3; j++ {
		g.n[j] = int((max[j]-g.min[j])/CellSide) + 1
		total *= g.n[j]
	}
	if total > maxCells-1 {
		return nil, CError{fmt.Sprintf("%s: %d", TooManyCells, total), []string{"newGrid"}}
	}
	g.counts = make([]int, total)
	g.cells = make([]int32, total*cellCapacity)
	for i := 0; i < s.Len(); i++ {
		x, y, z := s.XYZ(i)
		ind := g.index(g.cellOf(x, y, z))
		c := g.counts[ind]
		if c >= cellCapacity {
			return nil, CError{fmt.Sprintf("%s: %d", CellOverflow, c+1), []string{"newGrid"}}
		}
		g.cells[ind*cellCapacity+c] = int32(i)
		g.counts[ind] = c + 1
	}
	return g, nil
}

//cellOf returns the per-axis cell coordinates containing the point.
func (g *grid) cellOf(x, y, z float64) (ix, iy, iz int) {
	ix = int(math.Floor((x - (g.min[0] - boundsEpsilon)) / CellSide))
	iy = int(math.Floor((y - (g.min[1] - boundsEpsilon)) / CellSide))
	iz = int(math.Floor((z - (g.min[2] - boundsEpsilon)) / CellSide))
	return ix, iy, iz
}

func (g *grid) index(ix, iy, iz int) int {
	return ix + iy*g.n[0] + iz*g.n[0]*g.n[1]
}

//around appends to buf the indexes of all atoms in cells within Chebyshev
//cell-distance delta of the cell containing the point, clamped to the grid,
//and returns the extended slice. The caller reuses buf across queries.
func (g *grid) around(x, y, z float64, delta int, buf []int) []int {
	jx, jy, jz := g.cellOf(x, y, z)
	x1, x2 := clamp(jx-delta, jx+delta, g.n[0])
	y1, y2 := clamp(jy-delta, jy+delta, g.n[1])
	z1, z2 := clamp(jz-delta, jz+delta, g.n[2])
	for iz := z1; iz <= z2; iz++ {
		for iy := y1; iy <= y2; iy++ {
			for ix := x1; ix <= x2; ix++ {
				ind := g.index(ix, iy, iz)
				base := ind * cellCapacity
				for m := 0; m < g.counts[ind]; m++ {
					buf = append(buf, int(g.cells[base+m]))
				}
			}
		}
	}
	return buf
}

func clamp(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}
