/*
 * grid_test.go, part of goerrat.
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

import "testing"

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func TestGridNeighborhood(Te *testing.T) {
	atoms, coords := carbonChain('A', 1, 3, 0, 0, 0)
	coords[0], coords[3], coords[6] = 0, 2, 50 //x of the three atoms
	s := mustStructure(Te, atoms, coords)
	g, err := newGrid(s)
	if err != nil {
		Te.Fatal(err)
	}
	buf := g.around(0, 0, 0, 1, nil)
	if !containsInt(buf, 0) || !containsInt(buf, 1) {
		Te.Errorf("nearby atoms missing from the neighborhood: %v", buf)
	}
	if containsInt(buf, 2) {
		Te.Errorf("atom 50 A away found in a one-cell neighborhood: %v", buf)
	}
}

func TestGridCellOverflow(Te *testing.T) {
	n := cellCapacity + 1
	atoms, coords := carbonChain('A', 1, n, 0, 0, 0) //all at the origin
	s := mustStructure(Te, atoms, coords)
	_, err := newGrid(s)
	if !IsFatal(err, CellOverflow) {
		Te.Errorf("%d atoms in one cell: want an overflow, got %v", n, err)
	}
}

func TestGridTooManyCells(Te *testing.T) {
	atoms, coords := carbonChain('A', 1, 2, 0, 0, 0)
	coords[3], coords[4], coords[5] = 300, 300, 300 //76^3 cells needed
	s := mustStructure(Te, atoms, coords)
	_, err := newGrid(s)
	if !IsFatal(err, TooManyCells) {
		Te.Errorf("want a cell-count failure, got %v", err)
	}
}
