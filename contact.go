/*
 * contact.go, part of goerrat.
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

import "math"

//contactTab accumulates contact weight per (probe class, neighbor class)
//pair. The Other row and column are filled but never summed.
type contactTab [nClasses][nClasses]float64

//total sums the table over the classes that take part in the discriminant:
//carbon, nitrogen and oxygen.
func (t *contactTab) total() float64 {
	tot := 0.0
	for q := Carbon; q <= Oxygen; q++ {
		for r := Carbon; r <= Oxygen; r++ {
			tot += t[q][r]
		}
	}
	return tot
}

//peptideBonded reports whether a and b are the two backbone atoms of an
//adjacent-residue peptide bond: residue r's carbonyl C against residue
//r+1's amide N, in either direction. Such pairs are covalently linked and
//must not count as tertiary contacts.
func peptideBonded(a, b *Atom) bool {
	if !a.Backbone || !b.Backbone {
		return false
	}
	return (b.ResNum == a.ResNum+1 && a.Class == Carbon && b.Class == Nitrogen) ||
		(a.ResNum == b.ResNum+1 && a.Class == Nitrogen && b.Class == Carbon)
}

//windowContacts builds the contact histogram for the window spanning atoms
//[start,end]. For each atom in the window it pulls the grid neighborhood
//within the cutoff and classifies every non-bonded contact. Pairs that are
//both inside the window are only counted when the probe's residue number
//exceeds the neighbor's, since the window loop visits both members; a pair
//reaching outside the window is counted unconditionally, because the
//neighbor's own window only ever counts contacts local to itself.
//buf is scratch space for the grid queries, reused across windows.
func windowContacts(s *Structure, g *grid, start, end int, buf []int) contactTab {
	var tab contactTab
	rsq := Radius * Radius
	ssq := RadMin * RadMin
	delta := int(math.Ceil(Radius / CellSide))
	for rer := start; rer <= end; rer++ {
		a := s.atoms[rer]
		ax, ay, az := s.XYZ(rer)
		buf = g.around(ax, ay, az, delta, buf[:0])
		for _, n := range buf {
			b := s.atoms[n]
			if a.ResNum == b.ResNum {
				continue
			}
			bx, by, bz := s.XYZ(n)
			dx, dy, dz := bx-ax, by-ay, bz-az
			dsq := dx*dx + dy*dy + dz*dz
			if dsq >= rsq {
				continue
			}
			if peptideBonded(a, b) {
				continue
			}
			if n >= start && n <= end && a.ResNum <= b.ResNum {
				continue
			}
			w := 1.0
			if dsq > ssq {
				w = 2.0 * (Radius - math.Sqrt(dsq))
			}
			tab[a.Class][b.Class] += w
		}
	}
	return tab
}
