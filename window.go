/*
 * window.go, part of goerrat.
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

//windowStarts returns the index of every atom that begins a new residue:
//the very first atom, and every atom whose residue number exceeds that of
//the previous one. Each of these is the potential start of a scan window.
func windowStarts(s *Structure) []int {
	starts := make([]int, 0, s.Len()/4)
	for i := 0; i < s.Len(); i++ {
		if i == 0 || s.atoms[i].ResNum > s.atoms[i-1].ResNum {
			starts = append(starts, i)
		}
	}
	return starts
}

//windowSpan walks forward from the window start counting residues: one
//more residue whenever the residue-number delta to the next atom is
//positive but below the gap ceiling (missing residues are tolerated, a
//larger jump is an implicit chain break), and one for the final atom of
//the sequence. It stops after WindowResidues residues or at the end.
//The window is valid only if exactly WindowResidues residues were counted
//and the chain-local residue number actually advanced from start to end,
//which rules out degenerate runs at chain boundaries.
func windowSpan(s *Structure, start int) (end int, ok bool) {
	n := s.Len()
	count := 1
	v := start
	for count < WindowResidues && v < n {
		if v == n-1 {
			count++
		} else if d := s.atoms[v+1].ResNum - s.atoms[v].ResNum; d > 0 && d < gapCeiling {
			count++
		}
		v++
	}
	if v > 0 {
		v--
	}
	if count != WindowResidues || s.atoms[v].ResSeq <= s.atoms[start].ResSeq {
		return v, false
	}
	return v, true
}
