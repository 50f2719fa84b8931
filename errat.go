/*
 * errat.go, part of goerrat.
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

	"gonum.org/v1/gonum/mat"
)

//The calibration constants of the method. These are empirical values and
//must not be touched: the discriminant matrix and reference vector in
//score.go were fitted together with them.
const (
	//MaxAtoms is the largest structure the analysis accepts.
	MaxAtoms = 250000
	//Radius is the outer contact cutoff, in A.
	Radius = 3.75
	//RadMin is the inner radius, in A. Contacts closer than this get
	//full weight, contacts between RadMin and Radius decay linearly.
	RadMin = 3.25
	//MinInteraction is the smallest contact-weight total for which a
	//window is considered sampled well enough to score.
	MinInteraction = 100.694
	//Lmt95 and Lmt99 are the 95% and 99% rejection limits for the
	//error value.
	Lmt95 = 11.526684477428809
	Lmt99 = 17.190823041860433
	//ChainOffset is added to the residue numbers once per chain, so
	//that residue numbers never collide across chains and a chain
	//boundary can be detected from the numbers alone.
	ChainOffset = 10000
	//SlotOffset shifts a window's starting residue number to the slot
	//where its score is stored in the profile. It puts the value near
	//the center of the 10-residue window, which is also why the first
	//and last SlotOffset residues of a chain are not drawn in reports.
	SlotOffset = 4
	//WindowResidues is the fixed window length, in residues.
	WindowResidues = 10
	//gapCeiling is the largest tolerated residue-number gap between
	//consecutive atoms of one chain. Anything larger is treated as an
	//implicit chain break while counting window residues.
	gapCeiling = 100
)

//Class is the element class of an atom, as far as the contact statistics
//are concerned. Only carbon, nitrogen and oxygen participate in the
//discriminant; everything else is Other.
type Class int

const (
	Other Class = iota
	Carbon
	Nitrogen
	Oxygen
)

//nClasses is the size of the contact table in each dimension.
const nClasses = 4

func (c Class) String() string {
	switch c {
	case Carbon:
		return "C"
	case Nitrogen:
		return "N"
	case Oxygen:
		return "O"
	}
	return "X"
}

//Atom is one atom of the model, without its coordinates, which live in the
//Structure's coordinate matrix. Atoms are not modified after ingestion.
type Atom struct {
	Class    Class
	Backbone bool //true only for the peptide-bond N and C atoms
	Chain    byte
	ResSeq   int //residue number local to the chain, as read from the file
	ResNum   int //ResSeq plus ChainOffset once per preceding chain
}

//Structure is an ordered, chain-grouped atom sequence with its coordinates.
//It is immutable once built and can be shared freely between goroutines.
type Structure struct {
	atoms  []*Atom
	coords *mat.Dense //one row per atom: x, y, z
}

//NewStructure builds a Structure from atoms and an len(atoms)x3 coordinate
//matrix. It enforces the preconditions of the analysis: the atom count
//ceiling and, within each chain, residue numbers that never decrease.
func NewStructure(atoms []*Atom, coords *mat.Dense) (*Structure, error) {
	if atoms == nil || coords == nil {
		return nil, CError{"NewStructure: nil atoms or coordinates", []string{"NewStructure"}}
	}
	r, c := coords.Dims()
	if r != len(atoms) || c != 3 {
		return nil, CError{fmt.Sprintf("NewStructure: %d atoms but %dx%d coordinates", len(atoms), r, c), []string{"NewStructure"}}
	}
	if len(atoms) > MaxAtoms {
		return nil, CError{TooManyAtoms, []string{"NewStructure"}}
	}
	for i := 1; i < len(atoms); i++ {
		if atoms[i].Chain == atoms[i-1].Chain && atoms[i].ResNum < atoms[i-1].ResNum {
			return nil, CError{fmt.Sprintf("%s: %d after %d", ResNumDecrease, atoms[i].ResNum, atoms[i-1].ResNum), []string{"NewStructure"}}
		}
	}
	return &Structure{atoms: atoms, coords: coords}, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.atoms)
}

//Atom returns the i-th atom. It panics if i is out of range: asking for
//an atom that isn't there means the caller is already broken.
func (S *Structure) Atom(i int) *Atom {
	return S.atoms[i]
}

//XYZ returns the coordinates of the i-th atom.
func (S *Structure) XYZ(i int) (x, y, z float64) {
	row := S.coords.RawRowView(i)
	return row[0], row[1], row[2]
}

//Coords returns the coordinate matrix itself. The caller must not write
//to it while an analysis is running.
func (S *Structure) Coords() *mat.Dense {
	return S.coords
}

//MaxResNum returns the largest global residue number in the structure, or
//-1 for an empty structure. Residue numbers only rise within a chain; a
//chain that opens high (a large or negative file-local numbering) can top
//every later chain, so all atoms are scanned.
func (S *Structure) MaxResNum() int {
	if len(S.atoms) == 0 {
		return -1
	}
	max := S.atoms[0].ResNum
	for _, a := range S.atoms[1:] {
		if a.ResNum > max {
			max = a.ResNum
		}
	}
	return max
}
