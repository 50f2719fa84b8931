/*
 * pdb.go, part of goerrat.
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

//Package pdb reads macromolecular structure files into the clean atom
//sequence the analysis core expects. It understands fixed-column PDB and
//tokenized mmCIF, with transparent gzip for either. Everything the
//analysis cannot use is filtered here: alternate conformations beyond the
//primary one, residues outside the 20 standard amino acids, records too
//short to carry coordinates. Rejections are warnings on the log and never
//surface past this package; only the structural preconditions (atom
//ceiling, residue numbers decreasing within a chain) are fatal.
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	errat "github.com/rmera/goerrat"
	"gonum.org/v1/gonum/mat"
)

//The 20 standard amino acid residues. Atoms of anything else are dropped
//with a logged warning.
var standardResidues = map[string]bool{
	"GLY": true, "ALA": true, "VAL": true, "LEU": true, "ILE": true,
	"TYR": true, "CYS": true, "MET": true, "TRP": true, "PHE": true,
	"HIS": true, "PRO": true, "SER": true, "THR": true, "LYS": true,
	"ARG": true, "GLU": true, "ASP": true, "GLN": true, "ASN": true,
}

//classFromElement maps the first letter of an element or atom name to the
//contact class.
func classFromElement(b byte) errat.Class {
	switch b {
	case 'C', 'c':
		return errat.Carbon
	case 'N', 'n':
		return errat.Nitrogen
	case 'O', 'o':
		return errat.Oxygen
	}
	return errat.Other
}

//altLocAllowed reports whether an alternate-location marker names the
//primary (or only) conformation. Anything else is a secondary conformation
//and its atoms are dropped.
func altLocAllowed(b byte) bool {
	return b == ' ' || b == 'A' || b == 'a' || b == 'P'
}

//rawAtom is one record as read from the file, before the chain/validation
//fold has looked at it.
type rawAtom struct {
	class    errat.Class
	backbone bool
	altLoc   byte
	resName  string
	chain    byte
	resSeq   int
	x, y, z  float64
}

//outcome tags what the fold decided about one record.
type outcome int

const (
	accepted outcome = iota
	rejectedAltLoc
	rejectedResidue
	fatalNonMonotonic
)

//chainState is the mutable state threaded through the fold over incoming
//records: which chain we are in, how many chain boundaries we have
//crossed, and the last accepted residue number. It replaces the loose
//flags of the classic implementations of this format.
type chainState struct {
	started   bool
	prevChain byte
	prevRes   int
	chainIdx  int
	accepted  int
}

//step folds one record into the state. It returns the record's tag and,
//for accepted records, the global residue number (the local one offset by
//ChainOffset once per preceding chain). Warnings go to logw in the wording
//of the classic program, so existing log scrapers keep working.
func (st *chainState) step(raw *rawAtom, logw io.Writer) (outcome, int) {
	if !altLocAllowed(raw.altLoc) {
		fmt.Fprintf(logw, "Reject 2' Conformation atom#\t%d\tchain\t%c\n", st.accepted+1, raw.chain)
		return rejectedAltLoc, 0
	}
	if !standardResidues[raw.resName] {
		fmt.Fprintf(logw, "***Warning: Reject Nonstardard Residue - %s\n", raw.resName)
		return rejectedResidue, 0
	}
	if st.started && raw.chain != st.prevChain {
		st.chainIdx++
		fmt.Fprintf(logw, "INCREMENTING CHAIN (kadd) %d\n", st.chainIdx)
	}
	resNum := raw.resSeq + st.chainIdx*errat.ChainOffset
	if st.started && raw.chain == st.prevChain {
		if resNum < st.prevRes {
			fmt.Fprintf(logw, "ERROR: RESNUM DECREASE. TERMINATE ANALYSIS%d\t%d\n", resNum, st.prevRes)
			return fatalNonMonotonic, 0
		}
		if resNum-st.prevRes > 1 {
			fmt.Fprintf(logw, "WARNING: Missing Residues%d>>>%d\n", st.prevRes, resNum)
		}
	}
	st.started = true
	st.prevChain = raw.chain
	st.prevRes = resNum
	st.accepted++
	return accepted, resNum
}

//builder collects accepted records into the slices a Structure is made of.
type builder struct {
	atoms  []*errat.Atom
	coords []float64
	state  chainState
}

//add folds one raw record. The error is non-nil only for the fatal
//conditions; rejected records are absorbed here.
func (b *builder) add(raw *rawAtom, logw io.Writer) error {
	out, resNum := b.state.step(raw, logw)
	switch out {
	case fatalNonMonotonic:
		return errat.NewCError(errat.ResNumDecrease, []string{"pdb.add"})
	case accepted:
		if len(b.atoms)+1 > errat.MaxAtoms {
			fmt.Fprintf(logw, "ERROR: PDB WITH TOO MANY ATOMS.\n")
			return errat.NewCError(errat.TooManyAtoms, []string{"pdb.add"})
		}
		b.atoms = append(b.atoms, &errat.Atom{
			Class:    raw.class,
			Backbone: raw.backbone,
			Chain:    raw.chain,
			ResSeq:   raw.resSeq,
			ResNum:   resNum,
		})
		b.coords = append(b.coords, raw.x, raw.y, raw.z)
	}
	return nil
}

func (b *builder) structure() (*errat.Structure, error) {
	if len(b.atoms) == 0 {
		return errat.NewStructure([]*errat.Atom{}, mat.NewDense(0, 3, nil))
	}
	return errat.NewStructure(b.atoms, mat.NewDense(len(b.atoms), 3, b.coords))
}

//Read reads fixed-column PDB from r. Only ATOM records are considered;
//the columns used are the element letter (13), the backbone atom name
//(13-15), the alternate-location marker (16), the residue name (17-19),
//the chain (21), the residue number (22-25) and the coordinates (30-53).
//Records shorter than the coordinate block are dropped. Warnings go to
//logw, which may be nil.
func Read(r io.Reader, logw io.Writer) (*errat.Structure, error) {
	if logw == nil {
		logw = io.Discard
	}
	b := new(builder)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "ATOM  ") {
			continue
		}
		raw, ok := parseAtomLine(line)
		if !ok {
			continue //malformed or too short, drop the record
		}
		if err := b.add(raw, logw); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.structure()
}

//parseAtomLine slices one ATOM record into a rawAtom. The bool is false
//for records that cannot carry a full atom.
func parseAtomLine(line string) (*rawAtom, bool) {
	if len(line) < 54 {
		return nil, false
	}
	raw := new(rawAtom)
	raw.class = classFromElement(line[13])
	name := line[13:16]
	raw.backbone = name == "N  " || name == "C  "
	raw.altLoc = line[16]
	raw.resName = line[17:20]
	raw.chain = line[21]
	//the residue number is parsed as a float first: some files carry
	//decimals there, and the classic readers of this format truncate
	//them rather than reject the record.
	seq, err := strconv.ParseFloat(strings.TrimSpace(line[22:26]), 64)
	if err != nil {
		seq = 0
	}
	raw.resSeq = int(seq)
	var errs [3]error
	raw.x, errs[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	raw.y, errs[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	raw.z, errs[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for _, e := range errs {
		if e != nil {
			return nil, false
		}
	}
	return raw, true
}

//ReadFile opens path and reads it with the reader its extension calls for:
//.cif and .mmcif go to the mmCIF reader, everything else is treated as
//fixed-column PDB. A .gz suffix is handled transparently and stripped
//before the extension check.
func ReadFile(path string, logw io.Writer) (*errat.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}
	if strings.HasSuffix(name, ".cif") || strings.HasSuffix(name, ".mmcif") {
		return ReadCIF(r, logw)
	}
	return Read(r, logw)
}
