/*
 * pdb_test.go, part of goerrat.
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

package pdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	errat "github.com/rmera/goerrat"
)

//atomLine formats one fixed-column ATOM record. Only the fields the
//reader looks at are filled in.
func atomLine(serial int, name string, alt byte, res string, chain byte, seq int, x, y, z float64) string {
	return fmt.Sprintf("ATOM  %5d  %-3s%c%3s %c%4d    %8.3f%8.3f%8.3f",
		serial, name, alt, res, chain, seq, x, y, z)
}

func TestReadFiltering(Te *testing.T) {
	lines := []string{
		"HEADER    TEST",
		atomLine(1, "N", ' ', "ALA", 'A', 1, 0, 0, 0),
		atomLine(2, "CA", ' ', "ALA", 'A', 1, 1.5, 0, 0),
		atomLine(3, "CA", 'B', "ALA", 'A', 1, 1.6, 0, 0), //secondary conformation
		atomLine(4, "C", ' ', "XXX", 'A', 2, 3, 0, 0),    //not an amino acid
		atomLine(5, "C", ' ', "GLY", 'A', 2, 3, 0, 0),
		"HETATM    6  O   HOH A 301       8.000   0.000   0.000",
	}
	var log strings.Builder
	s, err := Read(strings.NewReader(strings.Join(lines, "\n")), &log)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 3 {
		Te.Fatalf("got %d atoms, want 3", s.Len())
	}
	if !strings.Contains(log.String(), "Reject 2' Conformation") {
		Te.Error("secondary conformation slipped through without a warning")
	}
	if !strings.Contains(log.String(), "Nonstardard Residue - XXX") {
		Te.Error("nonstandard residue slipped through without a warning")
	}
	first := s.Atom(0)
	if first.Class != errat.Nitrogen || !first.Backbone {
		Te.Errorf("backbone nitrogen misclassified: %+v", first)
	}
	second := s.Atom(1)
	if second.Class != errat.Carbon || second.Backbone {
		Te.Errorf("alpha carbon misclassified: %+v", second)
	}
}

func TestReadChains(Te *testing.T) {
	lines := []string{
		atomLine(1, "CA", ' ', "ALA", 'A', 1, 0, 0, 0),
		atomLine(2, "CA", ' ', "GLY", 'A', 2, 2, 0, 0),
		atomLine(3, "CA", ' ', "GLY", 'A', 5, 4, 0, 0), //gap
		atomLine(4, "CA", ' ', "VAL", 'B', 1, 6, 0, 0), //new chain
	}
	var log strings.Builder
	s, err := Read(strings.NewReader(strings.Join(lines, "\n")), &log)
	if err != nil {
		Te.Fatal(err)
	}
	if got := s.Atom(3).ResNum; got != 1+errat.ChainOffset {
		Te.Errorf("chain B residue numbered %d, want %d", got, 1+errat.ChainOffset)
	}
	if s.Atom(3).ResSeq != 1 {
		Te.Error("chain-local residue number was not kept")
	}
	if !strings.Contains(log.String(), "INCREMENTING CHAIN") {
		Te.Error("chain boundary not announced")
	}
	if !strings.Contains(log.String(), "Missing Residues") {
		Te.Error("residue gap not announced")
	}
}

func TestReadResNumDecrease(Te *testing.T) {
	lines := []string{
		atomLine(1, "CA", ' ', "ALA", 'A', 5, 0, 0, 0),
		atomLine(2, "CA", ' ', "GLY", 'A', 3, 2, 0, 0),
	}
	var log strings.Builder
	_, err := Read(strings.NewReader(strings.Join(lines, "\n")), &log)
	if !errat.IsFatal(err, errat.ResNumDecrease) {
		Te.Errorf("want a fatal residue-number decrease, got %v", err)
	}
	if !strings.Contains(log.String(), "RESNUM DECREASE") {
		Te.Error("fatal condition left no trace on the log")
	}
}

func TestReadFileGzip(Te *testing.T) {
	content := strings.Join([]string{
		atomLine(1, "CA", ' ', "ALA", 'A', 1, 0, 0, 0),
		atomLine(2, "CA", ' ', "GLY", 'A', 2, 2, 0, 0),
	}, "\n")
	path := filepath.Join(Te.TempDir(), "model.pdb.gz")
	f, err := os.Create(path)
	if err != nil {
		Te.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		Te.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		Te.Fatal(err)
	}
	f.Close()
	s, err := ReadFile(path, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 2 {
		Te.Errorf("got %d atoms from the gzipped file, want 2", s.Len())
	}
}

func TestReadCIF(Te *testing.T) {
	cif := `data_test
# a comment
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM 1 N N . ALA A 1 0.000 0.000 0.000
ATOM 2 C CA . ALA A 1 1.500 0.000 0.000
ATOM 3 C C . ALA A 1 2.400 0.600 0.000
ATOM 4 C CA B ALA A 1 1.600 0.000 0.000
HETATM 5 O O . HOH A 90 9.000 9.000 9.000
`
	var log strings.Builder
	s, err := ReadCIF(strings.NewReader(cif), &log)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 3 {
		Te.Fatalf("got %d atoms, want 3", s.Len())
	}
	if s.Atom(0).Class != errat.Nitrogen || !s.Atom(0).Backbone {
		Te.Errorf("backbone nitrogen misclassified: %+v", s.Atom(0))
	}
	if s.Atom(1).Backbone {
		Te.Error("alpha carbon taken for a backbone atom")
	}
	if !strings.Contains(log.String(), "Reject 2' Conformation") {
		Te.Error("alternate conformation slipped through without a warning")
	}
}

func TestReadFileDispatch(Te *testing.T) {
	dir := Te.TempDir()
	cif := "data_x\nloop_\n_atom_site.group_PDB\n_atom_site.label_atom_id\n" +
		"_atom_site.type_symbol\n_atom_site.label_comp_id\n_atom_site.auth_asym_id\n" +
		"_atom_site.auth_seq_id\n_atom_site.Cartn_x\n_atom_site.Cartn_y\n_atom_site.Cartn_z\n" +
		"ATOM CA C ALA A 1 0.0 0.0 0.0\n"
	path := filepath.Join(dir, "model.cif")
	if err := os.WriteFile(path, []byte(cif), 0644); err != nil {
		Te.Fatal(err)
	}
	s, err := ReadFile(path, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Len() != 1 {
		Te.Errorf("got %d atoms from the mmCIF file, want 1", s.Len())
	}
}
