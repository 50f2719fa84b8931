/*
 * cif.go, part of goerrat.
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
	"io"
	"strconv"
	"strings"

	errat "github.com/rmera/goerrat"
)

//ReadCIF reads a tokenized mmCIF (PDBx) file from r. Only the first
//loop_ carrying _atom_site columns is used, and within it only rows whose
//group_PDB is ATOM. Column lookup accepts both the auth_ and label_
//variants of the chain and sequence tags, preferring auth_. The filtering
//and numbering are exactly those of the fixed-column reader.
func ReadCIF(r io.Reader, logw io.Writer) (*errat.Structure, error) {
	if logw == nil {
		logw = io.Discard
	}
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tokens := tokenizeCIF(string(all))
	b := new(builder)
	idx := 0
	for idx < len(tokens) {
		if tokens[idx] != "loop_" {
			idx++
			continue
		}
		idx++
		cols := make([]string, 0, 20)
		for idx < len(tokens) && strings.HasPrefix(tokens[idx], "_") {
			cols = append(cols, tokens[idx])
			idx++
		}
		if len(cols) == 0 {
			continue
		}
		if !isAtomSite(cols) {
			idx = skipLoopBody(tokens, idx, len(cols))
			continue
		}
		c, err := resolveColumns(cols)
		if err != nil {
			return nil, err
		}
		idx, err = readAtomRows(tokens, idx, c, len(cols), b, logw)
		if err != nil {
			return nil, err
		}
		if len(b.atoms) > 0 {
			break
		}
	}
	return b.structure()
}

func isAtomSite(cols []string) bool {
	for _, c := range cols {
		if strings.HasPrefix(c, "_atom_site.") {
			return true
		}
	}
	return false
}

//cifColumns holds the resolved column indexes of the _atom_site loop.
//Optional columns are -1 when absent.
type cifColumns struct {
	group, atom, typ, alt, res, chain, seq, x, y, z int
}

func resolveColumns(cols []string) (*cifColumns, error) {
	find := func(names ...string) int {
		for _, n := range names {
			for i, c := range cols {
				if strings.EqualFold(c, "_atom_site."+n) {
					return i
				}
			}
		}
		return -1
	}
	c := &cifColumns{
		group: find("group_PDB"),
		atom:  find("label_atom_id"),
		typ:   find("type_symbol"),
		alt:   find("label_alt_id"),
		res:   find("label_comp_id"),
		chain: find("auth_asym_id", "label_asym_id"),
		seq:   find("auth_seq_id", "label_seq_id"),
		x:     find("Cartn_x"),
		y:     find("Cartn_y"),
		z:     find("Cartn_z"),
	}
	if c.atom < 0 || c.res < 0 || c.chain < 0 || c.seq < 0 {
		return nil, fmt.Errorf("mmCIF missing required _atom_site columns")
	}
	if c.x < 0 || c.y < 0 || c.z < 0 {
		return nil, fmt.Errorf("mmCIF missing coordinate columns")
	}
	return c, nil
}

//loopEnds reports whether a token terminates a loop body.
func loopEnds(t string) bool {
	return t == "loop_" || t == "stop_" ||
		strings.HasPrefix(t, "_") ||
		strings.HasPrefix(t, "data_") ||
		strings.HasPrefix(t, "save_")
}

func skipLoopBody(tokens []string, idx, ncols int) int {
	for idx+ncols <= len(tokens) && !loopEnds(tokens[idx]) {
		idx += ncols
	}
	return idx
}

func readAtomRows(tokens []string, idx int, c *cifColumns, ncols int, b *builder, logw io.Writer) (int, error) {
	for idx+ncols <= len(tokens) && !loopEnds(tokens[idx]) {
		row := tokens[idx : idx+ncols]
		idx += ncols
		if c.group >= 0 && row[c.group] != "ATOM" {
			continue
		}
		raw, ok := rowToRaw(row, c)
		if !ok {
			continue
		}
		if err := b.add(raw, logw); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

func rowToRaw(row []string, c *cifColumns) (*rawAtom, bool) {
	raw := new(rawAtom)
	atomName := row[c.atom]
	element := atomName
	if c.typ >= 0 {
		element = row[c.typ]
	}
	if element == "" {
		return nil, false
	}
	raw.class = classFromElement(element[0])
	raw.backbone = atomName == "N" || atomName == "C"
	raw.altLoc = ' '
	if c.alt >= 0 && len(row[c.alt]) > 0 {
		raw.altLoc = row[c.alt][0]
		if raw.altLoc == '.' || raw.altLoc == '?' {
			raw.altLoc = ' '
		}
	}
	raw.resName = strings.ToUpper(row[c.res])
	raw.chain = ' '
	if len(row[c.chain]) > 0 {
		raw.chain = row[c.chain][0]
	}
	seq, err := strconv.ParseFloat(row[c.seq], 64)
	if err != nil {
		seq = 0
	}
	raw.resSeq = int(seq)
	var errs [3]error
	raw.x, errs[0] = strconv.ParseFloat(row[c.x], 64)
	raw.y, errs[1] = strconv.ParseFloat(row[c.y], 64)
	raw.z, errs[2] = strconv.ParseFloat(row[c.z], 64)
	for _, e := range errs {
		if e != nil {
			return nil, false
		}
	}
	return raw, true
}

//tokenizeCIF splits mmCIF text into tokens: whitespace-separated words,
//quoted strings, and semicolon-delimited multiline blocks. Comments run to
//the end of the line.
func tokenizeCIF(input string) []string {
	tokens := make([]string, 0, 1024)
	i := 0
	atLineStart := true
	for i < len(input) {
		c := input[i]
		switch {
		case c == '\n':
			atLineStart = true
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			for i < len(input) && input[i] != '\n' {
				i++
			}
		case c == ';' && atLineStart:
			i++
			start := i
			end := -1
			for i+1 < len(input) {
				if input[i] == '\n' && input[i+1] == ';' {
					end = i
					break
				}
				i++
			}
			if end < 0 { //unterminated block, take the rest
				tokens = append(tokens, input[start:])
				i = len(input)
				break
			}
			tokens = append(tokens, input[start:end])
			i = end + 2
			for i < len(input) && input[i] != '\n' {
				i++
			}
		case c == '\'' || c == '"':
			quote := c
			i++
			start := i
			for i < len(input) && input[i] != quote {
				i++
			}
			tokens = append(tokens, input[start:i])
			if i < len(input) {
				i++
			}
			atLineStart = false
		default:
			start := i
			for i < len(input) && !isSpace(input[i]) {
				i++
			}
			tokens = append(tokens, input[start:i])
			atLineStart = false
		}
	}
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
