/*
 * errors.go, part of goerrat.
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

import "strings"

//Error is the interface all errors in this library implement. The Decorate
//method adds information (normally, the name of the function passing the
//error up, plus anything relevant) without changing the error's type or
//wrapping it in something else. Given an empty string it just returns the
//current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}

//The fatal failure reasons of an analysis. All of them invalidate the whole
//structure: the run produces an empty, unscored result. They are
//deterministic functions of the input, so there is no point in retrying.
const (
	TooManyAtoms   = "Structure exceeds the atom ceiling"
	TooManyCells   = "Bounding box needs too many grid cells"
	CellOverflow   = "Too many atoms in one grid cell"
	ResNumDecrease = "Residue number decreases within a chain"
)

//CError is the concrete error type of the errat package.
type CError struct {
	msg  string
	deco []string
}

//NewCError builds a CError. It is exported so the ingestion subpackage can
//signal the fatal reasons defined here (atom ceiling, residue-number
//decrease) with the same type the core uses.
func NewCError(msg string, deco []string) CError {
	return CError{msg, deco}
}

func (err CError) Error() string {
	return err.msg
}

//Decorate adds new information to the error.
func (err CError) Decorate(deco string) []string {
	//Not a pointer receiver, but deco is a slice, so the append is
	//visible through the copy.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Is reports whether the error carries one of the failure-reason constants
//above. Fatal reasons may get context appended, so this is a prefix check.
func (err CError) Is(reason string) bool {
	return strings.HasPrefix(err.msg, reason)
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Used with anything else it panics,
//which is intended: it is only ever applied to our own errors.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//IsFatal reports whether err is one of this library's fatal analysis
//failures carrying the given reason. Any reason matches if none is given.
func IsFatal(err error, reason ...string) bool {
	cerr, ok := err.(CError)
	if !ok {
		return false
	}
	if len(reason) == 0 {
		for _, r := range []string{TooManyAtoms, TooManyCells, CellOverflow, ResNumDecrease} {
			if cerr.Is(r) {
				return true
			}
		}
		return false
	}
	return cerr.Is(reason[0])
}
