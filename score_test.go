/*
 * score_test.go, part of goerrat.
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
	"math"
	"testing"
)

//A window whose contact fractions sit exactly on the database average
//must get an error value of zero; that is what the calibration means.
func TestDiscriminantAtReference(Te *testing.T) {
	if d := Discriminant(refFractions); math.Abs(d) > 1e-9 {
		Te.Errorf("error value at the reference fractions is %g, want 0", d)
	}
}

//The quadratic form is positive definite, so any deviation from the
//reference must score above zero.
func TestDiscriminantOffReference(Te *testing.T) {
	f := make([]float64, 5)
	copy(f, refFractions)
	f[0] += 0.05
	f[2] -= 0.05
	if d := Discriminant(f); d <= 0 {
		Te.Errorf("deviation from the reference scored %g, want > 0", d)
	}
}

func TestScoreWindowMinimumInteraction(Te *testing.T) {
	var tab contactTab
	tab[Carbon][Carbon] = MinInteraction //the limit is exclusive
	if _, ok := scoreWindow(&tab); ok {
		Te.Error("window at the minimum interaction limit was scored")
	}
	tab[Carbon][Carbon] = 200
	score, ok := scoreWindow(&tab)
	if !ok {
		Te.Fatal("well-sampled window not scored")
	}
	//all contact weight in C-C means fractions (1,0,0,0,0)
	want := Discriminant([]float64{1, 0, 0, 0, 0})
	if math.Abs(score-want) > 1e-12 {
		Te.Errorf("got %g, want %g", score, want)
	}
}
