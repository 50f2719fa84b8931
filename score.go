/*
 * score.go, part of goerrat.
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

import "gonum.org/v1/gonum/mat"

//The calibration of the discriminant. The reference vector holds the mean
//contact-type fractions of the reliable structure database; the matrix is
//the quadratic form applied to the deviation from it. The values are fixed
//and reproduced digit for digit. Note that the matrix is symmetric only up
//to its printed representation (a few entries differ in the last bit), so
//it is stored dense rather than as a SymDense: the scores must match the
//calibration exactly, not a symmetrized version of it.
var refFractions = []float64{
	0.192765509919262, //C-C
	0.195575208778518, //C-N
	0.275322406824210, //C-O
	0.059102357035642, //N-N
	0.233154192767480, //N-O
}

var discriminant = mat.NewDense(5, 5, []float64{
	5040.279078850848, 3408.8051415836494, 4152.904423767301, 4236.20000417189, 5054.7812102046255,
	3408.805141583649, 8491.906094010221, 5958.88177787795, 1521.3873527184862, 4304.078200827222,
	4152.9044237673015, 5958.881777877952, 7637.16708933505, 6620.7157382230725, 5287.691183798411,
	4236.20000417189, 1521.3873527184862, 6620.7157382230725, 18368.34377429841, 4050.7978111188067,
	5054.7812102046255, 4304.078200827221, 5287.69118379841, 4050.7978111188067, 6666.856740479165,
})

//Discriminant evaluates the error value for a 5-vector of contact-type
//fractions, ordered as refFractions. It subtracts the reference vector and
//applies the quadratic form. At the reference vector itself the result is
//zero; this is an invariant of the calibration, not a coincidence.
func Discriminant(fractions []float64) float64 {
	v := mat.NewVecDense(5, nil)
	for i := 0; i < 5; i++ {
		v.SetVec(i, fractions[i]-refFractions[i])
	}
	var c mat.VecDense
	c.MulVec(discriminant.T(), v) //the form is v'Mv with the row-times-v order of the calibration
	return mat.Dot(&c, v)
}

//scoreWindow turns a window's contact histogram into its error value. The
//bool is false when the window is under-sampled: its C/N/O contact total
//does not exceed MinInteraction, so no score is produced for it.
func scoreWindow(tab *contactTab) (float64, bool) {
	tot := tab.total()
	if tot <= MinInteraction {
		return 0, false
	}
	fractions := []float64{
		tab[Carbon][Carbon] / tot,
		(tab[Carbon][Nitrogen] + tab[Nitrogen][Carbon]) / tot,
		(tab[Carbon][Oxygen] + tab[Oxygen][Carbon]) / tot,
		tab[Nitrogen][Nitrogen] / tot,
		(tab[Nitrogen][Oxygen] + tab[Oxygen][Nitrogen]) / tot,
	}
	return Discriminant(fractions), true
}
