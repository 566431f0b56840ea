/*
 * matrix.go, part of gotrex.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 * goTrex is developed as a companion to goChem
 * (https://github.com/rmera/gochem).
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package trex

import (
	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"
)

//Bridges to the go.matrix types still used by programs written against
//goChem's pre-gonum API. Orbital coefficient matrices cross this bridge
//unchanged, element by element.

//Gonum2GoMatrix returns a go.matrix copy of the gonum matrix d.
func Gonum2GoMatrix(d *mat.Dense) *matrix.DenseMatrix {
	r, c := d.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, d.At(i, j))
		}
	}
	return matrix.MakeDenseMatrix(data, r, c)
}

//GoMatrix2Gonum returns a gonum copy of the go.matrix matrix g.
func GoMatrix2Gonum(g *matrix.DenseMatrix) *mat.Dense {
	r := g.Rows()
	c := g.Cols()
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, g.Get(i, j))
		}
	}
	return d
}
