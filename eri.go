/*
 * eri.go, part of gotrex.
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
	"fmt"
	"math"

	"github.com/rmera/gotrex/tio"
)

//ERI is a two-electron repulsion integral tensor over n orbitals, in one
//of the three packings electronic-structure codes use:
//
//	Fold 1: the full dense tensor, n^4 values in row-major index order.
//	Fold 4: a square over compound pair indices, npair^2 values, where
//	        npair = n(n+1)/2 and a pair (p,q), p>=q, has compound index
//	        p(p+1)/2+q.
//	Fold 8: the lower triangle of that square, npair(npair+1)/2 values.
//
//Data must be consistent with the declared fold, i.e. the tensor it
//represents already has the corresponding permutation symmetry.
type ERI struct {
	Fold int
	Data []float64
}

//NOrb returns the number of orbitals, recovered from the data length
//and the fold via the inverse triangular-number formula.
func (T *ERI) NOrb() int {
	switch T.Fold {
	case 1:
		return int(math.Round(math.Pow(float64(len(T.Data)), 0.25)))
	case 4:
		npair := int(math.Round(math.Sqrt(float64(len(T.Data)))))
		return int(math.Sqrt(float64(npair * 2)))
	case 8:
		npair := int(math.Sqrt(float64(len(T.Data) * 2)))
		return int(math.Sqrt(float64(npair * 2)))
	}
	return 0
}

//pairs enumerates the ordered index pairs (p,q), p>=q, over n orbitals,
//in the order their compound index linearizes them.
func pairs(n int) [][2]int {
	ret := make([][2]int, 0, n*(n+1)/2)
	for p := 0; p < n; p++ {
		for q := 0; q <= p; q++ {
			ret = append(ret, [2]int{p, q})
		}
	}
	return ret
}

//Sparse flattens the tensor into an explicit list of 4-index tuples and
//their values, the form files store. The tuple order is the enumeration
//order of the packing itself, so Data is reused as the value slice.
func (T *ERI) Sparse() ([][4]int32, []float64, error) {
	n := T.NOrb()
	switch T.Fold {
	case 1:
		idx := make([][4]int32, 0, len(T.Data))
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for k := 0; k < n; k++ {
					for l := 0; l < n; l++ {
						idx = append(idx, [4]int32{int32(i), int32(j), int32(k), int32(l)})
					}
				}
			}
		}
		return idx, T.Data, nil
	case 4:
		pr := pairs(n)
		idx := make([][4]int32, 0, len(T.Data))
		for _, r := range pr {
			for _, c := range pr {
				idx = append(idx, [4]int32{int32(r[0]), int32(r[1]), int32(c[0]), int32(c[1])})
			}
		}
		return idx, T.Data, nil
	case 8:
		pr := pairs(n)
		idx := make([][4]int32, 0, len(T.Data))
		for ri, r := range pr {
			for ci := 0; ci <= ri; ci++ {
				c := pr[ci]
				idx = append(idx, [4]int32{int32(r[0]), int32(r[1]), int32(c[0]), int32(c[1])})
			}
		}
		return idx, T.Data, nil
	}
	return nil, nil, CError{fmt.Sprintf("eri fold must be 1, 4 or 8, not %d", T.Fold), PreconditionViolation, []string{"Sparse"}}
}

//NewERIFromSparse accumulates an explicit (4-index, value) list into the
//packing given by fold, over n orbitals. Entries not present in the list
//are zero. Each entry lands at the canonical address computed from its
//two compound pair indices, so the input may list indices in any
//symmetry-equivalent form consistent with the fold.
func NewERIFromSparse(fold, n int, idx [][4]int32, vals []float64) (*ERI, error) {
	if len(idx) != len(vals) {
		return nil, CError{fmt.Sprintf("%d index tuples but %d values", len(idx), len(vals)), PreconditionViolation, []string{"NewERIFromSparse"}}
	}
	for t, q := range idx {
		for _, v := range q {
			if v < 0 || int(v) >= n {
				return nil, CError{fmt.Sprintf("index tuple %d holds orbital %d, have %d orbitals", t, v, n), PreconditionViolation, []string{"NewERIFromSparse"}}
			}
		}
	}
	npair := n * (n + 1) / 2
	T := &ERI{Fold: fold}
	switch fold {
	case 1:
		T.Data = make([]float64, n*n*n*n)
		for t, q := range idx {
			i, j, k, l := int(q[0]), int(q[1]), int(q[2]), int(q[3])
			T.Data[((i*n+j)*n+k)*n+l] = vals[t]
		}
	case 4:
		T.Data = make([]float64, npair*npair)
		for t, q := range idx {
			x := pairIndex(int(q[0]), int(q[1]))
			y := pairIndex(int(q[2]), int(q[3]))
			T.Data[x*npair+y] = vals[t]
		}
	case 8:
		T.Data = make([]float64, npair*(npair+1)/2)
		for t, q := range idx {
			x := pairIndex(int(q[0]), int(q[1]))
			y := pairIndex(int(q[2]), int(q[3]))
			if x < y {
				x, y = y, x
			}
			T.Data[x*(x+1)/2+y] = vals[t]
		}
	default:
		return nil, CError{fmt.Sprintf("eri fold must be 1, 4 or 8, not %d", fold), PreconditionViolation, []string{"NewERIFromSparse"}}
	}
	return T, nil
}

func pairIndex(p, q int) int {
	if p < q {
		p, q = q, p
	}
	return p*(p+1)/2 + q
}

//WriteERI writes the tensor to the file as an explicit sparse list.
//The file is opened in update mode, so orbital data written by a
//previous Export survives; the orbital count is added if absent, which
//keeps standalone integral files readable.
func WriteERI(T *ERI, name, backend string) error {
	idx, vals, err := T.Sparse()
	if err != nil {
		return errDecorate(err, "WriteERI")
	}
	f, err := tio.Open(name, "u", backend)
	if err != nil {
		return err
	}
	if !f.Has("mo_num") {
		f.WriteInt("mo_num", T.NOrb())
	}
	flat := make([]int, 0, 4*len(idx))
	for _, q := range idx {
		flat = append(flat, int(q[0]), int(q[1]), int(q[2]), int(q[3]))
	}
	f.WriteInt("mo_2e_int_eri_num", len(vals))
	f.WriteInts("mo_2e_int_eri_index", flat)
	f.WriteFloats("mo_2e_int_eri_value", vals)
	return f.Close()
}

//ReadERI reads a two-electron integral tensor from the file. The stored
//list is accumulated under 8-fold symmetry, which is what this library
//writes for a full symmetric tensor; the orbital count comes from the
//mo_num attribute of the same file.
func ReadERI(name, backend string) (*ERI, error) {
	f, err := tio.Open(name, "r", backend)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := f.ReadInt("mo_num")
	if err != nil {
		return nil, errDecorate(err, "ReadERI")
	}
	flat, err := f.ReadInts("mo_2e_int_eri_index")
	if err != nil {
		return nil, errDecorate(err, "ReadERI")
	}
	vals, err := f.ReadFloats("mo_2e_int_eri_value")
	if err != nil {
		return nil, errDecorate(err, "ReadERI")
	}
	if len(flat) != 4*len(vals) {
		return nil, CError{fmt.Sprintf("eri index column has %d entries for %d values", len(flat), len(vals)), PreconditionViolation, []string{"ReadERI"}}
	}
	idx := make([][4]int32, len(vals))
	for i := range idx {
		idx[i] = [4]int32{int32(flat[4*i]), int32(flat[4*i+1]), int32(flat[4*i+2]), int32(flat[4*i+3])}
	}
	T, err := NewERIFromSparse(8, n, idx, vals)
	if err != nil {
		return nil, errDecorate(err, "ReadERI")
	}
	return T, nil
}
