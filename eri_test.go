/*
 * eri_test.go, part of gotrex.
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
	"path/filepath"
	"testing"
)

//a symmetric 8-fold-packed tensor over n orbitals, with values that
//encode their own canonical address, so misplacements are visible.
func test8Fold(n int) *ERI {
	npair := n * (n + 1) / 2
	data := make([]float64, npair*(npair+1)/2)
	for i := range data {
		data[i] = float64(i + 1)
	}
	return &ERI{Fold: 8, Data: data}
}

func TestERINOrb(Te *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		npair := n * (n + 1) / 2
		for _, c := range []struct {
			fold int
			size int
		}{{1, n * n * n * n}, {4, npair * npair}, {8, npair * (npair + 1) / 2}} {
			T := &ERI{Fold: c.fold, Data: make([]float64, c.size)}
			if got := T.NOrb(); got != n {
				Te.Errorf("fold %d, %d values: NOrb %d, want %d", c.fold, c.size, got, n)
			}
		}
	}
}

func TestERISparseRoundTrip(Te *testing.T) {
	//10 orbitals covers an atom with s+p+d+f shells; 3 keeps the small
	//regime honest too
	for _, n := range []int{3, 10} {
		npair := n * (n + 1) / 2
		for _, fold := range []int{1, 4, 8} {
			var size int
			switch fold {
			case 1:
				size = n * n * n * n
			case 4:
				size = npair * npair
			case 8:
				size = npair * (npair + 1) / 2
			}
			data := make([]float64, size)
			for i := range data {
				data[i] = 0.01 * float64(i+1)
			}
			T := &ERI{Fold: fold, Data: data}
			idx, vals, err := T.Sparse()
			if err != nil {
				Te.Fatal(err)
			}
			if len(idx) != len(vals) || len(vals) != size {
				Te.Fatalf("n=%d fold %d: sparse list sized %d/%d for %d values", n, fold, len(idx), len(vals), size)
			}
			back, err := NewERIFromSparse(fold, n, idx, vals)
			if err != nil {
				Te.Fatal(err)
			}
			for i := range data {
				if back.Data[i] != data[i] {
					Te.Fatalf("n=%d fold %d: value %d became %v, was %v", n, fold, i, back.Data[i], data[i])
				}
			}
		}
	}
}

//an 8-fold list may name any symmetry-equivalent index tuple; all land
//on the same canonical slot.
func TestERISparseEquivalentIndices(Te *testing.T) {
	n := 2
	//(10|00) in three equivalent spellings
	for _, q := range [][4]int32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}} {
		T, err := NewERIFromSparse(8, n, [][4]int32{q}, []float64{0.25})
		if err != nil {
			Te.Fatal(err)
		}
		//pair (1,0) has compound index 1, pair (0,0) index 0, slot 1*(2)/2+0
		if T.Data[1] != 0.25 {
			Te.Errorf("index %v landed off the canonical slot: %v", q, T.Data)
		}
	}
}

func TestERIBadInput(Te *testing.T) {
	T := &ERI{Fold: 2, Data: []float64{1}}
	if _, _, err := T.Sparse(); err == nil {
		Te.Error("fold 2 was accepted")
	}
	if _, err := NewERIFromSparse(8, 2, [][4]int32{{0, 0, 0, 0}}, nil); err == nil {
		Te.Error("mismatched index and value lists were accepted")
	}
	//indices out of the declared orbital range, as a corrupt file would
	//deliver them, must be refused rather than addressed
	for _, q := range [][4]int32{{5, 0, 0, 0}, {0, 0, 0, -1}} {
		for _, fold := range []int{1, 4, 8} {
			_, err := NewERIFromSparse(fold, 2, [][4]int32{q}, []float64{1})
			if err == nil {
				Te.Fatalf("fold %d accepted index tuple %v over 2 orbitals", fold, q)
			}
			if cerr, ok := err.(CError); !ok || cerr.Kind() != PreconditionViolation {
				Te.Errorf("wrong failure kind for tuple %v: %v", q, err)
			}
		}
	}
}

func TestERIFileRoundTrip(Te *testing.T) {
	for _, backend := range []string{"text", "zstd"} {
		for _, n := range []int{3, 10} {
			name := filepath.Join(Te.TempDir(), "eri."+backend)
			T := test8Fold(n)
			if err := WriteERI(T, name, backend); err != nil {
				Te.Fatal(err)
			}
			back, err := ReadERI(name, backend)
			if err != nil {
				Te.Fatal(err)
			}
			if back.Fold != 8 || back.NOrb() != n {
				Te.Fatalf("%s n=%d: read back fold %d over %d orbitals", backend, n, back.Fold, back.NOrb())
			}
			for i := range T.Data {
				if back.Data[i] != T.Data[i] {
					Te.Fatalf("%s n=%d: value %d became %v, was %v", backend, n, i, back.Data[i], T.Data[i])
				}
			}
		}
	}
}
