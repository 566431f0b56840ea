/*
 * basis.go, part of gotrex.
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

	"golang.org/x/exp/slices"
)

//GTONorm returns the radial normalization factor of a primitive Gaussian
//r^l exp(-a r^2), i.e. the N with N^2 Int r^(2l) exp(-2ar^2) r^2 dr = 1.
//Files keep this factor explicit and separate from the contraction
//coefficients, so it is computed here for every primitive, whatever
//normalization the host may or may not have folded in.
func GTONorm(l int, a float64) float64 {
	num := math.Pow(2, float64(2*l+3)) * factorial(l+1) * math.Pow(2*a, float64(l)+1.5)
	den := factorial(2*l+2) * math.Sqrt(math.Pi)
	return math.Sqrt(num / den)
}

func factorial(n int) float64 {
	r := 1.0
	for i := 2; i <= n; i++ {
		r *= float64(i)
	}
	return r
}

//flatBasis is the columnar form of a basis: three per-shell arrays and
//four per-primitive arrays, primitives grouped contiguously by shell,
//in shell order. This is the layout the container stores.
type flatBasis struct {
	nucleusIndex []int //per shell
	angMom       []int //per shell
	shellFactor  []float64
	shellIndex   []int //per primitive
	exps         []float64
	coeffs       []float64
	primFactor   []float64
}

//flattenBasis expands the per-shell basis description of s into flat
//parallel arrays. Only segment contractions (a single coefficient column
//per shell) can be represented.
func flattenBasis(s *System) (*flatBasis, error) {
	f := new(flatBasis)
	for i, sh := range s.Shells {
		if len(sh.Coeffs) != 1 {
			return nil, CError{fmt.Sprintf("shell %d has %d contraction columns: generalized contractions are not supported", i, len(sh.Coeffs)), UnsupportedFeature, []string{"flattenBasis"}}
		}
		f.nucleusIndex = append(f.nucleusIndex, sh.Atom)
		f.angMom = append(f.angMom, sh.L)
		f.shellFactor = append(f.shellFactor, sh.Factor)
		for j, e := range sh.Exps {
			f.shellIndex = append(f.shellIndex, i)
			f.exps = append(f.exps, e)
			f.coeffs = append(f.coeffs, sh.Coeffs[0][j])
			f.primFactor = append(f.primFactor, GTONorm(sh.L, e))
		}
	}
	return f, nil
}

//gatherShells is the inverse of flattenBasis: it groups the flat
//per-primitive arrays back into shells using the shell-index column.
//Both key columns must already be sorted ascending: the encoder emits
//them that way, so an unsorted key means a corrupt file, and is reported
//rather than repaired by sorting. A nil factors column means unit scale
//factors throughout.
func gatherShells(nucIdx, ls, prim2sh []int, exps, coeffs, factors []float64) ([]Shell, error) {
	if !slices.IsSorted(prim2sh) {
		return nil, CError{"basis shell-index column is not sorted", PreconditionViolation, []string{"gatherShells"}}
	}
	if !slices.IsSorted(nucIdx) {
		return nil, CError{"basis nucleus-index column is not sorted", PreconditionViolation, []string{"gatherShells"}}
	}
	if factors != nil && len(factors) != len(ls) {
		return nil, CError{fmt.Sprintf("%d shell factors for %d shells", len(factors), len(ls)), PreconditionViolation, []string{"gatherShells"}}
	}
	shells := make([]Shell, len(ls))
	for i := range shells {
		shells[i] = NewShell(nucIdx[i], ls[i], nil, nil)
		if factors != nil {
			shells[i].Factor = factors[i]
		}
	}
	for p, is := range prim2sh {
		if is < 0 || is >= len(shells) {
			return nil, CError{fmt.Sprintf("primitive %d points to shell %d of %d", p, is, len(shells)), PreconditionViolation, []string{"gatherShells"}}
		}
		shells[is].Exps = append(shells[is].Exps, exps[p])
		shells[is].Coeffs[0] = append(shells[is].Coeffs[0], coeffs[p])
	}
	return shells, nil
}

//aoOrder returns the permutation mapping the host atomic-orbital order
//to the order stored in files: ret[i] is the host index of the ith
//stored function. For Cartesian orbitals both orders coincide. For
//spherical orbitals the host keeps m=-l...+l within each shell while
//files interleave as (0, +1, -1, +2, -2, ...); the same interleaving
//formula covers every l, down to the trivial single-function s block.
func aoOrder(s *System) []int {
	nao := s.NAO()
	idx := make([]int, 0, nao)
	if s.Cart {
		for i := 0; i < nao; i++ {
			idx = append(idx, i)
		}
		return idx
	}
	maxl := s.MaxL()
	cache := make([][]int, maxl+1)
	for l := 0; l <= maxl; l++ {
		block := make([]int, 2*l+1)
		for k := 0; k <= l; k++ {
			block[2*k] = l - k
		}
		for k := 0; k < l; k++ {
			block[2*k+1] = l + k + 1
		}
		cache[l] = block
	}
	off := 0
	for _, sh := range s.Shells {
		for c := 0; c < len(sh.Coeffs); c++ {
			for _, v := range cache[sh.L] {
				idx = append(idx, v+off)
			}
			off += 2*sh.L + 1
		}
	}
	return idx
}

//inversePerm returns the inverse of the permutation p.
func inversePerm(p []int) []int {
	inv := make([]int, len(p))
	for i, v := range p {
		inv[v] = i
	}
	return inv
}

//aoBookkeeping returns, for every atomic orbital, the index of its
//owning shell and its normalization constant. Solid-harmonic functions
//all carry sqrt((2l+1)/4pi); Cartesian ones carry it only for s and p
//shells, where it is not already folded into the integrals downstream.
func aoBookkeeping(s *System) (aoshell []int, aonorm []float64) {
	for i, sh := range s.Shells {
		n := sh.NFuncs(s.Cart)
		norm := math.Sqrt(float64(2*sh.L+1) / (4 * math.Pi))
		if s.Cart && sh.L > 1 {
			norm = 1.0
		}
		for j := 0; j < n; j++ {
			aoshell = append(aoshell, i)
			aonorm = append(aonorm, norm)
		}
	}
	return aoshell, aonorm
}
