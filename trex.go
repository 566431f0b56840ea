/*
 * trex.go, part of gotrex.
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
	"regexp"
)

//Version is the library version, written to the metadata of every
//file produced, so the consumer can tell where a file came from.
const Version = "0.1.0"

//ghost centers carry a label starting with "X-". They have basis
//functions but no electrons or charge.
var ghostre = regexp.MustCompile("^X-")

//Atom represents one nucleus: its element symbol, a per-instance label
//(symbol plus a positional suffix, so repeated elements stay individually
//addressable), the nuclear charge and the Cartesian coordinates, in Bohr.
type Atom struct {
	Symbol string
	Label  string
	Charge float64
	Coords [3]float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

//Ghost returns true if the atom is a ghost/dummy center.
func (A *Atom) Ghost() bool {
	return ghostre.MatchString(A.Label) || ghostre.MatchString(A.Symbol)
}

//Shell is a group of basis functions sharing one angular momentum and
//one set of contracted primitives, on one nucleus. Coeffs holds the
//contraction columns: segment-contracted shells, the only kind the codecs
//write, have exactly one column. Each column has one coefficient per
//primitive in Exps. The coefficients are the raw, basis-set-table ones;
//primitive normalization is kept separate (see gtoNorm).
type Shell struct {
	Atom   int //index of the owning nucleus
	L      int
	Exps   []float64
	Coeffs [][]float64
	Factor float64 //shell-level scale factor
}

//NewShell returns a segment-contracted (single column) shell with the
//scale factor set to 1.0.
func NewShell(atom, l int, exps, coeffs []float64) Shell {
	return Shell{Atom: atom, L: l, Exps: exps, Coeffs: [][]float64{coeffs}, Factor: 1.0}
}

//NFuncs returns the number of atomic orbitals the shell contributes,
//given the Cartesian/spherical flag cart.
func (S *Shell) NFuncs(cart bool) int {
	per := 2*S.L + 1
	if cart {
		per = (S.L + 1) * (S.L + 2) / 2
	}
	return per * len(S.Coeffs)
}

//ECPTerm is one Gaussian term of an effective core potential:
//coeff * r^power * exp(-exp*r^2) on the channel with angular momentum L.
//L == -1 marks the local channel. Power uses the source convention,
//where the plain local Gaussian has power 2.
type ECPTerm struct {
	L     int
	Power int
	Exp   float64
	Coeff float64
}

//ECPTable is the effective core potential of one element or atom label:
//the number of core electrons it replaces and its Gaussian terms.
type ECPTable struct {
	ZCore int
	Terms []ECPTerm
}

//Cell holds the three lattice vectors of a periodic cell, in Angstrom.
type Cell struct {
	A, B, C [3]float64
}

//System is a full nuclear/basis description: nuclei, an optional
//periodic cell, electron counts, the basis shells and, optionally,
//effective core potentials keyed by atom label (bare element symbols
//work as keys too). Cart selects Cartesian or real solid-harmonic
//(spherical) atomic orbitals.
//
//Spherical functions within a shell are ordered by magnetic quantum
//number, m=-l...+l. Cartesian functions are ordered lexicographically
//by exponent tuple, x-major.
type System struct {
	Atoms      []Atom
	Cell       *Cell //nil for an open (non-periodic) system
	Alpha      int   //spin-up electrons
	Beta       int   //spin-down electrons
	Shells     []Shell
	Cart       bool
	ECP        map[string]*ECPTable
	Pseudo     map[string]string //non-ECP pseudopotential assignments. Not writeable.
	PointGroup string
}

//Len returns the number of atoms in the system.
func (S *System) Len() int {
	return len(S.Atoms)
}

//NAO returns the number of atomic orbitals implied by the basis and the
//Cartesian/spherical flag.
func (S *System) NAO() int {
	n := 0
	for i := range S.Shells {
		n += S.Shells[i].NFuncs(S.Cart)
	}
	return n
}

//NPrim returns the total number of primitives over all shells.
func (S *System) NPrim() int {
	n := 0
	for i := range S.Shells {
		n += len(S.Shells[i].Exps)
	}
	return n
}

//MaxL returns the largest angular momentum present in the basis,
//or -1 for an empty basis.
func (S *System) MaxL() int {
	max := -1
	for i := range S.Shells {
		if S.Shells[i].L > max {
			max = S.Shells[i].L
		}
	}
	return max
}

//Periodic returns true if the system has a cell.
func (S *System) Periodic() bool {
	return S.Cell != nil
}

//ecpFor returns the ECP table for the ith atom, trying the full label
//first and the bare symbol second, or nil if the atom has none.
func (S *System) ecpFor(i int) *ECPTable {
	if S.ECP == nil {
		return nil
	}
	if t, ok := S.ECP[S.Atoms[i].Label]; ok {
		return t
	}
	return S.ECP[S.Atoms[i].Symbol]
}

//Copy returns a deep copy of the system.
func (S *System) Copy() *System {
	N := new(System)
	N.Atoms = make([]Atom, len(S.Atoms))
	copy(N.Atoms, S.Atoms)
	if S.Cell != nil {
		c := *S.Cell
		N.Cell = &c
	}
	N.Alpha = S.Alpha
	N.Beta = S.Beta
	N.Cart = S.Cart
	N.PointGroup = S.PointGroup
	N.Shells = make([]Shell, len(S.Shells))
	for i, sh := range S.Shells {
		n := sh
		n.Exps = append([]float64{}, sh.Exps...)
		n.Coeffs = make([][]float64, len(sh.Coeffs))
		for j, col := range sh.Coeffs {
			n.Coeffs[j] = append([]float64{}, col...)
		}
		N.Shells[i] = n
	}
	if S.ECP != nil {
		N.ECP = make(map[string]*ECPTable, len(S.ECP))
		for k, v := range S.ECP {
			t := &ECPTable{ZCore: v.ZCore}
			t.Terms = append([]ECPTerm{}, v.Terms...)
			N.ECP[k] = t
		}
	}
	if S.Pseudo != nil {
		N.Pseudo = make(map[string]string, len(S.Pseudo))
		for k, v := range S.Pseudo {
			N.Pseudo[k] = v
		}
	}
	return N
}

//String returns a short human-readable description of the system.
func (S *System) String() string {
	kind := "open"
	if S.Periodic() {
		kind = "periodic"
	}
	orbs := "spherical"
	if S.Cart {
		orbs = "cartesian"
	}
	return fmt.Sprintf("%s system, %d atoms, %d shells, %d %s AOs", kind, len(S.Atoms), len(S.Shells), S.NAO(), orbs)
}
