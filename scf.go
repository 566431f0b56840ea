/*
 * scf.go, part of gotrex.
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
	"gonum.org/v1/gonum/mat"
)

//Wavefunction is a converged single-determinant SCF state on top of a
//System. Restricted wavefunctions have one spatial orbital set, C, shared
//by both spins. Unrestricted ones keep the beta set in CBeta; their
//orbital energies and occupations are stored concatenated, alpha block
//first. Coefficient matrices have one row per atomic orbital, in the
//host order documented on System, and one column per molecular orbital.
//
//Periodic wavefunctions carry their sampling points in KPoints, as
//fractional coordinates of the reciprocal cell. Only a single point at
//the origin (the gamma point, where the wavefunction can be taken real)
//can be written to a file.
type Wavefunction struct {
	*System
	Restricted    bool
	MOEnergies    []float64
	MOOccupations []float64
	C             *mat.Dense
	CBeta         *mat.Dense //nil for restricted wavefunctions
	KPoints       [][3]float64
}

//NMO returns the total number of molecular orbitals, counting alpha and
//beta sets separately for unrestricted wavefunctions.
func (W *Wavefunction) NMO() int {
	if W.C == nil {
		return 0
	}
	_, n := W.C.Dims()
	if !W.Restricted && W.CBeta != nil {
		_, nb := W.CBeta.Dims()
		n += nb
	}
	return n
}

//Spins returns the per-orbital spin tags, 0 for the alpha (or shared)
//block and 1 for the beta block, in the same concatenation order as
//MOEnergies.
func (W *Wavefunction) Spins() []int {
	spins := make([]int, W.NMO())
	if W.Restricted {
		return spins
	}
	_, na := W.C.Dims()
	for i := na; i < len(spins); i++ {
		spins[i] = 1
	}
	return spins
}

//Gamma returns true if the wavefunction either has no k-points or is
//sampled at a single point at the origin of the reciprocal cell.
func (W *Wavefunction) Gamma() bool {
	if len(W.KPoints) != 1 {
		return len(W.KPoints) == 0
	}
	k := W.KPoints[0]
	return k[0] == 0 && k[1] == 0 && k[2] == 0
}
