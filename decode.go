/*
 * decode.go, part of gotrex.
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
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gotrex/tio"
)

//ReadSystem reconstructs a System from the container file name. Atoms
//get synthetic per-instance labels (symbol plus position) so repeated
//elements stay individually addressable. Files carrying an effective
//core potential, or a non-Gaussian basis, are refused.
func ReadSystem(name, backend string) (*System, error) {
	f, err := tio.Open(name, "r", backend)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := readSystem(f)
	if err != nil {
		return nil, errDecorate(err, "ReadSystem")
	}
	return s, nil
}

func readSystem(f *tio.File) (*System, error) {
	bt, err := f.ReadStr("basis_type")
	if err != nil {
		return nil, err
	}
	if bt != "Gaussian" {
		return nil, CError{fmt.Sprintf("basis type %q: only Gaussian bases can be read", bt), UnsupportedFeature, []string{"readSystem"}}
	}
	if f.Has("ecp_z_core") || f.Has("ecp_num") {
		return nil, notImplemented("reading effective core potentials back", "readSystem")
	}
	labels, err := f.ReadStrs("nucleus_label")
	if err != nil {
		return nil, err
	}
	coords, err := f.ReadFloats("nucleus_coord")
	if err != nil {
		return nil, err
	}
	charges, err := f.ReadFloats("nucleus_charge")
	if err != nil {
		return nil, err
	}
	if len(coords) != 3*len(labels) || len(charges) != len(labels) {
		return nil, CError{fmt.Sprintf("%d labels, %d charges, %d coordinates", len(labels), len(charges), len(coords)), PreconditionViolation, []string{"readSystem"}}
	}
	s := new(System)
	s.Atoms = make([]Atom, len(labels))
	for i := range labels {
		s.Atoms[i] = Atom{
			Symbol: labels[i],
			Label:  labels[i] + strconv.Itoa(i),
			Charge: charges[i],
			Coords: [3]float64{coords[3*i], coords[3*i+1], coords[3*i+2]},
		}
	}
	if f.Has("ao_cartesian") {
		cart, err := f.ReadInt("ao_cartesian")
		if err != nil {
			return nil, err
		}
		s.Cart = cart == 1
	}
	if f.Has("nucleus_point_group") {
		if s.PointGroup, err = f.ReadStr("nucleus_point_group"); err != nil {
			return nil, err
		}
	}
	if f.Has("electron_up_num") {
		if s.Alpha, err = f.ReadInt("electron_up_num"); err != nil {
			return nil, err
		}
		if s.Beta, err = f.ReadInt("electron_dn_num"); err != nil {
			return nil, err
		}
	}
	if f.Has("pbc_periodic") {
		periodic, err := f.ReadInt("pbc_periodic")
		if err != nil {
			return nil, err
		}
		if periodic == 1 {
			s.Cell = new(Cell)
			for _, v := range []struct {
				attr string
				dst  *[3]float64
			}{{"cell_a", &s.Cell.A}, {"cell_b", &s.Cell.B}, {"cell_c", &s.Cell.C}} {
				vec, err := f.ReadFloats(v.attr)
				if err != nil {
					return nil, err
				}
				if len(vec) != 3 {
					return nil, CError{v.attr + " is not a 3-vector", PreconditionViolation, []string{"readSystem"}}
				}
				*v.dst = [3]float64{vec[0] * Bohr2A, vec[1] * Bohr2A, vec[2] * Bohr2A}
			}
		}
	}
	nucIdx, err := f.ReadInts("basis_nucleus_index")
	if err != nil {
		return nil, err
	}
	ls, err := f.ReadInts("basis_shell_ang_mom")
	if err != nil {
		return nil, err
	}
	prim2sh, err := f.ReadInts("basis_shell_index")
	if err != nil {
		return nil, err
	}
	exps, err := f.ReadFloats("basis_exponent")
	if err != nil {
		return nil, err
	}
	coeffs, err := f.ReadFloats("basis_coefficient")
	if err != nil {
		return nil, err
	}
	var factors []float64
	if f.Has("basis_shell_factor") {
		if factors, err = f.ReadFloats("basis_shell_factor"); err != nil {
			return nil, err
		}
	}
	s.Shells, err = gatherShells(nucIdx, ls, prim2sh, exps, coeffs, factors)
	if err != nil {
		return nil, err
	}
	return s, nil
}

//ReadWavefunction reconstructs a restricted wavefunction, and the system
//under it, from the container file name. Only the restricted case can be
//read, and only with as many molecular orbitals as atomic ones; the
//orbital coefficients are put back into the host atomic-orbital order.
func ReadWavefunction(name, backend string) (*Wavefunction, error) {
	s, err := ReadSystem(name, backend)
	if err != nil {
		return nil, errDecorate(err, "ReadWavefunction")
	}
	f, err := tio.Open(name, "r", backend)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	motype, err := f.ReadStr("mo_type")
	if err != nil {
		return nil, errDecorate(err, "ReadWavefunction")
	}
	if motype != "RHF" {
		return nil, notImplemented("reading "+motype+" (unrestricted) wavefunctions back", "ReadWavefunction")
	}
	nao := s.NAO()
	nmo, err := f.ReadInt("mo_num")
	if err != nil {
		return nil, errDecorate(err, "ReadWavefunction")
	}
	if nmo != nao {
		return nil, CError{fmt.Sprintf("stored coefficient matrix is %dx%d: only square (complete-basis) matrices can be read back", nao, nmo), UnsupportedFeature, []string{"ReadWavefunction"}}
	}
	raveled, err := f.ReadFloats("mo_coefficient")
	if err != nil {
		return nil, errDecorate(err, "ReadWavefunction")
	}
	if len(raveled) != nao*nmo {
		return nil, CError{fmt.Sprintf("%d coefficients for a %dx%d matrix", len(raveled), nao, nmo), PreconditionViolation, []string{"ReadWavefunction"}}
	}
	w := &Wavefunction{System: s, Restricted: true}
	//the inverse of the export permutation: stored row a belongs at
	//host row idx[a].
	idx := aoOrder(s)
	w.C = mat.NewDense(nao, nmo, nil)
	for m := 0; m < nmo; m++ {
		for a := 0; a < nao; a++ {
			w.C.Set(idx[a], m, raveled[m*nao+a])
		}
	}
	if w.MOEnergies, err = f.ReadFloats("mo_energy"); err != nil {
		return nil, errDecorate(err, "ReadWavefunction")
	}
	if w.MOOccupations, err = f.ReadFloats("mo_occupation"); err != nil {
		return nil, errDecorate(err, "ReadWavefunction")
	}
	if f.Has("pbc_k_point") {
		k, err := f.ReadFloats("pbc_k_point")
		if err != nil {
			return nil, errDecorate(err, "ReadWavefunction")
		}
		if len(k) == 3 {
			w.KPoints = [][3]float64{{k[0], k[1], k[2]}}
		}
	}
	return w, nil
}
