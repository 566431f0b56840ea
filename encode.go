/*
 * encode.go, part of gotrex.
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

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gotrex/tio"
)

//Export writes obj, a *System or a *Wavefunction, to the container file
//name under the given backend ("text" or "zstd"; empty means zstd). The
//file is opened in update mode, so exporting into an existing container
//adds to it. On failure nothing reaches the disk: a fresh file is not
//created and an existing one keeps its previous contents. The set of
//convertible types is closed; anything else fails with an
//UnknownInputType error.
func Export(obj interface{}, name, backend string) error {
	f, err := tio.Open(name, "u", backend)
	if err != nil {
		return err
	}
	switch o := obj.(type) {
	case *System:
		err = writeSystem(f, o)
	case *Wavefunction:
		err = writeWavefunction(f, o)
	default:
		err = CError{fmt.Sprintf("no conversion for %T", obj), UnknownInputType, []string{"Export"}}
	}
	if err != nil {
		//nothing may reach the disk on failure, so the buffered
		//attributes are dropped rather than flushed.
		f.Abort()
		return errDecorate(err, "Export")
	}
	return f.Close()
}

func writeSystem(f *tio.File, s *System) error {
	//metadata
	f.WriteInt("metadata_code_num", 1)
	f.WriteStrs("metadata_code", []string{"goTrex-v" + Version})

	//nuclei
	natm := len(s.Atoms)
	charges := make([]float64, natm)
	coords := make([]float64, 0, 3*natm)
	labels := make([]string, natm)
	for i, a := range s.Atoms {
		charges[i] = a.Charge
		coords = append(coords, a.Coords[0], a.Coords[1], a.Coords[2])
		labels[i] = a.Symbol
	}
	f.WriteInt("nucleus_num", natm)
	f.WriteFloats("nucleus_charge", charges)
	f.WriteFloats("nucleus_coord", coords)
	f.WriteStrs("nucleus_label", labels)
	if s.PointGroup != "" {
		f.WriteStr("nucleus_point_group", s.PointGroup)
	}

	//cell and periodicity. Cells come in Angstrom from the host and
	//are stored in Bohr like every other length.
	if s.Periodic() {
		f.WriteInt("pbc_periodic", 1)
		f.WriteFloats("cell_a", scale3(s.Cell.A, A2Bohr))
		f.WriteFloats("cell_b", scale3(s.Cell.B, A2Bohr))
		f.WriteFloats("cell_c", scale3(s.Cell.C, A2Bohr))
	} else {
		f.WriteInt("pbc_periodic", 0)
	}

	//electrons
	f.WriteInt("electron_num", s.Alpha+s.Beta)
	f.WriteInt("electron_up_num", s.Alpha)
	f.WriteInt("electron_dn_num", s.Beta)

	//basis
	if len(s.Pseudo) > 0 {
		return CError{"the file format has no 'pseudo' pseudopotential group, only ECPs can be stored", UnsupportedFeature, []string{"writeSystem"}}
	}
	fb, err := flattenBasis(s)
	if err != nil {
		return errDecorate(err, "writeSystem")
	}
	f.WriteStr("basis_type", "Gaussian")
	f.WriteInt("basis_shell_num", len(s.Shells))
	f.WriteInt("basis_prim_num", len(fb.exps))
	f.WriteInts("basis_nucleus_index", fb.nucleusIndex)
	f.WriteInts("basis_shell_ang_mom", fb.angMom)
	f.WriteFloats("basis_shell_factor", fb.shellFactor)
	f.WriteInts("basis_shell_index", fb.shellIndex)
	f.WriteFloats("basis_exponent", fb.exps)
	f.WriteFloats("basis_coefficient", fb.coeffs)
	f.WriteFloats("basis_prim_factor", fb.primFactor)

	//effective core potentials
	if fe := flattenECP(s); fe != nil {
		f.WriteInt("ecp_num", fe.num)
		f.WriteInts("ecp_max_ang_mom_plus_1", fe.maxAngMomP1)
		f.WriteInts("ecp_z_core", fe.zCore)
		f.WriteInts("ecp_nucleus_index", fe.nucleusIndex)
		f.WriteInts("ecp_ang_mom", fe.angMom)
		f.WriteFloats("ecp_coefficient", fe.coeffs)
		f.WriteFloats("ecp_exponent", fe.exps)
		f.WriteInts("ecp_power", fe.power)
	}

	//atomic-orbital bookkeeping
	cart := 0
	if s.Cart {
		cart = 1
	}
	aoshell, aonorm := aoBookkeeping(s)
	f.WriteInt("ao_cartesian", cart)
	f.WriteInt("ao_num", s.NAO())
	f.WriteInts("ao_shell", aoshell)
	f.WriteFloats("ao_normalization", aonorm)
	return nil
}

func writeWavefunction(f *tio.File, w *Wavefunction) error {
	if err := writeSystem(f, w.System); err != nil {
		return err
	}
	if w.Periodic() {
		if len(w.KPoints) > 1 {
			return notImplemented("twisted-average (multiple k-point) export", "writeWavefunction")
		}
		if !w.Gamma() {
			return notImplemented("complex (non-gamma) wavefunction export", "writeWavefunction")
		}
		k := [3]float64{}
		if len(w.KPoints) == 1 {
			k = w.KPoints[0]
		}
		f.WriteInt("pbc_k_point_num", 1)
		f.WriteFloats("pbc_k_point", k[:])
		f.WriteFloats("pbc_k_point_weight", []float64{1.0})
	}

	nao := w.NAO()
	nmo := w.NMO()
	if len(w.MOEnergies) != nmo || len(w.MOOccupations) != nmo {
		return CError{fmt.Sprintf("%d orbital energies and %d occupations for %d orbitals", len(w.MOEnergies), len(w.MOOccupations), nmo), PreconditionViolation, []string{"writeWavefunction"}}
	}
	motype := "RHF"
	C := w.C
	if !w.Restricted {
		motype = "UHF"
		C = hstack(w.C, w.CBeta)
	}
	if r, _ := C.Dims(); r != nao {
		return CError{fmt.Sprintf("coefficient matrix has %d rows for %d atomic orbitals", r, nao), PreconditionViolation, []string{"writeWavefunction"}}
	}
	f.WriteStr("mo_type", motype)
	f.WriteInt("mo_num", nmo)
	//rows permuted into the stored AO order, then transposed so the file
	//is orbital-major.
	idx := aoOrder(w.System)
	raveled := make([]float64, 0, nao*nmo)
	for m := 0; m < nmo; m++ {
		for a := 0; a < nao; a++ {
			raveled = append(raveled, C.At(idx[a], m))
		}
	}
	f.WriteFloats("mo_coefficient", raveled)
	f.WriteFloats("mo_energy", w.MOEnergies)
	f.WriteFloats("mo_occupation", w.MOOccupations)
	f.WriteInts("mo_spin", w.Spins())
	return nil
}

func scale3(v [3]float64, s float64) []float64 {
	return []float64{v[0] * s, v[1] * s, v[2] * s}
}

//hstack pastes two matrices with the same row count side by side.
func hstack(a, b *mat.Dense) *mat.Dense {
	if b == nil {
		return a
	}
	r, ca := a.Dims()
	_, cb := b.Dims()
	out := mat.NewDense(r, ca+cb, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < ca; j++ {
			out.Set(i, j, a.At(i, j))
		}
		for j := 0; j < cb; j++ {
			out.Set(i, ca+j, b.At(i, j))
		}
	}
	return out
}
