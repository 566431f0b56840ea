/*
 * trex_test.go, part of gotrex.
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
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/gotrex/tio"
)

func TestSystemRoundTrip(Te *testing.T) {
	for _, backend := range []string{"text", "zstd"} {
		name := filepath.Join(Te.TempDir(), "water."+backend)
		s := testSystem(false)
		s.PointGroup = "C2v"
		s.Shells[0].Factor = 2.5
		if err := Export(s, name, backend); err != nil {
			Te.Fatal(err)
		}
		back, err := ReadSystem(name, backend)
		if err != nil {
			Te.Fatal(err)
		}
		if back.Len() != s.Len() || back.NAO() != s.NAO() || back.NPrim() != s.NPrim() {
			Te.Fatalf("%s: read back %v, wrote %v", backend, back, s)
		}
		if back.Cart || back.Alpha != 5 || back.Beta != 5 || back.PointGroup != "C2v" {
			Te.Errorf("%s: flags lost: cart=%v alpha=%d beta=%d group=%q", backend, back.Cart, back.Alpha, back.Beta, back.PointGroup)
		}
		for i := range s.Atoms {
			if back.Atoms[i].Symbol != s.Atoms[i].Symbol || back.Atoms[i].Charge != s.Atoms[i].Charge {
				Te.Errorf("atom %d read back as %+v", i, back.Atoms[i])
			}
			for x := 0; x < 3; x++ {
				if back.Atoms[i].Coords[x] != s.Atoms[i].Coords[x] {
					Te.Errorf("atom %d coordinates moved", i)
				}
			}
		}
		//re-read atoms carry synthetic labels
		if back.Atoms[0].Label != "O0" || back.Atoms[1].Label != "H1" {
			Te.Errorf("labels %q %q", back.Atoms[0].Label, back.Atoms[1].Label)
		}
		for i := range s.Shells {
			if back.Shells[i].L != s.Shells[i].L || back.Shells[i].Atom != s.Shells[i].Atom {
				Te.Errorf("shell %d read back as l=%d on atom %d", i, back.Shells[i].L, back.Shells[i].Atom)
			}
			if back.Shells[i].Factor != s.Shells[i].Factor {
				Te.Errorf("shell %d factor became %v, was %v", i, back.Shells[i].Factor, s.Shells[i].Factor)
			}
		}
	}
}

func TestPeriodicRoundTrip(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "crystal.gtx")
	s := testSystem(true)
	s.Cell = &Cell{A: [3]float64{4.2, 0, 0}, B: [3]float64{0, 4.2, 0}, C: [3]float64{0, 0, 4.2}}
	if err := Export(s, name, ""); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadSystem(name, "")
	if err != nil {
		Te.Fatal(err)
	}
	if !back.Periodic() {
		Te.Fatal("periodicity lost")
	}
	//cells go to the file in Bohr and come back in Angstrom
	for x := 0; x < 3; x++ {
		if math.Abs(back.Cell.A[x]-s.Cell.A[x]) > 1e-12 ||
			math.Abs(back.Cell.B[x]-s.Cell.B[x]) > 1e-12 ||
			math.Abs(back.Cell.C[x]-s.Cell.C[x]) > 1e-12 {
			Te.Fatalf("cell read back as %v", *back.Cell)
		}
	}
}

func testWavefunction(cart bool) *Wavefunction {
	s := testSystem(cart)
	n := s.NAO()
	w := &Wavefunction{System: s, Restricted: true}
	w.C = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w.C.Set(i, j, float64(i+1)+0.01*float64(j+1))
		}
	}
	w.MOEnergies = make([]float64, n)
	w.MOOccupations = make([]float64, n)
	for i := 0; i < n; i++ {
		w.MOEnergies[i] = -2.0 + 0.5*float64(i)
		if i < (s.Alpha+s.Beta)/2 {
			w.MOOccupations[i] = 2
		}
	}
	return w
}

func TestWavefunctionRoundTrip(Te *testing.T) {
	for _, cart := range []bool{true, false} {
		name := filepath.Join(Te.TempDir(), "scf.gtx")
		w := testWavefunction(cart)
		if err := Export(w, name, ""); err != nil {
			Te.Fatal(err)
		}
		back, err := ReadWavefunction(name, "")
		if err != nil {
			Te.Fatal(err)
		}
		if !back.Restricted || back.NMO() != w.NMO() {
			Te.Fatalf("cart=%v: read back %d orbitals, restricted=%v", cart, back.NMO(), back.Restricted)
		}
		//the reordering on the way out must be exactly undone on the way in
		n := w.NAO()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if math.Abs(back.C.At(i, j)-w.C.At(i, j)) > 1e-14 {
					Te.Fatalf("cart=%v: coefficient (%d,%d) became %v, was %v", cart, i, j, back.C.At(i, j), w.C.At(i, j))
				}
			}
		}
		if !floats.EqualApprox(back.MOEnergies, w.MOEnergies, 1e-14) ||
			!floats.EqualApprox(back.MOOccupations, w.MOOccupations, 1e-14) {
			Te.Fatalf("cart=%v: orbital energies or occupations moved", cart)
		}
	}
}

func TestUnrestrictedExportOnly(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "uhf.gtx")
	w := testWavefunction(false)
	w.Restricted = false
	w.CBeta = mat.DenseCopyOf(w.C)
	n := w.NAO()
	w.MOEnergies = append(w.MOEnergies, w.MOEnergies...)
	w.MOOccupations = make([]float64, 2*n)
	for i := 0; i < w.Alpha; i++ {
		w.MOOccupations[i] = 1
	}
	for i := 0; i < w.Beta; i++ {
		w.MOOccupations[n+i] = 1
	}
	if err := Export(w, name, ""); err != nil {
		Te.Fatal(err)
	}
	_, err := ReadWavefunction(name, "")
	if err == nil {
		Te.Fatal("an unrestricted wavefunction read back")
	}
	if cerr, ok := err.(CError); !ok || cerr.Kind() != UnsupportedFeature {
		Te.Errorf("wrong failure kind: %v", err)
	}
	//spin tags: alpha block zeros, beta block ones
	spins := w.Spins()
	if len(spins) != 2*n || spins[0] != 0 || spins[n] != 1 {
		Te.Errorf("spin tags %v", spins)
	}
}

func TestECPExportOnly(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "ecp.gtx")
	s := testSystem(false)
	s.ECP = map[string]*ECPTable{
		"O": {ZCore: 2, Terms: []ECPTerm{{L: -1, Power: 2, Exp: 1.5, Coeff: -3.0}}},
	}
	if err := Export(s, name, ""); err != nil {
		Te.Fatal(err)
	}
	f, err := tio.Open(name, "r", "")
	if err != nil {
		Te.Fatal(err)
	}
	if !f.Has("ecp_num") || !f.Has("ecp_z_core") || !f.Has("ecp_max_ang_mom_plus_1") {
		Te.Error("the exported file carries no ecp attributes")
	}
	f.Close()
	_, err = ReadSystem(name, "")
	if err == nil {
		Te.Fatal("a file carrying ECPs read back")
	}
	if cerr, ok := err.(CError); !ok || cerr.Kind() != UnsupportedFeature {
		Te.Errorf("wrong failure kind: %v", err)
	}
}

func TestExportRefusals(Te *testing.T) {
	dir := Te.TempDir()
	err := Export(42, filepath.Join(dir, "int.gtx"), "")
	if err == nil {
		Te.Fatal("an int exported")
	}
	if cerr, ok := err.(CError); !ok || cerr.Kind() != UnknownInputType {
		Te.Errorf("wrong failure kind for an int: %v", err)
	}
	s := testSystem(false)
	s.Pseudo = map[string]string{"O": "gth-pade"}
	err = Export(s, filepath.Join(dir, "pseudo.gtx"), "")
	if err == nil {
		Te.Fatal("a non-ECP pseudopotential exported")
	}
	if cerr, ok := err.(CError); !ok || cerr.Kind() != UnsupportedFeature {
		Te.Errorf("wrong failure kind for a pseudopotential: %v", err)
	}
	w := testWavefunction(false)
	w.Cell = &Cell{A: [3]float64{4, 0, 0}, B: [3]float64{0, 4, 0}, C: [3]float64{0, 0, 4}}
	w.KPoints = [][3]float64{{0.25, 0, 0}}
	err = Export(w, filepath.Join(dir, "twisted.gtx"), "")
	if err == nil {
		Te.Fatal("a non-gamma wavefunction exported")
	}
	if cerr, ok := err.(CError); !ok || cerr.Kind() != UnsupportedFeature {
		Te.Errorf("wrong failure kind for a non-gamma point: %v", err)
	}
	//a failed export may not leave a file behind, not even a partial one
	for _, f := range []string{"int.gtx", "pseudo.gtx", "twisted.gtx"} {
		if _, err := os.Stat(filepath.Join(dir, f)); !os.IsNotExist(err) {
			Te.Errorf("a failed export left %s behind", f)
		}
	}
}

//a failed export into an existing container must leave it exactly as it
//was, not half-overwritten.
func TestFailedExportKeepsFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "water.gtx")
	if err := Export(testSystem(false), name, ""); err != nil {
		Te.Fatal(err)
	}
	bad := testSystem(false)
	bad.Pseudo = map[string]string{"O": "gth-pade"}
	if err := Export(bad, name, ""); err == nil {
		Te.Fatal("a non-ECP pseudopotential exported")
	}
	back, err := ReadSystem(name, "")
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != 3 || len(back.Shells) != 4 {
		Te.Errorf("previous contents damaged: %v", back)
	}
}

func TestGammaExport(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "gamma.gtx")
	w := testWavefunction(false)
	w.Cell = &Cell{A: [3]float64{4, 0, 0}, B: [3]float64{0, 4, 0}, C: [3]float64{0, 0, 4}}
	w.KPoints = [][3]float64{{0, 0, 0}}
	if err := Export(w, name, ""); err != nil {
		Te.Fatal(err)
	}
	back, err := ReadWavefunction(name, "")
	if err != nil {
		Te.Fatal(err)
	}
	if len(back.KPoints) != 1 || !back.Gamma() {
		Te.Errorf("k-points read back as %v", back.KPoints)
	}
}

func TestGoMatrixBridge(Te *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	back := GoMatrix2Gonum(Gonum2GoMatrix(d))
	if !mat.Equal(d, back) {
		Te.Errorf("matrix came back as %v", mat.Formatted(back))
	}
}

func TestSystemCopy(Te *testing.T) {
	s := testSystem(false)
	s.ECP = map[string]*ECPTable{
		"O": {ZCore: 2, Terms: []ECPTerm{{L: 0, Power: 2, Exp: 1, Coeff: 1}}},
	}
	c := s.Copy()
	c.Atoms[0].Charge = 99
	c.Shells[0].Exps[0] = 99
	c.ECP["O"].ZCore = 99
	if s.Atoms[0].Charge == 99 || s.Shells[0].Exps[0] == 99 || s.ECP["O"].ZCore == 99 {
		Te.Error("Copy shares storage with the original")
	}
}
