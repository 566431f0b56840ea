/*
 * moplot_test.go, part of gotrex.
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

package moplot

import (
	"os"
	"path/filepath"
	"testing"

	trex "github.com/rmera/gotrex"
)

func TestLevelDiagram(Te *testing.T) {
	w := &trex.Wavefunction{
		Restricted: true,
		//a degenerate pair in the middle, to exercise the sideways spread
		MOEnergies:    []float64{-20.24, -1.27, -0.62, -0.62, -0.49, 0.16, 0.27},
		MOOccupations: []float64{2, 2, 2, 2, 2, 0, 0},
	}
	name := filepath.Join(Te.TempDir(), "levels")
	if err := LevelDiagram(w, "water sto-3g", name); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(name + ".png")
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Error("an empty plot was written")
	}
}

func TestLevelDiagramBadInput(Te *testing.T) {
	if err := LevelDiagram(nil, "", "nope"); err == nil {
		Te.Error("a nil wavefunction plotted")
	}
	w := &trex.Wavefunction{MOEnergies: []float64{1, 2}, MOOccupations: []float64{2}}
	if err := LevelDiagram(w, "", "nope"); err == nil {
		Te.Error("mismatched energies and occupations plotted")
	}
}

func TestSlots(Te *testing.T) {
	slot, size := slots([]float64{-1, -0.5, -0.5, -0.5, 2}, 1e-5)
	wantSlot := []int{0, 0, 1, 2, 0}
	wantSize := []int{1, 3, 3, 3, 1}
	for i := range slot {
		if slot[i] != wantSlot[i] || size[i] != wantSize[i] {
			Te.Fatalf("slots gave %v/%v, want %v/%v", slot, size, wantSlot, wantSize)
		}
	}
}
