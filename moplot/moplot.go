/*
 * moplot.go, part of gotrex.
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

//Package moplot draws orbital-energy level diagrams from wavefunctions
//read back from a container file.
package moplot

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	trex "github.com/rmera/gotrex"
)

func basicLevelPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Y.Label.Text = "Energy (Hartree)"
	p.X.Min = 0
	p.X.Max = 1
	//the x axis carries no information
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Add(plotter.NewGrid())
	return p
}

//level draws one horizontal segment at energy e. Degenerate (or nearly
//so) orbitals are spread sideways by slot so they stay distinguishable.
func level(p *plot.Plot, e float64, slot, nslots int, c color.Color) error {
	width := 0.8 / float64(nslots)
	x0 := 0.1 + float64(slot)*width
	l, err := plotter.NewLine(plotter.XYs{{X: x0 + 0.1*width, Y: e}, {X: x0 + 0.9*width, Y: e}})
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = c
	p.Add(l)
	return nil
}

//slots groups sorted energies closer than tol into clusters, returning
//for each level its slot within the cluster and the cluster size.
func slots(energies []float64, tol float64) ([]int, []int) {
	n := len(energies)
	slot := make([]int, n)
	size := make([]int, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && energies[j]-energies[i] < tol {
			j++
		}
		for k := i; k < j; k++ {
			slot[k] = k - i
			size[k] = j - i
		}
		i = j
	}
	return slot, size
}

//LevelDiagram plots the orbital energies of w as a level diagram, filled
//orbitals in blue and empty ones in red, and saves it to plotname (png,
//the extension is added here). Fractional occupations count as filled.
func LevelDiagram(w *trex.Wavefunction, title, plotname string) error {
	if w == nil || len(w.MOEnergies) == 0 {
		return fmt.Errorf("LevelDiagram: no orbital energies to plot")
	}
	if len(w.MOOccupations) != len(w.MOEnergies) {
		return fmt.Errorf("LevelDiagram: %d occupations for %d energies", len(w.MOOccupations), len(w.MOEnergies))
	}
	type lv struct {
		e   float64
		occ float64
	}
	levels := make([]lv, len(w.MOEnergies))
	for i, e := range w.MOEnergies {
		levels[i] = lv{e, w.MOOccupations[i]}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].e < levels[j].e })
	energies := make([]float64, len(levels))
	for i, l := range levels {
		energies[i] = l.e
	}
	slot, size := slots(energies, 1e-5)
	p := basicLevelPlot(title)
	filled := color.RGBA{B: 255, A: 255}
	empty := color.RGBA{R: 255, A: 255}
	for i, l := range levels {
		c := filled
		if l.occ == 0 {
			c = empty
		}
		if err := level(p, l.e, slot[i], size[i], c); err != nil {
			return err
		}
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(8*vg.Centimeter, 12*vg.Centimeter, filename)
}
