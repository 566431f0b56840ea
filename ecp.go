/*
 * ecp.go, part of gotrex.
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

//Effective core potentials are encode-only: there is no path back from
//the flat arrays to an ECPTable, and the decoder refuses files that
//carry them (see ReadSystem).

//flatECP is the columnar form of the ECPs of a whole system.
type flatECP struct {
	num          int
	maxAngMomP1  []int //per nucleus with an ECP
	zCore        []int
	nucleusIndex []int //per term
	angMom       []int
	power        []int
	exps         []float64
	coeffs       []float64
}

//one inert term: zero coefficient, unit exponent, zero power. Used for
//ghost centers and for tables with no explicit non-local channel, so
//that no nucleus ends up with an empty channel list.
func (f *flatECP) placeholder(nuc int) {
	f.num++
	f.nucleusIndex = append(f.nucleusIndex, nuc)
	f.angMom = append(f.angMom, 0)
	f.coeffs = append(f.coeffs, 0.0)
	f.exps = append(f.exps, 1.0)
	f.power = append(f.power, 0)
}

//flattenECP expands the ECP tables of s into flat arrays. Nuclei with
//no table are skipped. Ghost centers always get a single inert
//placeholder term, whether or not a real table exists for their label.
//Terms on the local channel (L == -1) are re-mapped to one past the
//maximum explicit channel; radial powers are shifted by -2, the stored
//convention. Returns nil if no atom carries an ECP.
func flattenECP(s *System) *flatECP {
	if len(s.ECP) == 0 {
		return nil
	}
	f := new(flatECP)
	for i := range s.Atoms {
		if s.Atoms[i].Ghost() {
			f.maxAngMomP1 = append(f.maxAngMomP1, 1)
			f.zCore = append(f.zCore, 0)
			f.placeholder(i)
			continue
		}
		tab := s.ecpFor(i)
		if tab == nil {
			continue
		}
		f.zCore = append(f.zCore, tab.ZCore)
		maxl := -1
		for _, t := range tab.Terms {
			if t.L > maxl {
				maxl = t.L
			}
		}
		//tables holding only the local channel (H, He in most sets)
		//get a dummy s channel so the explicit-channel count is not zero.
		onlyLocal := maxl == -1
		if onlyLocal {
			maxl = 0
		}
		local := maxl + 1
		f.maxAngMomP1 = append(f.maxAngMomP1, local)
		for _, t := range tab.Terms {
			l := t.L
			if l == -1 {
				l = local
			}
			f.num++
			f.nucleusIndex = append(f.nucleusIndex, i)
			f.angMom = append(f.angMom, l)
			f.coeffs = append(f.coeffs, t.Coeff)
			f.exps = append(f.exps, t.Exp)
			f.power = append(f.power, t.Power-2)
		}
		if onlyLocal {
			f.placeholder(i)
		}
	}
	if f.num == 0 {
		return nil
	}
	return f
}
