/*
 * doc.go, part of gotrex.
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
 * goTrex is developed as a companion to goChem
 * (https://github.com/rmera/gochem).
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package trex converts quantum-chemistry data (geometries, Gaussian
basis sets, effective core potentials, SCF orbitals and two-electron
integrals) to and from a columnar container file, for interchange with
other electronic-structure codes.


	**goTrex capabilities**

    Writes open and periodic systems: nuclei, cell, electron counts,
	segment-contracted Gaussian basis sets, in Cartesian or real
	solid-harmonic form, with the per-shell description expanded into
	the flat per-primitive arrays the container stores.

    Writes effective core potentials, including ghost centers and
	local-channel-only tables.

    Writes restricted and unrestricted single-determinant
	wavefunctions; periodic ones at the gamma point only.

    Writes two-electron integral tensors, dense or packed under 4-fold
	or 8-fold permutation symmetry, as explicit sparse lists, and reads
	them back.

    Reads systems and restricted wavefunctions back, undoing the
	orbital reordering, so a downstream calculation can proceed on the
	reconstructed objects.

Everything the format, or this library, does not cover (generalized
contractions, non-ECP pseudopotentials, ECPs on the way back in,
non-gamma k-points, unrestricted re-import) fails with a descriptive
error instead of being silently mangled.

The container itself lives in the tio subpackage; the qc subpackage
evaluates one-electron integrals over reconstructed systems.
*/
package trex
