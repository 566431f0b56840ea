/*
 * qc.go, part of gotrex.
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

//Package qc evaluates one-electron integrals (overlap, kinetic energy,
//nuclear attraction) over the Cartesian Gaussian basis of a trex.System,
//by the McMurchie-Davidson scheme. It is the downstream consumer used to
//check that a system read back from a file behaves like the original.
package qc

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"

	trex "github.com/rmera/gotrex"
)

//a contracted Cartesian Gaussian: exponent tuple, center and primitives,
//with the radial normalization folded into each coefficient.
type cgf struct {
	l      [3]int
	center [3]float64
	exps   []float64
	coeffs []float64
}

//cartBasis expands the shells of s into one contracted function per
//Cartesian component, x-major within each shell (xx, xy, xz, yy, ...).
func cartBasis(s *trex.System) ([]cgf, error) {
	if !s.Cart {
		return nil, Error{"only Cartesian bases can be evaluated", nil}
	}
	var funs []cgf
	for _, sh := range s.Shells {
		at := s.Atoms[sh.Atom]
		for _, col := range sh.Coeffs {
			coeffs := make([]float64, len(sh.Exps))
			for p, e := range sh.Exps {
				coeffs[p] = col[p] * trex.GTONorm(sh.L, e)
			}
			for lx := sh.L; lx >= 0; lx-- {
				for ly := sh.L - lx; ly >= 0; ly-- {
					lz := sh.L - lx - ly
					funs = append(funs, cgf{
						l:      [3]int{lx, ly, lz},
						center: at.Coords,
						exps:   sh.Exps,
						coeffs: coeffs,
					})
				}
			}
		}
	}
	return funs, nil
}

//Overlap returns the overlap matrix over the Cartesian atomic orbitals
//of s.
func Overlap(s *trex.System) (*mat.SymDense, error) {
	return oneElectron(s, primOverlap)
}

//Kinetic returns the kinetic-energy matrix.
func Kinetic(s *trex.System) (*mat.SymDense, error) {
	return oneElectron(s, primKinetic)
}

//NuclearAttraction returns the nuclear-attraction matrix, summed over
//every charged nucleus of s.
func NuclearAttraction(s *trex.System) (*mat.SymDense, error) {
	prim := func(a float64, la [3]int, A [3]float64, b float64, lb [3]int, B [3]float64) float64 {
		v := 0.0
		for i := range s.Atoms {
			if s.Atoms[i].Charge == 0 {
				continue
			}
			v -= s.Atoms[i].Charge * primNuclear(a, la, A, b, lb, B, s.Atoms[i].Coords)
		}
		return v
	}
	return oneElectron(s, prim)
}

type primOp func(a float64, la [3]int, A [3]float64, b float64, lb [3]int, B [3]float64) float64

func oneElectron(s *trex.System, prim primOp) (*mat.SymDense, error) {
	funs, err := cartBasis(s)
	if err != nil {
		return nil, err
	}
	n := len(funs)
	M := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.0
			fi, fj := &funs[i], &funs[j]
			for p, ap := range fi.exps {
				for q, aq := range fj.exps {
					v += fi.coeffs[p] * fj.coeffs[q] * prim(ap, fi.l, fi.center, aq, fj.l, fj.center)
				}
			}
			M.SetSym(i, j, v)
		}
	}
	return M, nil
}

//hermE is the Hermite expansion coefficient E_t^{ij} of the product of
//two 1D Gaussians with exponents a, b separated by Q = Ax - Bx.
func hermE(i, j, t int, Q, a, b float64) float64 {
	p := a + b
	q := a * b / p
	if t < 0 || t > i+j {
		return 0
	}
	if i == 0 && j == 0 {
		return math.Exp(-q * Q * Q)
	}
	if i > 0 {
		return hermE(i-1, j, t-1, Q, a, b)/(2*p) -
			q*Q/a*hermE(i-1, j, t, Q, a, b) +
			float64(t+1)*hermE(i-1, j, t+1, Q, a, b)
	}
	return hermE(i, j-1, t-1, Q, a, b)/(2*p) +
		q*Q/b*hermE(i, j-1, t, Q, a, b) +
		float64(t+1)*hermE(i, j-1, t+1, Q, a, b)
}

func primOverlap(a float64, la [3]int, A [3]float64, b float64, lb [3]int, B [3]float64) float64 {
	p := a + b
	s := math.Pow(math.Pi/p, 1.5)
	for x := 0; x < 3; x++ {
		s *= hermE(la[x], lb[x], 0, A[x]-B[x], a, b)
	}
	return s
}

func primKinetic(a float64, la [3]int, A [3]float64, b float64, lb [3]int, B [3]float64) float64 {
	shift := func(d [3]int) float64 {
		l := [3]int{lb[0] + d[0], lb[1] + d[1], lb[2] + d[2]}
		return primOverlap(a, la, A, b, l, B)
	}
	l, m, n := lb[0], lb[1], lb[2]
	t := b * float64(2*(l+m+n)+3) * primOverlap(a, la, A, b, lb, B)
	t -= 2 * b * b * (shift([3]int{2, 0, 0}) + shift([3]int{0, 2, 0}) + shift([3]int{0, 0, 2}))
	if l > 1 {
		t -= 0.5 * float64(l*(l-1)) * shift([3]int{-2, 0, 0})
	}
	if m > 1 {
		t -= 0.5 * float64(m*(m-1)) * shift([3]int{0, -2, 0})
	}
	if n > 1 {
		t -= 0.5 * float64(n*(n-1)) * shift([3]int{0, 0, -2})
	}
	return t
}

//boys is the Boys function F_n(x), through the regularized lower
//incomplete gamma function.
func boys(n int, x float64) float64 {
	if x < 1e-13 {
		return 1 / float64(2*n+1)
	}
	a := float64(n) + 0.5
	return mathext.GammaIncReg(a, x) * math.Gamma(a) / (2 * math.Pow(x, a))
}

//hermCoulomb is the Hermite Coulomb integral R^n_{tuv} at total exponent
//p and separation PC between the Gaussian product center and the nucleus.
func hermCoulomb(t, u, v, n int, p float64, PC [3]float64) float64 {
	if t < 0 || u < 0 || v < 0 {
		return 0
	}
	if t == 0 && u == 0 && v == 0 {
		r2 := PC[0]*PC[0] + PC[1]*PC[1] + PC[2]*PC[2]
		return math.Pow(-2*p, float64(n)) * boys(n, p*r2)
	}
	if t > 0 {
		return float64(t-1)*hermCoulomb(t-2, u, v, n+1, p, PC) + PC[0]*hermCoulomb(t-1, u, v, n+1, p, PC)
	}
	if u > 0 {
		return float64(u-1)*hermCoulomb(t, u-2, v, n+1, p, PC) + PC[1]*hermCoulomb(t, u-1, v, n+1, p, PC)
	}
	return float64(v-1)*hermCoulomb(t, u, v-2, n+1, p, PC) + PC[2]*hermCoulomb(t, u, v-1, n+1, p, PC)
}

//primNuclear is the attraction integral of a primitive pair to a unit
//charge at C.
func primNuclear(a float64, la [3]int, A [3]float64, b float64, lb [3]int, B [3]float64, C [3]float64) float64 {
	p := a + b
	var P, PC [3]float64
	for x := 0; x < 3; x++ {
		P[x] = (a*A[x] + b*B[x]) / p
		PC[x] = P[x] - C[x]
	}
	s := 0.0
	for t := 0; t <= la[0]+lb[0]; t++ {
		et := hermE(la[0], lb[0], t, A[0]-B[0], a, b)
		for u := 0; u <= la[1]+lb[1]; u++ {
			eu := hermE(la[1], lb[1], u, A[1]-B[1], a, b)
			for v := 0; v <= la[2]+lb[2]; v++ {
				ev := hermE(la[2], lb[2], v, A[2]-B[2], a, b)
				s += et * eu * ev * hermCoulomb(t, u, v, 0, p, PC)
			}
		}
	}
	return 2 * math.Pi / p * s
}

//Errors

//Error is the error type of the qc package. It fulfills trex.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
