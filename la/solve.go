// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Format selects which linear-solver path a Newton iteration uses (spec
// §4.4). Every path factors a dense matrix with gonum; there is no native
// sparse factorization. FormatAuto and FormatSparse use LU (with QR
// fallback) for square systems and QR (least squares) for rectangular
// systems; FormatDense always takes the LU path.
type Format int

const (
	FormatAuto Format = iota
	FormatSparse
	FormatDense
)

// denseSmallThreshold is the "N < 100" cutoff from spec §4.3/§4.4 for
// FormatAuto's small-square branch. Both square branches call the same
// dense LU routine (gonum's partial-pivoting mat.LU), so the cutoff does
// not change which factorization runs.
const denseSmallThreshold = 100

// singularCondThreshold: above this condition number, treat an LU
// factorization as catastrophically singular and fall back to QR. The
// teacher's sparse-LU backend (UMFPACK via cgo) signals singularity by
// panicking; gonum's mat.LU never panics, so we emulate the same "give up
// on LU, retry with QR" policy (spec §4.3 step 5, §9 "Sparse LU panic on
// singular matrices") by checking the reported condition number instead of
// recovering from a panic.
const singularCondThreshold = 1e14

// ErrSingular indicates that both the LU and QR fallback failed to produce
// a usable factorization.
var ErrSingular = errors.New("la: matrix is singular")

// Solution is the result of one linear solve: the correction vector, and
// which backend actually serviced the request (an LU solve may have fallen
// back to QR).
type Solution struct {
	X        []float64
	UsedQR   bool
	CondEst  float64
}

// Solve solves J*dx = rhs (square systems) or the least-squares problem
// min ||J*dx - rhs|| (rectangular systems), choosing a backend per format
// and the square/small-N rules of spec §4.4.
//
// a is the assembled Jacobian (already dense; callers densify the sparse
// cache once per iteration via SparseColMat.ToDense — see the DOMAIN
// STACK note in SPEC_FULL.md for why the symbolic sparse layer doesn't
// carry through to a native sparse factorization).
func Solve(a *Matrix, rhs []float64, format Format) (*Solution, error) {
	nrow, ncol := a.Dims()
	square := nrow == ncol

	switch format {
	case FormatDense:
		return solveDenseLU(a, rhs)
	case FormatSparse:
		if square {
			return solveSquareWithFallback(a, rhs)
		}
		return solveQR(a, rhs)
	default: // FormatAuto
		if square && ncol < denseSmallThreshold {
			return solveDenseLU(a, rhs)
		}
		if square {
			return solveSquareWithFallback(a, rhs)
		}
		return solveQR(a, rhs)
	}
}

func solveDenseLU(a *Matrix, rhs []float64) (*Solution, error) {
	var lu mat.LU
	lu.Factorize(a.Dense())
	cond := lu.Cond()
	if math.IsInf(cond, 1) || cond > singularCondThreshold {
		sol, err := solveQR(a, rhs)
		if err != nil {
			return nil, ErrSingular
		}
		sol.CondEst = cond
		return sol, nil
	}
	b := mat.NewVecDense(len(rhs), append([]float64(nil), rhs...))
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		sol, qerr := solveQR(a, rhs)
		if qerr != nil {
			return nil, ErrSingular
		}
		sol.CondEst = cond
		return sol, nil
	}
	return &Solution{X: denseVecToSlice(&x), UsedQR: false, CondEst: cond}, nil
}

func solveSquareWithFallback(a *Matrix, rhs []float64) (*Solution, error) {
	return solveDenseLU(a, rhs)
}

func solveQR(a *Matrix, rhs []float64) (*Solution, error) {
	var qr mat.QR
	qr.Factorize(a.Dense())
	b := mat.NewVecDense(len(rhs), append([]float64(nil), rhs...))
	ncol := a.Dense().RawMatrix().Cols
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return nil, ErrSingular
	}
	out := denseVecToSlice(&x)
	if len(out) > ncol {
		out = out[:ncol]
	}
	return &Solution{X: out, UsedQR: true}, nil
}

func denseVecToSlice(v *mat.VecDense) []float64 {
	n := v.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}
