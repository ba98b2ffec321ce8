// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/dicksontsai/sketchsolve/la"
	"github.com/dicksontsai/sketchsolve/utl"
)

// solveLinear dispatches to la.Solve with the model's configured format.
func solveLinear(dense *la.Matrix, rhs []float64, m *Model) ([]float64, error) {
	sol, err := la.Solve(dense, rhs, m.cfg.Format)
	if err != nil {
		return nil, err
	}
	return sol.X, nil
}

// runNewton executes the damped Gauss-Newton iteration of spec §4.3 against
// an already-constructed Model, adapted from the teacher's num.NlSolver
// iteration body (evaluate f, refresh Jacobian, adaptive damping via
// cteJac-style growth/shrink, backtracking line search on divergence).
func (m *Model) runNewton(x0 []float64) ([]float64, int, error) {
	n := m.lay.NumVars()
	mRows := m.sym.NRow

	x := append([]float64(nil), x0...)
	f := make([]float64, mRows)
	trialX := make([]float64, n)
	trialF := make([]float64, mRows)
	grad := make([]float64, n)

	fPrev := math.Inf(1)
	lambda := m.cfg.InitialDamping

	for k := 0; k < m.cfg.MaxIterations; k++ {
		m.evalResidual(x, f)
		normF := m.residualNorm(f)

		if normF < m.cfg.ConvergenceTolerance {
			return x, k, nil
		}

		if m.cfg.Cancel != nil && m.cfg.Cancel(k) {
			return nil, k, &Cancelled{Iteration: k}
		}

		m.refreshJacobian(x)
		dense := m.cache.ToDense()
		rhs := make([]float64, mRows)
		for i := range f {
			rhs[i] = -f[i]
		}
		sol, serr := solveLinear(dense, rhs, m)
		if serr != nil {
			return nil, k, &SingularMatrix{Iteration: k}
		}
		dx := sol[:n]

		stepNorm := la.Norm2Of(dx) / (la.Norm2Of(x) + m.cfg.StepTolerance)
		m.cache.TransposeVecMul(grad, f)
		gradNorm := la.NormInf(grad)

		if stepNorm < m.cfg.StepTolerance || gradNorm < m.cfg.GradTolerance {
			addStep(x, x, dx, 1.0)
			return x, k + 1, nil
		}

		if m.cfg.Adaptive {
			if normF < fPrev {
				lambda = utl.Min(lambda*m.cfg.GrowFactor, m.cfg.MaxDamping)
			} else {
				lambda = utl.Max(lambda*m.cfg.ShrinkFactor, m.cfg.MinDamping)
			}
		}

		if !math.IsInf(fPrev, 1) && normF > m.cfg.DivergenceRatio*fPrev {
			alpha := utl.Max(lambda*m.cfg.LineSearchBacktrack, m.cfg.MinDamping)
			accepted := false
			for step := 0; step < m.cfg.LineSearchMaxSteps; step++ {
				addStep(trialX, x, dx, alpha)
				m.evalResidual(trialX, trialF)
				if m.residualNorm(trialF) < normF {
					copy(x, trialX)
					lambda = alpha
					accepted = true
					break
				}
				alpha *= m.cfg.LineSearchBacktrack
			}
			if !accepted {
				return nil, k, &LineSearchFailed{Iteration: k}
			}
		} else {
			addStep(x, x, dx, lambda)
		}

		fPrev = normF
	}
	return nil, m.cfg.MaxIterations, &DidNotConverge{Iterations: m.cfg.MaxIterations, FinalNormF: fPrev}
}

func addStep(dst, x, dx []float64, alpha float64) {
	for i := range x {
		dst[i] = x[i] + alpha*dx[i]
	}
}
