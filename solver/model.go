// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"sync"

	"github.com/dicksontsai/sketchsolve/chk"
	"github.com/dicksontsai/sketchsolve/constraint"
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/la"
	"github.com/dicksontsai/sketchsolve/layout"
)

// Warning is a non-fatal note accumulated during a solve (spec §4.8):
// either a constraint reporting degenerate geometry during evaluation, or
// a lint suggestion from the pass NewModel runs before solving.
type Warning struct {
	AboutConstraint int
	Content         string
}

// Model owns everything that is allocated once and reused across Newton
// iterations: the constraint slice, the variable layout, the Jacobian
// cache, and per-constraint scratch buffers (spec §3 "Model", spec §5
// "Resource discipline").
type Model struct {
	constraints    []constraint.Constraint
	lay            *layout.Layout
	sym            *la.SymbolicSparseColMat
	cache          *la.SparseColMat
	rowOffsets     []int
	constraintRows int // M_c, the sum of residual_dim before any Tikhonov rows
	square         bool
	initial        []float64
	cfg            Config

	scratchRows [3][]constraint.JacobianVar // max residual_dim is 3

	mu       sync.Mutex
	warnings []Warning
}

// NewModel validates the (constraints, layout, initial guesses) triple and
// builds the symbolic sparsity pattern (spec §4.2 construction sequence).
func NewModel(cons []constraint.Constraint, lay *layout.Layout, initial []float64, cfg Config) (*Model, error) {
	if len(cons) == 0 {
		return nil, &EmptySystem{}
	}
	n := lay.NumVars()
	if len(initial) != n {
		return nil, &WrongNumberGuesses{Vars: n, Guesses: len(initial)}
	}

	rowOffsets := make([]int, len(cons))
	totalRows := 0
	for i, c := range cons {
		rowOffsets[i] = totalRows
		totalRows += c.ResidualDim()
	}

	mRows := totalRows
	if cfg.RegularizationEnabled {
		mRows = totalRows + n
	}

	var trip la.Triplet
	trip.Init(mRows, n, 8*totalRows)
	for ci, c := range cons {
		dim := c.ResidualDim()
		nz := make([][]gm.VarID, dim)
		c.Nonzeroes(nz)
		for r := 0; r < dim; r++ {
			for _, id := range nz[r] {
				if !lay.HasVar(id) {
					return nil, &MissingGuess{ConstraintIndex: ci, Variable: uint(id)}
				}
				trip.Put(rowOffsets[ci]+r, lay.IndexOf(id), 1)
			}
		}
	}
	if cfg.RegularizationEnabled {
		for i := 0; i < n; i++ {
			trip.Put(totalRows+i, i, 1)
		}
	}

	rows, cols, _ := trip.Entries()
	sym := la.BuildSymbolicPattern(mRows, n, rows, cols)
	cache := la.NewSparseColMat(sym)

	m := &Model{
		constraints:    cons,
		lay:            lay,
		sym:            sym,
		cache:          cache,
		rowOffsets:     rowOffsets,
		constraintRows: totalRows,
		square:         mRows == n,
		initial:        append([]float64(nil), initial...),
		cfg:            cfg,
	}
	m.lint()
	return m, nil
}

// Layout exposes the model's variable layout.
func (m *Model) Layout() *layout.Layout { return m.lay }

// Warnings returns a snapshot of the warnings accumulated so far.
func (m *Model) Warnings() []Warning {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Warning(nil), m.warnings...)
}

func (m *Model) addWarning(aboutConstraint int, content string) {
	m.mu.Lock()
	m.warnings = append(m.warnings, Warning{AboutConstraint: aboutConstraint, Content: content})
	m.mu.Unlock()
}

// evalResidual fills out (length m.sym.NRow) with every constraint's
// residual followed, if enabled, by the Tikhonov regularization rows
// (spec §4.2, §4.5).
func (m *Model) evalResidual(x []float64, out []float64) {
	chk.IntAssert(len(out), m.sym.NRow)
	for i, c := range m.constraints {
		dim := c.ResidualDim()
		sub := out[m.rowOffsets[i] : m.rowOffsets[i]+dim]
		if degenerate := c.Residual(m.lay, x, sub); degenerate {
			m.addWarning(i, "degenerate geometry")
		}
	}
	if m.cfg.RegularizationEnabled {
		lambda := m.cfg.RegularizationLambda
		base := m.constraintRows
		for i := 0; i < m.lay.NumVars(); i++ {
			out[base+i] = lambda * (x[i] - m.initial[i])
		}
	}
}

// refreshJacobian re-enumerates every constraint's partial derivatives into
// the Jacobian cache (spec §4.2 "refresh_jacobian").
func (m *Model) refreshJacobian(x []float64) {
	m.cache.Clear()
	for i, c := range m.constraints {
		dim := c.ResidualDim()
		rows := m.scratchRows[:dim]
		for r := range rows {
			rows[r] = rows[r][:0]
		}
		if degenerate := c.JacobianRows(m.lay, x, rows); degenerate {
			continue
		}
		base := m.rowOffsets[i]
		for r := 0; r < dim; r++ {
			for _, jv := range rows[r] {
				col := m.lay.IndexOf(jv.ID)
				m.cache.Add(base+r, col, jv.Partial)
			}
		}
	}
	if m.cfg.RegularizationEnabled {
		lambda := m.cfg.RegularizationLambda
		base := m.constraintRows
		for i := 0; i < m.lay.NumVars(); i++ {
			m.cache.Add(base+i, i, lambda)
		}
	}
}

// constraintsSatisfied reports whether every per-constraint residual (not
// counting Tikhonov rows) is within tol of zero at x. A Newton solve can
// stop on its step/gradient criteria while leaving a genuinely infeasible
// combination of constraints at a nonzero least-squares minimum; the
// priority scheduler (spec §4.7) needs to tell that apart from a level that
// is actually satisfied.
func (m *Model) constraintsSatisfied(x []float64, tol float64) bool {
	f := make([]float64, m.sym.NRow)
	m.evalResidual(x, f)
	for i := 0; i < m.constraintRows; i++ {
		if math.Abs(f[i]) > tol {
			return false
		}
	}
	return true
}

func (m *Model) residualNorm(f []float64) float64 {
	if m.square {
		return la.NormInf(f)
	}
	return la.Norm2Of(f)
}
