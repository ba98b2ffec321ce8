// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements the constraint catalog (spec §3) and the
// per-constraint residual/Jacobian kernels (spec §4.1): every supported
// geometric relation between points, segments, circles and arcs, encoded as
// a vector-valued residual function plus the analytic partial derivatives
// the Newton driver needs.
package constraint

import (
	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/layout"
)

// Epsilon is the degeneracy/lint tolerance used throughout the kernels
// (spec §4.1: "EPSILON = 1e-3 for degeneracy tests"). LintEpsilon is kept
// as a separate name (spec §9 leaves "should lint use an independent
// tolerance" open) even though it currently equals Epsilon, so a future
// split is a one-line change instead of a search-and-replace.
const (
	Epsilon     = 1e-3
	LintEpsilon = Epsilon
)

// JacobianVar is one (variable, partial derivative) pair in a Jacobian row
// (spec §4.1).
type JacobianVar struct {
	ID      gm.VarID
	Partial float64
}

// Constraint is a single geometric relation. Every implementation reports a
// fixed ResidualDim (1, 2, or 3) and must write exactly that many residual
// values / Jacobian rows on every call.
type Constraint interface {
	// ResidualDim is the number of scalar equations this constraint
	// contributes.
	ResidualDim() int

	// Residual writes ResidualDim() values into out, given the current
	// variable assignments x (indexed via lay.IndexOf). It returns true
	// if the constraint detected degenerate geometry (e.g. two
	// coincident points) and therefore wrote a fallback all-zero
	// residual.
	Residual(lay *layout.Layout, x []float64, out []float64) (degenerate bool)

	// JacobianRows appends the nonzero (variable, partial) pairs for
	// each of its ResidualDim() rows into rows[0..ResidualDim()). It
	// returns true under the same degenerate conditions as Residual, in
	// which case it appends nothing (all partials are implicitly zero).
	JacobianRows(lay *layout.Layout, x []float64, rows [][]JacobianVar) (degenerate bool)

	// Nonzeroes appends, for each of its ResidualDim() rows, the
	// variable IDs with a structurally nonzero partial derivative. Used
	// once to build the symbolic sparsity pattern (spec §4.2 step 3);
	// it must list a superset of whatever JacobianRows ever populates
	// (constraints may become numerically degenerate at runtime, but the
	// sparsity pattern is fixed for the model's lifetime).
	Nonzeroes(rows [][]gm.VarID)
}

// Request pairs a constraint with a scheduling priority (spec §3
// "ConstraintRequest"). Smaller values are higher priority; 0 is highest.
type Request struct {
	Constraint Constraint
	Priority   uint32
}
